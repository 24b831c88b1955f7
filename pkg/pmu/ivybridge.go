package pmu

// ivyBridge is the raw-event table for Intel Ivy Bridge (family 0x06,
// model 0x3A "Ivy Bridge" / 0x3E "Ivy Bridge-E/EP/EX").
var ivyBridge = []Entry{
	{Name: "uops_retired.all", Event: 0xC2, UMask: 0x01},
	{Name: "inst_retired.any_p", Event: 0xC0, UMask: 0x00},
	{Name: "mem_load_uops_retired.l1_hit", Event: 0xD1, UMask: 0x01},
	{Name: "mem_load_uops_retired.l1_miss", Event: 0xD1, UMask: 0x08},
	{Name: "mem_load_uops_retired.l2_hit", Event: 0xD1, UMask: 0x04},
	{Name: "mem_load_uops_retired.l2_miss", Event: 0xD1, UMask: 0x20},
	{Name: "fp_comp_ops_exe.sse_scalar_single", Event: 0x10, UMask: 0x80},
	{Name: "fp_comp_ops_exe.sse_packed_single", Event: 0x10, UMask: 0x40},
	{Name: "resource_stalls.any", Event: 0xA2, UMask: 0x01},
	{Name: "br_misp_retired.all_branches", Event: 0xC5, UMask: 0x00},
}

var ivyBridgeModels = map[uint32]bool{
	0x3A: true, // Ivy Bridge
	0x3E: true, // Ivy Bridge-E/EP/EX
}
