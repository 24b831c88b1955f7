package pmu

// haswell is the raw-event table for Intel Haswell (family 0x06, model
// 0x3C "Haswell" / 0x3F "Haswell-E/EP/EX" / 0x45 "Haswell-ULT" / 0x46
// "Haswell-GT3E").
var haswell = []Entry{
	{Name: "uops_retired.all", Event: 0xC2, UMask: 0x01},
	{Name: "inst_retired.any_p", Event: 0xC0, UMask: 0x00},
	{Name: "mem_load_uops_retired.l1_hit", Event: 0xD1, UMask: 0x01},
	{Name: "mem_load_uops_retired.l1_miss", Event: 0xD1, UMask: 0x08},
	{Name: "mem_load_uops_retired.l2_hit", Event: 0xD1, UMask: 0x02},
	{Name: "mem_load_uops_retired.l2_miss", Event: 0xD1, UMask: 0x10},
	{Name: "fp_arith_inst_retired.scalar_single", Event: 0xC7, UMask: 0x01},
	{Name: "fp_arith_inst_retired.256b_packed_single", Event: 0xC7, UMask: 0x20},
	{Name: "resource_stalls.any", Event: 0xA2, UMask: 0x01},
	{Name: "br_misp_retired.all_branches", Event: 0xC5, UMask: 0x00},
	{Name: "idq_uops_not_delivered.core", Event: 0x9C, UMask: 0x01},
}

var haswellModels = map[uint32]bool{
	0x3C: true, // Haswell
	0x3F: true, // Haswell-E/EP/EX
	0x45: true, // Haswell-ULT
	0x46: true, // Haswell-GT3E
}
