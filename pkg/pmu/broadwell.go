package pmu

// broadwell is the raw-event table for Intel Broadwell (family 0x06,
// model 0x3D "Broadwell" / 0x47 "Broadwell-H" / 0x4F "Broadwell-E" / 0x56
// "Broadwell-DE"), taken from Intel's published performance-monitoring
// events reference for the core PMU.
var broadwell = []Entry{
	{Name: "uops_retired.all", Event: 0xC2, UMask: 0x01},
	{Name: "uops_retired.stall_cycles", Event: 0xC2, UMask: 0x01, CMask: 1, Inv: true},
	{Name: "inst_retired.any_p", Event: 0xC0, UMask: 0x00},
	{Name: "mem_load_uops_retired.l1_hit", Event: 0xD1, UMask: 0x01},
	{Name: "mem_load_uops_retired.l1_miss", Event: 0xD1, UMask: 0x08},
	{Name: "mem_load_uops_retired.l2_hit", Event: 0xD1, UMask: 0x02},
	{Name: "mem_load_uops_retired.l2_miss", Event: 0xD1, UMask: 0x10},
	{Name: "fp_arith_inst_retired.scalar_single", Event: 0xC7, UMask: 0x01},
	{Name: "fp_arith_inst_retired.128b_packed_single", Event: 0xC7, UMask: 0x0C},
	{Name: "resource_stalls.any", Event: 0xA2, UMask: 0x01},
	{Name: "br_misp_retired.all_branches", Event: 0xC5, UMask: 0x00},
	{Name: "idq_uops_not_delivered.core", Event: 0x9C, UMask: 0x01},
}

var broadwellModels = map[uint32]bool{
	0x3D: true, // Broadwell
	0x47: true, // Broadwell-H
	0x4F: true, // Broadwell-E/EP/EX
	0x56: true, // Broadwell-DE
}
