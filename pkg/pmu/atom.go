package pmu

// atom is the raw-event table for Intel Atom-family cores (family 0x06,
// model 0x4C "Airmont" / 0x5A "Silvermont-Moorefield" / 0x5D
// "Silvermont-SoFIA" / 0x4A "Silvermont-Merrifield").
var atom = []Entry{
	{Name: "inst_retired.any_p", Event: 0xC0, UMask: 0x00},
	{Name: "cpu_clk_unhalted.core", Event: 0x3C, UMask: 0x00},
	{Name: "mem_uop_retired.l1_miss_loads", Event: 0x04, UMask: 0x04},
	{Name: "mem_uop_retired.l2_hit_loads", Event: 0x04, UMask: 0x01},
	{Name: "br_misp_retired.all_branches", Event: 0xC5, UMask: 0x00},
	{Name: "no_alloc_cycles.not_delivered", Event: 0xCA, UMask: 0x50},
}

var atomModels = map[uint32]bool{
	0x4C: true,
	0x5A: true,
	0x5D: true,
	0x4A: true,
}
