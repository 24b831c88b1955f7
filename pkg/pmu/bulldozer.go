package pmu

// bulldozer is the raw-event table for AMD Bulldozer-family cores
// (family 0x15, model 0x01 "Bulldozer" / 0x02 "Piledriver").
var bulldozer = []Entry{
	{Name: "dispatched_fpu.ops_pipe0", Event: 0x00, UMask: 0x01},
	{Name: "retired_uops", Event: 0xC1, UMask: 0x00},
	{Name: "dc_accesses", Event: 0x40, UMask: 0x00},
	{Name: "dc_misses", Event: 0x41, UMask: 0x00},
	{Name: "ic_fetches.all", Event: 0x80, UMask: 0x00},
	{Name: "ic_misses", Event: 0x81, UMask: 0x00},
	{Name: "retired_branch_instr_mispred", Event: 0xC3, UMask: 0x00},
}

var bulldozerModels = map[uint32]bool{
	0x01: true,
	0x02: true,
}
