package pmu

// steamroller is the raw-event table for AMD Steamroller-family cores
// (family 0x15, model 0x30 "Steamroller" / 0x38 "Steamroller-mobile").
var steamroller = []Entry{
	{Name: "retired_uops", Event: 0xC1, UMask: 0x00},
	{Name: "dc_accesses", Event: 0x40, UMask: 0x00},
	{Name: "dc_misses", Event: 0x41, UMask: 0x00},
	{Name: "ic_fetches.all", Event: 0x80, UMask: 0x00},
	{Name: "ic_misses", Event: 0x81, UMask: 0x00},
	{Name: "retired_branch_instr_mispred", Event: 0xC3, UMask: 0x00},
	{Name: "l2_cache_misses.all", Event: 0x7E, UMask: 0x01},
}

var steamrollerModels = map[uint32]bool{
	0x30: true,
	0x38: true,
}
