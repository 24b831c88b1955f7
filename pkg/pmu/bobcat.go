package pmu

// bobcat is the raw-event table for AMD Bobcat-family low-power cores
// (family 0x14, model 0x01 "Bobcat" / 0x02 "Bobcat-APU").
var bobcat = []Entry{
	{Name: "retired_uops", Event: 0xC1, UMask: 0x00},
	{Name: "dc_accesses", Event: 0x40, UMask: 0x00},
	{Name: "dc_misses", Event: 0x41, UMask: 0x00},
	{Name: "retired_branch_instr_mispred", Event: 0xC3, UMask: 0x00},
}

var bobcatModels = map[uint32]bool{
	0x01: true,
	0x02: true,
}
