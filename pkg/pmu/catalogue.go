package pmu

// selectModelTable returns the raw-event table for the given display
// family/model pair, or nil if the CPU is not in the catalogue. Unknown
// CPUs are not an error — the caller simply opens no model-specific
// counters.
func selectModelTable(family, model uint32) []Entry {
	switch family {
	case 0x06:
		if broadwellModels[model] {
			return broadwell
		}
		if haswellModels[model] {
			return haswell
		}
		if ivyBridgeModels[model] {
			return ivyBridge
		}
		if atomModels[model] {
			return atom
		}
	case 0x15:
		if bulldozerModels[model] {
			return bulldozer
		}
		if steamrollerModels[model] {
			return steamroller
		}
	case 0x14:
		if bobcatModels[model] {
			return bobcat
		}
	}
	return nil
}

// generic are the two counters always opened regardless of microarchitecture.
var generic = []genericEntry{
	{Name: "Cycles", Config: perfHWCPUCycles},
	{Name: "Instructions", Config: perfHWInstructions},
}

// genericEntry names a generic hardware counter by its PERF_TYPE_HARDWARE
// config value, as opposed to the raw PERF_TYPE_RAW encoding used by Entry.
type genericEntry struct {
	Name   string
	Config uint64
}
