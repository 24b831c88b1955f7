package pmu

// Open opens the full counter set for a request: the two generic counters
// plus, if the running CPU's (family, model) matches a known
// microarchitecture, that architecture's raw-event table. It never
// returns an error — a counter that fails to open is recorded as invalid
// and the measurement loop will skip it.
func Open(family, model uint32) []*Counter {
	counters := make([]*Counter, 0, len(generic)+8)

	for _, g := range generic {
		counters = append(counters, openGeneric(g.Name, g.Config))
	}

	for _, entry := range selectModelTable(family, model) {
		counters = append(counters, openRaw(entry))
	}

	return counters
}

// CloseAll closes every counter in the slice, ignoring individual errors —
// by the time a request is tearing down, a failed close has no actionable
// recovery.
func CloseAll(counters []*Counter) {
	for _, c := range counters {
		_ = c.Close()
	}
}
