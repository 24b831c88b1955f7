package kernel

import "testing"

func TestParseGemmParams(t *testing.T) {
	params := DefaultParams(GEMM)
	for name, value := range map[string]string{
		"k":    "32",
		"mr":   "4",
		"nr":   "4",
		"rs_c": "1",
		"cs_c": "4",
	} {
		unknown, err := parseGemmParam(params, name, value)
		if unknown {
			t.Fatalf("%q should be a known parameter", name)
		}
		if err != nil {
			t.Fatalf("parseGemmParam(%q): %v", name, err)
		}
	}

	args, mappings, err := buildGemmArgs(params)
	if err != nil {
		t.Fatalf("buildGemmArgs: %v", err)
	}
	defer ReleaseArgs(mappings)

	if len(mappings) != 3 {
		t.Fatalf("got %d mappings, want 3 (A, B, C)", len(mappings))
	}

	a := (*gemmArgs)(args.Ptr)
	if a.K != 32 || a.MR != 4 || a.NR != 4 || a.RSC != 1 || a.CSC != 4 {
		t.Fatalf("unexpected gemmArgs: %+v", a)
	}
	if a.Alpha != 1.0 || a.Beta != 0.0 {
		t.Fatalf("alpha/beta defaults: got %v/%v, want 1.0/0.0", a.Alpha, a.Beta)
	}
	if a.AlphaP == 0 || a.BetaP == 0 {
		t.Fatal("AlphaP and BetaP must be non-zero addresses")
	}
}

func TestParseGemmUnknownParam(t *testing.T) {
	params := DefaultParams(GEMM)
	unknown, err := parseGemmParam(params, "bogus", "1")
	if !unknown {
		t.Fatal("expected unknown = true")
	}
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBuildGemmArgsRejectsZeroDimension(t *testing.T) {
	params := DefaultParams(GEMM)
	parseGemmParam(params, "mr", "0")
	if _, _, err := buildGemmArgs(params); err == nil {
		t.Fatal("expected an error for mr = 0")
	}
}

// Buffer sizing: A is k*mr*4 bytes, B is k*nr*4 bytes, C is
// (mr*rs_c)*(nr*cs_c)*4 bytes. This test exercises the formulas with
// non-trivial strides rather than asserting the allocation sizes directly
// (NewMapping doesn't expose them), by checking the mapped regions never
// collide: each buffer is independently released without error.
func TestBuildGemmArgsHonoursStrides(t *testing.T) {
	params := DefaultParams(GEMM)
	parseGemmParam(params, "k", "8")
	parseGemmParam(params, "mr", "6")
	parseGemmParam(params, "nr", "8")
	parseGemmParam(params, "rs_c", "1")
	parseGemmParam(params, "cs_c", "6")

	_, mappings, err := buildGemmArgs(params)
	if err != nil {
		t.Fatalf("buildGemmArgs: %v", err)
	}
	if err := ReleaseArgs(mappings); err != nil {
		t.Fatalf("ReleaseArgs: %v", err)
	}
}
