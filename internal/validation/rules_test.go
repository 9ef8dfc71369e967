package validation

import (
	"strings"
	"testing"
)

func TestNormalizeChain(t *testing.T) {
	got := NormalizeChain("  gpogppgap  ")
	if got != "GPOGPPGAP" {
		t.Errorf("NormalizeChain: got %q", got)
	}
}

func TestValidateChain(t *testing.T) {
	valid := strings.Repeat("GPO", 340) // 1020 residues

	tests := []struct {
		name     string
		sequence string
		wantErr  bool
		errPart  string
	}{
		{"valid", valid, false, ""},
		{"empty", "", true, "required"},
		{"too short", strings.Repeat("G", 900), true, "between 950 and 1150"},
		{"too long", strings.Repeat("G", 1200), true, "between 950 and 1150"},
		{"min length", strings.Repeat("G", 950), false, ""},
		{"max length", strings.Repeat("G", 1150), false, ""},
		{"gap allowed", strings.Repeat("G", 949) + "-", false, ""},
		{"invalid residue", strings.Repeat("G", 949) + "J", true, "invalid character"},
		{"lowercase rejected", strings.Repeat("g", 950), true, "invalid character"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateChain("chainA", tt.sequence)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errPart) {
					t.Errorf("error %q does not contain %q", err, tt.errPart)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateJobName(t *testing.T) {
	if err := ValidateJobName("my-fibril"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateJobName("   "); err == nil {
		t.Error("expected error for blank name")
	}
}

func TestValidateDescription(t *testing.T) {
	if err := ValidateDescription(strings.Repeat("x", MaxDescriptionLength)); err != nil {
		t.Errorf("unexpected error at limit: %v", err)
	}
	if err := ValidateDescription(strings.Repeat("x", MaxDescriptionLength+1)); err == nil {
		t.Error("expected error past limit")
	}
}

func TestValidateContactDistance(t *testing.T) {
	for _, d := range []float64{0.1, 1.5, 10.0} {
		if err := ValidateContactDistance(d); err != nil {
			t.Errorf("distance %g: unexpected error: %v", d, err)
		}
	}
	for _, d := range []float64{0, 0.05, 10.1, -1} {
		if err := ValidateContactDistance(d); err == nil {
			t.Errorf("distance %g: expected error", d)
		}
	}
}

func TestValidateFibrilLength(t *testing.T) {
	for _, l := range []float64{1, 100, 1000} {
		if err := ValidateFibrilLength(l); err != nil {
			t.Errorf("length %g: unexpected error: %v", l, err)
		}
	}
	for _, l := range []float64{0, 0.5, 1001} {
		if err := ValidateFibrilLength(l); err == nil {
			t.Errorf("length %g: expected error", l)
		}
	}
}

func TestValidateMixRatios(t *testing.T) {
	tests := []struct {
		name    string
		ratios  map[string]float64
		wantErr bool
	}{
		{"sums to 100", map[string]float64{"HLKNL": 60, "PYD": 40}, false},
		{"single full", map[string]float64{"HLKNL": 100}, false},
		{"under 100", map[string]float64{"HLKNL": 60, "PYD": 30}, true},
		{"over 100", map[string]float64{"HLKNL": 60, "PYD": 50}, true},
		{"negative", map[string]float64{"HLKNL": -10, "PYD": 110}, true},
		{"empty", map[string]float64{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMixRatios(tt.ratios)
			if tt.wantErr && err == nil {
				t.Error("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateTargetDensity(t *testing.T) {
	for _, d := range []float64{0.1, 30, 100} {
		if err := ValidateTargetDensity(d); err != nil {
			t.Errorf("density %g: unexpected error: %v", d, err)
		}
	}
	for _, d := range []float64{0, -5, 100.5} {
		if err := ValidateTargetDensity(d); err == nil {
			t.Errorf("density %g: expected error", d)
		}
	}
}
