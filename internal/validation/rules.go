// Package validation provides input validation for job parameters.
package validation

import (
	"fmt"
	"strings"
)

// Chain sequence limits for custom molecule input. Collagen alpha chains
// outside this window cannot be assembled into a triple helix.
const (
	MinChainLength = 950
	MaxChainLength = 1150
)

// chainAlphabet is the accepted residue alphabet for custom sequences,
// including '-' for alignment gaps.
const chainAlphabet = "ABCDEFGHIKLMNOPQRSTUVWXYZ-"

// Numeric parameter ranges for fibril jobs, in nanometers and percent.
const (
	MinContactDistance = 0.1
	MaxContactDistance = 10.0
	MinFibrilLength    = 1.0
	MaxFibrilLength    = 1000.0
)

// MaxDescriptionLength matches the backend's description column width.
const MaxDescriptionLength = 120

// NormalizeChain uppercases and trims a chain sequence. Input is
// case-normalized before validation so users can paste lowercase FASTA.
func NormalizeChain(sequence string) string {
	return strings.ToUpper(strings.TrimSpace(sequence))
}

// ValidateChain checks one custom chain sequence. The sequence must already
// be normalized via NormalizeChain.
func ValidateChain(name, sequence string) error {
	if sequence == "" {
		return fmt.Errorf("%s sequence is required", name)
	}
	if len(sequence) < MinChainLength || len(sequence) > MaxChainLength {
		return fmt.Errorf("%s length must be between %d and %d (got %d)",
			name, MinChainLength, MaxChainLength, len(sequence))
	}
	for i, r := range sequence {
		if !strings.ContainsRune(chainAlphabet, r) {
			return fmt.Errorf("%s contains invalid character %q at position %d", name, r, i+1)
		}
	}
	return nil
}

// ValidateJobName checks the generic job name collected on the basic-info
// step. Forward transition past that step requires this to pass.
func ValidateJobName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("job name is required")
	}
	return nil
}

// ValidateDescription checks the optional job description.
func ValidateDescription(description string) error {
	if len(description) > MaxDescriptionLength {
		return fmt.Errorf("description must be at most %d characters (got %d)",
			MaxDescriptionLength, len(description))
	}
	return nil
}

// ValidateContactDistance checks the spacing between molecules in a fibril.
func ValidateContactDistance(distance float64) error {
	if distance < MinContactDistance || distance > MaxContactDistance {
		return fmt.Errorf("contact distance must be between %.1f and %.1f nm",
			MinContactDistance, MaxContactDistance)
	}
	return nil
}

// ValidateFibrilLength checks the requested fibril length.
func ValidateFibrilLength(length float64) error {
	if length < MinFibrilLength || length > MaxFibrilLength {
		return fmt.Errorf("fibril length must be between %.1f and %.1f nm",
			MinFibrilLength, MaxFibrilLength)
	}
	return nil
}

// ValidateMixRatios checks a crosslink-type mix. The percentages must cover
// the whole structure, i.e. sum to exactly 100.
func ValidateMixRatios(ratios map[string]float64) error {
	if len(ratios) == 0 {
		return fmt.Errorf("at least one crosslink type is required")
	}
	var sum float64
	for name, pct := range ratios {
		if pct < 0 || pct > 100 {
			return fmt.Errorf("percentage for %s must be between 0 and 100", name)
		}
		sum += pct
	}
	if sum != 100.0 {
		return fmt.Errorf("crosslink percentages must sum to 100 (got %g)", sum)
	}
	return nil
}

// ValidateTargetDensity checks the reduced-density target, in percent of
// the original crosslink density.
func ValidateTargetDensity(density float64) error {
	if density <= 0 || density > 100 {
		return fmt.Errorf("target density must be greater than 0 and at most 100 percent")
	}
	return nil
}
