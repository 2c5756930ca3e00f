package bounce

import (
	"math"
	"strconv"
	"strings"
)

// ParseFloat reads s as a finite real number. Surrounding whitespace is ignored.
func ParseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrNotNumber
	}
	return v, nil
}

func ValidateHeight(h float64) error {
	if !finite(h) {
		return ErrNotNumber
	}
	if h <= 0 {
		return ErrHeight
	}
	return nil
}

// ValidateHeightMin checks 0 < hMin < h. h is assumed already valid.
func ValidateHeightMin(hMin, h float64) error {
	if !finite(hMin) {
		return ErrNotNumber
	}
	if hMin <= 0 || hMin >= h {
		return ErrHeightMin
	}
	return nil
}

func ValidateEta(eta float64) error {
	if !finite(eta) {
		return ErrNotNumber
	}
	if eta <= 0 || eta >= 1 {
		return ErrEta
	}
	return nil
}

func ValidateGravity(g float64) error {
	if !finite(g) {
		return ErrNotNumber
	}
	if g <= 0 {
		return ErrGravity
	}
	return nil
}

// Validate checks all three inputs in prompt order and returns the first failure.
func (p Params) Validate() error {
	if err := ValidateHeight(p.Height); err != nil {
		return err
	}
	if err := ValidateHeightMin(p.HeightMin, p.Height); err != nil {
		return err
	}
	return ValidateEta(p.Eta)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
