package types

import (
	"fmt"

	"github.com/ja7ad/bouncy/pkg/util"
)

// Meters is a float64 wrapper representing a length in metres.
type Meters float64

// String returns the shortest round-trip value with its unit, e.g. "10.0m".
func (m Meters) String() string { return util.FmtFloat(float64(m)) + "m" }

// Humanized returns a fixed-precision string with automatic unit (mm, cm, m, km).
func (m Meters) Humanized() string {
	v := float64(m)
	a := v
	if a < 0 {
		a = -a
	}
	switch {
	case a >= 1000:
		return fmt.Sprintf("%.2f km", v/1000)
	case a >= 1 || a == 0:
		return fmt.Sprintf("%.2f m", v)
	case a >= 0.01:
		return fmt.Sprintf("%.2f cm", v*100)
	default:
		return fmt.Sprintf("%.2f mm", v*1000)
	}
}

// Seconds is a float64 wrapper representing a duration in seconds.
type Seconds float64

// String returns the value rounded to 2 decimals with its unit, e.g. "23.02s".
func (s Seconds) String() string { return util.FmtFloat(util.Round(float64(s), 2)) + "s" }

// Humanized returns a fixed-precision string with automatic unit (ms, s, min).
func (s Seconds) Humanized() string {
	v := float64(s)
	a := v
	if a < 0 {
		a = -a
	}
	switch {
	case a >= 60:
		return fmt.Sprintf("%.2f min", v/60)
	case a >= 1 || a == 0:
		return fmt.Sprintf("%.2f s", v)
	default:
		return fmt.Sprintf("%.2f ms", v*1000)
	}
}
