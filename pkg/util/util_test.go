package util

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinspace_Endpoints(t *testing.T) {
	xs := Linspace(1.5, 3.5, 100)
	require.Len(t, xs, 100)
	assert.Equal(t, 1.5, xs[0], "first sample is start")
	assert.Equal(t, 3.5, xs[99], "last sample is end")

	step := 2.0 / 99
	for i := 1; i < len(xs); i++ {
		assert.InDelta(t, step, xs[i]-xs[i-1], 1e-12, "i=%d", i)
	}
}

func TestLinspace_Small(t *testing.T) {
	assert.Nil(t, Linspace(0, 1, 0))
	assert.Equal(t, []float64{2}, Linspace(2, 5, 1))
	assert.Equal(t, []float64{0, 0.5, 1}, Linspace(0, 1, 3))
	// degenerate interval
	assert.Equal(t, []float64{4, 4, 4}, Linspace(4, 4, 3))
}

func TestSafeDiv(t *testing.T) {
	assert.Equal(t, 2.0, SafeDiv(4, 2))
	assert.Equal(t, 0.0, SafeDiv(4, 0))
	assert.Equal(t, 0.0, SafeDiv(4, 1e-13))
	assert.Equal(t, -2.0, SafeDiv(4, -2))
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, Clamp01(-0.5))
	assert.Equal(t, 1.0, Clamp01(1.5))
	assert.Equal(t, 0.25, Clamp01(0.25))
	assert.Equal(t, 0.0, Clamp01(math.NaN()))
}

func TestRound(t *testing.T) {
	assert.Equal(t, 23.02, Round(23.023819815842884, 2))
	assert.Equal(t, 1.43, Round(1.4278431229270645, 2))
	assert.Equal(t, 154.13, Round(154.1305421350485, 2))
	assert.Equal(t, 3.0, Round(2.999, 2))
	assert.Equal(t, 2.0, Round(2.4, 0))
}

func TestFmtFloat(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{10, "10.0"},
		{0.8, "0.8"},
		{0.1, "0.1"},
		{23.02, "23.02"},
		{3, "3.0"},
		{1e6, "1000000.0"},
		{1234.5, "1234.5"},
		{0.0001, "0.0001"},
		{0.00001, "1e-05"},
		{1e16, "1e+16"},
		{1.5e300, "1.5e+300"},
		{-2.5, "-2.5"},
		{0, "0.0"},
		{math.Copysign(0, -1), "-0.0"},
		{math.Inf(1), "inf"},
		{math.NaN(), "nan"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FmtFloat(tc.in), "in=%v", tc.in)
	}
}
