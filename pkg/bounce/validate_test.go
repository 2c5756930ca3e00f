package bounce

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFloat(t *testing.T) {
	ok := map[string]float64{
		"10":      10,
		" 2.5\t":  2.5,
		"1e3":     1000,
		"-5":      -5,
		"0.00001": 1e-5,
	}
	for in, want := range ok {
		v, err := ParseFloat(in)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, want, v, "input %q", in)
	}

	for _, in := range []string{"", "abc", "1,5", "nan", "inf", "-Inf", "10m"} {
		_, err := ParseFloat(in)
		assert.ErrorIs(t, err, ErrNotNumber, "input %q", in)
	}
}

func TestValidators(t *testing.T) {
	assert.NoError(t, ValidateHeight(10))
	assert.ErrorIs(t, ValidateHeight(0), ErrHeight)
	assert.ErrorIs(t, ValidateHeight(-5), ErrHeight)
	assert.ErrorIs(t, ValidateHeight(math.Inf(1)), ErrNotNumber)

	assert.NoError(t, ValidateHeightMin(0.1, 10))
	assert.ErrorIs(t, ValidateHeightMin(0, 10), ErrHeightMin)
	assert.ErrorIs(t, ValidateHeightMin(10, 10), ErrHeightMin)
	assert.ErrorIs(t, ValidateHeightMin(11, 10), ErrHeightMin)
	assert.ErrorIs(t, ValidateHeightMin(math.NaN(), 10), ErrNotNumber)

	assert.NoError(t, ValidateEta(0.5))
	assert.ErrorIs(t, ValidateEta(0), ErrEta)
	assert.ErrorIs(t, ValidateEta(1), ErrEta)
	assert.ErrorIs(t, ValidateEta(-0.1), ErrEta)

	assert.NoError(t, ValidateGravity(9.81))
	assert.ErrorIs(t, ValidateGravity(0), ErrGravity)
}

func TestParams_Validate_Order(t *testing.T) {
	// height is reported before the other two
	err := Params{Height: -1, HeightMin: -1, Eta: 2}.Validate()
	assert.ErrorIs(t, err, ErrHeight)

	err = Params{Height: 1, HeightMin: -1, Eta: 2}.Validate()
	assert.ErrorIs(t, err, ErrHeightMin)

	err = Params{Height: 1, HeightMin: 0.5, Eta: 2}.Validate()
	assert.ErrorIs(t, err, ErrEta)

	assert.NoError(t, Params{Height: 1, HeightMin: 0.5, Eta: 0.5}.Validate())
}
