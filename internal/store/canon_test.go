package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalInt(t *testing.T) {
	assert.Equal(t, "0", CanonicalInt(0))
	assert.Equal(t, "-5", CanonicalInt(-5))
	assert.Equal(t, "42", CanonicalInt(42))
}

func TestCanonicalFloatStripsTrailingZerosAndDot(t *testing.T) {
	assert.Equal(t, "3", CanonicalFloat(3.0))
	assert.Equal(t, "3.5", CanonicalFloat(3.5))
	assert.Equal(t, "3.14159265358979312", CanonicalFloat(3.141592653589793))
}

func TestIsNaNInf(t *testing.T) {
	assert.True(t, IsNaN(nan()))
	assert.True(t, IsInf(inf()))
}

func nan() float64 { return zeroOverZero() }
func zeroOverZero() float64 {
	var zero float64
	return zero / zero
}
func inf() float64 {
	var zero float64
	return 1 / zero
}
