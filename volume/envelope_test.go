package volume

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeDecaysWithoutSamples(t *testing.T) {
	e := NewEnvelope(0.8)

	v1 := e.Next(0, false, 1.0)
	v2 := e.Next(0, false, 1.0)

	assert.Less(t, v1, float32(0.8))
	assert.Less(t, v2, v1)

	// Eventually bottoms out at zero, never below.
	for i := 0; i < 100; i++ {
		e.Next(0, false, 1.0)
	}
	assert.Equal(t, float32(0), e.Last())
}

func TestEnvelopeClampsToOne(t *testing.T) {
	e := NewEnvelope(0)

	v := e.Next(4.0, true, 0.016)
	assert.Equal(t, float32(1), v)

	// The multiplier shrank, so the same raw sample now lands at 1 again
	// only because 4 * 0.25 == 1; a quieter sample maps below 1.
	v = e.Next(2.0, true, 0.016)
	require.LessOrEqual(t, v, float32(1))
	assert.InDelta(t, 0.5, v, 0.01)
}

func TestEnvelopeMultiplierRecovers(t *testing.T) {
	e := NewEnvelope(0)

	// Spike drops the multiplier to 0.5.
	e.Next(2.0, true, 0.016)
	low := e.Next(0.5, true, 0.016)

	// In-range samples let the multiplier creep back up.
	var high float32
	for i := 0; i < 200; i++ {
		high = e.Next(0.5, true, 0.1)
	}
	assert.Greater(t, high, low)
	assert.LessOrEqual(t, high, float32(1))
}

func TestConstantProvider(t *testing.T) {
	s, ok, err := Constant{Level: 0.8}.Poll()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, float32(0.8), s)
}

func TestNoneProvider(t *testing.T) {
	_, ok, err := None{}.Poll()
	require.NoError(t, err)
	assert.False(t, ok)
}
