package volume

import (
	"github.com/chewxy/math32"
)

const (
	// Per-second rate (scaled by dt/20) at which the output decays with
	// no sample and at which the multiplier recovers.
	adaptRate = 20

	maxMultiplier = 100
)

// Envelope adapts raw loudness samples into a [0,1] intensity. Samples
// are scaled by a multiplier that shrinks immediately whenever the
// scaled value exceeds 1 and creeps back up while the signal stays in
// range, so the output tracks the loud end of the recent signal. With no
// sample the output decays toward zero.
type Envelope struct {
	last       float32
	multiplier float32
}

// NewEnvelope starts from the given intensity with a neutral multiplier.
func NewEnvelope(initial float32) *Envelope {
	return &Envelope{
		last:       initial,
		multiplier: 1,
	}
}

// Next consumes one frame's sample (ok=false for none) and returns the
// intensity to render with. dt is the frame time in seconds.
func (e *Envelope) Next(sample float32, ok bool, dt float32) float32 {
	var intensity float32
	if ok {
		intensity = sample * e.multiplier
	} else {
		intensity = math32.Max(e.last-dt/adaptRate, 0)
	}

	if intensity > 1 {
		e.multiplier /= intensity
		intensity = 1
	} else if intensity != 0 {
		e.multiplier = math32.Min(e.multiplier+dt/adaptRate, maxMultiplier)
	}

	e.last = intensity
	return intensity
}

// Last returns the most recent output without advancing the envelope.
func (e *Envelope) Last() float32 {
	return e.last
}
