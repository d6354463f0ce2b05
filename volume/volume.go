// Package volume supplies the per-frame intensity signal for the
// billboards. A Provider produces optional loudness samples; the
// Envelope turns the sample stream into a stable [0,1] opacity,
// auto-scaling so occasional loud samples don't pin the output.
package volume

// Provider polls one loudness sample per frame. ok is false when no
// sample is available this frame (the envelope then decays instead).
type Provider interface {
	Poll() (sample float32, ok bool, err error)
}

// Constant always reports the same level, for running without any
// external signal source.
type Constant struct {
	Level float32
}

func (c Constant) Poll() (float32, bool, error) {
	return c.Level, true, nil
}

// None never produces a sample; the envelope decays to zero.
type None struct{}

func (None) Poll() (float32, bool, error) {
	return 0, false, nil
}
