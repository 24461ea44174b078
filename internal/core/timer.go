package core

import "time"

// FixedStep helps advance playback at a steady interval regardless of the
// host frame rate.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

// NewFixedStep constructs a FixedStep controller firing once per interval.
func NewFixedStep(interval time.Duration) *FixedStep {
	fs := &FixedStep{now: time.Now}
	fs.SetInterval(interval)
	fs.accumulator = fs.step
	return fs
}

// SetInterval changes the step length. Non-positive values fall back to 200ms.
func (f *FixedStep) SetInterval(interval time.Duration) {
	if interval <= 0 {
		interval = 200 * time.Millisecond
	}
	f.step = interval
}

// Interval reports the current step length.
func (f *FixedStep) Interval() time.Duration { return f.step }

// ShouldStep reports whether playback should advance by one frame.
func (f *FixedStep) ShouldStep() bool {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	f.last = now
	f.accumulator += delta
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		return true
	}
	return false
}
