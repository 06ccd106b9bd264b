package rain

import "time"

// Loop is a Scheduler holding at most one pending frame. Hosts call Step once
// per display frame, so the driver never recurses into itself.
type Loop struct {
	pending FrameFunc
}

func (l *Loop) ScheduleNextFrame(fn FrameFunc) { l.pending = fn }

// Pending reports whether a frame is waiting to run.
func (l *Loop) Pending() bool { return l.pending != nil }

// Step runs the pending frame at time t. It returns false if nothing was
// pending.
func (l *Loop) Step(t float64) bool {
	fn := l.pending
	if fn == nil {
		return false
	}
	l.pending = nil
	fn(t)
	return true
}

// Millis converts an elapsed duration to frame time.
func Millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
