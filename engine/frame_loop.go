package engine

import "time"

// FrameLoop queues per-frame callbacks and runs them on each display tick
// Callbacks requested while a tick runs are deferred to the following tick,
// so a callback that reschedules itself runs exactly once per frame
// Not safe for concurrent use: the game loop goroutine owns it
type FrameLoop struct {
	queue    []func(time.Time)
	frames   uint64
	lastTick time.Time
}

// NewFrameLoop creates an empty frame loop
func NewFrameLoop() *FrameLoop {
	return &FrameLoop{}
}

// RequestFrame queues fn for the next tick
func (l *FrameLoop) RequestFrame(fn func(time.Time)) {
	if fn == nil {
		return
	}
	l.queue = append(l.queue, fn)
}

// Tick runs every callback queued before the tick started, in request order, with timestamp now
// Returns the number of callbacks run
func (l *FrameLoop) Tick(now time.Time) int {
	l.frames++
	l.lastTick = now

	if len(l.queue) == 0 {
		return 0
	}

	batch := l.queue
	l.queue = nil
	for _, fn := range batch {
		fn(now)
	}
	return len(batch)
}

// Pending returns the number of callbacks waiting for the next tick
func (l *FrameLoop) Pending() int {
	return len(l.queue)
}

// Frames returns the number of ticks processed
func (l *FrameLoop) Frames() uint64 {
	return l.frames
}

// LastTick returns the timestamp of the most recent tick
func (l *FrameLoop) LastTick() time.Time {
	return l.lastTick
}

// FrameInterval converts a frame rate to a ticker interval, falling back to 60 FPS for non-positive rates
func FrameInterval(fps int) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Second / time.Duration(fps)
}
