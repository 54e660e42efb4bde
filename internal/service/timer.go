package service

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// TimerState is the focus countdown's lifecycle position.
type TimerState int

const (
	TimerIdle TimerState = iota
	TimerRunning
	TimerPaused
	TimerExpired
)

func (s TimerState) String() string {
	switch s {
	case TimerIdle:
		return "idle"
	case TimerRunning:
		return "running"
	case TimerPaused:
		return "paused"
	case TimerExpired:
		return "expired"
	}
	return fmt.Sprintf("TimerState(%d)", int(s))
}

// Timer is the focus countdown. It only moves on Tick, so the owner decides
// where ticks come from: Run for a headless loop, or the TUI's own tick
// message. OnExpire fires once per countdown, on the tick that reaches zero.
type Timer struct {
	mu        sync.Mutex
	duration  time.Duration
	remaining time.Duration
	state     TimerState
	onExpire  func()
	interval  time.Duration
}

// NewTimer returns an idle countdown of d.
func NewTimer(d time.Duration, onExpire func()) *Timer {
	return &Timer{duration: d, remaining: d, onExpire: onExpire, interval: time.Second}
}

func (t *Timer) State() TimerState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

func (t *Timer) Remaining() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining
}

func (t *Timer) Duration() time.Duration { return t.duration }

// Start runs an idle or paused countdown. An expired timer needs Reset.
func (t *Timer) Start() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != TimerIdle && t.state != TimerPaused {
		return false
	}
	t.state = TimerRunning
	return true
}

func (t *Timer) Pause() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != TimerRunning {
		return false
	}
	t.state = TimerPaused
	return true
}

// Toggle pauses a running countdown and starts any other that can start.
func (t *Timer) Toggle() bool {
	if t.Pause() {
		return true
	}
	return t.Start()
}

// Reset returns to idle with the full duration.
func (t *Timer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = TimerIdle
	t.remaining = t.duration
}

// Tick advances a running countdown by one second. It reports whether this
// tick expired the timer.
func (t *Timer) Tick() bool {
	t.mu.Lock()
	if t.state != TimerRunning {
		t.mu.Unlock()
		return false
	}
	t.remaining -= time.Second
	if t.remaining > 0 {
		t.mu.Unlock()
		return false
	}
	t.remaining = 0
	t.state = TimerExpired
	fire := t.onExpire
	t.mu.Unlock()

	if fire != nil {
		fire()
	}
	return true
}

// SkipTo leaves only left on a countdown that has not expired.
func (t *Timer) SkipTo(left time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == TimerExpired || left <= 0 || left >= t.remaining {
		return
	}
	t.remaining = left
}

// Run ticks the timer once per second until it expires or ctx is done.
// The ticker is released on return. onTick, if set, sees the remaining time
// after every tick. An already expired timer returns at once; Reset it to
// run another countdown.
func (t *Timer) Run(ctx context.Context, onTick func(time.Duration)) error {
	if !t.Start() && t.State() == TimerExpired {
		return nil
	}
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			t.Pause()
			return ctx.Err()
		case <-ticker.C:
			expired := t.Tick()
			if onTick != nil {
				onTick(t.Remaining())
			}
			if expired {
				return nil
			}
		}
	}
}

// FormatClock renders d as MM:SS.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
