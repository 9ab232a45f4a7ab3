package app

import (
	"math"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// Transition linearly interpolates a displayed integer from Start to Target over Duration.
type Transition struct {
	Start     int
	Target    int
	StartedAt time.Time
	Duration  time.Duration
}

// Progress is the elapsed share of Duration clamped to [0, 1].
func (t Transition) Progress(now time.Time) float64 {
	if t.Duration <= 0 {
		return 1
	}

	p := float64(now.Sub(t.StartedAt)) / float64(t.Duration)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// ValueAt returns the value to show at now and whether the transition is complete. Before
// completion the value is floor(start + (target-start)*progress), so it never passes Target;
// on completion it is exactly Target.
func (t Transition) ValueAt(now time.Time) (int, bool) {
	p := t.Progress(now)
	if p >= 1 {
		return t.Target, true
	}

	return int(math.Floor(float64(t.Start) + float64(t.Target-t.Start)*p)), false
}

type AnimationTiming struct {
	Duration time.Duration
	Frame    time.Duration
}

type animationRun struct {
	stop chan struct{}
	done chan struct{}
}

// CounterAnimator plays transitions on one display. Starting a new transition stops the
// running one first and continues from whatever value is on screen.
type CounterAnimator struct {
	display CounterDisplay
	clock   clock.Clock
	timing  func() AnimationTiming

	mu  sync.Mutex
	run *animationRun
}

func NewCounterAnimator(display CounterDisplay, clk clock.Clock, timing func() AnimationTiming) *CounterAnimator {
	return &CounterAnimator{
		display: display,
		clock:   clk,
		timing:  timing,
	}
}

func (a *CounterAnimator) Animate(target int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.stopLocked()

	timing := a.timing()
	tr := Transition{
		Start:     a.display.Value(),
		Target:    target,
		StartedAt: a.clock.Now(),
		Duration:  timing.Duration,
	}

	if tr.Duration <= 0 || tr.Start == tr.Target {
		a.display.SetValue(target)
		return
	}

	run := &animationRun{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	a.run = run

	go a.loop(tr, timing.Frame, run)
}

func (a *CounterAnimator) loop(tr Transition, frame time.Duration, run *animationRun) {
	defer close(run.done)

	ticker := a.clock.Ticker(frame)
	defer ticker.Stop()

	for {
		select {
		case <-run.stop:
			return
		case <-ticker.C:
			value, done := tr.ValueAt(a.clock.Now())
			a.display.SetValue(value)
			if done {
				return
			}
		}
	}
}

// Stop freezes the display on its current value.
func (a *CounterAnimator) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.stopLocked()
}

func (a *CounterAnimator) stopLocked() {
	if a.run == nil {
		return
	}

	select {
	case <-a.run.done:
	default:
		close(a.run.stop)
		<-a.run.done
	}
	a.run = nil
}

// Wait blocks until the running transition, if any, has completed or been stopped.
func (a *CounterAnimator) Wait() {
	a.mu.Lock()
	run := a.run
	a.mu.Unlock()

	if run != nil {
		<-run.done
	}
}
