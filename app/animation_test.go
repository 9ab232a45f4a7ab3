package app

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionValueAt(t *testing.T) {
	started := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	duration := 600 * time.Millisecond

	pairs := []struct {
		start  int
		target int
	}{
		{0, 42},
		{0, 1},
		{5, 4},
		{4, 5},
		{100, 0},
		{-3, 7},
		{1000000, 1000003},
		{7, 7},
	}

	for _, pair := range pairs {
		tr := Transition{Start: pair.start, Target: pair.target, StartedAt: started, Duration: duration}

		prev := pair.start
		for elapsed := time.Duration(0); elapsed < duration; elapsed += 7 * time.Millisecond {
			value, done := tr.ValueAt(started.Add(elapsed))
			require.False(t, done, "%d->%d finished early at %v", pair.start, pair.target, elapsed)

			p := float64(elapsed) / float64(duration)
			expected := int(math.Floor(float64(pair.start) + float64(pair.target-pair.start)*p))
			require.Equal(t, expected, value, "%d->%d at %v", pair.start, pair.target, elapsed)

			if pair.target >= pair.start {
				require.GreaterOrEqual(t, value, prev)
				require.LessOrEqual(t, value, pair.target)
			} else {
				require.LessOrEqual(t, value, prev)
				require.GreaterOrEqual(t, value, pair.target)
			}
			prev = value
		}

		value, done := tr.ValueAt(started.Add(duration))
		assert.True(t, done)
		assert.Equal(t, pair.target, value)

		value, done = tr.ValueAt(started.Add(10 * duration))
		assert.True(t, done)
		assert.Equal(t, pair.target, value)
	}
}

func TestTransitionProgress(t *testing.T) {
	started := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	tr := Transition{Start: 0, Target: 10, StartedAt: started, Duration: time.Second}

	assert.Equal(t, 0.0, tr.Progress(started.Add(-time.Second)))
	assert.Equal(t, 0.5, tr.Progress(started.Add(500*time.Millisecond)))
	assert.Equal(t, 1.0, tr.Progress(started.Add(2*time.Second)))

	t.Run("zero duration completes immediately", func(t *testing.T) {
		tr := Transition{Start: 0, Target: 10, StartedAt: started}
		value, done := tr.ValueAt(started)
		assert.True(t, done)
		assert.Equal(t, 10, value)
	})
}

func testTiming(duration time.Duration) func() AnimationTiming {
	return func() AnimationTiming {
		return AnimationTiming{Duration: duration, Frame: 5 * time.Millisecond}
	}
}

func TestCounterAnimator(t *testing.T) {
	t.Run("reaches target and passes through intermediate values", func(t *testing.T) {
		counter := NewMemoryCounter(0)

		var mu sync.Mutex
		var seen []int
		counter.OnChange = func(value int) {
			mu.Lock()
			seen = append(seen, value)
			mu.Unlock()
		}

		animator := NewCounterAnimator(counter, clock.New(), testTiming(100*time.Millisecond))
		animator.Animate(42)
		animator.Wait()

		assert.Equal(t, 42, counter.Value())

		mu.Lock()
		defer mu.Unlock()
		require.NotEmpty(t, seen)
		assert.Equal(t, 42, seen[len(seen)-1])
		for i := 1; i < len(seen); i++ {
			assert.GreaterOrEqual(t, seen[i], seen[i-1])
		}
	})

	t.Run("same value sets without animating", func(t *testing.T) {
		counter := NewMemoryCounter(7)
		animator := NewCounterAnimator(counter, clock.New(), testTiming(time.Hour))

		animator.Animate(7)
		animator.Wait()
		assert.Equal(t, 7, counter.Value())
	})

	t.Run("zero duration sets immediately", func(t *testing.T) {
		counter := NewMemoryCounter(0)
		animator := NewCounterAnimator(counter, clock.New(), testTiming(0))

		animator.Animate(99)
		assert.Equal(t, 99, counter.Value())
	})

	t.Run("restart continues from displayed value", func(t *testing.T) {
		var mu sync.Mutex
		var seen []int

		counter := NewMemoryCounter(0)
		counter.OnChange = func(value int) {
			mu.Lock()
			seen = append(seen, value)
			mu.Unlock()
		}
		animator := NewCounterAnimator(counter, clock.New(), testTiming(200*time.Millisecond))

		animator.Animate(1000)
		require.Eventually(t, func() bool {
			return counter.Value() > 0
		}, time.Second, time.Millisecond)

		beforeRestart := counter.Value()
		require.Less(t, beforeRestart, 1000)

		mu.Lock()
		seen = nil
		mu.Unlock()

		animator.Animate(2000)
		animator.Wait()

		assert.Equal(t, 2000, counter.Value())

		mu.Lock()
		defer mu.Unlock()
		for _, value := range seen {
			assert.GreaterOrEqual(t, value, beforeRestart, "restart must not jump back to the old start")
		}
	})

	t.Run("stop freezes the display", func(t *testing.T) {
		counter := NewMemoryCounter(0)
		animator := NewCounterAnimator(counter, clock.New(), testTiming(time.Hour))

		animator.Animate(1000000)
		animator.Stop()
		frozen := counter.Value()

		time.Sleep(20 * time.Millisecond)
		assert.Equal(t, frozen, counter.Value())
		assert.Less(t, frozen, 1000000)
	})

	t.Run("mock clock drives frames", func(t *testing.T) {
		mock := clock.NewMock()
		counter := NewMemoryCounter(0)
		animator := NewCounterAnimator(counter, mock, testTiming(100*time.Millisecond))

		animator.Animate(10)

		done := make(chan struct{})
		go func() {
			animator.Wait()
			close(done)
		}()

		require.Eventually(t, func() bool {
			mock.Add(5 * time.Millisecond)
			select {
			case <-done:
				return true
			default:
				return false
			}
		}, 2*time.Second, time.Millisecond)

		assert.Equal(t, 10, counter.Value())
	})
}
