package playback

import (
	"sync"
	"testing"
	"time"

	"github.com/piwi3910/RodCut/internal/engine"
	"github.com/piwi3910/RodCut/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solve(t *testing.T, n int, prices []int) *model.Trace {
	t.Helper()
	tr, err := engine.Solve(model.NewProblem(n, prices))
	require.NoError(t, err)
	return tr
}

// manualClock captures scheduled callbacks so tests decide when they fire.
type manualClock struct {
	mu      sync.Mutex
	pending []func()
	delays  []time.Duration
	stopped int
}

func (m *manualClock) schedule(d time.Duration, f func()) func() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = append(m.pending, f)
	m.delays = append(m.delays, d)
	return func() bool {
		m.mu.Lock()
		m.stopped++
		m.mu.Unlock()
		return true
	}
}

// fire runs the i-th scheduled callback, even if it was stopped.
func (m *manualClock) fire(i int) {
	m.mu.Lock()
	f := m.pending[i]
	m.mu.Unlock()
	f()
}

func (m *manualClock) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

func newTestPlayer(events *[]Event) (*Player, *manualClock) {
	clock := &manualClock{}
	var mu sync.Mutex
	p := NewPlayer(Options{OnChange: func(ev Event) {
		if events == nil {
			return
		}
		mu.Lock()
		*events = append(*events, ev)
		mu.Unlock()
	}})
	p.schedule = clock.schedule
	return p, clock
}

func TestIntervalFor(t *testing.T) {
	assert.Equal(t, 1200*time.Millisecond, IntervalFor(1))
	assert.Equal(t, 480*time.Millisecond, IntervalFor(5))
	assert.Equal(t, 90*time.Millisecond, IntervalFor(10))
	assert.Equal(t, 480*time.Millisecond, IntervalFor(0))
	assert.Equal(t, 480*time.Millisecond, IntervalFor(11))
}

func TestCursor_StateMachine(t *testing.T) {
	c := NewCursor()
	assert.Equal(t, Uninitialized, c.State())
	assert.Equal(t, -1, c.Index())

	_, ok := c.Forward()
	assert.False(t, ok, "forward without a trace")
	_, err := c.JumpTo(0)
	assert.ErrorIs(t, err, ErrNoTrace)

	tr := solve(t, 1, []int{5})
	first := c.Load(tr)
	assert.Equal(t, model.PhaseInit, first.Phase)
	assert.Equal(t, Active, c.State())

	_, ok = c.Backward()
	assert.False(t, ok, "backward at the first step")

	for i := 1; i < tr.Len(); i++ {
		s, ok := c.Forward()
		require.True(t, ok)
		assert.Equal(t, i, c.Index())
		if i == tr.Len()-1 {
			assert.Equal(t, model.PhaseComplete, s.Phase)
		}
	}
	assert.Equal(t, Finished, c.State())
	_, ok = c.Forward()
	assert.False(t, ok, "forward when finished")

	s, ok := c.Backward()
	require.True(t, ok)
	assert.Equal(t, model.PhaseTraceback, s.Phase)
	assert.Equal(t, Active, c.State())

	_, err = c.JumpTo(tr.Len())
	assert.ErrorIs(t, err, ErrOutOfRange)
	s, err = c.JumpTo(2)
	require.NoError(t, err)
	assert.Equal(t, model.PhaseFilled, s.Phase)

	c.Reset()
	assert.Equal(t, Uninitialized, c.State())
}

func TestCursor_LoadRestartsAtZero(t *testing.T) {
	c := NewCursor()
	c.Load(solve(t, 4, []int{1, 5, 8, 9}))
	_, err := c.JumpTo(10)
	require.NoError(t, err)

	next := solve(t, 2, []int{1, 5})
	c.Load(next)
	assert.Equal(t, 0, c.Index())
	assert.Equal(t, next.Len(), c.Len())
}

func TestPlayer_PlayWithoutTrace(t *testing.T) {
	p, clock := newTestPlayer(nil)
	assert.ErrorIs(t, p.Play(), ErrNoTrace)
	assert.False(t, p.Playing())
	assert.Equal(t, 0, clock.count())
}

func TestPlayer_AutoplayStopsOnFinalStep(t *testing.T) {
	var events []Event
	p, clock := newTestPlayer(&events)
	tr := solve(t, 1, []int{5})
	p.Load(tr)

	require.NoError(t, p.Play())
	for i := 0; i < tr.Len()-1; i++ {
		require.Equal(t, i+1, clock.count(), "exactly one pending advance")
		clock.fire(i)
	}

	snap := p.Snapshot()
	assert.Equal(t, tr.Len()-1, snap.Index)
	assert.Equal(t, Finished, snap.State)
	assert.False(t, snap.Playing)
	assert.Equal(t, tr.Len()-1, clock.count(), "nothing scheduled after the final step")

	last := events[len(events)-1]
	assert.Equal(t, model.PhaseComplete, last.Step.Phase)
	assert.False(t, last.Playing)
}

func TestPlayer_PlayWhenFinishedRestarts(t *testing.T) {
	p, _ := newTestPlayer(nil)
	tr := solve(t, 1, []int{5})
	p.Load(tr)
	require.NoError(t, p.JumpTo(tr.Len()-1))

	require.NoError(t, p.Play())
	snap := p.Snapshot()
	assert.Equal(t, 0, snap.Index)
	assert.True(t, snap.Playing)
}

func TestPlayer_ManualStepCancelsPendingAdvance(t *testing.T) {
	p, clock := newTestPlayer(nil)
	p.Load(solve(t, 4, []int{1, 5, 8, 9}))
	require.NoError(t, p.Play())
	require.Equal(t, 1, clock.count())

	require.True(t, p.StepForward())
	assert.False(t, p.Playing())
	assert.Equal(t, 1, p.Snapshot().Index)

	// The cancelled timer fires late and must not move the cursor.
	clock.fire(0)
	assert.Equal(t, 1, p.Snapshot().Index)
	assert.Equal(t, 1, clock.count())
}

func TestPlayer_StaleTimerAfterLoadIsDiscarded(t *testing.T) {
	var events []Event
	p, clock := newTestPlayer(&events)
	p.Load(solve(t, 8, []int{1, 5, 8, 9, 10, 17, 17, 20}))
	require.NoError(t, p.Play())
	clock.fire(0)
	require.Equal(t, 1, p.Snapshot().Index)

	fresh := solve(t, 2, []int{1, 5})
	p.Load(fresh)
	before := len(events)

	clock.fire(1)

	snap := p.Snapshot()
	assert.Equal(t, 0, snap.Index, "stale advance must not touch the new trace")
	assert.Equal(t, fresh.Len(), snap.Total)
	assert.False(t, snap.Playing)
	assert.Len(t, events, before, "no event for a discarded advance")
}

func TestPlayer_PauseAndResetCancel(t *testing.T) {
	p, clock := newTestPlayer(nil)
	p.Load(solve(t, 3, []int{1, 5, 8}))

	require.NoError(t, p.Play())
	p.Pause()
	clock.fire(0)
	assert.Equal(t, 0, p.Snapshot().Index)

	require.NoError(t, p.Toggle())
	assert.True(t, p.Playing())
	p.Reset()
	clock.fire(1)
	snap := p.Snapshot()
	assert.Equal(t, Uninitialized, snap.State)
	assert.Equal(t, -1, snap.Index)
	assert.False(t, snap.Playing)
}

func TestPlayer_SpeedControlsDelay(t *testing.T) {
	p, clock := newTestPlayer(nil)
	p.Load(solve(t, 3, []int{1, 5, 8}))

	p.SetSpeed(10)
	require.NoError(t, p.Play())
	p.SetSpeed(1)
	clock.fire(0)

	clock.mu.Lock()
	defer clock.mu.Unlock()
	assert.Equal(t, 90*time.Millisecond, clock.delays[0])
	assert.Equal(t, 1200*time.Millisecond, clock.delays[1])

	p.SetSpeed(42)
	assert.Equal(t, model.MaxSpeed, p.Speed())
}

func TestPlayer_BackwardAndJump(t *testing.T) {
	p, _ := newTestPlayer(nil)
	assert.False(t, p.StepBackward())
	assert.ErrorIs(t, p.JumpTo(0), ErrNoTrace)

	tr := solve(t, 4, []int{1, 5, 8, 9})
	p.Load(tr)
	assert.False(t, p.StepBackward())
	require.NoError(t, p.JumpTo(5))
	require.True(t, p.StepBackward())
	assert.Equal(t, 4, p.Snapshot().Index)
	assert.ErrorIs(t, p.JumpTo(-1), ErrOutOfRange)
	assert.Equal(t, 4, p.Snapshot().Index)
}

func TestPlayer_RealTimerRunsToCompletion(t *testing.T) {
	p := NewPlayer(Options{Speed: model.MaxSpeed})
	tr := solve(t, 1, []int{5})
	p.Load(tr)
	require.NoError(t, p.Play())

	require.Eventually(t, func() bool {
		snap := p.Snapshot()
		return snap.State == Finished && !snap.Playing
	}, 3*time.Second, 10*time.Millisecond)
}

func TestPlayer_EventFromEarlierTraceNeverLandsLast(t *testing.T) {
	old := solve(t, 8, []int{1, 5, 8, 9, 10, 17, 17, 20})
	fresh := solve(t, 1, []int{5})

	var (
		mu   sync.Mutex
		last Event
	)
	entered := make(chan struct{})
	release := make(chan struct{})
	clock := &manualClock{}
	p := NewPlayer(Options{OnChange: func(ev Event) {
		if ev.Total == old.Len() && ev.Index == 1 {
			close(entered)
			<-release
		}
		mu.Lock()
		last = ev
		mu.Unlock()
	}})
	p.schedule = clock.schedule

	p.Load(old)
	require.NoError(t, p.Play())

	ticked := make(chan struct{})
	go func() {
		clock.fire(0)
		close(ticked)
	}()
	<-entered

	loaded := make(chan struct{})
	go func() {
		p.Load(fresh)
		close(loaded)
	}()
	require.Eventually(t, func() bool { return p.Snapshot().Total == fresh.Len() },
		time.Second, time.Millisecond)

	close(release)
	<-ticked
	<-loaded

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, fresh.Len(), last.Total)
	assert.Equal(t, 0, last.Index)
	assert.Equal(t, model.PhaseInit, last.Step.Phase)
}

func TestPlayer_LoadNilResets(t *testing.T) {
	var events []Event
	p, _ := newTestPlayer(&events)
	p.Load(solve(t, 2, []int{1, 5}))

	assert.NotPanics(t, func() { p.Load(nil) })
	assert.Equal(t, Uninitialized, p.Snapshot().State)
	assert.Nil(t, p.Trace())
	require.NotEmpty(t, events)
	assert.Equal(t, Uninitialized, events[len(events)-1].State)

	c := NewCursor()
	assert.NotPanics(t, func() { c.Load(nil) })
	assert.Equal(t, Uninitialized, c.State())
}
