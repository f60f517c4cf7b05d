package playback

import (
	"log/slog"
	"sync"
	"time"

	"github.com/piwi3910/RodCut/internal/model"
)

// SpeedMap holds the autoplay interval in milliseconds for speed levels
// 1 (slowest) through 10 (fastest).
var SpeedMap = [model.MaxSpeed]int{1200, 950, 750, 600, 480, 380, 280, 200, 140, 90}

// fallbackInterval is used for a speed level outside the map.
const fallbackInterval = 480 * time.Millisecond

// IntervalFor returns the autoplay delay for a speed level.
func IntervalFor(level int) time.Duration {
	if level < model.MinSpeed || level > model.MaxSpeed {
		return fallbackInterval
	}
	return time.Duration(SpeedMap[level-1]) * time.Millisecond
}

// Event describes the player after a change. Step is the zero value when
// no trace is loaded.
type Event struct {
	Index   int
	Total   int
	Step    model.Step
	State   State
	Playing bool
}

// Options configures a Player.
type Options struct {
	Speed    int
	OnChange func(Event)
	Logger   *slog.Logger
}

// scheduleFunc runs f once after d; the returned func cancels it.
type scheduleFunc func(d time.Duration, f func()) (stop func() bool)

func afterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// Player drives a Cursor on a timer. At most one advance is ever pending;
// every manual action, Pause, Reset and Load cancels it. A timer that fires
// after it was cancelled finds a newer generation and does nothing.
//
// OnChange is invoked outside the player's lock, from the caller's goroutine
// for manual actions and from a timer goroutine during autoplay. Deliveries
// are serialised and in order: an event built before a newer one that was
// already delivered is dropped. OnChange must not call back into the Player.
type Player struct {
	mu       sync.Mutex
	cursor   *Cursor
	speed    int
	playing  bool
	gen      uint64
	seq      uint64
	stop     func() bool
	schedule scheduleFunc

	deliverMu sync.Mutex
	delivered uint64

	onChange func(Event)
	logger   *slog.Logger
}

// NewPlayer creates a stopped player with no trace.
func NewPlayer(opts Options) *Player {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	speed := opts.Speed
	if speed == 0 {
		speed = model.DefaultSpeed
	}
	return &Player{
		cursor:   NewCursor(),
		speed:    model.ClampSpeed(speed),
		schedule: afterFunc,
		onChange: opts.OnChange,
		logger:   logger.With("component", "player"),
	}
}

// Load discards the current trace and any pending advance, then shows the
// first step of t. A nil trace behaves like Reset.
func (p *Player) Load(t *model.Trace) {
	if t == nil {
		p.Reset()
		return
	}
	p.mu.Lock()
	p.haltLocked()
	p.cursor.Load(t)
	p.logger.Debug("trace loaded", "steps", t.Len())
	ev, seq := p.emitLocked()
	p.mu.Unlock()
	p.notify(ev, seq)
}

// Reset drops the trace and stops playback.
func (p *Player) Reset() {
	p.mu.Lock()
	p.haltLocked()
	p.cursor.Reset()
	ev, seq := p.emitLocked()
	p.mu.Unlock()
	p.notify(ev, seq)
}

// Play starts autoplay. Playing from the final step restarts at the first.
func (p *Player) Play() error {
	p.mu.Lock()
	switch p.cursor.State() {
	case Uninitialized:
		p.mu.Unlock()
		return ErrNoTrace
	case Finished:
		p.cursor.JumpTo(0)
	}
	if p.playing {
		p.mu.Unlock()
		return nil
	}
	p.playing = true
	p.scheduleLocked()
	p.logger.Debug("playback started", "index", p.cursor.Index(), "speed", p.speed)
	ev, seq := p.emitLocked()
	p.mu.Unlock()
	p.notify(ev, seq)
	return nil
}

// Pause stops autoplay and cancels the pending advance.
func (p *Player) Pause() {
	p.mu.Lock()
	if !p.playing {
		p.mu.Unlock()
		return
	}
	p.haltLocked()
	ev, seq := p.emitLocked()
	p.mu.Unlock()
	p.notify(ev, seq)
}

// Toggle switches between Play and Pause.
func (p *Player) Toggle() error {
	if p.Playing() {
		p.Pause()
		return nil
	}
	return p.Play()
}

// StepForward pauses and advances one step.
func (p *Player) StepForward() bool {
	return p.manual(func(c *Cursor) bool {
		_, ok := c.Forward()
		return ok
	})
}

// StepBackward pauses and retreats one step.
func (p *Player) StepBackward() bool {
	return p.manual(func(c *Cursor) bool {
		_, ok := c.Backward()
		return ok
	})
}

// JumpTo pauses and moves to step i.
func (p *Player) JumpTo(i int) error {
	var err error
	p.manual(func(c *Cursor) bool {
		_, err = c.JumpTo(i)
		return err == nil
	})
	return err
}

func (p *Player) manual(move func(*Cursor) bool) bool {
	p.mu.Lock()
	p.haltLocked()
	if !move(p.cursor) {
		p.mu.Unlock()
		return false
	}
	ev, seq := p.emitLocked()
	p.mu.Unlock()
	p.notify(ev, seq)
	return true
}

// SetSpeed changes the speed level. A pending advance keeps its delay; the
// next one uses the new level.
func (p *Player) SetSpeed(level int) {
	p.mu.Lock()
	p.speed = model.ClampSpeed(level)
	p.mu.Unlock()
}

// Speed returns the current speed level.
func (p *Player) Speed() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.speed
}

// Playing reports whether autoplay is running.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// Snapshot returns the current event without changing anything.
func (p *Player) Snapshot() Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.eventLocked()
}

// Trace returns the loaded trace, or nil.
func (p *Player) Trace() *model.Trace {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cursor.Trace()
}

func (p *Player) scheduleLocked() {
	p.cancelLocked()
	gen := p.gen
	p.stop = p.schedule(IntervalFor(p.speed), func() { p.tick(gen) })
}

// cancelLocked invalidates any pending advance.
func (p *Player) cancelLocked() {
	p.gen++
	if p.stop != nil {
		p.stop()
		p.stop = nil
	}
}

func (p *Player) haltLocked() {
	p.playing = false
	p.cancelLocked()
}

func (p *Player) tick(gen uint64) {
	p.mu.Lock()
	if gen != p.gen || !p.playing {
		p.mu.Unlock()
		p.logger.Debug("stale advance discarded", "generation", gen)
		return
	}
	p.stop = nil
	if _, ok := p.cursor.Forward(); !ok || p.cursor.State() == Finished {
		p.haltLocked()
		p.logger.Debug("playback finished", "index", p.cursor.Index())
	} else {
		p.scheduleLocked()
	}
	ev, seq := p.emitLocked()
	p.mu.Unlock()
	p.notify(ev, seq)
}

func (p *Player) eventLocked() Event {
	step, _ := p.cursor.Current()
	return Event{
		Index:   p.cursor.Index(),
		Total:   p.cursor.Len(),
		Step:    step,
		State:   p.cursor.State(),
		Playing: p.playing,
	}
}

// emitLocked builds the current event and numbers it for delivery.
func (p *Player) emitLocked() (Event, uint64) {
	p.seq++
	return p.eventLocked(), p.seq
}

func (p *Player) notify(ev Event, seq uint64) {
	if p.onChange == nil {
		return
	}
	p.deliverMu.Lock()
	defer p.deliverMu.Unlock()
	if seq <= p.delivered {
		p.logger.Debug("superseded event dropped", "index", ev.Index, "seq", seq)
		return
	}
	p.delivered = seq
	p.onChange(ev)
}
