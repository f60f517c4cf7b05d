// Package playback walks a solved trace one step at a time, either by hand
// or on a timer.
package playback

import (
	"errors"
	"fmt"

	"github.com/piwi3910/RodCut/internal/model"
)

var (
	// ErrNoTrace is returned when navigation is attempted before Load.
	ErrNoTrace = errors.New("playback: no trace loaded")
	// ErrOutOfRange is returned by JumpTo for an index outside the trace.
	ErrOutOfRange = errors.New("playback: step index out of range")
)

// State is the position of a cursor within its trace.
type State int

const (
	Uninitialized State = iota
	Active
	Finished
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Active:
		return "active"
	case Finished:
		return "finished"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Cursor is a position within one trace. It is not safe for concurrent use;
// Player serialises access to its cursor.
type Cursor struct {
	trace *model.Trace
	index int
}

// NewCursor returns an uninitialized cursor.
func NewCursor() *Cursor {
	return &Cursor{index: -1}
}

// Load replaces the trace and moves to its first step. A nil trace resets
// the cursor.
func (c *Cursor) Load(t *model.Trace) model.Step {
	if t == nil {
		c.Reset()
		return model.Step{}
	}
	c.trace = t
	c.index = 0
	s, _ := t.Step(0)
	return s
}

// Reset drops the trace.
func (c *Cursor) Reset() {
	c.trace = nil
	c.index = -1
}

// State reports where the cursor is in its trace.
func (c *Cursor) State() State {
	switch {
	case c.trace == nil:
		return Uninitialized
	case c.index >= c.trace.Len()-1:
		return Finished
	default:
		return Active
	}
}

// Index returns the current step index, or -1 when uninitialized.
func (c *Cursor) Index() int { return c.index }

// Len returns the number of steps in the loaded trace.
func (c *Cursor) Len() int {
	if c.trace == nil {
		return 0
	}
	return c.trace.Len()
}

// Trace returns the loaded trace, or nil.
func (c *Cursor) Trace() *model.Trace { return c.trace }

// Current returns the step under the cursor.
func (c *Cursor) Current() (model.Step, bool) {
	if c.trace == nil {
		return model.Step{}, false
	}
	s, err := c.trace.Step(c.index)
	return s, err == nil
}

// Forward advances one step. It reports false when there is no trace or the
// cursor is already on the final step.
func (c *Cursor) Forward() (model.Step, bool) {
	if c.State() != Active {
		return model.Step{}, false
	}
	c.index++
	return c.Current()
}

// Backward retreats one step. It reports false at the first step.
func (c *Cursor) Backward() (model.Step, bool) {
	if c.trace == nil || c.index <= 0 {
		return model.Step{}, false
	}
	c.index--
	return c.Current()
}

// JumpTo moves directly to step i.
func (c *Cursor) JumpTo(i int) (model.Step, error) {
	if c.trace == nil {
		return model.Step{}, ErrNoTrace
	}
	if i < 0 || i >= c.trace.Len() {
		return model.Step{}, fmt.Errorf("%w: %d (trace has %d steps)", ErrOutOfRange, i, c.trace.Len())
	}
	c.index = i
	s, _ := c.trace.Step(i)
	return s, nil
}
