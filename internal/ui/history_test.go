package ui

import (
	"testing"

	"github.com/piwi3910/RodCut/internal/model"
)

func problemOf(prices ...int) model.Problem {
	return model.NewProblem(len(prices), prices)
}

func TestNewHistory(t *testing.T) {
	h := NewHistory()
	if h.maxDepth != defaultMaxDepth {
		t.Errorf("expected maxDepth %d, got %d", defaultMaxDepth, h.maxDepth)
	}
	if h.CanUndo() {
		t.Error("new history should not be undoable")
	}
	if h.CanRedo() {
		t.Error("new history should not be redoable")
	}
	if h.UndoLabel() != "" {
		t.Errorf("expected empty undo label, got %q", h.UndoLabel())
	}
}

func TestPushAndUndo(t *testing.T) {
	h := NewHistory()

	// Push initial state (before editing a price)
	h.Push(MakeSnapshot(problemOf(1, 5, 8, 9), "classic", "Edit price 2"))

	if !h.CanUndo() {
		t.Fatal("should be able to undo after push")
	}
	if h.UndoLabel() != "Edit price 2" {
		t.Errorf("unexpected undo label %q", h.UndoLabel())
	}

	current := MakeSnapshot(problemOf(1, 7, 8, 9), "", "current")

	restored, ok := h.Undo(current)
	if !ok {
		t.Fatal("undo should succeed")
	}
	if restored.Problem.Prices[1] != 5 {
		t.Errorf("expected price 5 after undo, got %d", restored.Problem.Prices[1])
	}
	if restored.PresetID != "classic" {
		t.Errorf("expected preset classic, got %q", restored.PresetID)
	}
}

func TestUndoRedo(t *testing.T) {
	h := NewHistory()

	h.Push(MakeSnapshot(problemOf(1), "", "length 1"))
	h.Push(MakeSnapshot(problemOf(1, 5), "", "length 2"))

	current := MakeSnapshot(problemOf(1, 5, 8), "", "length 3")

	restored, ok := h.Undo(current)
	if !ok {
		t.Fatal("first undo should succeed")
	}
	if restored.Problem.RodLength != 2 {
		t.Errorf("expected rod length 2, got %d", restored.Problem.RodLength)
	}

	if !h.CanRedo() {
		t.Fatal("should be able to redo")
	}
	redone, ok := h.Redo(restored)
	if !ok {
		t.Fatal("redo should succeed")
	}
	if redone.Problem.RodLength != 3 {
		t.Errorf("expected rod length 3 after redo, got %d", redone.Problem.RodLength)
	}
}

func TestPushClearsRedo(t *testing.T) {
	h := NewHistory()

	h.Push(MakeSnapshot(problemOf(1), "", "a"))
	if _, ok := h.Undo(MakeSnapshot(problemOf(2), "", "b")); !ok {
		t.Fatal("undo should succeed")
	}
	if !h.CanRedo() {
		t.Fatal("should be able to redo after undo")
	}

	h.Push(MakeSnapshot(problemOf(3), "", "new action"))
	if h.CanRedo() {
		t.Error("redo stack should be cleared after push")
	}
}

func TestMaxDepth(t *testing.T) {
	h := &History{maxDepth: 3}

	for i := 1; i <= 5; i++ {
		h.Push(MakeSnapshot(problemOf(i), "", ""))
	}

	if len(h.undoStack) != 3 {
		t.Errorf("expected undo stack length 3, got %d", len(h.undoStack))
	}
	if h.undoStack[0].Problem.Prices[0] != 3 {
		t.Errorf("oldest snapshots should be dropped first, got %v", h.undoStack[0].Problem.Prices)
	}
}

func TestUndoRedoEmpty(t *testing.T) {
	h := NewHistory()
	current := MakeSnapshot(problemOf(1), "", "current")
	if _, ok := h.Undo(current); ok {
		t.Error("undo on empty history should return false")
	}
	if _, ok := h.Redo(current); ok {
		t.Error("redo on empty history should return false")
	}
}

func TestClear(t *testing.T) {
	h := NewHistory()
	h.Push(MakeSnapshot(problemOf(1), "", "a"))
	h.Push(MakeSnapshot(problemOf(2), "", "b"))
	h.Undo(MakeSnapshot(problemOf(3), "", "current"))

	h.Clear()
	if h.CanUndo() || h.CanRedo() {
		t.Error("after clear, should not be able to undo or redo")
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	prices := []int{1, 5, 8}
	original := model.Problem{RodLength: 3, Prices: prices}
	snap := MakeSnapshot(original, "", "test")

	prices[0] = 99

	if snap.Problem.Prices[0] != 1 {
		t.Error("snapshot should be independent of the original price slice")
	}
}

func TestMultipleUndoRedo(t *testing.T) {
	h := NewHistory()

	h.Push(MakeSnapshot(problemOf(1), "", "1"))
	h.Push(MakeSnapshot(problemOf(1, 2), "", "2"))
	h.Push(MakeSnapshot(problemOf(1, 2, 3), "", "3"))
	current := MakeSnapshot(problemOf(1, 2, 3, 4), "", "4")

	s := current
	for want := 3; want >= 1; want-- {
		var ok bool
		s, ok = h.Undo(s)
		if !ok || s.Problem.RodLength != want {
			t.Fatalf("undo: expected rod length %d, got %d", want, s.Problem.RodLength)
		}
	}
	if h.CanUndo() {
		t.Error("should not be able to undo further")
	}

	for want := 2; want <= 4; want++ {
		var ok bool
		s, ok = h.Redo(s)
		if !ok || s.Problem.RodLength != want {
			t.Fatalf("redo: expected rod length %d, got %d", want, s.Problem.RodLength)
		}
	}
	if h.CanRedo() {
		t.Error("should not be able to redo further")
	}
}
