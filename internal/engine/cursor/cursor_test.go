package cursor

import "testing"

func TestSelectionBasics(t *testing.T) {
	sel := NewSelection(10, 4)

	if sel.Start() != 4 || sel.End() != 10 {
		t.Errorf("expected range [4,10), got [%d,%d)", sel.Start(), sel.End())
	}
	if !sel.IsBackward() {
		t.Error("expected backward selection")
	}
	if sel.Range().Len() != 6 {
		t.Errorf("expected len 6, got %d", sel.Range().Len())
	}
	if sel.String() != "Selection(10←4)" {
		t.Errorf("unexpected String(): %s", sel.String())
	}
}

func TestSelectionMotionUpdates(t *testing.T) {
	sel := NewSelection(2, 5)

	if got := sel.Extend(9); got != NewSelection(2, 9) {
		t.Errorf("Extend: got %v", got)
	}
	if got := sel.MoveTo(9); got != NewCursorSelection(9) {
		t.Errorf("MoveTo: got %v", got)
	}
	if got := sel.Reanchor(9); got != NewSelection(5, 9) {
		t.Errorf("Reanchor: got %v", got)
	}
	if got := sel.Collapse(); got != NewCursorSelection(5) {
		t.Errorf("Collapse: got %v", got)
	}
}

func TestSelectionClamp(t *testing.T) {
	sel := NewSelection(-3, 40).Clamp(10)
	if sel.Anchor != 0 || sel.Head != 10 {
		t.Errorf("expected (0,10), got %v", sel)
	}
}

func TestCursorSetMapInPlace(t *testing.T) {
	cs := NewCursorSetAt(0)
	cs.Add(NewCursorSelection(10))
	cs.Add(NewCursorSelection(20))

	cs.MapInPlace(func(sel Selection) Selection {
		return sel.MoveTo(sel.Head + 2)
	})

	heads := cs.Heads()
	want := []ByteOffset{2, 12, 22}
	if len(heads) != len(want) {
		t.Fatalf("expected %d heads, got %d", len(want), len(heads))
	}
	for i := range want {
		if heads[i] != want[i] {
			t.Errorf("head %d = %d, want %d", i, heads[i], want[i])
		}
	}
}

func TestCursorSetMergesCollidingCursors(t *testing.T) {
	cs := NewCursorSetAt(1)
	cs.Add(NewCursorSelection(3))

	cs.MapInPlace(func(sel Selection) Selection {
		return sel.MoveTo(8)
	})

	if cs.Count() != 1 {
		t.Fatalf("expected cursors to merge, got %d", cs.Count())
	}
	if cs.Primary().Head != 8 {
		t.Errorf("expected head 8, got %d", cs.Primary().Head)
	}
}

func TestCursorSetKeepsAdjacentCursors(t *testing.T) {
	cs := NewCursorSetAt(4)
	cs.Add(NewCursorSelection(5))

	if cs.Count() != 2 {
		t.Errorf("adjacent cursors should stay distinct, got %d", cs.Count())
	}
}

func TestCursorSetMergesOverlappingSelections(t *testing.T) {
	cs := NewCursorSet(NewSelection(0, 5))
	cs.Add(NewSelection(3, 8))

	if cs.Count() != 1 {
		t.Fatalf("expected merge, got %d", cs.Count())
	}
	if got := cs.Primary(); got.Start() != 0 || got.End() != 8 {
		t.Errorf("unexpected merged selection %v", got)
	}
}

func TestCursorSetHasSelection(t *testing.T) {
	cs := NewCursorSetAt(0)
	if cs.HasSelection() {
		t.Error("cursor-only set should not report a selection")
	}

	cs.SetAll([]Selection{NewSelection(0, 3)})
	if !cs.HasSelection() {
		t.Error("expected selection")
	}

	cs.CollapseAll()
	if cs.HasSelection() {
		t.Error("expected no selection after CollapseAll")
	}
}

func TestCursorSetClearAndClamp(t *testing.T) {
	cs := NewCursorSetAt(2)
	cs.Add(NewCursorSelection(50))
	cs.Clamp(10)

	if cs.All()[1].Head != 10 {
		t.Errorf("expected clamped head 10, got %d", cs.All()[1].Head)
	}

	cs.Clear()
	if cs.IsMulti() {
		t.Error("expected single cursor after Clear")
	}

	cs.SetAll(nil)
	if cs.Count() != 1 || cs.Primary().Head != 0 {
		t.Errorf("SetAll(nil) should leave one cursor at 0, got %v", cs.All())
	}
}
