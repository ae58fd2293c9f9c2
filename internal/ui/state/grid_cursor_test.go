package state

import "testing"

func TestGridCursorColumnAwareMoves(t *testing.T) {
	g := NewGridCursor()
	g.SetTotal(10)
	if !g.Move(GridDown, 4, 1) || g.Index != 0 {
		t.Fatalf("expected first move to focus card 0, got %d", g.Index)
	}
	g.Move(GridDown, 4, 1)
	if g.Index != 4 {
		t.Fatalf("expected down to skip a row, got %d", g.Index)
	}
	g.Move(GridRight, 4, 1)
	if g.Index != 5 {
		t.Fatalf("expected right to advance, got %d", g.Index)
	}
	g.Move(GridDown, 4, 1)
	g.Move(GridDown, 4, 1)
	if g.Index != 9 {
		t.Fatalf("expected down to clamp to last item, got %d", g.Index)
	}
	g.Move(GridUp, 4, 1)
	if g.Index != 5 {
		t.Fatalf("expected up one row, got %d", g.Index)
	}
	g.Move(GridUp, 4, 1)
	g.Move(GridUp, 4, 1)
	if g.Index != 0 {
		t.Fatalf("expected up to clamp at 0, got %d", g.Index)
	}
	if g.Move(GridLeft, 4, 1) {
		t.Fatalf("expected left at 0 to stay put")
	}
}

func TestGridCursorHomeEndAndPaging(t *testing.T) {
	g := NewGridCursor()
	g.SetTotal(50)
	g.Move(GridEnd, 5, 3)
	if g.Index != 49 {
		t.Fatalf("expected end at 49, got %d", g.Index)
	}
	g.Move(GridPageUp, 5, 3)
	if g.Index != 34 {
		t.Fatalf("expected page up by 15, got %d", g.Index)
	}
	g.Move(GridHome, 5, 3)
	if g.Index != 0 {
		t.Fatalf("expected home at 0, got %d", g.Index)
	}
	g.Move(GridPageDown, 5, 3)
	if g.Index != 15 {
		t.Fatalf("expected page down by 15, got %d", g.Index)
	}
}

func TestGridCursorClampsOnTotalChange(t *testing.T) {
	g := GridCursor{Index: 8, Total: 10}
	g.SetTotal(3)
	if g.Index != 2 {
		t.Fatalf("expected clamp to 2, got %d", g.Index)
	}
	g.SetTotal(0)
	if g.Index != -1 || g.Move(GridRight, 3, 1) {
		t.Fatalf("expected empty cursor to be unfocused and inert")
	}
	g.Reset(4)
	if g.Index != 0 {
		t.Fatalf("expected reset to focus first card, got %d", g.Index)
	}
}

func TestClampHelpersDiffer(t *testing.T) {
	if got := clampLast(5, 3); got != 3 {
		t.Fatalf("expected clamp to the last index, got %d", got)
	}
	if got := clampLast(-2, 3); got != 0 {
		t.Fatalf("expected clamp to zero, got %d", got)
	}
	if got := clampIndex(5, 3); got != 2 {
		t.Fatalf("expected clamp below the count, got %d", got)
	}
	if got := clampIndex(4, 0); got != 0 {
		t.Fatalf("expected zero for an empty list, got %d", got)
	}
}
