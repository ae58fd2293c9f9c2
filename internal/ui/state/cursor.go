package state

// Step moves the cursor by delta rows, stopping at either end. It reports
// false when the cursor was already at the edge it moved towards, which is
// the signal for the sidebar to hand focus to the neighbouring section.
func (l *Level) Step(delta int) bool {
	if len(l.Items) == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor = clampIndex(l.Cursor+delta, len(l.Items))
	return l.Cursor != old
}

// Enter places the cursor on the first row, or the last when entering the
// section from below.
func (l *Level) Enter(fromBelow bool) {
	l.Cursor = 0
	if fromBelow && len(l.Items) > 0 {
		l.Cursor = len(l.Items) - 1
	}
}

// EnsureCursorVisible clamps the cursor and scrolls the section window of
// rows rows so the cursor row is inside it.
func (l *Level) EnsureCursorVisible(rows int) {
	n := len(l.Items)
	if n == 0 || rows <= 0 {
		l.Cursor = clampIndex(l.Cursor, n)
		l.ViewportOffset = 0
		return
	}
	l.Cursor = clampIndex(l.Cursor, n)
	offset := clampIndex(l.ViewportOffset, n-rows+1)
	switch {
	case l.Cursor < offset:
		offset = l.Cursor
	case l.Cursor >= offset+rows:
		offset = l.Cursor - rows + 1
	}
	l.ViewportOffset = offset
}

// Mark replaces the highlighted facet values. Values the section does not
// list are ignored.
func (l *Level) Mark(values []string) {
	l.Selected = make(map[string]struct{}, len(values))
	for _, v := range values {
		l.Selected[v] = struct{}{}
	}
	l.dropUnknownMarks()
}

// Marked reports whether id is highlighted.
func (l *Level) Marked(id string) bool {
	_, ok := l.Selected[id]
	return ok
}

func (l *Level) dropUnknownMarks() {
	if len(l.Selected) == 0 {
		return
	}
	known := make(map[string]struct{}, len(l.Full))
	for _, item := range l.Full {
		known[item.ID] = struct{}{}
	}
	for id := range l.Selected {
		if _, ok := known[id]; !ok {
			delete(l.Selected, id)
		}
	}
}

func clampIndex(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
