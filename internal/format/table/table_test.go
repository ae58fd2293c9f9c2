package table

import "testing"

func TestFormatAlignsColumns(t *testing.T) {
	rows := [][]string{
		{"props", "2"},
		{"  barrels", "1"},
		{"textures", "12"},
	}
	got := Format(rows, []Alignment{AlignLeft, AlignRight})
	want := []string{
		"props       2",
		"  barrels   1",
		"textures   12",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFormatMeasuresPrintableWidth(t *testing.T) {
	rows := [][]string{
		{"\x1b[1mbold\x1b[0m", "x"},
		{"plain", "y"},
	}
	got := Format(rows, nil)
	if got[0] != "\x1b[1mbold\x1b[0m   x" {
		t.Fatalf("unexpected styled line %q", got[0])
	}
	if got[1] != "plain  y" {
		t.Fatalf("unexpected plain line %q", got[1])
	}
}

func TestFormatRaggedRows(t *testing.T) {
	got := Format([][]string{{"a"}, {"bb", "c"}}, nil)
	if got[0] != "a " || got[1] != "bb  c" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestFormatEmpty(t *testing.T) {
	if got := Format(nil, nil); got != nil {
		t.Fatalf("expected nil, got %q", got)
	}
}
