package state

import "unicode"

// Prompt is an editable single-line text value with a rune cursor.
type Prompt struct {
	Value  string
	Cursor int
}

// Pos returns the clamped rune offset of the cursor.
func (p *Prompt) Pos() int {
	runes := []rune(p.Value)
	if p.Cursor < 0 {
		return 0
	}
	if p.Cursor > len(runes) {
		return len(runes)
	}
	return p.Cursor
}

// Set replaces the value and clamps the cursor into it.
func (p *Prompt) Set(value string, cursor int) {
	p.Value = value
	p.Cursor = cursor
	p.Cursor = p.Pos()
}

// Clear empties the prompt.
func (p *Prompt) Clear() bool {
	if p.Value == "" && p.Cursor == 0 {
		return false
	}
	p.Value = ""
	p.Cursor = 0
	return true
}

// Insert places text at the cursor.
func (p *Prompt) Insert(text string) bool {
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	runes := []rune(p.Value)
	pos := p.Pos()
	updated := make([]rune, 0, len(runes)+len(insert))
	updated = append(updated, runes[:pos]...)
	updated = append(updated, insert...)
	updated = append(updated, runes[pos:]...)
	p.Set(string(updated), pos+len(insert))
	return true
}

// DeleteRuneBackward removes the rune before the cursor.
func (p *Prompt) DeleteRuneBackward() bool {
	runes := []rune(p.Value)
	pos := p.Pos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	updated := append(runes[:pos-1], runes[pos:]...)
	p.Set(string(updated), pos-1)
	return true
}

// DeleteRuneForward removes the rune under the cursor.
func (p *Prompt) DeleteRuneForward() bool {
	runes := []rune(p.Value)
	pos := p.Pos()
	if pos >= len(runes) {
		return false
	}
	updated := append(runes[:pos], runes[pos+1:]...)
	p.Set(string(updated), pos)
	return true
}

// DeleteWordBackward removes the word preceding the cursor.
func (p *Prompt) DeleteWordBackward() bool {
	runes := []rune(p.Value)
	pos := p.Pos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	i := wordStart(runes, pos)
	updated := append(runes[:i], runes[pos:]...)
	p.Set(string(updated), i)
	return true
}

// DeleteToStart removes everything before the cursor.
func (p *Prompt) DeleteToStart() bool {
	runes := []rune(p.Value)
	pos := p.Pos()
	if pos == 0 {
		return false
	}
	p.Set(string(runes[pos:]), 0)
	return true
}

func (p *Prompt) Home() bool {
	if p.Pos() == 0 {
		return false
	}
	p.Cursor = 0
	return true
}

func (p *Prompt) End() bool {
	end := len([]rune(p.Value))
	if p.Pos() == end {
		return false
	}
	p.Cursor = end
	return true
}

func (p *Prompt) Left() bool {
	if p.Pos() == 0 {
		return false
	}
	p.Cursor = p.Pos() - 1
	return true
}

func (p *Prompt) Right() bool {
	if p.Pos() >= len([]rune(p.Value)) {
		return false
	}
	p.Cursor = p.Pos() + 1
	return true
}

// WordLeft moves to the start of the previous word.
func (p *Prompt) WordLeft() bool {
	runes := []rune(p.Value)
	pos := p.Pos()
	if pos == 0 {
		return false
	}
	p.Cursor = wordStart(runes, pos)
	return p.Cursor != pos
}

// WordRight moves past the next word and its trailing space.
func (p *Prompt) WordRight() bool {
	runes := []rune(p.Value)
	pos := p.Pos()
	if pos >= len(runes) {
		return false
	}
	i := pos
	for i < len(runes) && !unicode.IsSpace(runes[i]) {
		i++
	}
	for i < len(runes) && unicode.IsSpace(runes[i]) {
		i++
	}
	p.Cursor = i
	return i != pos
}

func wordStart(runes []rune, pos int) int {
	i := pos
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	return i
}
