package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const excerptLimit = 120

// LoadError reports a catalog that could not be fetched or read.
type LoadError struct {
	Source string
	Status int
	Err    error
}

func (e *LoadError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("load catalog %s: unexpected status %d", e.Source, e.Status)
	}
	return fmt.Sprintf("load catalog %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ParseError reports a catalog document that was fetched but is malformed.
// Excerpt holds a short slice of the payload near the failure.
type ParseError struct {
	Source  string
	Excerpt string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse catalog %s: %v (near %q)", e.Source, e.Err, e.Excerpt)
}

func (e *ParseError) Unwrap() error { return e.Err }

func newParseError(source string, data []byte, err error) *ParseError {
	offset := int64(0)
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr):
		offset = syntaxErr.Offset
	case errors.As(err, &typeErr):
		offset = typeErr.Offset
	}
	return &ParseError{Source: source, Excerpt: excerpt(data, offset), Err: err}
}

func excerpt(data []byte, offset int64) string {
	start := int(offset) - excerptLimit/2
	if start < 0 {
		start = 0
	}
	if start > len(data) {
		start = len(data)
	}
	end := start + excerptLimit
	if end > len(data) {
		end = len(data)
	}
	// keep both cuts on rune boundaries
	for start < end && !utf8.RuneStart(data[start]) {
		start++
	}
	for end < len(data) && !utf8.RuneStart(data[end]) {
		end--
	}
	text := strings.Join(strings.Fields(string(data[start:end])), " ")
	if start > 0 {
		text = "…" + text
	}
	if end < len(data) {
		text += "…"
	}
	return text
}
