// Package filter reduces a catalog to the ordered subset shown in the grid.
package filter

import (
	"sort"
	"strings"
)

// SortKey selects the field items are ordered by.
type SortKey string

const (
	SortName    SortKey = "name"
	SortUpdated SortKey = "updated"
)

// ParseSortKey accepts "name" or "updated", case-insensitively.
func ParseSortKey(v string) (SortKey, bool) {
	switch SortKey(strings.ToLower(strings.TrimSpace(v))) {
	case SortName:
		return SortName, true
	case SortUpdated:
		return SortUpdated, true
	}
	return SortName, false
}

// State is the filter configuration owned by the UI model. The zero value
// matches everything sorted by name.
type State struct {
	Categories   map[string]struct{}
	Types        map[string]struct{}
	FolderPrefix string
	Query        string
	SortKey      SortKey
	Descending   bool
	// Semantic is carried for the toggle but matching stays token based.
	Semantic bool
}

// NewState returns an empty state sorted by name ascending.
func NewState() *State {
	return &State{
		Categories: make(map[string]struct{}),
		Types:      make(map[string]struct{}),
		SortKey:    SortName,
	}
}

// Tokens splits the query on whitespace and lower-cases each token.
func (s *State) Tokens() []string {
	return strings.Fields(strings.ToLower(s.Query))
}

// ToggleType flips membership of a type facet and reports the new state.
func (s *State) ToggleType(value string) bool {
	if s.Types == nil {
		s.Types = make(map[string]struct{})
	}
	return toggle(s.Types, value)
}

// ToggleCategory flips membership of a category facet.
func (s *State) ToggleCategory(value string) bool {
	if s.Categories == nil {
		s.Categories = make(map[string]struct{})
	}
	return toggle(s.Categories, value)
}

// HasType reports whether value is a selected type.
func (s *State) HasType(value string) bool {
	_, ok := s.Types[value]
	return ok
}

// HasCategory reports whether value is a selected category.
func (s *State) HasCategory(value string) bool {
	_, ok := s.Categories[value]
	return ok
}

// SetTypes replaces the type facet selection.
func (s *State) SetTypes(values ...string) {
	s.Types = toSet(values)
}

// SetCategories replaces the category facet selection.
func (s *State) SetCategories(values ...string) {
	s.Categories = toSet(values)
}

// ClearFacets removes every facet selection.
func (s *State) ClearFacets() {
	s.Types = make(map[string]struct{})
	s.Categories = make(map[string]struct{})
}

// SetFolder sets the folder prefix after normalising separators.
func (s *State) SetFolder(path string) {
	s.FolderPrefix = strings.Trim(strings.ReplaceAll(path, "\\", "/"), "/")
}

// CycleSort advances to the next sort key.
func (s *State) CycleSort() SortKey {
	if s.SortKey == SortUpdated {
		s.SortKey = SortName
	} else {
		s.SortKey = SortUpdated
	}
	return s.SortKey
}

// PathIndex reports whether a folder path exists in the current tree.
type PathIndex interface {
	Has(path string) bool
}

// Prune clears a folder prefix that no longer exists in tree and reports
// whether it did.
func (s *State) Prune(tree PathIndex) bool {
	if s.FolderPrefix == "" || tree == nil || tree.Has(s.FolderPrefix) {
		return false
	}
	s.FolderPrefix = ""
	return true
}

// Active reports whether any constraint narrows the catalog.
func (s *State) Active() bool {
	return s.FolderPrefix != "" || len(s.Types) > 0 || len(s.Categories) > 0 || len(s.Tokens()) > 0
}

// TypeList returns the selected types sorted.
func (s *State) TypeList() []string { return sortedSet(s.Types) }

// CategoryList returns the selected categories sorted.
func (s *State) CategoryList() []string { return sortedSet(s.Categories) }

// Summary describes the state for trace output.
func (s *State) Summary() map[string]interface{} {
	return map[string]interface{}{
		"folder":     s.FolderPrefix,
		"types":      s.TypeList(),
		"categories": s.CategoryList(),
		"tokens":     s.Tokens(),
		"sort":       string(s.SortKey),
		"descending": s.Descending,
		"semantic":   s.Semantic,
	}
}

func toggle(set map[string]struct{}, value string) bool {
	if _, ok := set[value]; ok {
		delete(set, value)
		return false
	}
	set[value] = struct{}{}
	return true
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			set[v] = struct{}{}
		}
	}
	return set
}

func sortedSet(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
