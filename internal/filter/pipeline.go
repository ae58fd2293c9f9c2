package filter

import (
	"sort"
	"strings"

	"github.com/atomicstack/assetgrid/internal/catalog"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Apply runs the folder, type, category and query stages followed by a
// stable sort. It returns a new slice holding the original item pointers.
func Apply(items []*catalog.Item, s *State) []*catalog.Item {
	if s == nil {
		s = NewState()
	}
	tokens := s.Tokens()
	prefix := catalog.NormalizeDir(s.FolderPrefix)
	out := make([]*catalog.Item, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		if prefix != "" && !MatchesFolder(it.Dir(), prefix) {
			continue
		}
		if len(s.Types) > 0 && !s.HasType(it.Type) {
			continue
		}
		if len(s.Categories) > 0 && !s.HasCategory(it.Category) {
			continue
		}
		if !MatchesQuery(it, tokens) {
			continue
		}
		out = append(out, it)
	}
	Sort(out, s.SortKey, s.Descending)
	return out
}

// MatchesFolder reports whether dir equals prefix or lies beneath it on a
// path segment boundary.
func MatchesFolder(dir, prefix string) bool {
	if prefix == "" {
		return true
	}
	if !strings.HasPrefix(dir, prefix) {
		return false
	}
	return len(dir) == len(prefix) || dir[len(prefix)] == '/'
}

// MatchesQuery reports whether every token occurs in the item's search text.
func MatchesQuery(it *catalog.Item, tokens []string) bool {
	if len(tokens) == 0 {
		return true
	}
	haystack := it.SearchText()
	for _, tok := range tokens {
		if !strings.Contains(haystack, tok) {
			return false
		}
	}
	return true
}

// Sort orders items in place and keeps the relative order of equal keys.
func Sort(items []*catalog.Item, key SortKey, descending bool) {
	var compare func(a, b *catalog.Item) int
	switch key {
	case SortUpdated:
		compare = func(a, b *catalog.Item) int { return strings.Compare(a.Updated, b.Updated) }
	default:
		col := collate.New(language.Und, collate.IgnoreCase)
		compare = func(a, b *catalog.Item) int { return col.CompareString(a.DisplayName, b.DisplayName) }
	}
	sort.SliceStable(items, func(i, j int) bool {
		c := compare(items[i], items[j])
		if descending {
			return c > 0
		}
		return c < 0
	})
}
