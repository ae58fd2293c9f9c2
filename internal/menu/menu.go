package menu

import (
	"strings"
	"unicode"

	"github.com/atomicstack/assetgrid/internal/filter"
)

// Item represents a selectable sidebar entry.
type Item struct {
	ID    string
	Label string
	Count int
}

// Context carries the catalog facets and filter state loaders and actions
// work against.
type Context struct {
	Categories     []string
	Types          []string
	CategoryCounts map[string]int
	TypeCounts     map[string]int
	Filter         *filter.State
}

// Loader populates section entries on demand.
type Loader func(Context) ([]Item, error)

// Action applies a selected entry to the filter state in ctx.
type Action func(Context, Item) ActionResult

// ActionResult communicates the outcome of executing a sidebar action.
type ActionResult struct {
	Info string
	Err  error
}

// RootItems returns the sidebar sections in display order.
func RootItems() []Item {
	return []Item{
		{ID: "quick", Label: "quick filters"},
		{ID: "type", Label: "type"},
		{ID: "category", Label: "category"},
	}
}

// CategoryLoaders lists section loaders keyed by root item ID.
func CategoryLoaders() map[string]Loader {
	return map[string]Loader{
		"quick":    loadQuickMenu,
		"type":     loadTypeMenu,
		"category": loadCategoryMenu,
	}
}

// ActionHandlers maps section identifiers to their execution logic.
func ActionHandlers() map[string]Action {
	return map[string]Action{
		"quick":    QuickFilterAction,
		"type":     TypeFacetAction,
		"category": CategoryFacetAction,
	}
}

func menuItemsFromIDs(ids []string, counts map[string]int) []Item {
	items := make([]Item, 0, len(ids))
	for _, id := range ids {
		items = append(items, Item{ID: id, Label: prettyLabel(id), Count: counts[id]})
	}
	return items
}

func prettyLabel(id string) string {
	if id == "" {
		return id
	}
	parts := strings.FieldsFunc(id, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	for i, part := range parts {
		runes := []rune(part)
		for j := 1; j < len(runes); j++ {
			runes[j] = unicode.ToLower(runes[j])
		}
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}
