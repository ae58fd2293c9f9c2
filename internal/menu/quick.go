package menu

import (
	"fmt"

	"github.com/atomicstack/assetgrid/internal/filter"
)

// QuickFilter is one preset chip.
type QuickFilter struct {
	ID    string
	Label string
	// Type is the single type facet the chip selects, if any.
	Type  string
	Apply func(*filter.State)
}

func onlyType(kind string) func(*filter.State) {
	return func(s *filter.State) {
		s.SetTypes(kind)
	}
}

var quickFilters = []QuickFilter{
	{ID: "all", Label: "All", Apply: func(s *filter.State) { s.ClearFacets() }},
	{ID: "assets", Label: "Assets", Type: "asset", Apply: onlyType("asset")},
	{ID: "materials", Label: "Materials", Type: "material", Apply: onlyType("material")},
	{ID: "textures", Label: "Textures", Type: "texture", Apply: onlyType("texture")},
	{ID: "recent", Label: "Recent", Apply: func(s *filter.State) {
		s.SortKey = filter.SortUpdated
		s.Descending = true
	}},
}

// QuickFilters returns the preset chips in display order.
func QuickFilters() []QuickFilter {
	out := make([]QuickFilter, len(quickFilters))
	copy(out, quickFilters)
	return out
}

// QuickFilterByNumber returns the n-th chip, counting from one.
func QuickFilterByNumber(n int) (QuickFilter, bool) {
	if n < 1 || n > len(quickFilters) {
		return QuickFilter{}, false
	}
	return quickFilters[n-1], true
}

// ActiveQuickFilter reports which chip describes s, or "" when none does.
func ActiveQuickFilter(s *filter.State) string {
	if s == nil {
		return ""
	}
	if len(s.Categories) == 0 && len(s.Types) == 1 {
		for _, qf := range quickFilters {
			if qf.Type != "" && s.HasType(qf.Type) {
				return qf.ID
			}
		}
		return ""
	}
	if len(s.Categories) != 0 || len(s.Types) != 0 {
		return ""
	}
	if s.SortKey == filter.SortUpdated && s.Descending {
		return "recent"
	}
	return "all"
}

func findQuick(id string) (QuickFilter, bool) {
	for _, qf := range quickFilters {
		if qf.ID == id {
			return qf, true
		}
	}
	return QuickFilter{}, false
}

func loadQuickMenu(Context) ([]Item, error) {
	items := make([]Item, 0, len(quickFilters))
	for i, qf := range quickFilters {
		items = append(items, Item{ID: qf.ID, Label: fmt.Sprintf("%d %s", i+1, qf.Label)})
	}
	return items, nil
}

// QuickFilterAction applies the chip named by item.ID.
func QuickFilterAction(ctx Context, item Item) ActionResult {
	qf, ok := findQuick(item.ID)
	if !ok || ctx.Filter == nil {
		return ActionResult{Err: fmt.Errorf("unknown quick filter %q", item.ID)}
	}
	qf.Apply(ctx.Filter)
	return ActionResult{Info: qf.Label}
}
