package menu

import (
	"fmt"

	"github.com/atomicstack/assetgrid/internal/catalog"
	"github.com/atomicstack/assetgrid/internal/logging/events"
)

func loadTypeMenu(ctx Context) ([]Item, error) {
	return menuItemsFromIDs(ctx.Types, ctx.TypeCounts), nil
}

func loadCategoryMenu(ctx Context) ([]Item, error) {
	return menuItemsFromIDs(ctx.Categories, ctx.CategoryCounts), nil
}

// TypeFacetAction toggles the type facet named by item.ID.
func TypeFacetAction(ctx Context, item Item) ActionResult {
	if item.ID == "" || ctx.Filter == nil {
		return ActionResult{Err: fmt.Errorf("invalid type selection")}
	}
	enabled := ctx.Filter.ToggleType(item.ID)
	events.Filter.Facet("type", item.ID, enabled)
	return ActionResult{Info: facetInfo("type", item.Label, enabled)}
}

// CategoryFacetAction toggles the category facet named by item.ID.
func CategoryFacetAction(ctx Context, item Item) ActionResult {
	if item.ID == "" || ctx.Filter == nil {
		return ActionResult{Err: fmt.Errorf("invalid category selection")}
	}
	enabled := ctx.Filter.ToggleCategory(item.ID)
	events.Filter.Facet("category", item.ID, enabled)
	return ActionResult{Info: facetInfo("category", item.Label, enabled)}
}

func facetInfo(kind, label string, enabled bool) string {
	if enabled {
		return fmt.Sprintf("Filtering %s %s", kind, label)
	}
	return fmt.Sprintf("Removed %s %s", kind, label)
}

// FacetCounts tallies how many items carry each category and type value.
func FacetCounts(items []*catalog.Item) (categories, types map[string]int) {
	categories = make(map[string]int)
	types = make(map[string]int)
	for _, it := range items {
		if it.Category != "" {
			categories[it.Category]++
		}
		if it.Type != "" {
			types[it.Type]++
		}
	}
	return categories, types
}
