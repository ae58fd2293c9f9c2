package ui

import (
	"errors"
	"strings"

	"github.com/atomicstack/assetgrid/internal/catalog"
	"github.com/atomicstack/assetgrid/internal/grid"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const (
	cardManualTags = 3
	cardAutoTags   = 2
)

// Terminal cell defaults for the card grid.
var terminalGridOptions = grid.Options{
	ItemMinWidth: 24,
	ItemHeight:   7,
	Gap:          1,
	OverscanRows: 2,
}

// TerminalGridOptions returns the grid defaults measured in terminal cells.
func TerminalGridOptions() grid.Options {
	return terminalGridOptions
}

type cardKey struct {
	width    int
	height   int
	selected bool
}

// card is the pooled node for one item. Its rendered lines are cached per
// size and selection state.
type card struct {
	item  *catalog.Item
	key   cardKey
	lines []string
}

var errMissingIdentity = errors.New("item has no identity")

func renderCard(item *catalog.Item) (*card, error) {
	if item == nil || item.ID == "" {
		return nil, errMissingIdentity
	}
	return &card{item: item}, nil
}

func releaseCard(_ string, c *card) {
	if c == nil {
		return
	}
	c.lines = nil
	c.item = nil
}

// Render returns exactly height lines, each at most width cells wide.
func (c *card) Render(width, height int, selected bool) []string {
	if width <= 0 || height <= 0 || c.item == nil {
		return nil
	}
	key := cardKey{width: width, height: height, selected: selected}
	if c.lines != nil && c.key == key {
		return c.lines
	}
	c.key = key
	c.lines = c.draw(width, height, selected)
	return c.lines
}

func (c *card) draw(width, height int, selected bool) []string {
	bordered := width >= 4 && height >= 3
	innerW, innerH := width, height
	if bordered {
		innerW, innerH = width-2, height-2
	}
	body := cardBody(c.item, innerW)
	if len(body) > innerH {
		body = body[:innerH]
	}
	var box lipgloss.Style
	switch {
	case !bordered:
		box = lipgloss.NewStyle()
	case selected && styles.SelectedCard != nil:
		box = styles.SelectedCard.Copy()
	case styles.Card != nil:
		box = styles.Card.Copy()
	default:
		box = lipgloss.NewStyle().Border(lipgloss.RoundedBorder())
	}
	rendered := box.Width(innerW).Height(innerH).
		MaxWidth(width).MaxHeight(height).
		Render(strings.Join(body, "\n"))
	lines := strings.Split(rendered, "\n")
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return lines[:height]
}

func cardBody(it *catalog.Item, width int) []string {
	if width <= 0 {
		return nil
	}
	lines := make([]string, 0, 4)
	lines = append(lines, renderStyled(styles.CardTitle, fit(it.DisplayName, width)))
	if meta := joinNonEmpty(" · ", it.Type, it.Category); meta != "" {
		lines = append(lines, renderStyled(styles.CardMeta, fit(meta, width)))
	}
	if tags := cardTags(it); tags != "" {
		lines = append(lines, truncate.StringWithTail(tags, uint(width), "…"))
	}
	version := it.LatestVersion
	if version != "" && !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	if foot := joinNonEmpty(" · ", version, it.Updated); foot != "" {
		lines = append(lines, renderStyled(styles.CardMeta, fit(foot, width)))
	}
	return lines
}

func cardTags(it *catalog.Item) string {
	parts := make([]string, 0, cardManualTags+cardAutoTags)
	for i, tag := range it.Tags {
		if i == cardManualTags {
			break
		}
		parts = append(parts, renderStyled(styles.CardTag, "#"+tag))
	}
	for i, tag := range it.AutoTags {
		if i == cardAutoTags {
			break
		}
		parts = append(parts, renderStyled(styles.CardAutoTag, "~"+tag))
	}
	return strings.Join(parts, " ")
}

func fit(text string, width int) string {
	if width <= 0 {
		return ""
	}
	return truncate.StringWithTail(text, uint(width), "…")
}

func renderStyled(style *lipgloss.Style, text string) string {
	if style == nil || text == "" {
		return text
	}
	return style.Render(text)
}

func joinNonEmpty(sep string, values ...string) string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return strings.Join(out, sep)
}
