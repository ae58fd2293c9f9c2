package catalog

import (
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Item is one catalog record. Items are immutable once a Document has been
// prepared; filters and the grid only ever hold *Item references.
type Item struct {
	ID            string   `json:"id,omitempty" yaml:"id"`
	ShortID       string   `json:"shortId,omitempty" yaml:"shortId,omitempty"`
	DisplayName   string   `json:"displayName" yaml:"displayName"`
	Slug          string   `json:"slug,omitempty" yaml:"slug,omitempty"`
	Category      string   `json:"category,omitempty" yaml:"category,omitempty"`
	Type          string   `json:"type,omitempty" yaml:"type,omitempty"`
	Tags          []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	AutoTags      []string `json:"autoTags,omitempty" yaml:"autoTags,omitempty"`
	RelDir        string   `json:"relDir,omitempty" yaml:"relDir,omitempty"`
	Thumb         string   `json:"thumb,omitempty" yaml:"thumb,omitempty"`
	LatestVersion string   `json:"latestVersion,omitempty" yaml:"latestVersion,omitempty"`
	Versions      []string `json:"versions,omitempty" yaml:"versions,omitempty"`
	Updated       string   `json:"updated,omitempty" yaml:"updated,omitempty"`

	haystack string
}

// UnmarshalJSON accepts both the builder's relDir field and the longer
// relativeDirectory spelling.
func (i *Item) UnmarshalJSON(data []byte) error {
	type plain Item
	aux := struct {
		*plain
		RelativeDirectory string `json:"relativeDirectory"`
	}{plain: (*plain)(i)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if i.RelDir == "" && aux.RelativeDirectory != "" {
		i.RelDir = aux.RelativeDirectory
	}
	return nil
}

// SearchText returns the lower-cased text the query tokens are matched
// against: the display name followed by manual and automatic tags. Automatic
// tags are searched like manual ones because the library builder merged them
// into Tags; documents that keep them apart stay findable by them.
func (i *Item) SearchText() string {
	if i.haystack != "" {
		return i.haystack
	}
	return buildHaystack(i)
}

// Dir returns the slash-normalised relative directory without surrounding
// separators.
func (i *Item) Dir() string {
	return NormalizeDir(i.RelDir)
}

func buildHaystack(i *Item) string {
	var b strings.Builder
	b.WriteString(i.DisplayName)
	for _, t := range i.Tags {
		b.WriteByte(' ')
		b.WriteString(t)
	}
	for _, t := range i.AutoTags {
		b.WriteByte(' ')
		b.WriteString(t)
	}
	return strings.ToLower(b.String())
}

// NormalizeDir converts backslashes, collapses duplicate separators and trims
// leading and trailing slashes.
func NormalizeDir(dir string) string {
	dir = strings.ReplaceAll(strings.TrimSpace(dir), "\\", "/")
	if dir == "" {
		return ""
	}
	parts := strings.Split(dir, "/")
	kept := parts[:0]
	for _, p := range parts {
		if p == "" || p == "." {
			continue
		}
		kept = append(kept, p)
	}
	return strings.Join(kept, "/")
}

// Document mirrors the index file written by the library scanner.
type Document struct {
	SchemaVersion int     `json:"schemaVersion,omitempty"`
	Generated     string  `json:"generated,omitempty"`
	SourceRoot    string  `json:"sourceRoot,omitempty"`
	Prefix        string  `json:"prefix,omitempty"`
	Items         []*Item `json:"items"`
}

var identityNamespace = uuid.NameSpaceOID

// Prepare resolves a unique identity for every item, fills display names and
// caches search text. It returns one notice per repaired record.
func (d *Document) Prepare() []string {
	var notices []string
	kept := d.Items[:0]
	for _, it := range d.Items {
		if it != nil {
			kept = append(kept, it)
		}
	}
	d.Items = kept

	seen := make(map[string]int, len(d.Items))
	for idx, it := range d.Items {
		it.RelDir = NormalizeDir(it.RelDir)
		if strings.TrimSpace(it.DisplayName) == "" {
			it.DisplayName = fallbackName(it)
		}
		id := strings.TrimSpace(it.ID)
		if id == "" {
			id = strings.TrimSpace(it.ShortID)
		}
		if id == "" {
			id = SyntheticID(it)
			notices = append(notices, fmt.Sprintf("item %d (%s) has no identity, assigned %s", idx, it.DisplayName, id))
		}
		if n, dup := seen[id]; dup {
			n++
			seen[id] = n
			unique := fmt.Sprintf("%s#%d", id, n)
			for {
				if _, taken := seen[unique]; !taken {
					break
				}
				n++
				seen[id] = n
				unique = fmt.Sprintf("%s#%d", id, n)
			}
			notices = append(notices, fmt.Sprintf("duplicate identity %s renamed to %s", id, unique))
			id = unique
		}
		seen[id] = 1
		it.ID = id
		it.haystack = buildHaystack(it)
	}
	return notices
}

// SyntheticID derives a stable identity from the item's directory and name.
func SyntheticID(it *Item) string {
	key := NormalizeDir(it.RelDir) + "\x00" + it.DisplayName
	return uuid.NewSHA1(identityNamespace, []byte(key)).String()
}

func fallbackName(it *Item) string {
	if it.Slug != "" {
		return it.Slug
	}
	if dir := NormalizeDir(it.RelDir); dir != "" {
		return path.Base(dir)
	}
	if it.ID != "" {
		return it.ID
	}
	return it.ShortID
}

// Facets returns the distinct, sorted category and type values.
func Facets(items []*Item) (categories, types []string) {
	cats := make(map[string]struct{})
	kinds := make(map[string]struct{})
	for _, it := range items {
		if it.Category != "" {
			cats[it.Category] = struct{}{}
		}
		if it.Type != "" {
			kinds[it.Type] = struct{}{}
		}
	}
	return sortedKeys(cats), sortedKeys(kinds)
}

func sortedKeys(m map[string]struct{}) []string {
	if len(m) == 0 {
		return nil
	}
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
