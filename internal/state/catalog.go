package state

import (
	"time"

	"github.com/atomicstack/assetgrid/internal/catalog"
	"github.com/atomicstack/assetgrid/internal/folder"
)

// CatalogStore holds the most recently loaded catalog and everything derived
// from it once per load.
type CatalogStore interface {
	Items() []*catalog.Item
	Categories() []string
	Types() []string
	Tree() *folder.Tree
	Source() string
	SourceRoot() string
	Fingerprint() string
	Elapsed() time.Duration
	LoadedAt() time.Time
	Loaded() bool
	SetCatalog(doc *catalog.Document, source, fingerprint string, elapsed time.Duration, loadedAt time.Time)
	SetFingerprint(string)
}

type catalogStore struct {
	items       []*catalog.Item
	categories  []string
	types       []string
	tree        *folder.Tree
	source      string
	sourceRoot  string
	fingerprint string
	elapsed     time.Duration
	loadedAt    time.Time
	loaded      bool
}

func NewCatalogStore() CatalogStore {
	return &catalogStore{tree: folder.Build(nil)}
}

func (c *catalogStore) Items() []*catalog.Item {
	return c.items
}

func (c *catalogStore) Categories() []string {
	return cloneStrings(c.categories)
}

func (c *catalogStore) Types() []string {
	return cloneStrings(c.types)
}

func (c *catalogStore) Tree() *folder.Tree {
	return c.tree
}

func (c *catalogStore) Source() string {
	return c.source
}

func (c *catalogStore) SourceRoot() string {
	return c.sourceRoot
}

func (c *catalogStore) Fingerprint() string {
	return c.fingerprint
}

func (c *catalogStore) Elapsed() time.Duration {
	return c.elapsed
}

func (c *catalogStore) LoadedAt() time.Time {
	return c.loadedAt
}

func (c *catalogStore) Loaded() bool {
	return c.loaded
}

// SetCatalog replaces the stored catalog. The folder tree and facet values
// are rebuilt in full.
func (c *catalogStore) SetCatalog(doc *catalog.Document, source, fingerprint string, elapsed time.Duration, loadedAt time.Time) {
	var items []*catalog.Item
	root := ""
	if doc != nil {
		items = doc.Items
		root = doc.SourceRoot
	}
	c.items = items
	c.categories, c.types = catalog.Facets(items)
	c.tree = folder.Build(items)
	c.source = source
	c.sourceRoot = root
	c.fingerprint = fingerprint
	c.elapsed = elapsed
	c.loadedAt = loadedAt
	c.loaded = true
}

func (c *catalogStore) SetFingerprint(fp string) {
	c.fingerprint = fp
}

func cloneStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	dup := make([]string, len(values))
	copy(dup, values)
	return dup
}
