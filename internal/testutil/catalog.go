package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/atomicstack/assetgrid/internal/catalog"
)

// Item builds a catalog item with the fields the pipeline looks at.
func Item(id, name, kind, category, relDir string, tags ...string) *catalog.Item {
	return &catalog.Item{
		ID:          id,
		DisplayName: name,
		Type:        kind,
		Category:    category,
		RelDir:      relDir,
		Tags:        tags,
	}
}

// Document wraps items in a prepared catalog document.
func Document(items ...*catalog.Item) *catalog.Document {
	doc := &catalog.Document{SchemaVersion: 1, Items: items}
	doc.Prepare()
	return doc
}

// SampleItems returns a small library spanning every facet the UI offers.
func SampleItems() []*catalog.Item {
	return []*catalog.Item{
		Item("crate", "Old Crate", "asset", "props", "props/crates/old_crate", "wood", "box"),
		Item("barrel", "Rusty Barrel", "asset", "props", "props/barrels/rusty", "metal"),
		Item("oak", "Oak Bark", "material", "nature", "materials/wood/oak", "wood"),
		Item("brick", "Red Brick", "texture", "architecture", "textures/brick/red", "wall"),
	}
}

// WriteCatalog writes doc as catalog.json under dir and returns its path.
func WriteCatalog(t *testing.T, dir string, doc *catalog.Document) string {
	t.Helper()
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal catalog: %v", err)
	}
	file := filepath.Join(dir, "catalog.json")
	if err := os.WriteFile(file, data, 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	return file
}

// CatalogServer serves a catalog document at /catalog.json and per-item
// asset_info.json files beneath it.
type CatalogServer struct {
	*httptest.Server

	mu       sync.Mutex
	body     []byte
	version  int
	details  map[string][]byte
	failures int
	hits     int
}

// NewCatalogServer starts a server for doc. It is closed when the test ends.
func NewCatalogServer(t *testing.T, doc *catalog.Document) *CatalogServer {
	t.Helper()
	s := &CatalogServer{details: make(map[string][]byte)}
	s.SetDocument(t, doc)
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// CatalogURL returns the catalog document location.
func (s *CatalogServer) CatalogURL() string {
	return s.Server.URL + "/catalog.json"
}

// SetDocument replaces the served document and changes its ETag.
func (s *CatalogServer) SetDocument(t *testing.T, doc *catalog.Document) {
	t.Helper()
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal catalog: %v", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.body = data
	s.version++
}

// SetDetail serves detail as <relDir>/asset_info.json.
func (s *CatalogServer) SetDetail(t *testing.T, relDir string, detail map[string]interface{}) {
	t.Helper()
	data, err := json.Marshal(detail)
	if err != nil {
		t.Fatalf("marshal detail: %v", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.details["/"+path.Join(strings.Trim(relDir, "/"), "asset_info.json")] = data
}

// FailNext makes the next n catalog requests answer 500.
func (s *CatalogServer) FailNext(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = n
}

// Hits returns how many GET requests reached /catalog.json.
func (s *CatalogServer) Hits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits
}

func (s *CatalogServer) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.URL.Path != "/catalog.json" {
		data, ok := s.details[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(data)
		return
	}
	if r.Method == http.MethodGet {
		s.hits++
	}
	if s.failures > 0 {
		s.failures--
		http.Error(w, "unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("ETag", fmt.Sprintf("\"v%d\"", s.version))
	w.Header().Set("Content-Type", "application/json")
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(s.body)
}
