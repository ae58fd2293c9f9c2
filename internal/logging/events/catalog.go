package events

import (
	"time"

	"github.com/atomicstack/assetgrid/internal/logging"
)

type CatalogTracer struct{}

type FolderTracer struct{}

var (
	Catalog = CatalogTracer{}
	Folder  = FolderTracer{}
)

func (CatalogTracer) Request(source string, reason string) {
	logging.Trace("catalog.request", map[string]interface{}{"source": source, "reason": reason})
}

func (CatalogTracer) Loaded(source string, items int, elapsed time.Duration) {
	logging.Trace("catalog.loaded", map[string]interface{}{
		"source":  source,
		"items":   items,
		"elapsed": elapsed.String(),
	})
}

func (CatalogTracer) Failed(source string, err error) {
	if err == nil {
		return
	}
	logging.Trace("catalog.failed", map[string]interface{}{"source": source, "error": err.Error()})
}

func (CatalogTracer) Changed(source, fingerprint string) {
	logging.Trace("catalog.changed", map[string]interface{}{"source": source, "fingerprint": fingerprint})
}

func (CatalogTracer) Detail(relDir string, err error) {
	payload := map[string]interface{}{"relDir": relDir}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("catalog.detail", payload)
}

func (FolderTracer) Select(path string) {
	logging.Trace("folder.select", map[string]interface{}{"path": path})
}

func (FolderTracer) Toggle(path string, expanded bool) {
	logging.Trace("folder.toggle", map[string]interface{}{"path": path, "expanded": expanded})
}

func (FolderTracer) Pruned(path string) {
	logging.Trace("folder.pruned", map[string]interface{}{"path": path})
}
