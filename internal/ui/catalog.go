package ui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/atomicstack/assetgrid/internal/backend"
	"github.com/atomicstack/assetgrid/internal/logging"
	"github.com/atomicstack/assetgrid/internal/logging/events"
	"github.com/atomicstack/assetgrid/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
)

const statusSourceWidth = 40

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

// catalogLoadedMsg carries the outcome of a load requested by the UI.
type catalogLoadedMsg struct {
	reason string
	event  backend.Event
}

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

func (m *Model) startLoad(reason string) tea.Cmd {
	if m.source == nil {
		m.status = "No catalog source configured"
		return nil
	}
	if m.loading {
		return nil
	}
	m.loading = true
	m.loadReason = reason
	src := m.source
	load := m.bus.Execute(command.Request{
		ID:    "catalog:load",
		Label: reason,
		Handler: func(ctx context.Context) tea.Msg {
			snap, err := backend.LoadSnapshot(ctx, src)
			evt := backend.Event{Kind: backend.KindCatalog, Err: err}
			if err == nil {
				evt.Data = snap
			}
			return catalogLoadedMsg{reason: reason, event: evt}
		},
	})
	return tea.Batch(load, m.spinner.Tick)
}

func (m *Model) handleCatalogLoadedMsg(msg tea.Msg) tea.Cmd {
	loaded, ok := msg.(catalogLoadedMsg)
	if !ok {
		return nil
	}
	m.loading = false
	m.loadReason = ""
	return m.applyBackendEvent(loaded.event)
}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	update, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	cmd := m.applyBackendEvent(update.event)
	next := waitForBackendEvent(m.backend)
	if cmd == nil {
		return next
	}
	return tea.Batch(cmd, next)
}

func (m *Model) handleBackendDoneMsg(tea.Msg) tea.Cmd {
	return nil
}

func (m *Model) applyBackendEvent(evt backend.Event) tea.Cmd {
	result := m.dispatcher.Handle(evt)
	if result.Err != nil {
		if evt.Kind == backend.KindCatalog {
			m.errMsg = fmt.Sprintf("Failed to load index: %v", result.Err)
			logging.Error(result.Err)
		}
		return nil
	}
	if result.ReloadNeeded {
		return m.startLoad("changed")
	}
	if result.CatalogUpdated {
		m.catalogUpdated()
	}
	return nil
}

func (m *Model) catalogUpdated() {
	tree := m.catalog.Tree()
	if pruned := m.filter.FolderPrefix; m.filter.Prune(tree) {
		events.Folder.Pruned(pruned)
	}
	m.folders.SetTree(tree)
	m.folders.SetActive(m.filter.FolderPrefix)
	if m.filter.FolderPrefix != "" {
		m.folders.Reveal(m.filter.FolderPrefix)
	}
	m.syncSections()
	m.applyFilters()
	m.errMsg = ""
	m.status = m.loadedStatus()
}

func (m *Model) loadedStatus() string {
	count := len(m.catalog.Items())
	status := fmt.Sprintf("Loaded %s items in %dms", humanize.Comma(int64(count)), m.catalog.Elapsed().Milliseconds())
	if src := m.statusSource(); src != "" {
		status += " | Src: " + src
	}
	if count == 0 {
		status += " | catalog is empty"
	}
	return status
}

func (m *Model) statusSource() string {
	src := m.catalog.SourceRoot()
	if src == "" {
		src = m.catalog.Source()
	}
	runes := []rune(src)
	if len(runes) <= statusSourceWidth {
		return src
	}
	return "…" + string(runes[len(runes)-statusSourceWidth+1:])
}

// resolveLibraryRoot picks the directory item folders are relative to.
func (m *Model) resolveLibraryRoot() string {
	if m.libraryRoot != "" {
		return m.libraryRoot
	}
	if root := m.catalog.SourceRoot(); root != "" {
		return root
	}
	src := m.catalog.Source()
	if src == "" && m.source != nil {
		src = m.source.Source()
	}
	src = strings.TrimPrefix(src, "file://")
	if src == "" || strings.Contains(src, "://") {
		return ""
	}
	return filepath.Dir(src)
}
