package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/atomicstack/assetgrid/internal/catalog"
	"github.com/atomicstack/assetgrid/internal/logging"
	"github.com/atomicstack/assetgrid/internal/logging/events"
	"github.com/atomicstack/assetgrid/internal/tmux"
	"github.com/atomicstack/assetgrid/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

var openDirectory = tmux.OpenDirectory

var errNoLibraryRoot = errors.New("library root unknown; set --library-root")

// detailView is the metadata panel for one item.
type detailView struct {
	item    *catalog.Item
	detail  catalog.Detail
	err     error
	loading bool
}

type detailLoadedMsg struct {
	id     string
	detail catalog.Detail
	err    error
}

type revealResultMsg struct {
	id     string
	opened tmux.Opened
	err    error
}

func (m *Model) currentItem() *catalog.Item {
	items := m.grid.Items()
	idx := m.gridCursor.Index
	if idx < 0 || idx >= len(items) {
		return nil
	}
	return items[idx]
}

func (m *Model) openDetail() tea.Cmd {
	item := m.currentItem()
	if item == nil {
		return nil
	}
	m.detail = &detailView{item: item}
	if m.source == nil || item.RelDir == "" {
		return nil
	}
	m.detail.loading = true
	src := m.source
	id, relDir := item.ID, item.RelDir
	return m.bus.Execute(command.Request{
		ID:    "detail",
		Label: id,
		Handler: func(ctx context.Context) tea.Msg {
			detail, err := src.FetchDetail(ctx, relDir)
			return detailLoadedMsg{id: id, detail: detail, err: err}
		},
	})
}

func (m *Model) closeDetail() {
	m.detail = nil
}

func (m *Model) handleDetailLoadedMsg(msg tea.Msg) tea.Cmd {
	loaded, ok := msg.(detailLoadedMsg)
	if !ok {
		return nil
	}
	if m.detail == nil || m.detail.item == nil || m.detail.item.ID != loaded.id {
		return nil
	}
	events.Catalog.Detail(m.detail.item.RelDir, loaded.err)
	m.detail.loading = false
	m.detail.detail = loaded.detail
	m.detail.err = loaded.err
	if loaded.err != nil {
		logging.Error(loaded.err)
	}
	return nil
}

func (m *Model) revealCurrent() tea.Cmd {
	item := m.currentItem()
	if item == nil {
		return nil
	}
	root := m.resolveLibraryRoot()
	if root == "" {
		m.errMsg = errNoLibraryRoot.Error()
		events.Action.Error(errNoLibraryRoot)
		return nil
	}
	socket := m.socketPath
	id, relDir := item.ID, item.RelDir
	return m.bus.Execute(command.Request{
		ID:    "reveal",
		Label: id,
		Handler: func(context.Context) tea.Msg {
			opened, err := openDirectory(socket, root, relDir)
			return revealResultMsg{id: id, opened: opened, err: err}
		},
	})
}

func (m *Model) handleRevealResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(revealResultMsg)
	if !ok {
		return nil
	}
	if result.err != nil {
		m.errMsg = result.err.Error()
		m.forceClearInfo()
		events.Action.Error(result.err)
		return nil
	}
	m.errMsg = ""
	info := fmt.Sprintf("Opened %s via %s", result.opened.Path, result.opened.Via)
	if result.opened.Session != "" {
		info = fmt.Sprintf("Opened %s in session %s", result.opened.Path, result.opened.Session)
	}
	m.setInfo(info)
	events.Action.Success(info)
	return nil
}
