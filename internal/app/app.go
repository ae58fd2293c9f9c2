package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/atomicstack/assetgrid/internal/backend"
	"github.com/atomicstack/assetgrid/internal/catalog"
	"github.com/atomicstack/assetgrid/internal/grid"
	"github.com/atomicstack/assetgrid/internal/tmux"
	"github.com/atomicstack/assetgrid/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	Source      string
	LibraryRoot string
	SocketPath  string
	Width       int
	Height      int
	ShowFooter  bool
	Verbose     bool
	Grid        grid.Options
	Watch       time.Duration
	Retries     int
	Timeout     time.Duration
}

// DefaultGrid returns the card grid defaults measured in terminal cells.
func DefaultGrid() grid.Options {
	return ui.TerminalGridOptions()
}

// NewClient builds the catalog client described by cfg.
func NewClient(cfg Config) *catalog.Client {
	return catalog.NewClient(cfg.Source, catalog.Options{
		Retries:    cfg.Retries,
		Timeout:    cfg.Timeout,
		DetailRoot: cfg.LibraryRoot,
	})
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	socketPath, err := tmux.ResolveSocketPath(cfg.SocketPath)
	if err != nil {
		return fmt.Errorf("resolve socket path: %w", err)
	}
	client := NewClient(cfg)
	watcher := backend.NewWatcher(client, cfg.Watch)
	defer watcher.Stop()
	model := ui.NewModel(ui.Options{
		Source:      client,
		Watcher:     watcher,
		SocketPath:  socketPath,
		LibraryRoot: cfg.LibraryRoot,
		Width:       cfg.Width,
		Height:      cfg.Height,
		ShowFooter:  cfg.ShowFooter,
		Verbose:     cfg.Verbose,
		Grid:        cfg.Grid,
		Timeout:     cfg.Timeout,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
