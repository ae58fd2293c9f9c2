package ui

import (
	"context"
	"reflect"
	"time"

	"github.com/atomicstack/assetgrid/internal/backend"
	"github.com/atomicstack/assetgrid/internal/catalog"
	"github.com/atomicstack/assetgrid/internal/data/dispatcher"
	"github.com/atomicstack/assetgrid/internal/debounce"
	"github.com/atomicstack/assetgrid/internal/filter"
	"github.com/atomicstack/assetgrid/internal/folder"
	"github.com/atomicstack/assetgrid/internal/grid"
	"github.com/atomicstack/assetgrid/internal/menu"
	"github.com/atomicstack/assetgrid/internal/state"
	"github.com/atomicstack/assetgrid/internal/theme"
	"github.com/atomicstack/assetgrid/internal/ui/command"
	uistate "github.com/atomicstack/assetgrid/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type level = uistate.Level

// pane identifies the region that receives key presses.
type pane int

const (
	paneGrid pane = iota
	paneFolders
	paneFacets
	paneSearch
)

func (p pane) String() string {
	switch p {
	case paneGrid:
		return "grid"
	case paneFolders:
		return "folders"
	case paneFacets:
		return "facets"
	case paneSearch:
		return "search"
	default:
		return "unknown"
	}
}

const (
	defaultQueryDelay  = 150 * time.Millisecond
	defaultResizeDelay = 150 * time.Millisecond
	defaultTimeout     = 30 * time.Second
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// CatalogSource loads the catalog and the per-item metadata files.
type CatalogSource interface {
	backend.Source
	FetchDetail(ctx context.Context, relDir string) (catalog.Detail, error)
}

// Options configures a Model.
type Options struct {
	Source      CatalogSource
	Watcher     *backend.Watcher
	SocketPath  string
	LibraryRoot string
	Width       int
	Height      int
	ShowFooter  bool
	Verbose     bool
	Grid        grid.Options
	Clock       debounce.Clock
	QueryDelay  time.Duration
	ResizeDelay time.Duration
	Timeout     time.Duration
}

// Model implements the Bubble Tea model for the catalog browser.
type Model struct {
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	sized       bool
	showFooter  bool
	verbose     bool

	focus        pane
	searchTarget pane
	search       uistate.Prompt
	folderJump   uistate.Prompt

	filterCursor      cursor.Model
	filterCursorDirty bool
	spinner           spinner.Model
	keys              keyMap
	help              help.Model

	filter     *filter.State
	catalog    state.CatalogStore
	dispatcher *dispatcher.Dispatcher
	source     CatalogSource
	backend    *backend.Watcher
	bus        *command.Bus

	registry     *menu.Registry
	sections     []*level
	facetSection int
	folders      *folder.Navigator

	grid       *grid.Controller[*card]
	gridCursor uistate.GridCursor
	renderErr  string

	queryDebounce  *debounce.Channel
	resizeDebounce *debounce.Channel
	schedule       func(time.Duration, tea.Msg) tea.Cmd

	detail *detailView

	loading    bool
	loadReason string
	status     string
	errMsg     string
	infoMsg    string
	infoExpire time.Time

	socketPath  string
	libraryRoot string

	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the UI state with an empty catalog.
func NewModel(opts Options) *Model {
	if opts.QueryDelay <= 0 {
		opts.QueryDelay = defaultQueryDelay
	}
	if opts.ResizeDelay <= 0 {
		opts.ResizeDelay = defaultResizeDelay
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	store := state.NewCatalogStore()
	m := &Model{
		showFooter:     opts.ShowFooter,
		verbose:        opts.Verbose,
		focus:          paneGrid,
		searchTarget:   paneGrid,
		keys:           defaultKeyMap(),
		help:           help.New(),
		filter:         filter.NewState(),
		catalog:        store,
		dispatcher:     dispatcher.New(store),
		source:         opts.Source,
		backend:        opts.Watcher,
		bus:            command.New(context.Background(), opts.Timeout),
		registry:       menu.BuildRegistry(),
		folders:        folder.NewNavigator(store.Tree()),
		gridCursor:     uistate.NewGridCursor(),
		queryDebounce:  debounce.NewChannel("query", opts.QueryDelay, opts.Clock),
		resizeDebounce: debounce.NewChannel("resize", opts.ResizeDelay, opts.Clock),
		schedule:       tickAfter,
		socketPath:     opts.SocketPath,
		libraryRoot:    opts.LibraryRoot,
	}
	m.grid = grid.NewController(opts.Grid, renderCard, releaseCard)
	m.buildSections()
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	if m.fixedWidth && m.fixedHeight {
		m.sized = true
		m.resizeGrid()
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	m.filterCursor = c
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	if styles.Loading != nil {
		s.Style = styles.Loading.Copy()
	}
	m.spinner = s
	m.registerHandlers()
	return m
}

func tickAfter(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if cmd := m.startLoad("startup"); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	if cmd := m.filterCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(spinner.TickMsg{}):   m.handleSpinnerTickMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
		reflect.TypeOf(catalogLoadedMsg{}):  m.handleCatalogLoadedMsg,
		reflect.TypeOf(debounceMsg{}):       m.handleDebounceMsg,
		reflect.TypeOf(detailLoadedMsg{}):   m.handleDetailLoadedMsg,
		reflect.TypeOf(revealResultMsg{}):   m.handleRevealResultMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleSpinnerTickMsg(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(spinner.TickMsg)
	if !ok || !m.loading {
		return nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(tick)
	return cmd
}

// Filter exposes the live filter state.
func (m *Model) Filter() *filter.State {
	return m.filter
}

// Visible returns the filtered, ordered items handed to the grid.
func (m *Model) Visible() []*catalog.Item {
	return m.grid.Items()
}

// Status returns the status line text.
func (m *Model) Status() string {
	return m.status
}
