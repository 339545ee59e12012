package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/farmstand/internal/auth"
	"github.com/five82/farmstand/internal/cart"
	"github.com/five82/farmstand/internal/catalog"
	"github.com/five82/farmstand/internal/listing"
	"github.com/five82/farmstand/internal/prefs"
	"github.com/five82/farmstand/internal/state"
	"github.com/five82/farmstand/internal/view"
)

// Loader fetches the catalog for a token into the shared store.
type Loader interface {
	Load(ctx context.Context, token string) error
}

// Options configures the UI.
type Options struct {
	Context      context.Context
	Loader       Loader
	Store        *state.Store
	Tokens       auth.Source
	TokenChanges <-chan string // new token on every change; may be nil
	Cart         *cart.Cart
	Logger       *zap.Logger
	ThemeName    string
	Compact      bool
	PrefsPath    string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	loader    Loader
	store     *state.Store
	changes   <-chan string
	cart      *cart.Cart
	logger    *zap.Logger
	prefsPath string

	// UI state
	keys    keyMap
	theme   Theme
	compact bool
	width   int
	height  int
	ready   bool

	// Data state
	list  *view.State
	token string

	// Filter input
	filterInput textinput.Model
	filtering   bool

	spinner  spinner.Model
	modal    Modal
	showHelp bool
	notice   string
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.Default().Theme
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	shopCart := opts.Cart
	if shopCart == nil {
		shopCart = &cart.Cart{}
	}

	var token string
	if opts.Tokens != nil {
		token = opts.Tokens.Token()
	}

	ti := textinput.New()
	ti.Placeholder = "product name"
	ti.Prompt = "/ "
	ti.CharLimit = 64
	ti.Width = 30

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	list := view.New(shopCart)
	list.SetLoading(opts.Loader != nil)

	return Model{
		ctx:         ctx,
		loader:      opts.Loader,
		store:       opts.Store,
		changes:     opts.TokenChanges,
		cart:        shopCart,
		logger:      logger.Named("ui"),
		prefsPath:   prefsPath,
		keys:        DefaultKeyMap(),
		theme:       GetTheme(themeName),
		compact:     opts.Compact,
		list:        list,
		token:       token,
		filterInput: ti,
		spinner:     sp,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if m.loader != nil {
		cmds = append(cmds, m.loadCmd(m.token))
	}
	if m.changes != nil {
		cmds = append(cmds, waitTokenCmd(m.changes))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case loadedMsg:
		m.applySnapshot(msg.err)
		return m, nil

	case tokenMsg:
		if !msg.ok {
			m.changes = nil
			return m, nil
		}
		m.token = msg.token
		return m, tea.Batch(m.reload(), waitTokenCmd(m.changes))

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	// Any key closes help
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		modal, cmd, closed := m.modal.Update(msg, m.keys)
		m.modal = modal
		if closed {
			m.modal = nil
			m.list.ClosePopup()
		}
		return m, cmd
	}

	if m.filtering {
		return m.handleFilterKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()

	case key.Matches(msg, m.keys.ToggleCards):
		m.compact = !m.compact
		m.savePrefs()

	case key.Matches(msg, m.keys.Reload):
		return m, m.reload()

	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		m.filterInput.SetValue(m.list.Filter().Name)
		m.filterInput.CursorEnd()
		cmd := m.filterInput.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.ClearFilter):
		m.list.ClearFilter()
		m.filterInput.SetValue("")

	case key.Matches(msg, m.keys.SortName):
		m.list.ToggleSort(listing.SortName)
	case key.Matches(msg, m.keys.SortPrice):
		m.list.ToggleSort(listing.SortPrice)
	case key.Matches(msg, m.keys.SortType):
		m.list.ToggleSort(listing.SortType)
	case key.Matches(msg, m.keys.SortStock):
		m.list.ToggleSort(listing.SortQuantity)

	case key.Matches(msg, m.keys.Reset):
		m.list.Reset()
		m.filterInput.SetValue("")

	case key.Matches(msg, m.keys.AddToCart):
		m.addSelected()

	case key.Matches(msg, m.keys.Up):
		m.list.MoveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.list.MoveCursor(1)
	case key.Matches(msg, m.keys.Top):
		m.list.MoveCursor(-m.list.Len())
	case key.Matches(msg, m.keys.Bottom):
		m.list.MoveCursor(m.list.Len())
	case key.Matches(msg, m.keys.PageUp):
		m.list.MoveCursor(-m.pageSize())
	case key.Matches(msg, m.keys.PageDown):
		m.list.MoveCursor(m.pageSize())
	}

	return m, nil
}

// handleFilterKey edits the name filter. The list is re-derived on every
// keystroke.
func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.filtering = false
		m.filterInput.Blur()
		return m, nil
	case tea.KeyEsc:
		m.filtering = false
		m.filterInput.Blur()
		m.filterInput.SetValue("")
		m.list.ClearFilter()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.list.SetFilter(m.filterInput.Value())
	return m, cmd
}

func (m *Model) addSelected() {
	p, ok := m.list.Selected()
	if !ok {
		return
	}
	if err := m.list.AddToCart(p); err != nil {
		if errors.Is(err, cart.ErrOutOfStock) {
			m.notice = fmt.Sprintf("%s is out of stock", p.Name)
		} else {
			m.notice = "Could not add to cart"
		}
		m.logger.Info("add to cart failed", zap.String("product_id", p.ID), zap.Error(err))
		return
	}
	m.notice = ""
	m.logger.Debug("added to cart", zap.String("product_id", p.ID), zap.Int("cart_count", m.cart.Count()))
	m.modal = cartPopup{
		popup:     m.list.Popup(),
		cartCount: m.cart.Count(),
		cartTotal: m.cart.Total(),
	}
}

// reload marks the list as loading and issues a fetch for the current token.
func (m *Model) reload() tea.Cmd {
	if m.loader == nil {
		return nil
	}
	m.list.SetLoading(true)
	return m.loadCmd(m.token)
}

// applySnapshot copies the latest store contents into the view. A stale
// result leaves loading on because a newer fetch is still in flight.
func (m *Model) applySnapshot(err error) {
	if err != nil {
		m.logger.Debug("load finished with error",
			zap.String("kind", catalog.Classify(err).String()),
			zap.Error(err),
		)
	}
	if m.store == nil {
		m.list.SetLoading(false)
		return
	}
	snap := m.store.Snapshot()
	m.list.SetProducts(snap.Products)
	m.list.SetLoading(snap.Loading)
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, Compact: m.compact}); err != nil {
		m.logger.Warn("save prefs", zap.Error(err))
	}
}

// Messages

type loadedMsg struct{ err error }

type tokenMsg struct {
	token string
	ok    bool
}

// Commands

func (m Model) loadCmd(token string) tea.Cmd {
	loader, ctx := m.loader, m.ctx
	return func() tea.Msg {
		return loadedMsg{err: loader.Load(ctx, token)}
	}
}

func waitTokenCmd(changes <-chan string) tea.Cmd {
	return func() tea.Msg {
		token, ok := <-changes
		return tokenMsg{token: token, ok: ok}
	}
}

// Run starts the Bubble Tea program and blocks until it exits or the
// context is cancelled.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
