package ui

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/trolley/internal/cart"
	"github.com/five82/trolley/internal/catalog"
	"github.com/five82/trolley/internal/counter"
	"github.com/five82/trolley/internal/logtail"
	"github.com/five82/trolley/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewShop View = iota
	ViewCounter
	ViewActivity
)

func (v View) String() string {
	switch v {
	case ViewShop:
		return "Shop"
	case ViewCounter:
		return "Counter"
	case ViewActivity:
		return "Activity"
	default:
		return "Unknown"
	}
}

// Shop panes.
const (
	paneProducts = iota
	paneCart
)

// Options configures the UI.
type Options struct {
	Context context.Context
	Cart    *cart.Store
	Counter *counter.Store
	Tally   *state.Value[int]
	Theme   *state.Value[string]
	Catalog []catalog.Product
	LogPath string
	Logger  *slog.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Stores
	cart       *cart.Store
	counter    *counter.Store
	tally      *state.Value[int]
	themeValue *state.Value[string]

	// Configuration
	ctx     context.Context
	catalog []catalog.Product
	logPath string
	logger  *slog.Logger
	keys    keyMap

	// UI state
	currentView View
	width       int
	height      int
	ready       bool
	focusedPane int

	// Shop state
	selectedProduct int
	selectedItem    int
	cartViewport    viewport.Model

	// Activity state
	activity         []logtail.Entry
	activityErr      error
	activityViewport viewport.Model

	// Quantity prompt
	prompting     bool
	promptItem    cart.Item
	quantityInput textinput.Model

	// Status line
	status    string
	statusErr bool

	// Help overlay
	showHelp bool
}

// New creates a new Bubble Tea model. Missing stores are replaced with
// fresh ones holding their initial values.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cartStore := opts.Cart
	if cartStore == nil {
		cartStore = cart.NewStore(state.Initial(cart.Initial()), state.WithLogger(logger))
	}
	counterStore := opts.Counter
	if counterStore == nil {
		counterStore = counter.NewStore(state.Initial(counter.InitialCount), state.WithLogger(logger))
	}
	tally := opts.Tally
	if tally == nil {
		tally = state.NewValue(state.Initial(0), state.WithLogger(logger))
	}
	themeValue := opts.Theme
	if themeValue == nil {
		themeValue = state.NewValue(state.Initial(themeOrder[0]), state.WithLogger(logger))
	}

	products := opts.Catalog
	if len(products) == 0 {
		products = catalog.Default()
	}

	input := textinput.New()
	input.Prompt = "Quantity: "
	input.Placeholder = "0 removes"
	input.CharLimit = 6

	m := Model{
		cart:             cartStore,
		counter:          counterStore,
		tally:            tally,
		themeValue:       themeValue,
		ctx:              ctx,
		catalog:          products,
		logPath:          opts.LogPath,
		logger:           logger,
		keys:             DefaultKeyMap(),
		currentView:      ViewShop,
		cartViewport:     viewport.New(0, 0),
		activityViewport: viewport.New(0, 0),
		quantityInput:    input,
	}
	m.clampSelection()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(ActivityRefresh),
		loadActivityCmd(m.logPath),
	)
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
		m.resize()
		return m, nil

	case storeChangedMsg:
		m.clampSelection()
		return m, nil

	case tickMsg:
		cmds := []tea.Cmd{tickCmd(ActivityRefresh)}
		if m.currentView == ViewActivity {
			cmds = append(cmds, loadActivityCmd(m.logPath))
		}
		return m, tea.Batch(cmds...)

	case activityMsg:
		m.activity = msg.entries
		m.activityErr = msg.err
		m.updateActivityViewport()
		return m, nil
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

	return m.renderMain()
}

// snapshot returns a copy of the cart's current snapshot. The model keeps
// no copy of store state; everything is read back from the stores when
// needed.
func (m Model) snapshot() cart.Snapshot {
	return m.cart.State().Clone()
}

// theme returns the theme named by the theme store.
func (m Model) theme() Theme {
	return GetTheme(m.themeValue.Get())
}

// clampSelection keeps the cursors inside the current lists.
func (m *Model) clampSelection() {
	m.selectedProduct = clampIndex(m.selectedProduct, len(m.catalog))
	m.selectedItem = clampIndex(m.selectedItem, len(m.snapshot().Items))
}

// resize recomputes component sizes after a window change.
func (m *Model) resize() {
	w, h := m.shopPaneSize()
	m.cartViewport.Width = maxInt(w-4, 1)
	m.cartViewport.Height = maxInt(h-4, 1)
	m.activityViewport.Width = maxInt(m.width-4, 1)
	m.activityViewport.Height = maxInt(m.contentHeight()-3, 1)
	m.quantityInput.Width = maxInt(m.width-len(m.quantityInput.Prompt)-4, 1)
	m.updateActivityViewport()
}

// setStatus records the outcome of a unit of work for the footer.
func (m *Model) setStatus(done string, err error) {
	if err != nil {
		m.status = err.Error()
		m.statusErr = true
		return
	}
	m.status = done
	m.statusErr = false
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	b.WriteString(m.renderContent())
	b.WriteString("\n")

	b.WriteString(m.renderFooter())

	return b.String()
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewShop:
		return m.renderShop()
	case ViewCounter:
		return m.renderCounter()
	case ViewActivity:
		return m.renderActivity()
	default:
		return ""
	}
}

// contentHeight is the height left below the header and command bar and
// above the footer.
func (m Model) contentHeight() int {
	return maxInt(m.height-3, 3)
}

// Messages

type tickMsg time.Time

type storeChangedMsg struct{}

type activityMsg struct {
	entries []logtail.Entry
	err     error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func loadActivityCmd(path string) tea.Cmd {
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		entries, err := logtail.Read(path, ActivityLimit)
		return activityMsg{entries: entries, err: err}
	}
}

// Run starts the Bubble Tea program. The view follows every store it was
// given until the program exits.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))

	// Listeners run inside Update, which is the goroutine that drains
	// p.Send, so the send has to happen elsewhere.
	changed := func() { go p.Send(storeChangedMsg{}) }
	unsubscribe := []func(){
		m.cart.Subscribe(func(cart.Snapshot) { changed() }),
		m.counter.Subscribe(func(int) { changed() }),
		m.tally.Subscribe(func(int) { changed() }),
		m.themeValue.Subscribe(func(string) { changed() }),
	}
	defer func() {
		for _, fn := range unsubscribe {
			fn()
		}
	}()

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
