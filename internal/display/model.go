package display

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/healthmate/internal/carousel"
	"github.com/hammamikhairi/healthmate/internal/domain"
	"github.com/hammamikhairi/healthmate/internal/engine"
	"github.com/hammamikhairi/healthmate/internal/logger"
)

// Option configures the model.
type Option func(*Model)

// WithListener enables voice input. Without a listener, pressing the voice
// key shows the voice-unavailable notice.
func WithListener(l domain.Listener) Option {
	return func(m *Model) { m.listener = l }
}

// WithCellUnits sets how many swipe units one terminal column is worth.
func WithCellUnits(u float64) Option {
	return func(m *Model) {
		if u > 0 {
			m.cellUnits = u
		}
	}
}

// voiceMsg carries the outcome of one voice session back to the event loop.
type voiceMsg struct {
	session string
	text    string
	err     error
}

// Model is the Bubble Tea model. The engine holds the page state; the
// model owns only what the terminal needs on top of it.
type Model struct {
	ctx      context.Context
	eng      *engine.Engine
	listener domain.Listener
	log      *logger.Logger

	keys      keyMap
	help      help.Model
	input     textinput.Model
	searching bool

	swipe     carousel.SwipeDetector
	cellUnits float64

	cursor   int
	width    int
	height   int
	quitting bool
}

// NewModel creates the UI model on top of eng.
func NewModel(ctx context.Context, eng *engine.Engine, log *logger.Logger, opts ...Option) Model {
	ti := textinput.New()
	// Plain-text prompt keeps the textinput width math correct.
	ti.Prompt = "search> "
	ti.PromptStyle = promptStyle
	ti.Placeholder = "joint pain, diabetes, low energy…"
	ti.CharLimit = 120
	ti.Width = 40

	m := Model{
		ctx:       ctx,
		eng:       eng,
		log:       log,
		keys:      defaultKeyMap(),
		help:      help.New(),
		input:     ti,
		cellUnits: 10,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tea.SetWindowTitle("HealthMate"))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		const promptLen = 8
		if msg.Width > promptLen+4 {
			m.input.Width = msg.Width - promptLen - 4
		}
		return m, nil

	case voiceMsg:
		return m.handleVoice(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.searching {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}
	if n, ok := m.eng.Notice(); ok && n.Blocking() {
		m.eng.DismissNotice()
		return m, nil
	}
	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Voice):
		return m.startVoice()
	}

	switch m.eng.View() {
	case engine.ViewNotFound:
		if key.Matches(msg, m.keys.Open) || key.Matches(msg, m.keys.Home) {
			m.eng.Home()
			m.cursor = 0
		}
	case engine.ViewDetail:
		m.handleDetailKey(msg)
	default:
		return m.handleCatalogKey(msg)
	}
	return m, nil
}

func (m Model) handleCatalogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	catalog, _ := m.eng.Catalog(m.ctx)
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(catalog)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Open):
		if m.cursor < len(catalog) {
			m.open(catalog[m.cursor].ID)
		}
	case key.Matches(msg, m.keys.Search):
		return m.focusSearch()
	case key.Matches(msg, m.keys.Intro):
		m.eng.ReadIntro(m.ctx)
	}
	return m, nil
}

func (m *Model) handleDetailKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Next):
		m.eng.Navigate(domain.IntentNext)
	case key.Matches(msg, m.keys.Previous):
		m.eng.Navigate(domain.IntentPrevious)
	case key.Matches(msg, m.keys.ToggleTab):
		if b := m.eng.Browser(); b != nil {
			b.ToggleTab()
		}
	case key.Matches(msg, m.keys.Exercises):
		m.eng.SetTab(domain.TabExercises)
	case key.Matches(msg, m.keys.Recipes):
		m.eng.SetTab(domain.TabRecipes)
	case key.Matches(msg, m.keys.Read):
		m.eng.ReadCard(m.ctx)
	case key.Matches(msg, m.keys.Intro):
		m.eng.ReadIntro(m.ctx)
	case key.Matches(msg, m.keys.Tips):
		m.eng.ReadTips(m.ctx)
	case key.Matches(msg, m.keys.Home):
		m.eng.Home()
	case key.Matches(msg, m.keys.Search):
		m.eng.Home()
		m.searching = true
		m.input.Focus()
	}
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searching = false
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		return m.search(m.input.Value()), nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.eng.SetQuery(m.input.Value())
	return m, cmd
}

// search resolves the search box text. Typed text is always a search,
// even when it reads like a command.
func (m Model) search(text string) Model {
	m.eng.SetQuery(text)
	if err := m.eng.Search(m.ctx); err != nil && !errors.Is(err, domain.ErrNoMatch) {
		m.log.Error("search %q: %v", text, err)
	}
	return m.leaveSearch()
}

// leaveSearch resets the search box once a condition page is showing.
func (m Model) leaveSearch() Model {
	if m.eng.View() != engine.ViewCatalog {
		m.searching = false
		m.input.Blur()
		m.input.Reset()
	}
	return m
}

func (m Model) focusSearch() (tea.Model, tea.Cmd) {
	m.searching = true
	return m, m.input.Focus()
}

func (m *Model) open(id string) {
	if err := m.eng.Open(m.ctx, id); err != nil {
		m.log.Error("open: %v", err)
	}
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

// ── Voice ────────────────────────────────────────────────────────

func (m Model) startVoice() (tea.Model, tea.Cmd) {
	if m.listener == nil {
		m.eng.VoiceUnavailable()
		return m, nil
	}
	id := m.eng.BeginListening()
	return m, listenCmd(m.ctx, m.listener, id)
}

func listenCmd(ctx context.Context, l domain.Listener, session string) tea.Cmd {
	return func() tea.Msg {
		text, err := l.Listen(ctx)
		return voiceMsg{session: session, text: text, err: err}
	}
}

func (m Model) handleVoice(msg voiceMsg) (tea.Model, tea.Cmd) {
	switch {
	case errors.Is(msg.err, domain.ErrVoiceUnavailable):
		m.eng.VoiceEnded(msg.session)
		m.eng.VoiceUnavailable()
		return m, nil
	case errors.Is(msg.err, context.Canceled):
		m.eng.VoiceEnded(msg.session)
		return m, nil
	case msg.err != nil:
		m.eng.VoiceFailed(m.ctx, msg.session, msg.err)
		return m, nil
	}

	intent, err := m.eng.VoiceResult(m.ctx, msg.session, msg.text)
	if err != nil {
		m.log.Error("voice submit: %v", err)
	}
	switch intent {
	case domain.IntentQuit:
		return m.quit()
	case domain.IntentHelp:
		m.help.ShowAll = true
	}
	return m.leaveSearch(), nil
}

// ── Mouse swipe ──────────────────────────────────────────────────

func (m Model) handleMouse(msg tea.MouseMsg) Model {
	if m.eng.View() != engine.ViewDetail {
		return m
	}
	x := m.units(msg.X)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.swipe.Start(x)
		}
	case tea.MouseActionMotion:
		m.swipe.Move(x)
	case tea.MouseActionRelease:
		m.swipe.Move(x)
		if intent, ok := m.swipe.End(); ok {
			m.eng.Navigate(intent)
		}
	}
	return m
}

func (m Model) units(col int) int {
	return int(float64(col) * m.cellUnits)
}

// dragColumns converts the live swipe offset back into columns.
func (m Model) dragColumns() int {
	return int(float64(m.swipe.Offset()) / m.cellUnits)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var body string
	switch m.eng.View() {
	case engine.ViewDetail:
		body = m.renderDetail()
	case engine.ViewNotFound:
		body = m.renderNotFound()
	default:
		body = m.renderCatalog()
	}

	if n, ok := m.eng.Notice(); ok && n.Blocking() {
		return m.overlay(renderModal(n.Text))
	}
	return body
}

func (m Model) overlay(box string) string {
	w, h := m.width, m.height
	if w <= 0 {
		w = 80
	}
	if h <= 0 {
		h = 24
	}
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, box)
}
