// Package engine holds the page-level state of a HealthMate session: which
// view is showing, the condition being browsed, the search box, notices and
// the voice session. It is driven by the UI event loop and is not safe for
// concurrent use.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/hammamikhairi/healthmate/internal/browser"
	"github.com/hammamikhairi/healthmate/internal/conversation"
	"github.com/hammamikhairi/healthmate/internal/domain"
	"github.com/hammamikhairi/healthmate/internal/logger"
	"github.com/hammamikhairi/healthmate/internal/search"
	"github.com/hammamikhairi/healthmate/internal/speech"
)

// View identifies which page is showing.
type View int

const (
	ViewCatalog View = iota
	ViewDetail
	ViewNotFound
)

func (v View) String() string {
	switch v {
	case ViewDetail:
		return "detail"
	case ViewNotFound:
		return "not-found"
	default:
		return "catalog"
	}
}

// NoticeKind classifies a notice.
type NoticeKind int

const (
	NoticeNone NoticeKind = iota
	// NoticeNoMatch is the inline advisory after a failed search.
	NoticeNoMatch
	// NoticeUnavailable blocks the UI until dismissed.
	NoticeUnavailable
)

// VoiceUnavailableText is shown when speech input cannot be used.
const VoiceUnavailableText = "Voice input is not supported on this system. Please type your health concern."

// Notice is a message for the user that outlives a single render.
type Notice struct {
	Kind NoticeKind
	Text string
}

// Blocking reports whether the notice must be dismissed before anything else.
func (n Notice) Blocking() bool { return n.Kind == NoticeUnavailable }

// Option configures the engine.
type Option func(*Engine)

// WithSpeaker sets the text-to-speech output. Without one the engine is silent.
func WithSpeaker(s domain.Speaker) Option {
	return func(e *Engine) { e.speaker = s }
}

// WithAutoIntro makes Open read the condition intro aloud. Off by default;
// the intro otherwise plays only when asked for.
func WithAutoIntro(enabled bool) Option {
	return func(e *Engine) { e.autoIntro = enabled }
}

// Engine is one user's browsing session.
type Engine struct {
	content   domain.ContentSource
	resolver  *search.Resolver
	parser    domain.IntentParser
	speaker   domain.Speaker
	log       *logger.Logger
	autoIntro bool

	view    View
	browser *browser.Browser
	missing string // id that produced ViewNotFound
	query   string
	notice  Notice

	listening    bool
	voiceSession string
}

// New creates an engine on the catalog view.
func New(content domain.ContentSource, log *logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		content:  content,
		resolver: search.NewResolver(content, log),
		parser:   conversation.NewKeywordParser(log),
		log:      log,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// View returns the current page.
func (e *Engine) View() View { return e.view }

// Browser returns the detail state, or nil outside ViewDetail.
func (e *Engine) Browser() *browser.Browser { return e.browser }

// MissingID returns the id that led to ViewNotFound.
func (e *Engine) MissingID() string { return e.missing }

// Catalog returns the condition summaries in catalog order.
func (e *Engine) Catalog(ctx context.Context) ([]domain.ConditionSummary, error) {
	conditions, err := e.content.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing conditions: %w", err)
	}
	out := make([]domain.ConditionSummary, 0, len(conditions))
	for _, c := range conditions {
		out = append(out, c.Summary())
	}
	return out, nil
}

// Open shows the condition with the given id, with both carousels at their
// first item and the exercises tab selected. An unknown id switches to
// ViewNotFound and returns an error wrapping domain.ErrNotFound.
func (e *Engine) Open(ctx context.Context, id string) error {
	cond, err := e.content.Get(ctx, id)
	if err != nil {
		e.browser = nil
		e.view = ViewNotFound
		e.missing = id
		e.log.Warn("open %q: %v", id, err)
		e.say(ctx, speech.LineNotFound())
		return fmt.Errorf("opening condition %q: %w", id, err)
	}

	e.browser = browser.New(cond)
	e.view = ViewDetail
	e.missing = ""
	e.query = ""
	e.clearAdvisory()
	e.log.Info("opened condition %s", cond.ID)

	if e.autoIntro {
		e.say(ctx, speech.LineConditionIntro(cond.Name))
	}
	return nil
}

// Home returns to the catalog from any view.
func (e *Engine) Home() {
	e.view = ViewCatalog
	e.browser = nil
	e.missing = ""
	e.clearAdvisory()
}

// SetQuery updates the search text. Typing clears a no-match advisory.
func (e *Engine) SetQuery(q string) {
	e.query = q
	e.clearAdvisory()
}

// Query returns the current search text.
func (e *Engine) Query() string { return e.query }

// Search resolves the current query. A match opens the condition. No match
// leaves everything as it was and raises the advisory notice; the returned
// error then wraps domain.ErrNoMatch. An empty query does nothing.
func (e *Engine) Search(ctx context.Context) error {
	if strings.TrimSpace(e.query) == "" {
		return nil
	}
	cond, err := e.resolver.Resolve(ctx, e.query)
	if errors.Is(err, domain.ErrNoMatch) {
		e.notice = Notice{Kind: NoticeNoMatch, Text: e.resolver.NoMatchAdvice(ctx)}
		e.log.Info("search %q: no match", e.query)
		return fmt.Errorf("searching %q: %w", e.query, err)
	}
	if err != nil {
		return fmt.Errorf("searching %q: %w", e.query, err)
	}
	return e.Open(ctx, cond.ID)
}

// Submit parses a voice transcript and acts on it. A command that means
// nothing on the current view ("next" on the catalog) is searched for
// instead. It returns the intent acted on so the caller can handle help
// and quit.
func (e *Engine) Submit(ctx context.Context, input string) (domain.IntentType, error) {
	e.clearAdvisory()

	intent, err := e.parser.Parse(ctx, input)
	if err != nil {
		return domain.IntentUnknown, fmt.Errorf("parsing input: %w", err)
	}

	if e.view == ViewNotFound && intent.Type != domain.IntentHome {
		return intent.Type, nil
	}
	if !e.applies(intent.Type) {
		intent = &domain.Intent{Type: domain.IntentSearch, Payload: searchText(input)}
	}
	e.log.Debug("submit %q -> %s", input, intent.Type)
	return intent.Type, e.dispatch(ctx, intent)
}

// applies reports whether a command has an effect on the current view.
func (e *Engine) applies(t domain.IntentType) bool {
	switch t {
	case domain.IntentNext, domain.IntentPrevious,
		domain.IntentShowExercises, domain.IntentShowRecipes, domain.IntentToggleTab,
		domain.IntentReadCard, domain.IntentReadTips:
		return e.view == ViewDetail
	case domain.IntentSelect:
		return e.view == ViewCatalog
	}
	return true
}

// searchText strips the punctuation speech-to-text appends.
func searchText(input string) string {
	return strings.TrimSpace(strings.TrimRight(strings.TrimSpace(input), ".!?,"))
}

func (e *Engine) dispatch(ctx context.Context, intent *domain.Intent) error {
	switch intent.Type {
	case domain.IntentNext, domain.IntentPrevious:
		e.Navigate(intent.Type)
	case domain.IntentShowExercises:
		e.SetTab(domain.TabExercises)
	case domain.IntentShowRecipes:
		e.SetTab(domain.TabRecipes)
	case domain.IntentToggleTab:
		if e.browser != nil {
			e.browser.ToggleTab()
		}
	case domain.IntentSelect:
		return e.selectPosition(ctx, intent.Payload)
	case domain.IntentSearch:
		e.query = intent.Payload
		err := e.Search(ctx)
		if errors.Is(err, domain.ErrNoMatch) {
			return nil // the advisory notice is the answer
		}
		return err
	case domain.IntentHome:
		e.Home()
	case domain.IntentReadCard:
		e.ReadCard(ctx)
	case domain.IntentIntro:
		e.ReadIntro(ctx)
	case domain.IntentReadTips:
		e.ReadTips(ctx)
	}
	return nil
}

// Navigate applies next or previous to the visible carousel.
func (e *Engine) Navigate(intent domain.IntentType) bool {
	if e.view != ViewDetail || e.browser == nil {
		return false
	}
	return e.browser.Apply(intent)
}

// SetTab selects a tab on the detail view.
func (e *Engine) SetTab(t domain.Tab) {
	if e.browser != nil {
		e.browser.SetTab(t)
	}
}

func (e *Engine) selectPosition(ctx context.Context, payload string) error {
	if e.view != ViewCatalog {
		return nil
	}
	n, err := strconv.Atoi(payload)
	if err != nil {
		return fmt.Errorf("selection %q: %w", payload, err)
	}
	catalog, err := e.Catalog(ctx)
	if err != nil {
		return err
	}
	if n < 1 || n > len(catalog) {
		e.notice = Notice{Kind: NoticeNoMatch, Text: fmt.Sprintf("Please pick a number from 1 to %d.", len(catalog))}
		return nil
	}
	return e.Open(ctx, catalog[n-1].ID)
}

// ── Voice session ────────────────────────────────────────────────

// Listening reports whether a voice session is in progress.
func (e *Engine) Listening() bool { return e.listening }

// BeginListening starts a voice session and returns its id. Any earlier
// session is superseded; its callbacks will be ignored. Speech output is
// cut off so the microphone does not pick it up.
func (e *Engine) BeginListening() string {
	if s, ok := e.speaker.(interface{ Interrupt() }); ok {
		s.Interrupt()
	}
	e.voiceSession = uuid.NewString()
	e.listening = true
	e.log.Debug("voice session %s started", e.voiceSession)
	return e.voiceSession
}

// VoiceResult ends the session and submits the transcript. Results from a
// superseded session are dropped.
func (e *Engine) VoiceResult(ctx context.Context, id, transcript string) (domain.IntentType, error) {
	if !e.endVoice(id) {
		return domain.IntentUnknown, nil
	}
	return e.Submit(ctx, transcript)
}

// VoiceFailed ends the session after a recognition error. A session that
// heard nothing says so out loud.
func (e *Engine) VoiceFailed(ctx context.Context, id string, err error) {
	if !e.endVoice(id) {
		return
	}
	if errors.Is(err, domain.ErrNothingHeard) {
		e.log.Info("voice session %s: nothing heard", id)
		e.say(ctx, speech.LineNothingHeard())
		return
	}
	e.log.Warn("voice session %s failed: %v", id, err)
}

// VoiceEnded ends the session without a result.
func (e *Engine) VoiceEnded(id string) {
	e.endVoice(id)
}

func (e *Engine) endVoice(id string) bool {
	if id != e.voiceSession {
		e.log.Debug("ignoring stale voice session %s", id)
		return false
	}
	e.listening = false
	return true
}

// VoiceUnavailable raises the blocking notice for missing speech input.
func (e *Engine) VoiceUnavailable() {
	e.listening = false
	e.notice = Notice{Kind: NoticeUnavailable, Text: VoiceUnavailableText}
}

// Notice returns the current notice; ok is false when there is none.
func (e *Engine) Notice() (Notice, bool) {
	return e.notice, e.notice.Kind != NoticeNone
}

// DismissNotice clears any notice.
func (e *Engine) DismissNotice() { e.notice = Notice{} }

func (e *Engine) clearAdvisory() {
	if !e.notice.Blocking() {
		e.notice = Notice{}
	}
}

// ── Speech output ────────────────────────────────────────────────

// Speak reads text aloud, cutting off whatever was playing.
func (e *Engine) Speak(ctx context.Context, text string) error {
	if e.speaker == nil {
		return nil
	}
	if s, ok := e.speaker.(interface{ Interrupt() }); ok {
		s.Interrupt()
	}
	return e.speaker.Speak(ctx, text)
}

func (e *Engine) say(ctx context.Context, text string) {
	if err := e.Speak(ctx, text); err != nil {
		e.log.Error("speak: %v", err)
	}
}

// ReadCard reads the visible exercise or recipe.
func (e *Engine) ReadCard(ctx context.Context) {
	if e.browser == nil {
		return
	}
	switch e.browser.Tab() {
	case domain.TabRecipes:
		if r, ok := e.browser.Recipe(); ok {
			e.say(ctx, speech.LineRecipe(r))
			return
		}
	default:
		if ex, ok := e.browser.Exercise(); ok {
			e.say(ctx, speech.LineExercise(ex))
			return
		}
	}
	e.say(ctx, speech.LineNoContent(e.browser.Tab()))
}

// ReadIntro reads the condition introduction.
func (e *Engine) ReadIntro(ctx context.Context) {
	if e.browser == nil {
		e.say(ctx, speech.LineWelcome())
		return
	}
	e.say(ctx, speech.LineConditionIntro(e.browser.Condition().Name))
}

// ReadTips reads the condition's daily tips.
func (e *Engine) ReadTips(ctx context.Context) {
	if e.browser == nil {
		return
	}
	c := e.browser.Condition()
	e.say(ctx, speech.LineTips(c.Name, c.Tips))
}
