package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hammamikhairi/healthmate/internal/content"
	"github.com/hammamikhairi/healthmate/internal/domain"
	"github.com/hammamikhairi/healthmate/internal/logger"
)

type recordingSpeaker struct {
	said        []string
	interrupted int
}

func (s *recordingSpeaker) Speak(_ context.Context, text string) error {
	s.said = append(s.said, text)
	return nil
}

func (s *recordingSpeaker) Interrupt() { s.interrupted++ }

func setupEngine(t *testing.T, opts ...Option) (*Engine, context.Context) {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	repo, err := content.NewBuiltin(log)
	if err != nil {
		t.Fatalf("loading builtin content: %v", err)
	}
	return New(repo, log, opts...), context.Background()
}

func TestCatalogOrder(t *testing.T) {
	eng, ctx := setupEngine(t)

	catalog, err := eng.Catalog(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var ids []string
	for _, c := range catalog {
		ids = append(ids, c.ID)
	}
	if got := strings.Join(ids, ","); got != "joint-pain,diabetes,low-energy" {
		t.Fatalf("catalog order = %s", got)
	}
	if eng.View() != ViewCatalog {
		t.Fatalf("expected catalog view, got %s", eng.View())
	}
}

func TestSelectAndCycle(t *testing.T) {
	eng, ctx := setupEngine(t)

	if _, err := eng.Submit(ctx, "2"); err != nil {
		t.Fatalf("select: %v", err)
	}
	if eng.View() != ViewDetail {
		t.Fatalf("expected detail view, got %s", eng.View())
	}
	b := eng.Browser()
	if b.Condition().ID != "diabetes" {
		t.Fatalf("expected diabetes, got %s", b.Condition().ID)
	}
	if b.ExerciseIndex() != 0 || b.RecipeIndex() != 0 || b.Tab() != domain.TabExercises {
		t.Fatalf("fresh browser not reset: ex=%d rec=%d tab=%s", b.ExerciseIndex(), b.RecipeIndex(), b.Tab())
	}

	eng.Submit(ctx, "next")
	if b.ExerciseIndex() != 1 {
		t.Fatalf("after one next: index %d, want 1", b.ExerciseIndex())
	}
	eng.Submit(ctx, "Next.")
	if b.ExerciseIndex() != 0 {
		t.Fatalf("after two nexts: index %d, want 0", b.ExerciseIndex())
	}
}

func TestTabsKeepTheirPosition(t *testing.T) {
	eng, ctx := setupEngine(t)
	if err := eng.Open(ctx, "joint-pain"); err != nil {
		t.Fatalf("open: %v", err)
	}
	b := eng.Browser()

	eng.Navigate(domain.IntentNext)
	eng.Submit(ctx, "recipes")
	if b.Tab() != domain.TabRecipes {
		t.Fatalf("expected recipes tab")
	}
	eng.Navigate(domain.IntentPrevious)
	if b.RecipeIndex() != 1 {
		t.Fatalf("recipe index = %d, want 1", b.RecipeIndex())
	}
	eng.Submit(ctx, "exercises")
	if b.ExerciseIndex() != 1 {
		t.Fatalf("exercise index lost: %d", b.ExerciseIndex())
	}

	// Reopening starts fresh.
	eng.Home()
	eng.Open(ctx, "joint-pain")
	if eng.Browser().ExerciseIndex() != 0 || eng.Browser().RecipeIndex() != 0 {
		t.Fatalf("reopened condition kept old positions")
	}
}

func TestOpenUnknownThenHome(t *testing.T) {
	eng, ctx := setupEngine(t)

	err := eng.Open(ctx, "migraine")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if eng.View() != ViewNotFound || eng.Browser() != nil {
		t.Fatalf("expected not-found view without browser, got %s", eng.View())
	}
	if eng.MissingID() != "migraine" {
		t.Fatalf("missing id = %q", eng.MissingID())
	}

	// Nothing but home leaves the not-found page.
	eng.Submit(ctx, "next")
	eng.Submit(ctx, "diabetes")
	if eng.View() != ViewNotFound {
		t.Fatalf("expected to stay on not-found, got %s", eng.View())
	}

	eng.Submit(ctx, "home")
	if eng.View() != ViewCatalog {
		t.Fatalf("expected catalog after home, got %s", eng.View())
	}
}

func TestSearch(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantView  View
		wantID    string
		wantAdvis bool
	}{
		{"by name", "Diabetes", ViewDetail, "diabetes", false},
		{"by description", "blood sugar", ViewDetail, "diabetes", false},
		{"first match wins", "gentle", ViewDetail, "joint-pain", false},
		{"no match", "migraine", ViewCatalog, "", true},
		{"blank", "   ", ViewCatalog, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng, ctx := setupEngine(t)
			eng.SetQuery(tt.query)
			err := eng.Search(ctx)

			if eng.View() != tt.wantView {
				t.Fatalf("view = %s, want %s", eng.View(), tt.wantView)
			}
			if tt.wantID != "" && eng.Browser().Condition().ID != tt.wantID {
				t.Fatalf("opened %s, want %s", eng.Browser().Condition().ID, tt.wantID)
			}
			n, ok := eng.Notice()
			if ok != tt.wantAdvis {
				t.Fatalf("notice present = %v, want %v", ok, tt.wantAdvis)
			}
			if tt.wantAdvis {
				if !errors.Is(err, domain.ErrNoMatch) {
					t.Fatalf("expected ErrNoMatch, got %v", err)
				}
				if n.Kind != NoticeNoMatch || n.Blocking() {
					t.Fatalf("unexpected notice %+v", n)
				}
				if !strings.Contains(n.Text, "joint pain, diabetes, or low energy") {
					t.Fatalf("advice does not list conditions: %q", n.Text)
				}
				if eng.Query() != tt.query {
					t.Fatalf("query changed to %q", eng.Query())
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestAdvisoryClearsOnNextInput(t *testing.T) {
	eng, ctx := setupEngine(t)
	eng.Submit(ctx, "migraine")
	if _, ok := eng.Notice(); !ok {
		t.Fatal("expected advisory")
	}
	eng.SetQuery("d")
	if _, ok := eng.Notice(); ok {
		t.Fatal("advisory should clear on typing")
	}
}

func TestVoiceSessions(t *testing.T) {
	t.Run("all endings clear listening", func(t *testing.T) {
		eng, ctx := setupEngine(t)

		id := eng.BeginListening()
		eng.VoiceResult(ctx, id, "diabetes")
		if eng.Listening() {
			t.Fatal("result did not clear listening")
		}
		if eng.View() != ViewDetail {
			t.Fatalf("transcript was not submitted, view %s", eng.View())
		}

		id = eng.BeginListening()
		eng.VoiceFailed(ctx, id, errors.New("mic unplugged"))
		if eng.Listening() {
			t.Fatal("failure did not clear listening")
		}

		id = eng.BeginListening()
		eng.VoiceEnded(id)
		eng.VoiceEnded(id)
		if eng.Listening() {
			t.Fatal("end did not clear listening")
		}
	})

	t.Run("stale session ignored", func(t *testing.T) {
		eng, ctx := setupEngine(t)

		old := eng.BeginListening()
		current := eng.BeginListening()
		if old == current {
			t.Fatal("session ids must differ")
		}

		eng.VoiceEnded(old)
		if !eng.Listening() {
			t.Fatal("stale end cleared the newer session")
		}
		eng.VoiceResult(ctx, old, "diabetes")
		if eng.View() != ViewCatalog {
			t.Fatal("stale transcript was submitted")
		}

		eng.VoiceEnded(current)
		if eng.Listening() {
			t.Fatal("current session still listening")
		}
	})
}

func TestVoiceUnavailableBlocks(t *testing.T) {
	eng, ctx := setupEngine(t)
	eng.BeginListening()
	eng.VoiceUnavailable()

	n, ok := eng.Notice()
	if !ok || !n.Blocking() || n.Text != VoiceUnavailableText {
		t.Fatalf("unexpected notice %+v", n)
	}
	if eng.Listening() {
		t.Fatal("unavailable voice should not be listening")
	}

	// Typing does not clear a blocking notice.
	eng.SetQuery("x")
	eng.Submit(ctx, "help")
	if _, ok := eng.Notice(); !ok {
		t.Fatal("blocking notice cleared without dismissal")
	}
	eng.DismissNotice()
	if _, ok := eng.Notice(); ok {
		t.Fatal("notice not dismissed")
	}
}

func TestSpeechOutput(t *testing.T) {
	spk := &recordingSpeaker{}
	eng, ctx := setupEngine(t, WithSpeaker(spk), WithAutoIntro(true))

	eng.Open(ctx, "diabetes")
	if len(spk.said) != 1 || !strings.HasPrefix(spk.said[0], "Welcome to Diabetes care.") {
		t.Fatalf("intro not spoken: %q", spk.said)
	}

	eng.ReadCard(ctx)
	if !strings.HasPrefix(spk.said[1], "Gentle Walking Routine.") {
		t.Fatalf("card reading = %q", spk.said[1])
	}

	eng.SetTab(domain.TabRecipes)
	eng.Submit(ctx, "read")
	if !strings.Contains(spk.said[2], "You'll need:") {
		t.Fatalf("recipe reading = %q", spk.said[2])
	}

	eng.ReadTips(ctx)
	if !strings.HasPrefix(spk.said[3], "Daily tips for Diabetes.") {
		t.Fatalf("tips reading = %q", spk.said[3])
	}
	if spk.interrupted != len(spk.said) {
		t.Fatalf("each reading should cut off the last: %d interrupts for %d lines", spk.interrupted, len(spk.said))
	}
}

func TestOpenIsQuietByDefault(t *testing.T) {
	spk := &recordingSpeaker{}
	eng, ctx := setupEngine(t, WithSpeaker(spk))

	eng.SetQuery("diabetes")
	if err := eng.Search(ctx); err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(spk.said) != 0 {
		t.Fatalf("open spoke without being asked: %q", spk.said)
	}

	eng.Submit(ctx, "intro")
	if len(spk.said) != 1 || !strings.HasPrefix(spk.said[0], "Welcome to Diabetes care.") {
		t.Fatalf("intro on request = %q", spk.said)
	}
}

func TestSpokenFeedback(t *testing.T) {
	t.Run("unknown condition", func(t *testing.T) {
		spk := &recordingSpeaker{}
		eng, ctx := setupEngine(t, WithSpeaker(spk))
		eng.Open(ctx, "migraine")
		if len(spk.said) != 1 || !strings.HasPrefix(spk.said[0], "Condition not found.") {
			t.Fatalf("said %q", spk.said)
		}
	})

	t.Run("nothing heard", func(t *testing.T) {
		spk := &recordingSpeaker{}
		eng, ctx := setupEngine(t, WithSpeaker(spk))
		id := eng.BeginListening()
		eng.VoiceFailed(ctx, id, domain.ErrNothingHeard)
		if len(spk.said) != 1 || spk.said[0] != "Sorry, I didn't catch that." {
			t.Fatalf("said %q", spk.said)
		}
		if eng.Listening() {
			t.Fatal("session still listening")
		}
	})

	t.Run("other failures stay quiet", func(t *testing.T) {
		spk := &recordingSpeaker{}
		eng, ctx := setupEngine(t, WithSpeaker(spk))
		id := eng.BeginListening()
		eng.VoiceFailed(ctx, id, errors.New("mic unplugged"))
		if len(spk.said) != 0 {
			t.Fatalf("said %q", spk.said)
		}
	})

	t.Run("listening cuts off speech", func(t *testing.T) {
		spk := &recordingSpeaker{}
		eng, _ := setupEngine(t, WithSpeaker(spk))
		eng.BeginListening()
		if spk.interrupted != 1 {
			t.Fatalf("interrupts = %d, want 1", spk.interrupted)
		}
	})
}

// Words that double as commands still search when typed in the search box.
func TestSearchCommandWords(t *testing.T) {
	tests := []struct {
		query  string
		wantID string
	}{
		{"exercise", "joint-pain"},
		{"food", "joint-pain"},
		{"p", "joint-pain"},
		{"meals", "diabetes"},
		{"q", ""},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			eng, ctx := setupEngine(t)
			eng.SetQuery(tt.query)
			err := eng.Search(ctx)

			if tt.wantID == "" {
				if !errors.Is(err, domain.ErrNoMatch) {
					t.Fatalf("expected ErrNoMatch, got %v", err)
				}
				if n, ok := eng.Notice(); !ok || n.Kind != NoticeNoMatch {
					t.Fatalf("expected advisory, got %+v", n)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if eng.View() != ViewDetail || eng.Browser().Condition().ID != tt.wantID {
				t.Fatalf("view %s, want %s open", eng.View(), tt.wantID)
			}
		})
	}
}

// A spoken command that means nothing on the current view is searched for.
func TestVoiceCommandFallsBackToSearch(t *testing.T) {
	tests := []struct {
		transcript string
		wantIntent domain.IntentType
		wantID     string
	}{
		{"Exercise.", domain.IntentSearch, "joint-pain"},
		{"food", domain.IntentSearch, "joint-pain"},
		{"p", domain.IntentSearch, "joint-pain"},
		{"Meals.", domain.IntentSearch, "diabetes"},
		{"next", domain.IntentSearch, ""},
		{"2", domain.IntentSelect, "diabetes"},
		{"quit", domain.IntentQuit, ""},
	}
	for _, tt := range tests {
		t.Run(tt.transcript, func(t *testing.T) {
			eng, ctx := setupEngine(t)
			id := eng.BeginListening()
			got, err := eng.VoiceResult(ctx, id, tt.transcript)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.wantIntent {
				t.Fatalf("intent = %s, want %s", got, tt.wantIntent)
			}
			if tt.wantID == "" {
				if eng.View() != ViewCatalog {
					t.Fatalf("view = %s, want catalog", eng.View())
				}
				return
			}
			if eng.View() != ViewDetail || eng.Browser().Condition().ID != tt.wantID {
				t.Fatalf("view %s, want %s open", eng.View(), tt.wantID)
			}
		})
	}

	// On the detail view the same words are commands again.
	eng, ctx := setupEngine(t)
	eng.Open(ctx, "joint-pain")
	if got, _ := eng.Submit(ctx, "food"); got != domain.IntentShowRecipes {
		t.Fatalf("intent = %s, want show_recipes", got)
	}
	if eng.Browser().Tab() != domain.TabRecipes {
		t.Fatal("food did not switch to recipes")
	}
	if got, _ := eng.Submit(ctx, "3"); got != domain.IntentSearch {
		t.Fatalf("number on detail view = %s, want search", got)
	}
}

func TestSilentWithoutSpeaker(t *testing.T) {
	eng, ctx := setupEngine(t, WithAutoIntro(false))
	if err := eng.Speak(ctx, "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	eng.Open(ctx, "low-energy")
	eng.ReadCard(ctx)
}

func TestSelectOutOfRange(t *testing.T) {
	eng, ctx := setupEngine(t)
	eng.Submit(ctx, "9")
	if eng.View() != ViewCatalog {
		t.Fatalf("view = %s", eng.View())
	}
	if n, ok := eng.Notice(); !ok || n.Kind != NoticeNoMatch {
		t.Fatalf("expected advisory, got %+v", n)
	}
}
