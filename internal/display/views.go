package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/healthmate/internal/domain"
)

const (
	notFoundTitle = "Condition Not Found"
	notFoundHint  = "Press enter to return home"
	listeningText = "Listening…"
	idleVoiceText = "Tap v to speak"
)

func (m Model) renderCatalog() string {
	var b strings.Builder
	b.WriteString(RenderBanner(m.width))
	b.WriteString(secondaryStyle.Render("  Gentle exercises and healthy recipes for everyday conditions."))
	b.WriteString("\n\n  ")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if n, ok := m.eng.Notice(); ok && !n.Blocking() {
		b.WriteString("\n")
		b.WriteString(advisoryStyle.Width(m.contentWidth()).Render(n.Text))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	catalog, err := m.eng.Catalog(m.ctx)
	if err != nil {
		b.WriteString(secondaryStyle.Render("  Conditions are unavailable right now."))
	}
	for i, c := range catalog {
		marker := "  "
		name := primaryStyle.Render(c.Name)
		if i == m.cursor && !m.searching {
			marker = cursorStyle.Render("▸ ")
			name = accent(c.Color).Render(c.Name)
		}
		fmt.Fprintf(&b, "  %s%d. %s\n", marker, i+1, name)
		fmt.Fprintf(&b, "       %s\n", secondaryStyle.Render(c.Description))
		fmt.Fprintf(&b, "       %s\n\n", secondaryStyle.Render(
			fmt.Sprintf("%d exercises · %d recipes", c.ExerciseCount, c.RecipeCount)))
	}

	b.WriteString(m.voiceLine())
	b.WriteString("\n\n")
	b.WriteString(m.help.View(catalogKeys{m.keys}))
	return b.String()
}

func (m Model) renderDetail() string {
	br := m.eng.Browser()
	if br == nil {
		return ""
	}
	c := br.Condition()

	var b strings.Builder
	b.WriteString("\n  ")
	b.WriteString(accent(c.Color).Render(c.Name))
	b.WriteString("\n  ")
	b.WriteString(secondaryStyle.Width(m.contentWidth()).Render(c.Description))
	b.WriteString("\n")

	if len(c.Tips) > 0 {
		b.WriteString("\n  ")
		b.WriteString(titleStyle.Render("Daily tips"))
		b.WriteString("\n")
		for _, t := range c.Tips {
			fmt.Fprintf(&b, "   • %s\n", primaryStyle.Render(t))
		}
	}

	b.WriteString("\n  ")
	b.WriteString(renderTabs(br.Tab(), len(c.Exercises), len(c.Recipes)))
	b.WriteString("\n\n")

	var card string
	switch br.Tab() {
	case domain.TabRecipes:
		if r, ok := br.Recipe(); ok {
			card = renderRecipe(r)
		}
	default:
		if ex, ok := br.Exercise(); ok {
			card = renderExercise(ex)
		}
	}
	if card == "" {
		card = secondaryStyle.Render(fmt.Sprintf("No %s for this condition yet.", br.Tab()))
	}
	card = cardStyle.Width(m.cardWidth()).Render(card)
	b.WriteString(lipgloss.NewStyle().PaddingLeft(m.cardIndent()).Render(card))
	b.WriteString("\n\n  ")

	index, total := br.Position()
	b.WriteString(renderDots(index, total))
	b.WriteString("\n\n")
	b.WriteString(m.voiceLine())
	b.WriteString("\n\n")
	b.WriteString(m.help.View(detailKeys{m.keys}))
	return b.String()
}

func (m Model) renderNotFound() string {
	box := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render(notFoundTitle),
		"",
		secondaryStyle.Render(notFoundHint),
	)
	return m.overlay(box)
}

func renderModal(text string) string {
	return modalStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		primaryStyle.Render(text),
		"",
		secondaryStyle.Render("Press any key to continue"),
	))
}

func renderTabs(active domain.Tab, exercises, recipes int) string {
	ex := fmt.Sprintf("Exercises (%d)", exercises)
	rec := fmt.Sprintf("Recipes (%d)", recipes)
	if active == domain.TabRecipes {
		return inactiveTabStyle.Render(ex) + "   " + activeTabStyle.Render(rec)
	}
	return activeTabStyle.Render(ex) + "   " + inactiveTabStyle.Render(rec)
}

func renderExercise(ex domain.Exercise) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(ex.Name))
	b.WriteString("\n")
	b.WriteString(secondaryStyle.Render(fmt.Sprintf("%s · %s intensity", ex.Duration, ex.Intensity)))
	b.WriteString("\n\n")
	b.WriteString(primaryStyle.Render(ex.Description))
	b.WriteString("\n\n")
	writeNumbered(&b, ex.Instructions)
	writeBenefits(&b, ex.Benefits)
	return strings.TrimRight(b.String(), "\n")
}

func renderRecipe(r domain.Recipe) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(r.Name))
	b.WriteString("\n")
	b.WriteString(secondaryStyle.Render(fmt.Sprintf("Prep %s · Cook %s · Serves %d · %s",
		r.PrepTime, r.CookTime, r.Servings, r.Difficulty)))
	b.WriteString("\n\n")

	b.WriteString(titleStyle.Render("Ingredients"))
	b.WriteString("\n")
	for _, ing := range r.Ingredients {
		fmt.Fprintf(&b, " • %s\n", primaryStyle.Render(ing))
	}
	b.WriteString("\n")
	writeNumbered(&b, r.Instructions)

	n := r.Nutrition
	b.WriteString(secondaryStyle.Render(fmt.Sprintf("Calories %d · Protein %s · Fiber %s · Sugar %s",
		n.Calories, n.Protein, n.Fiber, n.Sugar)))
	b.WriteString("\n")
	writeBenefits(&b, r.Benefits)
	return strings.TrimRight(b.String(), "\n")
}

func writeNumbered(b *strings.Builder, steps []string) {
	for i, s := range steps {
		fmt.Fprintf(b, "%d. %s\n", i+1, primaryStyle.Render(s))
	}
	if len(steps) > 0 {
		b.WriteString("\n")
	}
}

func writeBenefits(b *strings.Builder, benefits []string) {
	if len(benefits) == 0 {
		return
	}
	b.WriteString(secondaryStyle.Render("Benefits: " + strings.Join(benefits, ", ")))
	b.WriteString("\n")
}

func renderDots(index, total int) string {
	if total == 0 {
		return ""
	}
	dots := make([]string, total)
	for i := range dots {
		dots[i] = dotOff
		if i == index {
			dots[i] = dotOn
		}
	}
	return strings.Join(dots, " ") + secondaryStyle.Render(fmt.Sprintf("  %d of %d", index+1, total))
}

func (m Model) voiceLine() string {
	if m.eng.Listening() {
		return "  " + listeningStyle.Render(listeningText)
	}
	return "  " + secondaryStyle.Render(idleVoiceText)
}

// cardIndent shifts the card with the drag so a swipe is visible.
func (m Model) cardIndent() int {
	indent := 2 + m.dragColumns()
	return max(0, min(indent, 30))
}

func (m Model) cardWidth() int {
	w := m.width - 8
	if w <= 0 || w > 72 {
		w = 72
	}
	return w
}

func (m Model) contentWidth() int {
	w := m.width - 4
	if w <= 0 || w > 80 {
		w = 80
	}
	return w
}
