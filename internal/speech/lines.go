package speech

import (
	"fmt"
	"strings"

	"github.com/hammamikhairi/healthmate/internal/domain"
)

// Every spoken string lives here. Keep lines short and plain; the voice
// is slowed down for older listeners already.

func LineWelcome() string {
	return "Welcome to HealthMate. Choose a condition, or tell me what's bothering you."
}

// LineConditionIntro is spoken when a condition page opens.
func LineConditionIntro(name string) string {
	return fmt.Sprintf("Welcome to %s care. Here you'll find gentle exercises and healthy recipes tailored for your condition.", name)
}

// LineExercise reads an exercise card: name, duration, then the steps.
func LineExercise(ex domain.Exercise) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s. %s, %s intensity. ", ex.Name, ex.Duration, ex.Intensity)
	if ex.Description != "" {
		b.WriteString(sentence(ex.Description))
	}
	writeSteps(&b, ex.Instructions)
	return strings.TrimSpace(b.String())
}

// LineRecipe reads a recipe card: name, timing, ingredients, then steps.
func LineRecipe(r domain.Recipe) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s. Preparation %s, cooking %s. ", r.Name, r.PrepTime, r.CookTime)
	if len(r.Ingredients) > 0 {
		b.WriteString("You'll need: ")
		b.WriteString(listing(r.Ingredients))
		b.WriteString(". ")
	}
	writeSteps(&b, r.Instructions)
	return strings.TrimSpace(b.String())
}

// LineTips reads a condition's daily tips.
func LineTips(name string, tips []string) string {
	if len(tips) == 0 {
		return fmt.Sprintf("I don't have any tips for %s yet.", name)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Daily tips for %s. ", name)
	for _, t := range tips {
		b.WriteString(sentence(t))
	}
	return strings.TrimSpace(b.String())
}

func LineNoContent(tab domain.Tab) string {
	return fmt.Sprintf("There are no %s for this condition yet.", tab)
}

func LineNothingHeard() string {
	return "Sorry, I didn't catch that."
}

func LineNotFound() string {
	return "Condition not found. Going back to the main page."
}

func writeSteps(b *strings.Builder, steps []string) {
	for i, s := range steps {
		fmt.Fprintf(b, "Step %d. %s", i+1, sentence(s))
	}
}

// sentence makes sure s ends with terminal punctuation and a space so
// the chunker can split on it.
func sentence(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	switch s[len(s)-1] {
	case '.', '!', '?':
	default:
		s += "."
	}
	return s + " "
}

func listing(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
}
