// Package browser binds one condition to its exercise and recipe carousels.
package browser

import (
	"github.com/hammamikhairi/healthmate/internal/carousel"
	"github.com/hammamikhairi/healthmate/internal/domain"
)

// Browser is the per-condition detail state: two independent carousels and
// the tab that chooses which one is visible. A carousel is nil when the
// condition has no items of that kind.
type Browser struct {
	condition *domain.Condition
	tab       domain.Tab
	exercises *carousel.Carousel[domain.Exercise]
	recipes   *carousel.Carousel[domain.Recipe]
}

// New creates a browser on the exercises tab with both carousels at the
// first item.
func New(cond *domain.Condition) *Browser {
	b := &Browser{condition: cond, tab: domain.TabExercises}
	// carousel.New only fails on empty input, which is the "no content" case.
	b.exercises, _ = carousel.New(cond.Exercises)
	b.recipes, _ = carousel.New(cond.Recipes)
	return b
}

// Condition returns the condition being browsed.
func (b *Browser) Condition() *domain.Condition { return b.condition }

// Tab returns the visible tab.
func (b *Browser) Tab() domain.Tab { return b.tab }

// SetTab switches the visible tab. Carousel positions are untouched.
func (b *Browser) SetTab(t domain.Tab) { b.tab = t }

// ToggleTab flips between exercises and recipes.
func (b *Browser) ToggleTab() {
	if b.tab == domain.TabExercises {
		b.tab = domain.TabRecipes
	} else {
		b.tab = domain.TabExercises
	}
}

// Apply routes a navigation intent to the visible carousel. It returns
// false when the intent is not navigation or the tab has no content.
func (b *Browser) Apply(intent domain.IntentType) bool {
	switch b.tab {
	case domain.TabRecipes:
		if b.recipes == nil {
			return false
		}
		return b.recipes.Apply(intent)
	default:
		if b.exercises == nil {
			return false
		}
		return b.exercises.Apply(intent)
	}
}

// Exercise returns the current exercise; ok is false when there are none.
func (b *Browser) Exercise() (domain.Exercise, bool) {
	if b.exercises == nil {
		return domain.Exercise{}, false
	}
	return b.exercises.Current(), true
}

// Recipe returns the current recipe; ok is false when there are none.
func (b *Browser) Recipe() (domain.Recipe, bool) {
	if b.recipes == nil {
		return domain.Recipe{}, false
	}
	return b.recipes.Current(), true
}

// ExerciseIndex returns the exercise carousel position, or -1 if empty.
func (b *Browser) ExerciseIndex() int {
	if b.exercises == nil {
		return -1
	}
	return b.exercises.Index()
}

// RecipeIndex returns the recipe carousel position, or -1 if empty.
func (b *Browser) RecipeIndex() int {
	if b.recipes == nil {
		return -1
	}
	return b.recipes.Index()
}

// Position returns the index and item count of the visible tab. Both are
// zero when the tab has no content.
func (b *Browser) Position() (index, total int) {
	if b.tab == domain.TabRecipes {
		if b.recipes == nil {
			return 0, 0
		}
		return b.recipes.Index(), b.recipes.Len()
	}
	if b.exercises == nil {
		return 0, 0
	}
	return b.exercises.Index(), b.exercises.Len()
}
