// Package domain defines the core types and interfaces for HealthMate.
// All other packages depend on domain; domain depends on nothing.
package domain

import "fmt"

// Condition is a named health topic bundling exercises, recipes, and tips.
// Conditions are immutable once loaded.
type Condition struct {
	ID          string
	Name        string
	Description string
	Exercises   []Exercise
	Recipes     []Recipe
	Tips        []string
	Color       string // display color tag, e.g. "blue"
}

// Summary returns the lightweight catalog view of the condition.
func (c *Condition) Summary() ConditionSummary {
	return ConditionSummary{
		ID:            c.ID,
		Name:          c.Name,
		Description:   c.Description,
		ExerciseCount: len(c.Exercises),
		RecipeCount:   len(c.Recipes),
		Color:         c.Color,
	}
}

// ConditionSummary is what the catalog root lists.
type ConditionSummary struct {
	ID            string
	Name          string
	Description   string
	ExerciseCount int
	RecipeCount   int
	Color         string
}

// Exercise is a single gentle exercise card.
type Exercise struct {
	ID           string
	Name         string
	Duration     string // free-form label, "5-10 minutes"
	Intensity    Intensity
	Description  string
	Instructions []string
	Benefits     []string
	Image        string
}

// Recipe is a single recipe card.
type Recipe struct {
	ID           string
	Name         string
	PrepTime     string
	CookTime     string
	Servings     int
	Difficulty   Difficulty
	Ingredients  []string
	Instructions []string
	Nutrition    Nutrition
	Benefits     []string
	Image        string
}

// Nutrition holds per-serving figures. Only calories is numeric; the rest
// are quantity strings such as "12g".
type Nutrition struct {
	Calories int
	Protein  string
	Fiber    string
	Sugar    string
}

// Intensity grades an exercise.
type Intensity int

const (
	IntensityGentle Intensity = iota
	IntensityLow
	IntensityMedium
)

// String returns the content spelling of the intensity.
func (i Intensity) String() string {
	switch i {
	case IntensityGentle:
		return "gentle"
	case IntensityLow:
		return "low"
	case IntensityMedium:
		return "medium"
	default:
		return "unknown"
	}
}

// ParseIntensity converts "gentle", "low" or "medium" to an Intensity.
func ParseIntensity(s string) (Intensity, error) {
	switch s {
	case "gentle":
		return IntensityGentle, nil
	case "low":
		return IntensityLow, nil
	case "medium":
		return IntensityMedium, nil
	}
	return 0, fmt.Errorf("%w: unknown intensity %q", ErrInvalidContent, s)
}

// Difficulty grades a recipe.
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyMedium
	DifficultyHard
)

// String returns the content spelling of the difficulty.
func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyMedium:
		return "medium"
	case DifficultyHard:
		return "hard"
	default:
		return "unknown"
	}
}

// ParseDifficulty converts "easy", "medium" or "hard" to a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "easy":
		return DifficultyEasy, nil
	case "medium":
		return DifficultyMedium, nil
	case "hard":
		return DifficultyHard, nil
	}
	return 0, fmt.Errorf("%w: unknown difficulty %q", ErrInvalidContent, s)
}

// Tab selects which carousel of a condition is visible.
type Tab int

const (
	TabExercises Tab = iota
	TabRecipes
)

// String returns a human-readable tab name.
func (t Tab) String() string {
	if t == TabRecipes {
		return "recipes"
	}
	return "exercises"
}
