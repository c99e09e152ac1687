package content

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hammamikhairi/healthmate/internal/domain"
)

// On-disk shape of the catalog. Kept separate from the domain types so the
// asset format can evolve without touching the rest of the program.
type fileCatalog struct {
	Version    int             `yaml:"version"`
	Conditions []fileCondition `yaml:"conditions"`
}

type fileCondition struct {
	ID          string         `yaml:"id"`
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Color       string         `yaml:"color"`
	Tips        []string       `yaml:"tips"`
	Exercises   []fileExercise `yaml:"exercises"`
	Recipes     []fileRecipe   `yaml:"recipes"`
}

type fileExercise struct {
	ID           string   `yaml:"id"`
	Name         string   `yaml:"name"`
	Duration     string   `yaml:"duration"`
	Intensity    string   `yaml:"intensity"`
	Description  string   `yaml:"description"`
	Instructions []string `yaml:"instructions"`
	Benefits     []string `yaml:"benefits"`
	Image        string   `yaml:"image"`
}

type fileRecipe struct {
	ID           string        `yaml:"id"`
	Name         string        `yaml:"name"`
	PrepTime     string        `yaml:"prep_time"`
	CookTime     string        `yaml:"cook_time"`
	Servings     int           `yaml:"servings"`
	Difficulty   string        `yaml:"difficulty"`
	Ingredients  []string      `yaml:"ingredients"`
	Instructions []string      `yaml:"instructions"`
	Nutrition    fileNutrition `yaml:"nutrition"`
	Benefits     []string      `yaml:"benefits"`
	Image        string        `yaml:"image"`
}

type fileNutrition struct {
	Calories int    `yaml:"calories"`
	Protein  string `yaml:"protein"`
	Fiber    string `yaml:"fiber"`
	Sugar    string `yaml:"sugar"`
}

func decode(data []byte) ([]*domain.Condition, int, error) {
	var raw fileCatalog
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", domain.ErrInvalidContent, err)
	}
	if len(raw.Conditions) == 0 {
		return nil, 0, fmt.Errorf("%w: no conditions", domain.ErrInvalidContent)
	}

	seen := make(map[string]bool, len(raw.Conditions))
	out := make([]*domain.Condition, 0, len(raw.Conditions))
	for i, fc := range raw.Conditions {
		c, err := fc.toDomain()
		if err != nil {
			return nil, 0, fmt.Errorf("condition #%d: %w", i+1, err)
		}
		if seen[c.ID] {
			return nil, 0, fmt.Errorf("%w: duplicate condition id %q", domain.ErrInvalidContent, c.ID)
		}
		seen[c.ID] = true
		out = append(out, c)
	}
	return out, raw.Version, nil
}

func (fc fileCondition) toDomain() (*domain.Condition, error) {
	id := strings.TrimSpace(fc.ID)
	if id == "" {
		return nil, fmt.Errorf("%w: missing id", domain.ErrInvalidContent)
	}
	if strings.TrimSpace(fc.Name) == "" {
		return nil, fmt.Errorf("%w: condition %q has no name", domain.ErrInvalidContent, id)
	}

	c := &domain.Condition{
		ID:          id,
		Name:        fc.Name,
		Description: fc.Description,
		Color:       fc.Color,
		Tips:        fc.Tips,
	}

	ids := make(map[string]bool)
	for _, fe := range fc.Exercises {
		e, err := fe.toDomain()
		if err != nil {
			return nil, fmt.Errorf("condition %q: %w", id, err)
		}
		if ids[e.ID] {
			return nil, fmt.Errorf("%w: condition %q: duplicate exercise id %q", domain.ErrInvalidContent, id, e.ID)
		}
		ids[e.ID] = true
		c.Exercises = append(c.Exercises, e)
	}

	clear(ids)
	for _, fr := range fc.Recipes {
		r, err := fr.toDomain()
		if err != nil {
			return nil, fmt.Errorf("condition %q: %w", id, err)
		}
		if ids[r.ID] {
			return nil, fmt.Errorf("%w: condition %q: duplicate recipe id %q", domain.ErrInvalidContent, id, r.ID)
		}
		ids[r.ID] = true
		c.Recipes = append(c.Recipes, r)
	}
	return c, nil
}

func (fe fileExercise) toDomain() (domain.Exercise, error) {
	if fe.ID == "" || fe.Name == "" {
		return domain.Exercise{}, fmt.Errorf("%w: exercise needs id and name", domain.ErrInvalidContent)
	}
	intensity, err := domain.ParseIntensity(fe.Intensity)
	if err != nil {
		return domain.Exercise{}, fmt.Errorf("exercise %q: %w", fe.ID, err)
	}
	return domain.Exercise{
		ID:           fe.ID,
		Name:         fe.Name,
		Duration:     fe.Duration,
		Intensity:    intensity,
		Description:  fe.Description,
		Instructions: fe.Instructions,
		Benefits:     fe.Benefits,
		Image:        fe.Image,
	}, nil
}

func (fr fileRecipe) toDomain() (domain.Recipe, error) {
	if fr.ID == "" || fr.Name == "" {
		return domain.Recipe{}, fmt.Errorf("%w: recipe needs id and name", domain.ErrInvalidContent)
	}
	difficulty, err := domain.ParseDifficulty(fr.Difficulty)
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("recipe %q: %w", fr.ID, err)
	}
	if fr.Servings < 1 {
		return domain.Recipe{}, fmt.Errorf("%w: recipe %q: servings must be at least 1", domain.ErrInvalidContent, fr.ID)
	}
	if fr.Nutrition.Calories < 0 {
		return domain.Recipe{}, fmt.Errorf("%w: recipe %q: negative calories", domain.ErrInvalidContent, fr.ID)
	}
	return domain.Recipe{
		ID:           fr.ID,
		Name:         fr.Name,
		PrepTime:     fr.PrepTime,
		CookTime:     fr.CookTime,
		Servings:     fr.Servings,
		Difficulty:   difficulty,
		Ingredients:  fr.Ingredients,
		Instructions: fr.Instructions,
		Nutrition: domain.Nutrition{
			Calories: fr.Nutrition.Calories,
			Protein:  fr.Nutrition.Protein,
			Fiber:    fr.Nutrition.Fiber,
			Sugar:    fr.Nutrition.Sugar,
		},
		Benefits: fr.Benefits,
		Image:    fr.Image,
	}, nil
}
