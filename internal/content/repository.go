// Package content loads the condition catalog and serves it read-only.
package content

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"github.com/hammamikhairi/healthmate/internal/domain"
	"github.com/hammamikhairi/healthmate/internal/logger"
)

//go:embed conditions.yaml
var builtin []byte

// Compile-time interface check.
var _ domain.ContentSource = (*Repository)(nil)

// Repository is an immutable, pre-populated condition catalog. It is loaded
// wholesale once and never mutated, so concurrent reads need no locking.
type Repository struct {
	conditions []*domain.Condition
	byID       map[string]*domain.Condition
	version    int
	log        *logger.Logger
}

// NewBuiltin loads the catalog compiled into the binary.
func NewBuiltin(log *logger.Logger) (*Repository, error) {
	return Load(builtin, log)
}

// Open loads a catalog from a YAML file on disk. An empty path means the
// built-in catalog.
func Open(path string, log *logger.Logger) (*Repository, error) {
	if path == "" {
		return NewBuiltin(log)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content %s: %w", path, err)
	}
	repo, err := Load(data, log)
	if err != nil {
		return nil, fmt.Errorf("load content %s: %w", path, err)
	}
	return repo, nil
}

// Load parses and validates a YAML catalog.
func Load(data []byte, log *logger.Logger) (*Repository, error) {
	conditions, version, err := decode(data)
	if err != nil {
		return nil, err
	}

	repo := &Repository{
		conditions: conditions,
		byID:       make(map[string]*domain.Condition, len(conditions)),
		version:    version,
		log:        log,
	}
	for _, c := range conditions {
		repo.byID[c.ID] = c
	}
	log.Debug("content loaded: version=%d conditions=%d", version, len(conditions))
	return repo, nil
}

// List returns all conditions in catalog order. The slice is a copy; the
// conditions themselves are shared and must not be modified.
func (r *Repository) List(ctx context.Context) ([]*domain.Condition, error) {
	out := make([]*domain.Condition, len(r.conditions))
	copy(out, r.conditions)
	return out, nil
}

// Get returns a condition by ID.
func (r *Repository) Get(ctx context.Context, id string) (*domain.Condition, error) {
	c, ok := r.byID[id]
	if !ok {
		r.log.Debug("condition not found: %s", id)
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// Summaries returns the catalog view of every condition, in order.
func (r *Repository) Summaries(ctx context.Context) []domain.ConditionSummary {
	out := make([]domain.ConditionSummary, 0, len(r.conditions))
	for _, c := range r.conditions {
		out = append(out, c.Summary())
	}
	return out
}

// Version returns the dataset version declared in the asset.
func (r *Repository) Version() int { return r.version }
