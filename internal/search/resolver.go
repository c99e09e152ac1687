// Package search resolves free text, typed or transcribed, to a condition.
package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/hammamikhairi/healthmate/internal/domain"
	"github.com/hammamikhairi/healthmate/internal/logger"
)

// Resolver maps a query to the first condition whose name or description
// contains it, ignoring case. There is no ranking: catalog order decides.
type Resolver struct {
	source domain.ContentSource
	log    *logger.Logger
}

// NewResolver creates a resolver over the given catalog.
func NewResolver(source domain.ContentSource, log *logger.Logger) *Resolver {
	return &Resolver{source: source, log: log}
}

// Resolve returns the first matching condition, or domain.ErrNoMatch.
// Empty or whitespace-only input is a no-match and the catalog is not read.
func (r *Resolver) Resolve(ctx context.Context, input string) (*domain.Condition, error) {
	q := strings.ToLower(strings.TrimSpace(input))
	if q == "" {
		return nil, domain.ErrNoMatch
	}

	conditions, err := r.source.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing conditions: %w", err)
	}

	for _, c := range conditions {
		if matches(c, q) {
			r.log.Debug("search %q matched %s", q, c.ID)
			return c, nil
		}
	}
	r.log.Debug("search %q: no match among %d conditions", q, len(conditions))
	return nil, domain.ErrNoMatch
}

func matches(c *domain.Condition, query string) bool {
	return strings.Contains(strings.ToLower(c.Name), query) ||
		strings.Contains(strings.ToLower(c.Description), query)
}

// NoMatchAdvice is the gentle message shown when a search finds nothing.
// It names the conditions the catalog does cover.
func (r *Resolver) NoMatchAdvice(ctx context.Context) string {
	var names []string
	if conditions, err := r.source.List(ctx); err == nil {
		for _, c := range conditions {
			names = append(names, strings.ToLower(c.Name))
		}
	}
	if len(names) == 0 {
		return "We're sorry, but we don't have specific recommendations for that condition yet. Please consult with your healthcare provider."
	}
	return fmt.Sprintf(
		"We're sorry, but we don't have specific recommendations for that condition yet. Please try searching for %s, or consult with your healthcare provider.",
		joinOr(names),
	)
}

// joinOr renders "a", "a or b", "a, b, or c".
func joinOr(items []string) string {
	switch len(items) {
	case 1:
		return items[0]
	case 2:
		return items[0] + " or " + items[1]
	}
	return strings.Join(items[:len(items)-1], ", ") + ", or " + items[len(items)-1]
}
