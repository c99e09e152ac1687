package domain

import "context"

// ContentSource provides the condition catalog. The only implementation
// today is the YAML-backed repository, but tests swap in fakes.
type ContentSource interface {
	// List returns every condition in repository order.
	List(ctx context.Context) ([]*Condition, error)
	// Get returns a condition by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*Condition, error)
}

// IntentParser converts raw user input (typed or transcribed) into intents.
type IntentParser interface {
	Parse(ctx context.Context, input string) (*Intent, error)
}

// Speaker reads text aloud. Implementations must return quickly; speech is
// fire-and-forget from the caller's point of view.
type Speaker interface {
	Speak(ctx context.Context, text string) error
}

// Listener captures one voice session and returns the best transcript.
type Listener interface {
	Listen(ctx context.Context) (string, error)
}
