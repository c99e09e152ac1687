package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNotFound         = errors.New("not found")
	ErrNoMatch          = errors.New("no matching condition")
	ErrVoiceUnavailable = errors.New("voice input unavailable")
	ErrInvalidContent   = errors.New("invalid content")
	ErrNothingHeard     = errors.New("nothing heard")
)
