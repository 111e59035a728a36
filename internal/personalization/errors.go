package personalization

import "errors"

var (
	// ErrEmptyMessage is returned when the extractor receives blank input.
	// A message that matches no rule is NOT an error.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrNoConversations is returned when the batch analyzer receives an
	// empty history.
	ErrNoConversations = errors.New("no conversations to analyze")
)
