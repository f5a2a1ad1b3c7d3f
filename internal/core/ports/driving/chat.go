package driving

import (
	"context"

	"github.com/custodia-labs/siteassist/internal/core/domain"
)

// ChatService answers customer questions through the backend.
type ChatService interface {
	// Ask sends one query and returns the reply.
	Ask(ctx context.Context, query string) (string, error)

	// Send runs a full exchange on conv: the user entry is appended before
	// the request and exactly one reply or error entry after it.
	// The returned error is the request failure, already recorded in conv.
	Send(ctx context.Context, conv *domain.Conversation, query string) error

	// NewConversation returns an empty transcript using the configured
	// fallback error text.
	NewConversation() *domain.Conversation
}
