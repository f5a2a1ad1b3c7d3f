package services

import (
	"context"

	"github.com/custodia-labs/siteassist/internal/core/domain"
	"github.com/custodia-labs/siteassist/internal/core/ports/driven"
	"github.com/custodia-labs/siteassist/internal/core/ports/driving"
	"github.com/custodia-labs/siteassist/internal/logger"
)

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

// ChatService answers customer questions through the backend.
type ChatService struct {
	backend  driven.Backend
	settings driving.SettingsService
}

// NewChatService creates a new chat service.
// settings is optional and only supplies the fallback error text.
func NewChatService(backend driven.Backend, settings driving.SettingsService) *ChatService {
	return &ChatService{
		backend:  backend,
		settings: settings,
	}
}

// Ask sends one query and returns the reply.
func (s *ChatService) Ask(ctx context.Context, query string) (string, error) {
	logger.Section("Chat")
	logger.Debug("Query: %q", query)

	reply, err := s.backend.Chat(ctx, query)
	if err != nil {
		logger.Debug("Chat failed: %v", err)
		return "", err
	}
	logger.Debug("Reply: %d characters", len(reply))
	return reply, nil
}

// Send runs one exchange against conv.
func (s *ChatService) Send(ctx context.Context, conv *domain.Conversation, query string) error {
	q, err := conv.Begin(query)
	if err != nil {
		return err
	}
	reply, err := s.Ask(ctx, q)
	conv.Resolve(reply, err)
	return err
}

// NewConversation returns an empty transcript.
func (s *ChatService) NewConversation() *domain.Conversation {
	return domain.NewConversation(s.fallback())
}

func (s *ChatService) fallback() string {
	if s.settings == nil {
		return ""
	}
	settings, err := s.settings.Get()
	if err != nil {
		return ""
	}
	return settings.Chat.FallbackMessage
}
