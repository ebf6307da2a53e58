package service

import (
	"context"

	"maternal-companion-go/internal/model"
	"maternal-companion-go/internal/repository"
)

// ConversationService reads and resets session history.
type ConversationService interface {
	GetConversationHistory(ctx context.Context, sessionID string) ([]model.Turn, error)
	ResetConversation(ctx context.Context, sessionID string) error
	ListSessions(ctx context.Context) ([]string, error)
}

type conversationService struct {
	repo repository.ConversationRepository
}

// NewConversationService creates a new ConversationService.
func NewConversationService(repo repository.ConversationRepository) ConversationService {
	return &conversationService{repo: repo}
}

// GetConversationHistory returns all turns of the session.
func (s *conversationService) GetConversationHistory(ctx context.Context, sessionID string) ([]model.Turn, error) {
	return s.repo.GetConversationHistory(ctx, sessionID)
}

// ResetConversation clears the session history. It waits for an in-flight
// reply in the same session to finish.
func (s *conversationService) ResetConversation(ctx context.Context, sessionID string) error {
	unlock := s.repo.Lock(sessionID)
	defer unlock()
	return s.repo.ClearConversationHistory(ctx, sessionID)
}

func (s *conversationService) ListSessions(ctx context.Context) ([]string, error) {
	return s.repo.ListSessionIDs(ctx)
}
