// Package service contains the business logic layer.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"maternal-companion-go/internal/model"
	"maternal-companion-go/internal/repository"
	"maternal-companion-go/pkg/events"
	"maternal-companion-go/pkg/log"
)

// ErrEmptyMessage is returned for empty or whitespace-only input. Nothing is
// recorded in that case.
var ErrEmptyMessage = errors.New("message is empty")

// ChatService runs one chat interaction: mood resolution, reply generation and
// history update.
type ChatService interface {
	Respond(ctx context.Context, sessionID, message string) (*model.ChatResult, error)
	// LimitedMode reports whether replies can only come from templates.
	LimitedMode() bool
}

type chatService struct {
	resolver         MoodResolver
	generator        ResponseGenerator
	conversationRepo repository.ConversationRepository
	publisher        events.Publisher
}

// NewChatService creates a ChatService. A nil publisher drops mood events.
func NewChatService(resolver MoodResolver, generator ResponseGenerator, conversationRepo repository.ConversationRepository, publisher events.Publisher) ChatService {
	if publisher == nil {
		publisher = events.NewNopPublisher()
	}
	return &chatService{
		resolver:         resolver,
		generator:        generator,
		conversationRepo: conversationRepo,
		publisher:        publisher,
	}
}

func (s *chatService) LimitedMode() bool {
	return !s.generator.Available()
}

// Respond answers message within the session. An empty sessionID starts a new
// session; its id is returned in the result.
func (s *chatService) Respond(ctx context.Context, sessionID, message string) (*model.ChatResult, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrEmptyMessage
	}

	sessionID, err := s.conversationRepo.GetOrCreateSessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	unlock := s.conversationRepo.Lock(sessionID)
	defer unlock()

	history, err := s.conversationRepo.GetConversationHistory(ctx, sessionID)
	if err != nil {
		log.Errorf("Failed to load conversation history: %v", err)
		history = []model.Turn{}
	}

	// 1. resolve the mood once; the badge reuses it
	mood := s.resolver.Resolve(ctx, message)

	// 2. generate the reply
	reply := s.generator.Generate(ctx, message, mood, history)

	// 3. record the turn
	if err := s.conversationRepo.AppendTurn(ctx, sessionID, model.NewTurn(message, reply.Text, mood.Mood)); err != nil {
		log.Errorf("Failed to save conversation history: %v", err)
	}
	updated, err := s.conversationRepo.GetConversationHistory(ctx, sessionID)
	if err != nil {
		updated = append(history, model.NewTurn(message, reply.Text, mood.Mood))
	}

	s.publish(ctx, sessionID, mood, reply)

	log.Infow("chat reply produced",
		"sessionID", sessionID,
		"mood", mood.Mood,
		"context", mood.Context,
		"source", mood.Source,
		"path", reply.Path,
		"cached", reply.Cached,
	)

	return &model.ChatResult{
		SessionID: sessionID,
		Response:  reply.Text,
		Mood:      mood.Mood,
		Context:   mood.Context,
		Source:    mood.Source,
		Path:      reply.Path,
		Badge:     BadgeFor(mood.Mood),
		History:   updated,
	}, nil
}

// publish never fails the interaction.
func (s *chatService) publish(ctx context.Context, sessionID string, mood MoodResolution, reply GenerationResult) {
	failure := reply.Failure
	if failure == FailureNone {
		failure = mood.Failure
	}
	err := s.publisher.Publish(ctx, events.MoodEvent{
		SessionID: sessionID,
		Mood:      mood.Mood,
		Context:   mood.Context,
		Source:    mood.Source,
		Path:      reply.Path,
		Failure:   string(failure),
		Timestamp: time.Now(),
	})
	if err != nil {
		log.Warnw("failed to publish mood event", "sessionID", sessionID, "error", err)
	}
}
