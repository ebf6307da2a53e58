// Package repository provides the data access layer.
package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"maternal-companion-go/internal/model"
)

// DefaultMaxTurns bounds the turns kept per session.
const DefaultMaxTurns = 50

// ConversationRepository stores chat history per session. History lives in
// process memory only.
type ConversationRepository interface {
	// GetOrCreateSessionID returns sessionID, or a new id when it is empty.
	GetOrCreateSessionID(ctx context.Context, sessionID string) (string, error)
	GetConversationHistory(ctx context.Context, sessionID string) ([]model.Turn, error)
	AppendTurn(ctx context.Context, sessionID string, turn model.Turn) error
	ClearConversationHistory(ctx context.Context, sessionID string) error
	ListSessionIDs(ctx context.Context) ([]string, error)
	// Lock serialises work on one session and returns the unlock func.
	// Unknown sessions are not created; their unlock func is a no-op.
	Lock(sessionID string) func()
}

type session struct {
	mu    sync.Mutex
	turns []model.Turn
}

type memoryConversationRepository struct {
	mu       sync.RWMutex
	sessions map[string]*session
	maxTurns int
}

// NewConversationRepository creates an in-memory repository keeping at most
// maxTurns turns per session.
func NewConversationRepository(maxTurns int) ConversationRepository {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	return &memoryConversationRepository{
		sessions: make(map[string]*session),
		maxTurns: maxTurns,
	}
}

func (r *memoryConversationRepository) GetOrCreateSessionID(_ context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	r.get(sessionID, true)
	return sessionID, nil
}

func (r *memoryConversationRepository) GetConversationHistory(_ context.Context, sessionID string) ([]model.Turn, error) {
	s := r.get(sessionID, false)
	if s == nil {
		return []model.Turn{}, nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Turn, len(s.turns))
	copy(out, s.turns)
	return out, nil
}

func (r *memoryConversationRepository) AppendTurn(_ context.Context, sessionID string, turn model.Turn) error {
	s := r.get(sessionID, true)
	r.mu.Lock()
	defer r.mu.Unlock()
	s.turns = append(s.turns, turn)
	// keep the most recent maxTurns
	if len(s.turns) > r.maxTurns {
		s.turns = append([]model.Turn(nil), s.turns[len(s.turns)-r.maxTurns:]...)
	}
	return nil
}

func (r *memoryConversationRepository) ClearConversationHistory(_ context.Context, sessionID string) error {
	s := r.get(sessionID, false)
	if s == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s.turns = nil
	return nil
}

func (r *memoryConversationRepository) ListSessionIDs(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *memoryConversationRepository) Lock(sessionID string) func() {
	s := r.get(sessionID, false)
	if s == nil {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (r *memoryConversationRepository) get(sessionID string, create bool) *session {
	r.mu.RLock()
	s, ok := r.sessions[sessionID]
	r.mu.RUnlock()
	if ok || !create {
		return s
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok = r.sessions[sessionID]; ok {
		return s
	}
	s = &session{}
	r.sessions[sessionID] = s
	return s
}
