package repo

import (
	"context"
	"sync"

	"github.com/Chative-triage/server/internal/agent/model"
)

// MemoryConversationRepository keeps histories in process memory.
type MemoryConversationRepository struct {
	mu    sync.RWMutex
	turns map[string]model.History
}

func NewMemoryConversationRepository() *MemoryConversationRepository {
	return &MemoryConversationRepository{turns: map[string]model.History{}}
}

func (r *MemoryConversationRepository) AppendTurns(_ context.Context, conversationID string, turns ...model.Turn) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.turns[conversationID] = r.turns[conversationID].Append(turns...)
	return nil
}

func (r *MemoryConversationRepository) LoadHistory(_ context.Context, conversationID string) (*model.ConversationHistory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return &model.ConversationHistory{
		ConversationID: conversationID,
		Turns:          r.turns[conversationID].Clone(),
	}, nil
}

func (r *MemoryConversationRepository) ClearHistory(_ context.Context, conversationID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.turns, conversationID)
	return nil
}

func (r *MemoryConversationRepository) GetTurnCount(_ context.Context, conversationID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.turns[conversationID]), nil
}

var _ model.ConversationRepository = (*MemoryConversationRepository)(nil)
