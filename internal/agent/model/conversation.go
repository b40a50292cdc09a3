package model

import (
	"context"
)

// Role identifies who authored a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one immutable (role, content) pair of a conversation.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// UserTurn builds a turn authored by the user.
func UserTurn(content string) Turn {
	return Turn{Role: RoleUser, Content: content}
}

// AssistantTurn builds a turn authored by the assistant.
func AssistantTurn(content string) Turn {
	return Turn{Role: RoleAssistant, Content: content}
}

// History is an ordered, oldest-first sequence of turns.
type History []Turn

// Len returns the number of turns.
func (h History) Len() int {
	return len(h)
}

// Clone returns a copy backed by a new array. A nil history clones to an empty one.
func (h History) Clone() History {
	out := make(History, len(h))
	copy(out, h)
	return out
}

// Append returns a new history with turns added at the end.
// The receiver is never written to, even when it has spare capacity.
func (h History) Append(turns ...Turn) History {
	out := make(History, len(h), len(h)+len(turns))
	copy(out, h)
	return append(out, turns...)
}

// Tail returns a copy of the last n turns; n <= 0 keeps everything.
func (h History) Tail(n int) History {
	if n <= 0 || len(h) <= n {
		return h.Clone()
	}
	return h[len(h)-n:].Clone()
}

type ConversationRepository interface {
	// AppendTurns appends turns to the stored history of a conversation
	AppendTurns(ctx context.Context, conversationID string, turns ...Turn) error

	// LoadHistory retrieves the full history of a conversation, empty when unknown
	LoadHistory(ctx context.Context, conversationID string) (*ConversationHistory, error)

	// ClearHistory removes all turns of a conversation
	ClearHistory(ctx context.Context, conversationID string) error

	// GetTurnCount returns the number of stored turns
	GetTurnCount(ctx context.Context, conversationID string) (int, error)
}

// ConversationHistory represents loaded conversation data with metadata.
type ConversationHistory struct {
	ConversationID string
	Turns          History
}
