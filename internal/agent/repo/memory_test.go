package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chative-triage/server/internal/agent/model"
)

func TestMemoryRepository(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryConversationRepository()

	require.NoError(t, r.AppendTurns(ctx, "c1", model.UserTurn("a"), model.AssistantTurn("b")))
	require.NoError(t, r.AppendTurns(ctx, "c2", model.UserTurn("x")))

	h, err := r.LoadHistory(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, model.History{model.UserTurn("a"), model.AssistantTurn("b")}, h.Turns)

	h.Turns[0] = model.UserTurn("tampered")
	again, err := r.LoadHistory(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "a", again.Turns[0].Content, "loaded history is a copy")

	n, err := r.GetTurnCount(ctx, "c2")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, r.ClearHistory(ctx, "c1"))
	h, err = r.LoadHistory(ctx, "c1")
	require.NoError(t, err)
	assert.Empty(t, h.Turns)
}
