package agents

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chative-triage/server/internal/agent/graph/prompts"
	"github.com/Chative-triage/server/internal/agent/model"
)

func TestRespondUsesTechnicalPersona(t *testing.T) {
	gen := &stubGenerator{reply: "check your logs"}
	r := NewResponder(gen, DefaultResponderTemperature)

	history := model.History{model.UserTurn("oi"), model.AssistantTurn("olá!")}
	reply, err := r.Respond(context.Background(), "my server won't start", model.Technical, history)
	require.NoError(t, err)
	assert.Equal(t, "check your logs", reply)

	require.Len(t, gen.requests, 1)
	req := gen.requests[0]
	assert.Equal(t, prompts.Persona(model.Technical), req.System)
	assert.Equal(t, history, req.History)
	assert.Equal(t, "my server won't start", req.Input)
	assert.InDelta(t, 0.7, req.Temperature, 1e-6)
}

func TestRespondPersonaPerCategory(t *testing.T) {
	for _, c := range model.Categories() {
		gen := &stubGenerator{reply: "ok"}
		_, err := NewResponder(gen, DefaultResponderTemperature).Respond(context.Background(), "m", c, nil)
		require.NoError(t, err)
		assert.Equal(t, prompts.Persona(c), gen.requests[0].System)
	}
}

func TestRespondUnknownCategoryUsesGeneralPersona(t *testing.T) {
	gen := &stubGenerator{reply: "ok"}
	_, err := NewResponder(gen, DefaultResponderTemperature).Respond(context.Background(), "m", model.Category("tecnico-ish"), nil)
	require.NoError(t, err)
	assert.Equal(t, prompts.Persona(model.General), gen.requests[0].System)
}

func TestRespondReturnsReplyVerbatim(t *testing.T) {
	raw := "\n  **Passo 1**: reinicie o serviço.  \n"
	gen := &stubGenerator{reply: raw}
	reply, err := NewResponder(gen, DefaultResponderTemperature).Respond(context.Background(), "m", model.Support, nil)
	require.NoError(t, err)
	assert.Equal(t, raw, reply)
}

func TestRespondDoesNotMutateHistory(t *testing.T) {
	history := model.History{model.UserTurn("a"), model.AssistantTurn("b")}
	snapshot := history.Clone()

	gen := &stubGenerator{reply: "c"}
	_, err := NewResponder(gen, DefaultResponderTemperature).Respond(context.Background(), "m", model.General, history)
	require.NoError(t, err)

	gen.requests[0].History[0] = model.UserTurn("tampered")
	assert.Equal(t, snapshot, history)
}

func TestRespondPropagatesCapabilityError(t *testing.T) {
	netErr := errors.New("dial tcp: timeout")
	_, err := NewResponder(&stubGenerator{err: netErr}, DefaultResponderTemperature).Respond(context.Background(), "m", model.General, nil)
	assert.Same(t, netErr, err)
}
