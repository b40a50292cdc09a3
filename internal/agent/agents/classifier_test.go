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

func TestClassifyRecognizedLabel(t *testing.T) {
	gen := &stubGenerator{reply: "  Tecnico\n"}
	c := NewClassifier(gen, DefaultClassifierTemperature)

	got, err := c.Classify(context.Background(), "my server won't start")
	require.NoError(t, err)
	assert.Equal(t, model.Technical, got)

	require.Len(t, gen.requests, 1)
	req := gen.requests[0]
	want, err := prompts.RenderClassifierInstruction(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, req.System)
	assert.Equal(t, "Mensagem: my server won't start", req.Input)
	assert.Empty(t, req.History)
	assert.InDelta(t, 0.1, req.Temperature, 1e-6)
}

func TestClassifyGarbageFallsBackToGeneral(t *testing.T) {
	for _, reply := range []string{"pizza", "", "The category is tecnico", "technical"} {
		gen := &stubGenerator{reply: reply}
		got, err := NewClassifier(gen, DefaultClassifierTemperature).Classify(context.Background(), "hm")
		require.NoError(t, err)
		assert.Equal(t, model.General, got, "reply %q", reply)
		assert.Len(t, gen.requests, 1, "no retry on malformed output")
	}
}

func TestClassifyEveryLabel(t *testing.T) {
	for _, want := range model.Categories() {
		gen := &stubGenerator{reply: want.String()}
		got, err := NewClassifier(gen, DefaultClassifierTemperature).Classify(context.Background(), "x")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestClassifyPropagatesCapabilityError(t *testing.T) {
	authErr := errors.New("401 unauthorized")
	gen := &stubGenerator{err: authErr}

	got, err := NewClassifier(gen, DefaultClassifierTemperature).Classify(context.Background(), "x")
	assert.Same(t, authErr, err)
	assert.Empty(t, got)
	assert.Len(t, gen.requests, 1)
}
