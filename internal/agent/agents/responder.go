package agents

import (
	"context"

	"github.com/Chative-triage/server/internal/agent/graph/prompts"
	"github.com/Chative-triage/server/internal/agent/llm"
	"github.com/Chative-triage/server/internal/agent/model"
)

// DefaultResponderTemperature leaves room for natural variation in phrasing.
const DefaultResponderTemperature float32 = 0.7

// Responder generates the reply using the persona selected by category.
type Responder struct {
	gen         llm.Generator
	temperature float32
}

func NewResponder(gen llm.Generator, temperature float32) *Responder {
	return &Responder{gen: gen, temperature: temperature}
}

// Respond returns the model text verbatim. history is read, never modified;
// appending the new turn is the caller's job.
func (r *Responder) Respond(ctx context.Context, message string, category model.Category, history model.History) (string, error) {
	return r.gen.Generate(ctx, llm.Request{
		System:      prompts.Persona(category),
		History:     history.Clone(),
		Input:       message,
		Temperature: r.temperature,
	})
}
