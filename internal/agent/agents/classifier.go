package agents

import (
	"context"

	"github.com/Chative-triage/server/internal/agent/graph/parsers"
	"github.com/Chative-triage/server/internal/agent/graph/prompts"
	"github.com/Chative-triage/server/internal/agent/llm"
	"github.com/Chative-triage/server/internal/agent/model"
	logx "github.com/Chative-triage/server/pkg/logger"
)

// DefaultClassifierTemperature keeps categorisation close to deterministic.
const DefaultClassifierTemperature float32 = 0.1

// Classifier maps a raw message to one of the fixed categories.
type Classifier struct {
	gen         llm.Generator
	temperature float32
}

func NewClassifier(gen llm.Generator, temperature float32) *Classifier {
	return &Classifier{gen: gen, temperature: temperature}
}

// Classify asks the model for a label once. Malformed answers become model.General;
// capability errors are returned as-is.
func (c *Classifier) Classify(ctx context.Context, message string) (model.Category, error) {
	instruction, err := prompts.RenderClassifierInstruction(ctx)
	if err != nil {
		return "", err
	}

	raw, err := c.gen.Generate(ctx, llm.Request{
		System:      instruction,
		Input:       prompts.ClassifierInput(message),
		Temperature: c.temperature,
	})
	if err != nil {
		return "", err
	}

	category := parsers.ParseCategory(raw)
	logx.Debug().Str("category", category.String()).Msg("Message categorized")
	return category, nil
}
