package llm

import (
	"context"
	"errors"

	einocb "github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/Chative-triage/server/internal/agent/model"
	logx "github.com/Chative-triage/server/pkg/logger"
)

// Request is one text-generation call: a system instruction, the prior turns in
// order, the new user input and the sampling temperature.
type Request struct {
	System      string
	History     model.History
	Input       string
	Temperature float32
}

// Generator produces text for a Request. Implementations return provider errors
// unchanged; callers decide what to do with them.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// ErrEmptyResponse is returned when the chat model yields no message at all.
var ErrEmptyResponse = errors.New("chat model returned no message")

const (
	varSystem  = "system"
	varHistory = "history"
	varInput   = "input"
)

// ChatModelGenerator adapts an eino chat model to Generator.
type ChatModelGenerator struct {
	chatModel einomodel.BaseChatModel
	modelName string
	template  prompt.ChatTemplate
}

// NewChatModelGenerator wraps cm. modelName is used for usage pricing and logs.
func NewChatModelGenerator(cm einomodel.BaseChatModel, modelName string) *ChatModelGenerator {
	// Placeholders only: user text is never parsed as template syntax.
	tpl := prompt.FromMessages(
		schema.FString,
		schema.MessagesPlaceholder(varSystem, false),
		schema.MessagesPlaceholder(varHistory, true),
		schema.MessagesPlaceholder(varInput, false),
	)
	return &ChatModelGenerator{chatModel: cm, modelName: modelName, template: tpl}
}

// Generate renders the request into messages and calls the chat model once.
func (g *ChatModelGenerator) Generate(ctx context.Context, req Request) (string, error) {
	msgs, err := g.template.Format(ctx, map[string]any{
		varSystem:  []*schema.Message{schema.SystemMessage(req.System)},
		varHistory: ToMessages(req.History),
		varInput:   []*schema.Message{schema.UserMessage(req.Input)},
	})
	if err != nil {
		return "", err
	}

	ctx = einocb.ReuseHandlers(ctx, &einocb.RunInfo{
		Name:      g.modelName,
		Type:      "Gemini",
		Component: components.ComponentOfChatModel,
	})
	out, err := g.chatModel.Generate(ctx, msgs, einomodel.WithTemperature(req.Temperature))
	if err != nil {
		return "", err
	}
	if out == nil {
		return "", ErrEmptyResponse
	}

	if out.ResponseMeta != nil && out.ResponseMeta.Usage != nil {
		c := model.ComputeCost(g.modelName, out.ResponseMeta.Usage)
		logx.Debug().
			Str("model", c.Model).
			Int("prompt_tokens", c.PromptTokens).
			Int("completion_tokens", c.CompletionTokens).
			Int("total_tokens", c.TotalTokens).
			Float64("input_cost_usd", c.InputCost).
			Float64("output_cost_usd", c.OutputCost).
			Float64("total_cost_usd", c.TotalCost).
			Msg("LLM usage")
	}

	return out.Content, nil
}

// ToMessages converts history into eino messages, oldest first.
// Turns with an unknown role are dropped.
func ToMessages(h model.History) []*schema.Message {
	msgs := make([]*schema.Message, 0, len(h))
	for _, t := range h {
		switch t.Role {
		case model.RoleUser:
			msgs = append(msgs, schema.UserMessage(t.Content))
		case model.RoleAssistant:
			msgs = append(msgs, schema.AssistantMessage(t.Content, nil))
		}
	}
	return msgs
}

var _ Generator = (*ChatModelGenerator)(nil)
