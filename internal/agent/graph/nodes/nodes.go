package nodes

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	"github.com/Chative-triage/server/internal/agent/model"
	logx "github.com/Chative-triage/server/pkg/logger"
)

// Classifier is the categorize stage.
type Classifier interface {
	Classify(ctx context.Context, message string) (model.Category, error)
}

// Responder is the respond stage.
type Responder interface {
	Respond(ctx context.Context, message string, category model.Category, history model.History) (string, error)
}

// NewCategorizePreHandler seeds the per-run state from the graph input.
func NewCategorizePreHandler() func(context.Context, model.ProcessInput, *model.ConversationState) (model.ProcessInput, error) {
	return func(ctx context.Context, in model.ProcessInput, s *model.ConversationState) (model.ProcessInput, error) {
		s.Message = in.Message
		s.History = in.History.Clone()
		s.Category = ""
		s.Reply = ""
		logx.Debug().
			Int("history_turns", s.History.Len()).
			Msg("Conversation state initialized")
		return in, nil
	}
}

// NewCategorizeNode creates the Categorize node
func NewCategorizeNode(classifier Classifier) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, in model.ProcessInput) (model.Category, error) {
		category, err := classifier.Classify(ctx, in.Message)
		if err != nil {
			return "", recordFault(ctx, err)
		}
		return category, nil
	})
}

// NewCategorizePostHandler stores the category in state.
func NewCategorizePostHandler() func(context.Context, model.Category, *model.ConversationState) (model.Category, error) {
	return func(ctx context.Context, out model.Category, s *model.ConversationState) (model.Category, error) {
		if !out.Valid() {
			logx.Warn().Str("category", out.String()).Msg("Classifier returned unknown category, using general")
			out = model.General
		}
		s.Category = out
		logx.Debug().Str("node", NodeCategorize).Str("category", out.String()).Msg("Category stored")
		return out, nil
	}
}

// NewRespondNode creates the Respond node. It reads the message and the pre-turn
// history from state; the category arrives as node input.
func NewRespondNode(responder Responder) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, category model.Category) (string, error) {
		var (
			message string
			history model.History
		)
		err := compose.ProcessState(ctx, func(_ context.Context, s *model.ConversationState) error {
			message = s.Message
			history = s.History
			return nil
		})
		if err != nil {
			return "", fmt.Errorf("failed to access state: %w", err)
		}

		reply, err := responder.Respond(ctx, message, category, history)
		if err != nil {
			return "", recordFault(ctx, err)
		}
		return reply, nil
	})
}

// NewRespondPostHandler stores the reply in state.
func NewRespondPostHandler() func(context.Context, string, *model.ConversationState) (string, error) {
	return func(ctx context.Context, out string, s *model.ConversationState) (string, error) {
		s.Reply = out
		logx.Debug().Str("node", NodeRespond).Int("reply_len", len(out)).Msg("Reply stored")
		return out, nil
	}
}

// NewFinalizeNode appends the user and assistant turns to a copy of the input
// history and emits the result triple.
func NewFinalizeNode() *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, _ string) (model.ProcessResult, error) {
		var result model.ProcessResult
		err := compose.ProcessState(ctx, func(_ context.Context, s *model.ConversationState) error {
			result = model.ProcessResult{
				Category: s.Category,
				Reply:    s.Reply,
				History: s.History.Append(
					model.UserTurn(s.Message),
					model.AssistantTurn(s.Reply),
				),
			}
			return nil
		})
		if err != nil {
			return model.ProcessResult{}, fmt.Errorf("failed to access state: %w", err)
		}
		return result, nil
	})
}
