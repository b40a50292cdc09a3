package conversations

import (
	"context"
	"fmt"

	"github.com/Chative-triage/server/internal/agent/model"
	logx "github.com/Chative-triage/server/pkg/logger"
)

type MessagesManager struct {
	conversationRepo model.ConversationRepository
	historyLimit     int
}

func NewMessagesManager(conversationRepo model.ConversationRepository, config model.ConversationConfig) *MessagesManager {
	return &MessagesManager{
		conversationRepo: conversationRepo,
		historyLimit:     config.HistoryLimit,
	}
}

// LoadHistory returns the stored history, trimmed to the configured number of
// most recent turns (0 keeps everything).
func (cm *MessagesManager) LoadHistory(ctx context.Context, conversationID string) (model.History, error) {
	history, err := cm.conversationRepo.LoadHistory(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	return history.Turns.Tail(cm.historyLimit), nil
}

// SaveTurns persists the turns the pipeline added on top of previous.
func (cm *MessagesManager) SaveTurns(ctx context.Context, conversationID string, previous model.History, result model.ProcessResult) error {
	if len(result.History) < len(previous) {
		return fmt.Errorf("result history shorter than previous (%d < %d)", len(result.History), len(previous))
	}
	added := result.History[len(previous):]
	if len(added) == 0 {
		return nil
	}
	if err := cm.conversationRepo.AppendTurns(ctx, conversationID, added...); err != nil {
		logx.Error().Err(err).Str("conversation_id", conversationID).Msg("Error saving turns")
		return err
	}
	logx.Debug().Str("conversation_id", conversationID).Int("turns", len(added)).Msg("Turns saved")
	return nil
}

// Reset drops the stored history of a conversation.
func (cm *MessagesManager) Reset(ctx context.Context, conversationID string) error {
	return cm.conversationRepo.ClearHistory(ctx, conversationID)
}
