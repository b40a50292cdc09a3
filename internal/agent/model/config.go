package model

import "time"

// ================ Config ================
type ConversationConfig struct {
	Store        string        `envconfig:"CONVERSATION_STORE" default:"memory"`
	TTL          time.Duration `envconfig:"CONVERSATION_TTL" default:"24h"`
	HistoryLimit int           `envconfig:"CONVERSATION_HISTORY_LIMIT" default:"0"`
}

type ClassifierModelConfig struct {
	Model          string  `envconfig:"CLASSIFIER_MODEL" default:"gemini-2.5-flash"`
	MaxTokens      int     `envconfig:"CLASSIFIER_MAX_TOKENS" default:"256"`
	Temperature    float32 `envconfig:"CLASSIFIER_TEMPERATURE" default:"0.1"`
	ThinkingBudget int32   `envconfig:"CLASSIFIER_THINKING_BUDGET" default:"0"`
}

type ResponderModelConfig struct {
	Model          string  `envconfig:"RESPONDER_MODEL" default:"gemini-2.5-flash"`
	MaxTokens      int     `envconfig:"RESPONDER_MAX_TOKENS" default:"2000"`
	Temperature    float32 `envconfig:"RESPONDER_TEMPERATURE" default:"0.7"`
	ThinkingBudget int32   `envconfig:"RESPONDER_THINKING_BUDGET" default:"1024"`
}

type ShellConfig struct {
	Markdown bool `envconfig:"SHELL_MARKDOWN" default:"false"`
}
