package model

// ConversationState stores per-invocation state for the triage graph.
// It is registered as graph local state via compose.WithGenLocalState and is only
// read or written inside state handlers or compose.ProcessState, which eino serializes.
// Category and Reply stay empty until their stage has run.
type ConversationState struct {
	Message  string
	Category Category
	Reply    string
	// History is the conversation as it was before this message.
	History History
}

// ProcessInput is the graph input: the new user message plus the caller-owned history.
type ProcessInput struct {
	Message string  `json:"message"`
	History History `json:"history"`
}

// ProcessResult is the graph output. History is a new sequence ending with the
// user turn and the assistant turn for this message.
type ProcessResult struct {
	Category Category `json:"category"`
	Reply    string   `json:"reply"`
	History  History  `json:"history"`
}
