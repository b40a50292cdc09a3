package agents

import (
	"context"

	"github.com/Chative-triage/server/internal/agent/llm"
)

// stubGenerator records every request and answers from a fixed reply or error.
type stubGenerator struct {
	reply    string
	err      error
	requests []llm.Request
}

func (s *stubGenerator) Generate(_ context.Context, req llm.Request) (string, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}
