package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Chative-triage/server/internal/agent/graph"
	"github.com/Chative-triage/server/internal/agent/model"
	logx "github.com/Chative-triage/server/pkg/logger"
)

// HistoryStore loads and persists the history of a conversation between messages.
type HistoryStore interface {
	LoadHistory(ctx context.Context, conversationID string) (model.History, error)
	SaveTurns(ctx context.Context, conversationID string, previous model.History, result model.ProcessResult) error
}

var exitWords = map[string]bool{"sair": true, "exit": true, "quit": true}

const farewell = "Encerrando... Até logo!"

// Shell is the interactive read-process-print loop.
type Shell struct {
	runner         graph.Runner
	store          HistoryStore
	conversationID string
	in             io.Reader
	out            io.Writer
	render         Renderer
}

func New(runner graph.Runner, store HistoryStore, conversationID string, in io.Reader, out io.Writer, render Renderer) *Shell {
	return &Shell{
		runner:         runner,
		store:          store,
		conversationID: conversationID,
		in:             in,
		out:            out,
		render:         render,
	}
}

// Banner prints the welcome text.
func (s *Shell) Banner() {
	rule := strings.Repeat("=", 60)
	fmt.Fprintln(s.out, rule)
	fmt.Fprintln(s.out, " Sistema Multiagentes - Triagem de Conversas")
	fmt.Fprintln(s.out, rule)
	fmt.Fprintln(s.out, "\nAgentes disponíveis:")
	fmt.Fprintln(s.out, "  1. Categorizador: Identifica o tipo de conversa")
	fmt.Fprintln(s.out, "  2. Conversação: Responde com personalidade adequada")
	labels := make([]string, 0, 4)
	for _, c := range model.Categories() {
		labels = append(labels, c.String())
	}
	fmt.Fprintf(s.out, "\nCategorias: %s\n", strings.Join(labels, " | "))
	fmt.Fprintln(s.out, "\nDigite 'sair' ou 'exit' para encerrar.")
	fmt.Fprintln(s.out, rule)
	fmt.Fprintln(s.out)
}

// IsExit reports whether line is one of the exit keywords.
func IsExit(line string) bool {
	return exitWords[strings.ToLower(strings.TrimSpace(line))]
}

// Run loops until an exit keyword, end of input or ctx cancellation.
// Pipeline failures are printed and the loop keeps going.
func (s *Shell) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(s.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		fmt.Fprint(s.out, "\nVocê: ")

		var (
			line string
			ok   bool
		)
		select {
		case <-ctx.Done():
			fmt.Fprintln(s.out, "\n\n"+farewell)
			return nil
		case line, ok = <-lines:
		}
		if !ok {
			fmt.Fprintln(s.out, "\n"+farewell)
			select {
			case err := <-scanErr:
				return err
			default:
				return nil
			}
		}

		message := strings.TrimSpace(line)
		if IsExit(message) {
			fmt.Fprintln(s.out, "\n"+farewell)
			return nil
		}
		if message == "" {
			continue
		}

		if err := s.Handle(ctx, message); err != nil {
			logx.Error().Err(err).Str("conversation_id", s.conversationID).Msg("Message processing failed")
			fmt.Fprintf(s.out, "\nERRO: %v\n", err)
			fmt.Fprintln(s.out, "Tente novamente.")
		}
	}
}

// Handle runs one message through the pipeline and prints category and reply.
func (s *Shell) Handle(ctx context.Context, message string) error {
	history, err := s.store.LoadHistory(ctx, s.conversationID)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	result, err := s.runner.Process(ctx, message, history)
	if err != nil {
		return err
	}

	if err := s.store.SaveTurns(ctx, s.conversationID, history, result); err != nil {
		return fmt.Errorf("save history: %w", err)
	}

	fmt.Fprintln(s.out, s.render.Category(result.Category))
	fmt.Fprintf(s.out, "\n%s\n", s.render.Reply(result.Reply))
	return nil
}
