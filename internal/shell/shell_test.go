package shell

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/Chative-triage/server/internal/agent/graph/conversations"
	"github.com/Chative-triage/server/internal/agent/model"
	"github.com/Chative-triage/server/internal/agent/repo"
)

func TestMain(m *testing.M) {
	// genai links go.opencensus.io, whose view worker starts at init.
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))
}

// echoRunner classifies everything as technical unless told to fail.
type echoRunner struct {
	fail     map[string]error
	messages []string
	lengths  []int
}

func (r *echoRunner) Process(_ context.Context, message string, history model.History) (model.ProcessResult, error) {
	r.messages = append(r.messages, message)
	r.lengths = append(r.lengths, len(history))
	if err := r.fail[message]; err != nil {
		return model.ProcessResult{}, err
	}
	reply := "eco: " + message
	return model.ProcessResult{
		Category: model.Technical,
		Reply:    reply,
		History:  history.Append(model.UserTurn(message), model.AssistantTurn(reply)),
	}, nil
}

func newTestShell(t *testing.T, runner *echoRunner, input string) (*Shell, *bytes.Buffer, *repo.MemoryConversationRepository) {
	t.Helper()
	var out bytes.Buffer
	store := repo.NewMemoryConversationRepository()
	mm := conversations.NewMessagesManager(store, model.ConversationConfig{})
	render, err := NewRenderer(&out, false)
	require.NoError(t, err)
	return New(runner, mm, "test-conv", strings.NewReader(input), &out, render), &out, store
}

func TestRunProcessesUntilExit(t *testing.T) {
	runner := &echoRunner{}
	sh, out, store := newTestShell(t, runner, "my server won't start\n\n   \nobrigado\nSAIR\nnever processed\n")

	require.NoError(t, sh.Run(context.Background()))

	assert.Equal(t, []string{"my server won't start", "obrigado"}, runner.messages)
	assert.Equal(t, []int{0, 2}, runner.lengths, "history is carried between messages")

	text := out.String()
	assert.Contains(t, text, "[Categoria: TECNICO]")
	assert.Contains(t, text, "Assistente:")
	assert.Contains(t, text, "eco: my server won't start")
	assert.Contains(t, text, "Encerrando... Até logo!")
	assert.NotContains(t, text, "never processed")

	n, err := store.GetTurnCount(context.Background(), "test-conv")
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestRunStopsAtEndOfInput(t *testing.T) {
	runner := &echoRunner{}
	sh, out, _ := newTestShell(t, runner, "oi")

	require.NoError(t, sh.Run(context.Background()))
	assert.Equal(t, []string{"oi"}, runner.messages)
	assert.Contains(t, out.String(), "Encerrando")
}

func TestRunReportsErrorsAndContinues(t *testing.T) {
	runner := &echoRunner{fail: map[string]error{"boom": errors.New("quota exceeded")}}
	sh, out, store := newTestShell(t, runner, "boom\ndepois\nexit\n")

	require.NoError(t, sh.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "ERRO: quota exceeded")
	assert.Contains(t, text, "Tente novamente.")
	assert.Contains(t, text, "eco: depois")
	assert.Equal(t, []int{0, 0}, runner.lengths, "failed message leaves history untouched")

	n, err := store.GetTurnCount(context.Background(), "test-conv")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRunHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := &echoRunner{}
	sh, out, _ := newTestShell(t, runner, "")
	require.NoError(t, sh.Run(ctx))
	assert.Contains(t, out.String(), "Encerrando")
}

func TestIsExit(t *testing.T) {
	for _, w := range []string{"sair", "exit", "quit", " Quit ", "EXIT"} {
		assert.True(t, IsExit(w), w)
	}
	for _, w := range []string{"", "sairr", "bye", "exit now"} {
		assert.False(t, IsExit(w), w)
	}
}

func TestBanner(t *testing.T) {
	sh, out, _ := newTestShell(t, &echoRunner{}, "")
	sh.Banner()
	assert.Contains(t, out.String(), "Categorias: tecnico | comercial | suporte | geral")
	assert.Contains(t, out.String(), "Digite 'sair' ou 'exit' para encerrar.")
}

func TestRendererPlain(t *testing.T) {
	var out bytes.Buffer
	r, err := NewRenderer(&out, false)
	require.NoError(t, err)

	assert.Contains(t, r.Category(model.Support), "[Categoria: SUPORTE]")
	reply := r.Reply("Passo 1: reinicie.")
	assert.Contains(t, reply, "Assistente:")
	assert.Contains(t, reply, "Passo 1: reinicie.")
}

func TestRendererMarkdown(t *testing.T) {
	var out bytes.Buffer
	r, err := NewRenderer(&out, true)
	require.NoError(t, err)
	assert.Contains(t, r.Reply("**importante**"), "importante")
}
