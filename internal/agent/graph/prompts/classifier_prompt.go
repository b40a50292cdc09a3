package prompts

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/Chative-triage/server/internal/agent/model"
)

//go:embed template/classifier_prompt.txt
var classifierSystemPrompt string

// categoryDescriptions drives the enumerated list in the classifier prompt.
var categoryDescriptions = map[model.Category]string{
	model.Technical:  "Questões técnicas, problemas de sistema, erros, bugs, configurações, código",
	model.Commercial: "Vendas, preços, orçamentos, propostas, negociações, produtos/serviços",
	model.Support:    "Ajuda com uso, dúvidas sobre funcionalidades, tutoriais, como fazer algo",
	model.General:    "Conversas casuais, saudações, agradecimentos, outros tópicos não específicos",
}

type categoryLine struct {
	Label       string
	Description string
}

// RenderClassifierInstruction renders the classifier system prompt via the eino prompt
// component (Go template), which also emits prompt callbacks.
func RenderClassifierInstruction(ctx context.Context) (string, error) {
	cats := model.Categories()
	lines := make([]categoryLine, 0, len(cats))
	labels := make([]string, 0, len(cats))
	for _, c := range cats {
		lines = append(lines, categoryLine{Label: c.String(), Description: categoryDescriptions[c]})
		labels = append(labels, c.String())
	}

	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(classifierSystemPrompt),
	)
	msgs, err := tpl.Format(ctx, map[string]any{
		"Categories": lines,
		"Labels":     strings.Join(labels, ", "),
	})
	if err != nil {
		return "", fmt.Errorf("classifier prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("classifier prompt render: empty result")
	}
	return strings.TrimSpace(msgs[0].Content), nil
}

// ClassifierInput frames the raw user message for the classifier.
func ClassifierInput(message string) string {
	return "Mensagem: " + message
}
