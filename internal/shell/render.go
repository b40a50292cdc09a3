package shell

import (
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/Chative-triage/server/internal/agent/model"
)

// Renderer formats the pieces of a shell answer.
type Renderer interface {
	Category(c model.Category) string
	Reply(text string) string
}

type styledRenderer struct {
	tag      lipgloss.Style
	label    lipgloss.Style
	markdown *glamour.TermRenderer
}

// NewRenderer styles output for w; when markdown is set, replies are rendered with glamour.
// Styling degrades to plain text when w is not a terminal.
func NewRenderer(w io.Writer, markdown bool) (Renderer, error) {
	lr := lipgloss.NewRenderer(w)
	r := &styledRenderer{
		tag:   lr.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		label: lr.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
	}
	if markdown {
		md, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
		)
		if err != nil {
			return nil, err
		}
		r.markdown = md
	}
	return r, nil
}

func (r *styledRenderer) Category(c model.Category) string {
	return r.tag.Render("[Categoria: " + strings.ToUpper(c.String()) + "]")
}

func (r *styledRenderer) Reply(text string) string {
	body := text
	if r.markdown != nil {
		if out, err := r.markdown.Render(text); err == nil {
			body = strings.TrimSpace(out)
		}
	}
	return r.label.Render("Assistente:") + " " + body
}
