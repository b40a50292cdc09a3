package parsers

import (
	"strings"

	"github.com/Chative-triage/server/internal/agent/model"
	logx "github.com/Chative-triage/server/pkg/logger"
)

// maxErrSnippet limits how much of a rejected model answer ends up in logs.
const maxErrSnippet = 200

// ParseCategory normalises a raw classifier answer (trim, lowercase) and matches it
// exactly against the known labels. Anything else becomes model.General; it never fails.
func ParseCategory(raw string) model.Category {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if c, ok := model.ParseCategory(normalized); ok {
		return c
	}

	logx.Debug().
		Str("component", "category_parser").
		Str("raw", snippet(raw)).
		Str("fallback", model.General.String()).
		Msg("Unrecognized category label, falling back")
	return model.General
}

func snippet(s string) string {
	r := []rune(s)
	if len(r) <= maxErrSnippet {
		return s
	}
	return string(r[:maxErrSnippet]) + "..."
}
