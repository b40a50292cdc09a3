package prompts

import (
	_ "embed"
	"strings"

	"github.com/Chative-triage/server/internal/agent/model"
)

var (
	//go:embed template/persona_tecnico.txt
	technicalPersona string
	//go:embed template/persona_comercial.txt
	commercialPersona string
	//go:embed template/persona_suporte.txt
	supportPersona string
	//go:embed template/persona_geral.txt
	generalPersona string
)

// Persona returns the responder system instruction for c.
// Anything outside the known set gets the general persona.
func Persona(c model.Category) string {
	var p string
	switch c {
	case model.Technical:
		p = technicalPersona
	case model.Commercial:
		p = commercialPersona
	case model.Support:
		p = supportPersona
	default:
		p = generalPersona
	}
	return strings.TrimSpace(p)
}
