package llm

import (
	"fmt"
	"strings"

	"github.com/jonathan/applicant-selector/internal/prompts"
)

// maxPromptDocument caps how much document text is sent in one prompt
const maxPromptDocument = 20000

// SkillMatchPrompt builds a prompt asking the model which of candidates the
// document demonstrates. The model must answer {"skills": [...]}.
func SkillMatchPrompt(document string, candidates []string) string {
	var list strings.Builder
	for _, skill := range candidates {
		list.WriteString(fmt.Sprintf("- %s\n", skill))
	}

	if len(document) > maxPromptDocument {
		document = document[:maxPromptDocument]
	}

	return prompts.MustRender(prompts.SkillMatch, map[string]string{
		"Candidates": list.String(),
		"Document":   document,
	})
}
