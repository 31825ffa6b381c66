// Package prompts renders the LLM prompt templates used by the skill matchers.
// Templates live in matching.json and are parsed once on first use.
package prompts

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"text/template"
)

// SkillMatch asks which candidate skills a resume demonstrates.
// Data keys: Candidates, Document.
const SkillMatch = "skill-match"

//go:embed matching.json
var matchingJSON []byte

var templates = sync.OnceValues(func() (map[string]*template.Template, error) {
	return parseTemplates(matchingJSON)
})

// Render fills the template stored under key. Every placeholder the template
// references must be present in data.
func Render(key string, data map[string]string) (string, error) {
	set, err := templates()
	if err != nil {
		return "", err
	}

	tmpl, ok := set[key]
	if !ok {
		return "", fmt.Errorf("prompt %q not found", key)
	}

	var out strings.Builder
	if err := tmpl.Execute(&out, data); err != nil {
		return "", fmt.Errorf("failed to render prompt %q: %w", key, err)
	}
	return out.String(), nil
}

// MustRender is Render for prompts whose data is fixed by the caller; it
// panics on error.
func MustRender(key string, data map[string]string) string {
	prompt, err := Render(key, data)
	if err != nil {
		panic(err)
	}
	return prompt
}

func parseTemplates(raw []byte) (map[string]*template.Template, error) {
	var sources map[string]string
	if err := json.Unmarshal(raw, &sources); err != nil {
		return nil, fmt.Errorf("failed to parse prompt templates: %w", err)
	}

	keys := make([]string, 0, len(sources))
	for key := range sources {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	set := make(map[string]*template.Template, len(sources))
	for _, key := range keys {
		tmpl, err := template.New(key).Option("missingkey=error").Parse(sources[key])
		if err != nil {
			return nil, fmt.Errorf("failed to parse prompt %q: %w", key, err)
		}
		set[key] = tmpl
	}
	return set, nil
}
