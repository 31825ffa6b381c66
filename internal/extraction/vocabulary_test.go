package extraction

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/applicant-selector/internal/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultVocabulary(t *testing.T) {
	v := DefaultVocabulary()

	assert.Len(t, v.SemanticSkills(), 12)
	assert.Len(t, v.ProfessionalPhrases(), 9)
	assert.Contains(t, v.Skills(), "Spring Boot")
	assert.Contains(t, v.String(), "semantic=12")
}

func TestVocabulary_AccessorsReturnCopies(t *testing.T) {
	v := DefaultVocabulary()

	skills := v.Skills()
	skills[0] = "mutated"
	assert.NotEqual(t, "mutated", v.Skills()[0])

	semantic := v.SemanticSkills()
	semantic[0] = "mutated"
	assert.NotEqual(t, "mutated", v.SemanticSkills()[0])
}

func TestNewVocabulary_Overrides(t *testing.T) {
	v := NewVocabulary(VocabularyConfig{
		Skills:             []string{"Go", "go", " ", "Elixir"},
		PlaceholderDomains: []string{"Invalid.Org"},
	})

	assert.Equal(t, []string{"Go", "Elixir"}, v.Skills())
	assert.Equal(t, []string{"Elixir"}, v.MatchSkills("elixir and python"))
	assert.Nil(t, v.ExtractEmail("a@invalid.org"))
	assert.Equal(t, ptr("a@example.com"), v.ExtractEmail("a@example.com"))
	// unset lists keep their defaults
	assert.Len(t, v.SemanticSkills(), 12)
}

func TestLoadVocabulary(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vocabulary.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"skills": ["Haskell", "OCaml"]}`), 0644))

	v, err := LoadVocabulary(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Haskell", "OCaml"}, v.Skills())
}

func TestLoadVocabulary_Errors(t *testing.T) {
	dir := t.TempDir()

	invalid := filepath.Join(dir, "invalid.json")
	require.NoError(t, os.WriteFile(invalid, []byte(`{"skills": "Haskell"}`), 0644))

	_, err := LoadVocabulary(invalid)
	require.Error(t, err)
	var vocabErr *VocabularyError
	require.True(t, errors.As(err, &vocabErr))
	assert.Equal(t, invalid, vocabErr.Path)
	var validationErr *schemas.ValidationError
	assert.True(t, errors.As(err, &validationErr))

	_, err = LoadVocabulary(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
