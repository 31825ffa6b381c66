// Package extraction provides heuristic field extractors that turn resume text into a structured profile.
package extraction

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/applicant-selector/internal/schemas"
)

// defaultNameSkipWords are substrings that disqualify a line from being read as a name
var defaultNameSkipWords = []string{
	"resume", "cv", "curriculum", "vitae", "results", "oriented",
	"professional", "experience", "summary", "objective", "profile",
	"headline", "contact", "about", "technical", "support", "engineer",
	"developer", "manager", "specialist", "analyst", "consultant",
	"coordinator", "administrator", "director", "senior", "junior",
	"lead", "principal", "staff", "associate", "key", "achievements",
	"education", "skills", "work", "employment",
}

// defaultSkills is the keyword vocabulary matched against resume text
var defaultSkills = []string{
	"JavaScript", "Python", "Java", "C++", "C#", "PHP", "Ruby", "Go", "Rust",
	"TypeScript", "Swift", "Kotlin", "Dart", "Scala", "R", "PowerShell",
	"React", "Angular", "Vue.js", "Node.js", "Express", "Django", "Flask",
	"Spring Boot", "Laravel", "HTML", "CSS", "SASS", "Tailwind CSS",
	"React Native", "Flutter", "Android", "iOS",
	"SQL", "MySQL", "PostgreSQL", "MongoDB", "Redis", "Oracle", "SharePoint",
	"AWS", "Azure", "GCP", "Docker", "Kubernetes", "Jenkins", "CI/CD",
	"Terraform", "DevOps", "Linux", "Git", "Active Directory", "Exchange",
	"Machine Learning", "Deep Learning", "TensorFlow", "PyTorch",
	"Pandas", "NumPy", "Data Analysis", "Data Science", "NLP",
	"Agile", "Scrum", "REST API", "GraphQL", "Microservices",
	"Blockchain", "Web3", "Solidity", "Cybersecurity", "Ethical Hacking",
	"Office 365", "Microsoft 365", "M365", "Teams", "OneDrive", "BitLocker",
	"Windows Server", "Networking", "AVAYA",
}

// defaultSemanticSkills is the candidate list sent to a remote semantic matcher
var defaultSemanticSkills = []string{
	"Python", "Machine Learning", "Data Science", "React", "AWS", "DevOps",
	"Cybersecurity", "NLP", "Docker", "SQL", "Spring Boot", "TensorFlow",
}

// defaultProfessionalPhrases mark a professional cover letter tone
var defaultProfessionalPhrases = []string{
	"i am writing", "dear", "sincerely", "regards", "position",
	"opportunity", "experience", "skills", "qualified",
}

// defaultPlaceholderDomains are email domains that never belong to a real applicant
var defaultPlaceholderDomains = []string{
	"example.com", "test.com", "sample.com", "dummy.com",
}

// VocabularyConfig is the JSON form of a vocabulary override file.
// Empty lists fall back to the built-in defaults.
type VocabularyConfig struct {
	NameSkipWords       []string `json:"name_skip_words,omitempty"`
	Skills              []string `json:"skills,omitempty"`
	SemanticSkills      []string `json:"semantic_skills,omitempty"`
	ProfessionalPhrases []string `json:"professional_phrases,omitempty"`
	PlaceholderDomains  []string `json:"placeholder_domains,omitempty"`
}

// skillTerm is a vocabulary entry with its precomputed lowercase form
type skillTerm struct {
	name  string
	lower string
}

// Vocabulary holds the word lists used by the extractors and scorers.
// A Vocabulary is immutable after construction and safe for concurrent use.
type Vocabulary struct {
	nameSkipWords       []string
	skills              []skillTerm
	semanticSkills      []string
	professionalPhrases []string
	placeholderDomains  []string
}

// NewVocabulary builds a Vocabulary from cfg, filling empty lists with defaults.
func NewVocabulary(cfg VocabularyConfig) *Vocabulary {
	v := &Vocabulary{
		nameSkipWords:       lowerAll(orDefault(cfg.NameSkipWords, defaultNameSkipWords)),
		semanticSkills:      cleanList(orDefault(cfg.SemanticSkills, defaultSemanticSkills)),
		professionalPhrases: lowerAll(orDefault(cfg.ProfessionalPhrases, defaultProfessionalPhrases)),
		placeholderDomains:  lowerAll(orDefault(cfg.PlaceholderDomains, defaultPlaceholderDomains)),
	}

	seen := make(map[string]struct{})
	for _, name := range cleanList(orDefault(cfg.Skills, defaultSkills)) {
		lower := strings.ToLower(name)
		if _, dup := seen[lower]; dup {
			continue
		}
		seen[lower] = struct{}{}
		v.skills = append(v.skills, skillTerm{name: name, lower: lower})
	}

	return v
}

// DefaultVocabulary returns the built-in vocabulary
func DefaultVocabulary() *Vocabulary {
	return NewVocabulary(VocabularyConfig{})
}

// LoadVocabulary reads a vocabulary override file, validates it against the
// vocabulary schema and merges it over the defaults.
func LoadVocabulary(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &VocabularyError{Path: path, Message: "failed to read file", Cause: err}
	}

	if err := schemas.ValidateEmbedded(schemas.VocabularySchema, string(data)); err != nil {
		return nil, &VocabularyError{Path: path, Message: "schema validation failed", Cause: err}
	}

	var cfg VocabularyConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, &VocabularyError{Path: path, Message: "failed to parse JSON", Cause: err}
	}

	return NewVocabulary(cfg), nil
}

// Skills returns the skill vocabulary in declaration order
func (v *Vocabulary) Skills() []string {
	names := make([]string, len(v.skills))
	for i, s := range v.skills {
		names[i] = s.name
	}
	return names
}

// SemanticSkills returns the candidate skill list for remote matching
func (v *Vocabulary) SemanticSkills() []string {
	return append([]string(nil), v.semanticSkills...)
}

// ProfessionalPhrases returns the lowercase professional tone phrases
func (v *Vocabulary) ProfessionalPhrases() []string {
	return append([]string(nil), v.professionalPhrases...)
}

// String summarizes the vocabulary sizes for logging
func (v *Vocabulary) String() string {
	return fmt.Sprintf("vocabulary(skip_words=%d skills=%d semantic=%d phrases=%d placeholders=%d)",
		len(v.nameSkipWords), len(v.skills), len(v.semanticSkills),
		len(v.professionalPhrases), len(v.placeholderDomains))
}

// isSkipLine reports whether lowerLine contains any name skip word
func (v *Vocabulary) isSkipLine(lowerLine string) bool {
	for _, word := range v.nameSkipWords {
		if strings.Contains(lowerLine, word) {
			return true
		}
	}
	return false
}

// isPlaceholderDomain reports whether domain is (or is a subdomain of) a placeholder domain
func (v *Vocabulary) isPlaceholderDomain(domain string) bool {
	domain = strings.ToLower(domain)
	for _, placeholder := range v.placeholderDomains {
		if domain == placeholder || strings.HasSuffix(domain, "."+placeholder) {
			return true
		}
	}
	return false
}

func orDefault(list, defaults []string) []string {
	if len(list) == 0 {
		return defaults
	}
	return list
}

func cleanList(list []string) []string {
	out := make([]string, 0, len(list))
	for _, item := range list {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func lowerAll(list []string) []string {
	out := cleanList(list)
	for i := range out {
		out[i] = strings.ToLower(out[i])
	}
	return out
}
