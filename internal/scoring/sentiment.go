package scoring

import (
	"bufio"
	_ "embed"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"
)

//go:embed lexicon.tsv
var defaultLexicon string

// negations flip the sign of the next scored word
var negations = map[string]struct{}{
	"not": {}, "no": {}, "never": {}, "none": {}, "nor": {}, "without": {},
	"cannot": {}, "can't": {}, "don't": {}, "doesn't": {}, "didn't": {},
	"isn't": {}, "wasn't": {}, "won't": {}, "wouldn't": {},
}

// Analyzer estimates the polarity of a text
type Analyzer interface {
	Tokenize(text string) []string
	Polarity(tokens []string) float64
}

// LexiconAnalyzer scores tokens against an AFINN-style word list in the
// range -5..5. Words and lexicon entries are compared by their English
// (Porter2) stem. Polarity is the summed score divided by the token count.
type LexiconAnalyzer struct {
	scores map[string]int
}

// NewLexiconAnalyzer returns an analyzer over the embedded lexicon
func NewLexiconAnalyzer() *LexiconAnalyzer {
	a, err := ParseLexicon(defaultLexicon)
	if err != nil {
		panic(fmt.Sprintf("embedded lexicon: %v", err))
	}
	return a
}

// ParseLexicon builds an analyzer from tab-separated "word<TAB>score" lines.
// When two words share a stem the first entry wins.
func ParseLexicon(tsv string) (*LexiconAnalyzer, error) {
	scores := make(map[string]int)

	scanner := bufio.NewScanner(strings.NewReader(tsv))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		word, value, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, fmt.Errorf("line %d: expected word and score separated by a tab", lineNo)
		}
		score, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid score %q: %w", lineNo, value, err)
		}

		stem := stemWord(strings.ToLower(strings.TrimSpace(word)))
		if _, exists := scores[stem]; !exists {
			scores[stem] = score
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read lexicon: %w", err)
	}

	return &LexiconAnalyzer{scores: scores}, nil
}

// Tokenize lowercases text and splits it into words. Apostrophes inside a
// word are kept so that contractions like "don't" survive.
func (a *LexiconAnalyzer) Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})

	tokens := fields[:0]
	for _, f := range fields {
		if f = strings.Trim(f, "'"); f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// Polarity returns the average lexicon score per token, 0 for no tokens
func (a *LexiconAnalyzer) Polarity(tokens []string) float64 {
	if len(tokens) == 0 {
		return 0
	}

	total := 0
	negate := false
	for _, token := range tokens {
		if _, ok := negations[token]; ok {
			negate = true
			continue
		}
		score, ok := a.scores[stemWord(token)]
		if !ok {
			continue
		}
		if negate {
			score = -score
			negate = false
		}
		total += score
	}

	return float64(total) / float64(len(tokens))
}

func stemWord(word string) string {
	return english.Stem(word, false)
}
