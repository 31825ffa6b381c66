package extraction

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractName(t *testing.T) {
	tests := []struct {
		name string
		text string
		want *string
	}{
		{name: "first line", text: "John Smith\nSoftware Engineer\njohn@mail.org", want: ptr("John Smith")},
		{name: "skips headings and titles", text: "RESUME\nSenior Developer\nJane Doe", want: ptr("Jane Doe")},
		{name: "initials", text: "J. R. Tolkien\nOxford", want: ptr("J. R. Tolkien")},
		{name: "hyphenated", text: "Mary-Jane Watson", want: ptr("Mary-Jane Watson")},
		{name: "all uppercase rejected", text: "JOHN SMITH"},
		{name: "bullet rejected", text: "- John Smith"},
		{name: "numbered rejected", text: "1 John Smith"},
		{name: "too short", text: "Al B"},
		{name: "label fallback", text: "Contact: 555\nName: Mary Johnson", want: ptr("Mary Johnson")},
		{name: "label stops at line end", text: "CURRICULUM VITAE\nName: John Smith\nPhone: 555-123-4567", want: ptr("John Smith")},
		{name: "label value on next line ignored", text: "CURRICULUM VITAE\nName:\nJohn Smith lives here"},
		{name: "label is case-insensitive", text: "FULL NAME: Ada Lovelace King", want: ptr("Ada Lovelace King")},
		{name: "empty", text: ""},
		{name: "no candidate", text: "lorem ipsum dolor sit amet"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractName(tt.text))
		})
	}
}

func TestExtractName_OnlyScansHeader(t *testing.T) {
	lines := make([]string, 0, 16)
	for i := 0; i < 15; i++ {
		lines = append(lines, "lorem ipsum dolor")
	}
	lines = append(lines, "John Smith")

	assert.Nil(t, ExtractName(strings.Join(lines, "\n")))
}

func TestExtractName_LongLineRejected(t *testing.T) {
	text := "John Smith" + strings.Repeat(" ", 60)
	// trimmed lines are what get measured
	assert.Equal(t, ptr("John Smith"), ExtractName(text))

	long := strings.Repeat("Abc ", 16) + "Def"
	assert.Nil(t, ExtractName(long))
}

func TestExtractEmail(t *testing.T) {
	tests := []struct {
		name string
		text string
		want *string
	}{
		{name: "placeholder excluded", text: "contact me at john@example.com"},
		{name: "real address", text: "reach john@realmail.org", want: ptr("john@realmail.org")},
		{name: "placeholder is case-insensitive", text: "JOHN@EXAMPLE.COM"},
		{name: "placeholder subdomain", text: "a@mail.test.com"},
		{name: "first real address wins", text: "a@sample.com b@real.io c@other.io", want: ptr("b@real.io")},
		{name: "dotted local part", text: "jane.doe@mail.ng | +234", want: ptr("jane.doe@mail.ng")},
		{name: "single character local part", text: "x@real.io", want: ptr("x@real.io")},
		{name: "lookalike domain kept", text: "john@mytest.com", want: ptr("john@mytest.com")},
		{name: "too long for storage", text: strings.Repeat("a", 60) + "@" + strings.Repeat("b", 200) + ".com"},
		{name: "long address skipped for next", text: strings.Repeat("a", 60) + "@" + strings.Repeat("b", 200) + ".com ok@real.io", want: ptr("ok@real.io")},
		{name: "no address", text: "no email here"},
		{name: "empty", text: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractEmail(tt.text))
		})
	}
}

func TestExtractPhone(t *testing.T) {
	got := ExtractPhone("call 555-123-4567")
	require.NotNil(t, got)
	assert.Len(t, PhoneDigits(*got), 10)

	assert.Nil(t, ExtractPhone("id 12345"))
	assert.Nil(t, ExtractPhone(""))

	intl := ExtractPhone("phone: +234 803 123 4567")
	require.NotNil(t, intl)
	assert.Equal(t, "+234 803 123 4567", *intl)
}

func TestPhoneDigits(t *testing.T) {
	assert.Equal(t, "2348031234567", PhoneDigits("+234 (803) 123-4567"))
	assert.Equal(t, "", PhoneDigits("none"))
}

func TestExtractEducation(t *testing.T) {
	tests := []struct {
		name string
		text string
		want *string
	}{
		{name: "degree with field", text: "BSc Computer Science from XYZ University", want: ptr("BSc Computer Science")},
		{name: "field ends at comma", text: "MSc Data Science, University of Lagos", want: ptr("MSc Data Science")},
		{name: "dotted doctorate", text: "Ph.D. Physics", want: ptr("PhD Physics")},
		{name: "keyword fallback", text: "HND, 2015", want: ptr("HND")},
		{name: "diploma is not a masters", text: "Diploma, 2012", want: ptr("Diploma")},
		{name: "word prefix is not a degree", text: "Worked at a bank in Lagos"},
		{name: "no degree", text: "self taught"},
		{name: "empty", text: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractEducation(tt.text))
		})
	}
}

func TestNormalizeDegree(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"B.Sc.", "BSc"},
		{"Bachelor's", "BSc"},
		{"BA", "BSc"},
		{"M.A.", "MSc"},
		{"Master", "MSc"},
		{"MSc", "MSc"},
		{"Ph.D", "PhD"},
		{"Doctorate", "PhD"},
		{"HND", "HND"},
		{"diploma", "Diploma"},
		{"Certificate", "Certificate"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDegree(tt.in))
		})
	}
}

func TestExtractors_NeverPanicOnArbitraryText(t *testing.T) {
	inputs := []string{
		"",
		"\n\n\n",
		"\x00\xff\xfe",
		strings.Repeat("2018 - 2022 ", 200),
		strings.Repeat("@", 500),
		"日本語のテキスト 1990 – 現在",
	}

	for _, in := range inputs {
		assert.NotPanics(t, func() {
			ExtractName(in)
			ExtractEmail(in)
			ExtractPhone(in)
			ExtractEducation(in)
			ExtractExperience(in)
			DefaultVocabulary().MatchSkills(in)
		})
	}
}
