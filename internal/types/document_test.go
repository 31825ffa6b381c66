package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMediaTypeFromMIME(t *testing.T) {
	tests := []struct {
		mime   string
		want   MediaType
		wantOK bool
	}{
		{"application/pdf", MediaTypePDF, true},
		{"application/msword", MediaTypeDOC, true},
		{"application/vnd.openxmlformats-officedocument.wordprocessingml.document", MediaTypeDOCX, true},
		{"text/plain; charset=utf-8", MediaTypePlainText, true},
		{"TEXT/HTML", MediaTypeHTML, true},
		{"image/png", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.mime, func(t *testing.T) {
			got, ok := MediaTypeFromMIME(tt.mime)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMediaTypeFromExtension(t *testing.T) {
	got, ok := MediaTypeFromExtension(".DOCX")
	assert.True(t, ok)
	assert.Equal(t, MediaTypeDOCX, got)

	_, ok = MediaTypeFromExtension(".exe")
	assert.False(t, ok)
}
