package types

import "strings"

// MediaType identifies the format a document was uploaded in
type MediaType string

// Supported media types
const (
	MediaTypePDF       MediaType = "pdf"
	MediaTypeDOC       MediaType = "doc"
	MediaTypeDOCX      MediaType = "docx"
	MediaTypeHTML      MediaType = "html"
	MediaTypePlainText MediaType = "plain-text"
)

// mimeTypes maps MIME types accepted at upload to media types
var mimeTypes = map[string]MediaType{
	"application/pdf":    MediaTypePDF,
	"application/msword": MediaTypeDOC,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": MediaTypeDOCX,
	"text/html":  MediaTypeHTML,
	"text/plain": MediaTypePlainText,
}

// extensions maps file extensions to media types
var extensions = map[string]MediaType{
	".pdf":  MediaTypePDF,
	".doc":  MediaTypeDOC,
	".docx": MediaTypeDOCX,
	".html": MediaTypeHTML,
	".htm":  MediaTypeHTML,
	".txt":  MediaTypePlainText,
}

// MediaTypeFromMIME resolves a MIME type (parameters allowed) to a media type.
func MediaTypeFromMIME(mime string) (MediaType, bool) {
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = mime[:i]
	}
	mt, ok := mimeTypes[strings.ToLower(strings.TrimSpace(mime))]
	return mt, ok
}

// MediaTypeFromExtension resolves a file extension such as ".pdf" to a media type.
func MediaTypeFromExtension(ext string) (MediaType, bool) {
	mt, ok := extensions[strings.ToLower(ext)]
	return mt, ok
}

// RawDocument is the plain text of one uploaded file
type RawDocument struct {
	Text      string    `json:"text"`
	MediaType MediaType `json:"media_type"`
	Filename  string    `json:"filename,omitempty"`
}
