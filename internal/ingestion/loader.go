// Package ingestion turns uploaded documents into plain text.
package ingestion

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/applicant-selector/internal/types"
)

// genericMIMETypes carry no format information; the extension decides instead
var genericMIMETypes = map[string]bool{
	"":                         true,
	"application/octet-stream": true,
	"binary/octet-stream":      true,
}

// DetectMediaType resolves a document's media type from its MIME type,
// falling back to the filename extension when the MIME type is missing or generic.
func DetectMediaType(filename, mimeType string) (types.MediaType, error) {
	if mt, ok := types.MediaTypeFromMIME(mimeType); ok {
		return mt, nil
	}
	if !genericMIMETypes[mimeType] {
		return "", &UnsupportedTypeError{Filename: filename, MIMEType: mimeType}
	}
	if mt, ok := types.MediaTypeFromExtension(filepath.Ext(filename)); ok {
		return mt, nil
	}
	return "", &UnsupportedTypeError{Filename: filename, MIMEType: mimeType}
}

// Load extracts and cleans the text of one document
func Load(filename, mimeType string, data []byte) (*types.RawDocument, error) {
	mediaType, err := DetectMediaType(filename, mimeType)
	if err != nil {
		return nil, err
	}

	text, err := extractText(mediaType, data)
	if err != nil {
		return nil, &ExtractionError{Filename: filename, MediaType: mediaType, Cause: err}
	}

	return &types.RawDocument{
		Text:      CleanText(text),
		MediaType: mediaType,
		Filename:  filename,
	}, nil
}

// LoadFile reads a document from disk, detecting its type from the extension
func LoadFile(path string) (*types.RawDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %w", err)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return Load(filepath.Base(path), "", data)
}

func extractText(mediaType types.MediaType, data []byte) (string, error) {
	switch mediaType {
	case types.MediaTypePDF:
		return extractPDFText(data)
	case types.MediaTypeDOCX, types.MediaTypeDOC:
		// legacy .doc uploads are frequently DOCX with the old extension
		return extractDocxText(data)
	case types.MediaTypeHTML:
		return extractHTMLText(data)
	case types.MediaTypePlainText:
		return decodePlainText(data), nil
	default:
		return "", fmt.Errorf("no extractor for media type %q", mediaType)
	}
}
