package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/jonathan/applicant-selector/internal/types"
)

// Metadata describes an uploaded file independent of its extracted text
type Metadata struct {
	Filename   string          `json:"filename"`
	MediaType  types.MediaType `json:"media_type"`
	Size       int64           `json:"size"`
	Hash       string          `json:"hash"`        // SHA256 hex digest of the raw bytes
	ReceivedAt string          `json:"received_at"` // RFC3339 format
}

// NewMetadata creates a Metadata for data with the current timestamp
func NewMetadata(filename string, mediaType types.MediaType, data []byte) *Metadata {
	return &Metadata{
		Filename:   filename,
		MediaType:  mediaType,
		Size:       int64(len(data)),
		Hash:       computeHash(data),
		ReceivedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}
