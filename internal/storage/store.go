// Package storage keeps the original bytes of uploaded documents.
package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// Store persists uploaded files under opaque keys
type Store interface {
	// Put writes data under key and returns a location string for the stored object.
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	// Get returns the bytes stored under key.
	Get(ctx context.Context, key string) ([]byte, error)
	// Delete removes the object stored under key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// NewKey builds a unique object key for an uploaded file, in the form
// <field>-<unix millis>-<random hex><ext>. The original filename only
// contributes its extension.
func NewKey(field, filename string, now time.Time) string {
	field = unsafeKeyChars.ReplaceAllString(strings.TrimSpace(field), "_")
	if field == "" {
		field = "upload"
	}
	ext := strings.ToLower(filepath.Ext(filename))
	ext = unsafeKeyChars.ReplaceAllString(ext, "")
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return fmt.Sprintf("%s-%d-%s%s", field, now.UnixMilli(), randomHex(4), ext)
}

func randomHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%0*x", n*2, time.Now().UnixNano()&0xffffffff)
	}
	return hex.EncodeToString(b)
}

// validateKey rejects keys that could escape the storage root
func validateKey(key string) error {
	if key == "" {
		return &KeyError{Key: key, Message: "key is empty"}
	}
	if strings.Contains(key, "..") || strings.ContainsAny(key, `/\`) {
		return &KeyError{Key: key, Message: "key must be a plain file name"}
	}
	return nil
}
