package store

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

// A persisted canvas snapshot. The collection is append-only: every
// save is an independent document, not a new version of an old one.
type Document struct {
	ID        string    `json:"id"`
	Image     []byte    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// The document store consumed by the persistence bridge
type Store interface {
	// Appends a new document holding the encoded image payload
	Create(image []byte) (*Document, error)

	// Returns all documents in creation order
	ListAll() ([]Document, error)
}

const dataURIPrefix = "data:image/png;base64,"

// Wraps a PNG payload as a data URI for transport in JSON bodies
func EncodeDataURI(image []byte) string {
	return dataURIPrefix + base64.StdEncoding.EncodeToString(image)
}

// Unwraps a data URI back to the raw payload. Bare base64 without the
// URI prefix is accepted too.
func DecodeDataURI(s string) ([]byte, error) {
	if idx := strings.Index(s, ","); idx >= 0 && strings.HasPrefix(s, "data:") {
		s = s[idx+1:]
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid image payload: %w", err)
	}
	return data, nil
}
