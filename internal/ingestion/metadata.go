package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"strings"
	"time"
)

// Metadata describes an ingested resume file
type Metadata struct {
	Filename  string `json:"filename"`
	FileType  string `json:"file_type"`
	Timestamp string `json:"timestamp"` // RFC3339 format
	Hash      string `json:"hash"`      // SHA256 hex digest of the cleaned text
	Chars     int    `json:"chars"`
}

// NewMetadata creates a new Metadata instance with current timestamp
func NewMetadata(content string, filename string) *Metadata {
	m := &Metadata{
		FileType:  strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), "."),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      ComputeHash(content),
		Chars:     len([]rune(content)),
	}
	if filename != "" {
		m.Filename = filepath.Base(filename)
	}
	return m
}

// ComputeHash computes SHA256 hash of content and returns hex string
func ComputeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
