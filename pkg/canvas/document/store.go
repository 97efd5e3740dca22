package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Document Serialization API
// =============================================================================

// MarshalDocument converts a document to indented JSON bytes.
func MarshalDocument(d *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeDocumentTo(d, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteDocumentFile writes a document to a JSON file.
// The file is created with 0644 permissions.
func WriteDocumentFile(d *Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeDocumentTo(d, f)
}

// WriteDocument writes a document as JSON to an io.Writer.
// Use MarshalDocument for in-memory serialization or WriteDocumentFile for files.
func WriteDocument(d *Document, w io.Writer) error {
	return writeDocumentTo(d, w)
}

// ReadDocumentFile reads a JSON file and returns the decoded document.
func ReadDocumentFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readDocumentFrom(f)
}

// ReadDocument decodes a JSON document from an io.Reader.
// Use ReadDocumentFile for files or pass bytes.NewReader for in-memory data.
func ReadDocument(r io.Reader) (*Document, error) {
	return readDocumentFrom(r)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeDocumentTo(d *Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readDocumentFrom(r io.Reader) (*Document, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &d, nil
}
