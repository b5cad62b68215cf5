package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	errs "github.com/wordgrove/wordgrove/pkg/errors"
	"github.com/wordgrove/wordgrove/pkg/layout"
)

// =============================================================================
// Document Serialization API
// =============================================================================

// Marshal serializes a Document to pretty-printed JSON bytes.
func Marshal(d Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeTo(d, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal deserializes JSON bytes into a Document and checks the
// invariants every well-formed document satisfies.
func Unmarshal(data []byte) (Document, error) {
	return readFrom(bytes.NewReader(data))
}

// Write encodes a Document as JSON to an io.Writer.
func Write(d Document, w io.Writer) error {
	return writeTo(d, w)
}

// Read decodes a JSON document from an io.Reader.
func Read(r io.Reader) (Document, error) {
	return readFrom(r)
}

// WriteFile writes a Document to a JSON file.
// The file is created with 0644 permissions.
func WriteFile(d Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeTo(d, f)
}

// ReadFile reads and validates a Document from a JSON file.
func ReadFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Document{}, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
		}
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readFrom(f)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeTo(d Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readFrom(r io.Reader) (Document, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Document{}, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode document")
	}
	if len(d.Nodes) == 0 {
		return Document{}, errs.New(errs.ErrCodeInvalidFormat, "document has no nodes")
	}
	if _, err := layout.ParseDirection(d.Direction); err != nil {
		return Document{}, err
	}
	return d, nil
}
