package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"go.trai.ch/zerr"
)

// Index is a repository index: package records keyed by id, in insertion order.
type Index struct {
	entries []ArchiveManifest
	pos     map[string]int
}

// NewIndex creates an empty Index.
func NewIndex() *Index {
	return &Index{pos: make(map[string]int)}
}

// Add appends an entry. It reports false if an entry with the same id already exists.
func (ix *Index) Add(entry ArchiveManifest) bool {
	if _, ok := ix.pos[entry.ID]; ok {
		return false
	}
	ix.pos[entry.ID] = len(ix.entries)
	ix.entries = append(ix.entries, entry)
	return true
}

// Get returns the entry for id.
func (ix *Index) Get(id string) (ArchiveManifest, bool) {
	i, ok := ix.pos[id]
	if !ok {
		return ArchiveManifest{}, false
	}
	return ix.entries[i], true
}

// Len returns the number of entries.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// Entries returns a copy of the entries in index order.
func (ix *Index) Entries() []ArchiveManifest {
	out := make([]ArchiveManifest, len(ix.entries))
	copy(out, ix.entries)
	return out
}

// MarshalJSON encodes the index as a JSON object, keeping entry order.
func (ix *Index) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range ix.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(entry.ID)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(entry)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// DecodeIndex reads and validates a repository index.
// Every key must be a valid identifier and every value a valid repository entry.
func DecodeIndex(r io.Reader) (*Index, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, &ValidationError{Reason: fmt.Sprintf("index is not valid JSON: %v", err)}
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, &ValidationError{Reason: "index must be a JSON object"}
	}

	ix := NewIndex()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, &ValidationError{Reason: fmt.Sprintf("index is not valid JSON: %v", err)}
		}
		id, _ := tok.(string)

		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, &ValidationError{Field: id, Reason: fmt.Sprintf("index is not valid JSON: %v", err)}
		}
		raw, ok := value.(map[string]any)
		if !ok {
			return nil, &ValidationError{Field: id, Reason: "entry must be a JSON object"}
		}

		entry, err := ParseRepositoryEntry(id, raw)
		if err != nil {
			return nil, qualify(id, err)
		}
		if !ix.Add(entry) {
			return nil, &ValidationError{Field: id, Reason: "duplicate package id"}
		}
	}

	if _, err := dec.Token(); err != nil {
		return nil, &ValidationError{Reason: fmt.Sprintf("index is not valid JSON: %v", err)}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &ValidationError{Reason: "unexpected data after index object"}
	}
	return ix, nil
}

// ReadIndexFile decodes and validates the repository index at path.
func ReadIndexFile(path string) (*Index, error) {
	//nolint:gosec // path is controlled by the caller
	f, err := os.Open(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, ErrIndexReadFailed.Error()), "path", path)
	}
	defer func() { _ = f.Close() }()

	ix, err := DecodeIndex(f)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, ErrInvalidIndex.Error()), "path", path)
	}
	return ix, nil
}

// ValidateRepositoryIndexFile reports whether the file at path is a valid repository index.
func ValidateRepositoryIndexFile(path string) error {
	_, err := ReadIndexFile(path)
	return err
}

// qualify prefixes the field of a validation error with the package id it belongs to.
func qualify(id string, err error) error {
	var ve *ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	field := id
	if ve.Field != "" && ve.Field != "id" {
		field = id + "." + ve.Field
	}
	return &ValidationError{Field: field, Reason: ve.Reason}
}
