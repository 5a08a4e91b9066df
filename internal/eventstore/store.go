// Package eventstore owns the on-disk events document. It is the only
// reader/writer of the file; all mutation goes through full load-modify-save
// cycles driven by the coordinator.
package eventstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prideworks/marquee/internal/model"
)

// CorruptError reports a file that exists but cannot be parsed. The store
// never repairs or drops data; the operator has to inspect the file.
type CorruptError struct {
	Path string
	Err  error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("events file %s is not valid JSON: %v", e.Path, e.Err)
}

func (e *CorruptError) Unwrap() error { return e.Err }

// Store reads and writes the events document at a fixed path.
type Store struct {
	path string
}

// New returns a store for the document at path. The file is not created
// until the first effective save.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the absolute path of the backing file.
func (s *Store) Path() string { return s.path }

// Load reads the current document. A missing file yields an empty document
// without creating the file. A file that exists but fails to parse yields a
// *CorruptError.
func (s *Store) Load() (*model.Document, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return model.NewDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read events file: %w", err)
	}

	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &CorruptError{Path: s.path, Err: err}
	}
	if doc.Version == "" {
		doc.Version = model.DocumentVersion
	}
	if doc.Events == nil {
		doc.Events = []*model.Event{}
	}
	return &doc, nil
}

// Save serializes the full document and atomically replaces the file
// (write-temp-then-rename), so a concurrent reader never observes a partial
// write. lastUpdated is set to the current time on every effective save; when
// the serialized document is byte-identical to what is already on disk the
// file is left untouched, so the history layer can detect the no-op.
func (s *Store) Save(doc *model.Document) error {
	if doc.Version == "" {
		doc.Version = model.DocumentVersion
	}

	candidate, err := marshalDocument(doc)
	if err != nil {
		return err
	}
	if prev, err := os.ReadFile(s.path); err == nil && bytes.Equal(prev, candidate) {
		return nil
	}

	now := time.Now().UTC()
	doc.LastUpdated = &now
	data, err := marshalDocument(doc)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create events directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".events-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace events file: %w", err)
	}
	return nil
}

func marshalDocument(doc *model.Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal events document: %w", err)
	}
	return append(data, '\n'), nil
}
