// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package journal holds the question/answer journal: loading and saving the
// JSON document, and the queue that decides which question is answered next.
package journal

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/pdiddy/amsa/pkg/types"
)

// Read parses the journal at path. It returns a *LoadError for a missing
// file, text that is not UTF-8, malformed JSON, or a document that fails
// validation.
func Read(path string) (*types.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	// encoding/json replaces invalid bytes with U+FFFD instead of failing.
	if !utf8.Valid(data) {
		return nil, &LoadError{Path: path, Err: errors.New("file is not valid UTF-8")}
	}

	var doc types.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("parsing JSON: %w", err)}
	}
	normalize(&doc)

	if err := Validate(&doc); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return &doc, nil
}

// Load reads the journal at path. Any failure is logged as a warning and
// yields an empty document; Load never fails.
func Load(path string, log *zap.Logger) *types.Document {
	doc, err := Read(path)
	if err == nil {
		log.Debug("journal loaded",
			zap.String("path", path),
			zap.Int("questions", len(doc.Questions)))
		return doc
	}

	if errors.Is(err, os.ErrNotExist) {
		log.Warn(fmt.Sprintf("file %q does not exist, starting a new journal", path))
	} else {
		log.Warn("journal unreadable, starting a new journal",
			zap.String("path", path), zap.Error(err))
	}
	return types.NewDocument()
}

// Encode renders doc as indented JSON with a trailing newline. Key order
// follows the struct definitions, so output is stable across runs.
func Encode(doc *types.Document) ([]byte, error) {
	normalize(doc)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding journal: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes doc to path through a temp file in the same directory and a
// rename, so a crash leaves either the old file or the new one.
func Save(path string, doc *types.Document) error {
	data, err := Encode(doc)
	if err != nil {
		return err
	}
	return WriteFileAtomic(path, data)
}

// WriteFileAtomic writes data to path via a sibling temp file and rename.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmpFile, err := os.CreateTemp(dir, ".amsa-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.Write(data)
	if writeErr == nil {
		writeErr = tmpFile.Sync()
	}
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", path, writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// SamePath reports whether a and b name the same file. Paths that cannot
// be made absolute are compared as given.
func SamePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

// normalize replaces nil slices with empty ones. Files written by older
// versions omit "answers" on unanswered questions.
func normalize(doc *types.Document) {
	if doc.Questions == nil {
		doc.Questions = []types.Question{}
	}
	for i := range doc.Questions {
		if doc.Questions[i].Answers == nil {
			doc.Questions[i].Answers = []types.Answer{}
		}
	}
}
