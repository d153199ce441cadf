// Package records defines the persisted translation record and its
// JSON corpus file format.
package records

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Entry is one translation record. Entries are created by extraction;
// translators and external tools fill Translation and move Stage.
// Entries are never deleted, only superseded by re-extraction.
type Entry struct {
	// Key is the lowercase hex digest derived from the entry's identity
	// and original text.
	Key string `json:"key"`
	// Original is the extracted source text.
	Original string `json:"original"`
	// Translation is the translated text; empty means untranslated.
	Translation string `json:"translation"`
	// Stage is the workflow/review marker, opaque to this tool.
	Stage int `json:"stage"`
	// Context is the encoded contextkey.Key wire string.
	Context string `json:"context"`
}

// Translated reports whether the entry carries a usable translation.
func (e Entry) Translated() bool {
	return e.Translation != ""
}

// Load reads a JSON corpus file.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse corpus %s: %w", path, err)
	}
	return entries, nil
}

// Save writes entries as an indented JSON array, creating parent
// directories as needed. Non-ASCII text is written unescaped so corpora
// stay reviewable.
func Save(path string, entries []Entry) error {
	data, err := Encode(entries)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create corpus directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write corpus: %w", err)
	}
	return nil
}

// Encode serializes entries in the corpus file format.
func Encode(entries []Entry) ([]byte, error) {
	if entries == nil {
		entries = []Entry{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(entries); err != nil {
		return nil, fmt.Errorf("encode corpus: %w", err)
	}
	return buf.Bytes(), nil
}
