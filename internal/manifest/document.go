package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileName is the manifest's name inside the output directory.
const FileName = "asset-manifest.json"

// Document is the public asset manifest:
//
//	{"files": {"<original>": "/<renamed>", ...}, "entrypoints": ["<renamed>", ...]}
//
// Files keeps insertion order when encoded.
type Document struct {
	Files       *Files   `json:"files"`
	Entrypoints []string `json:"entrypoints"`
}

func newDocument() *Document {
	return &Document{Files: newFiles(), Entrypoints: []string{}}
}

// Files is an insertion-ordered string map.
type Files struct {
	values map[string]string
	order  []string
}

func newFiles() *Files {
	return &Files{values: make(map[string]string)}
}

// Set records key → value; an existing key keeps its position.
func (f *Files) Set(key, value string) {
	if _, exists := f.values[key]; !exists {
		f.order = append(f.order, key)
	}
	f.values[key] = value
}

// Get returns the value stored for key.
func (f *Files) Get(key string) (string, bool) {
	v, ok := f.values[key]
	return v, ok
}

// Len returns the number of keys.
func (f *Files) Len() int { return len(f.order) }

// Keys returns the keys in insertion order.
func (f *Files) Keys() []string {
	return append([]string(nil), f.order...)
}

// MarshalJSON encodes the map as a JSON object in insertion order.
func (f *Files) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range f.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeString(&buf, k); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeString(&buf, f.values[k]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Truncate(buf.Len() - 1) // Encode appends '\n'
	return nil
}

// Encode renders the document as 2-space indented JSON without a trailing
// newline.
func (d *Document) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// WriteFile encodes d and writes it to {outDir}/asset-manifest.json.
func WriteFile(outDir string, d *Document) error {
	data, err := d.Encode()
	if err != nil {
		return err
	}
	target := filepath.Join(outDir, FileName)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", outDir, err)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}
