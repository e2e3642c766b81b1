// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package serializer

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected Format
	}{
		{
			name:     "json lowercase",
			path:     "plan.json",
			expected: FormatJSON,
		},
		{
			name:     "json uppercase",
			path:     "PLAN.JSON",
			expected: FormatJSON,
		},
		{
			name:     "yaml extension",
			path:     "recipe.yaml",
			expected: FormatYAML,
		},
		{
			name:     "yml extension",
			path:     "recipe.yml",
			expected: FormatYAML,
		},
		{
			name:     "table extension",
			path:     "report.table",
			expected: FormatTable,
		},
		{
			name:     "txt extension",
			path:     "report.txt",
			expected: FormatTable,
		},
		{
			name:     "unknown defaults to json",
			path:     "data.bin",
			expected: FormatJSON,
		},
		{
			name:     "no extension defaults to json",
			path:     "data",
			expected: FormatJSON,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatFromPath(tt.path); got != tt.expected {
				t.Errorf("FormatFromPath(%q) = %v, want %v", tt.path, got, tt.expected)
			}
		})
	}
}

func TestNewReader(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		wantErr bool
	}{
		{name: "json ok", format: FormatJSON, wantErr: false},
		{name: "yaml ok", format: FormatYAML, wantErr: false},
		{name: "table rejected", format: FormatTable, wantErr: true},
		{name: "unknown rejected", format: Format("xml"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewReader(tt.format, strings.NewReader("{}"))
			if (err != nil) != tt.wantErr {
				t.Errorf("NewReader(%v) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
		})
	}
}

func TestReader_DeserializeJSON(t *testing.T) {
	reader, err := NewReader(FormatJSON, strings.NewReader(`{"name":"base","value":7}`))
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}

	var got testArtifact
	if err := reader.Deserialize(&got); err != nil {
		t.Fatalf("Deserialize failed: %v", err)
	}

	if got.Name != "base" || got.Value != 7 {
		t.Errorf("Unexpected data: %+v", got)
	}
}

func TestReader_DeserializeYAML(t *testing.T) {
	reader, err := NewReader(FormatYAML, strings.NewReader("name: blog\nvalue: 9\n"))
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}

	var got testArtifact
	if err := reader.Deserialize(&got); err != nil {
		t.Fatalf("Deserialize failed: %v", err)
	}

	if got.Name != "blog" || got.Value != 9 {
		t.Errorf("Unexpected data: %+v", got)
	}
}

func TestReader_DeserializeInvalidInput(t *testing.T) {
	reader, err := NewReader(FormatJSON, strings.NewReader("not json at all"))
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}

	var got testArtifact
	if err := reader.Deserialize(&got); err == nil {
		t.Error("Expected error for invalid JSON input")
	}
}

func TestReader_NilSafety(t *testing.T) {
	var reader *Reader
	if err := reader.Deserialize(&testArtifact{}); err == nil {
		t.Error("Expected error deserializing with nil reader")
	}
	if err := reader.Close(); err != nil {
		t.Errorf("Close on nil reader should not error: %v", err)
	}
}

func TestNewFileReader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "recipe.yaml")
	if err := os.WriteFile(path, []byte("name: base\nvalue: 3\n"), 0600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	reader, err := NewFileReader(FormatYAML, path)
	if err != nil {
		t.Fatalf("NewFileReader failed: %v", err)
	}
	defer reader.Close()

	var got testArtifact
	if err := reader.Deserialize(&got); err != nil {
		t.Fatalf("Deserialize failed: %v", err)
	}

	if got.Name != "base" || got.Value != 3 {
		t.Errorf("Unexpected data: %+v", got)
	}

	// Close is idempotent
	if err := reader.Close(); err != nil {
		t.Errorf("first explicit Close failed: %v", err)
	}
	if err := reader.Close(); err != nil {
		t.Errorf("second Close should be a no-op: %v", err)
	}
}

func TestNewFileReader_MissingFile(t *testing.T) {
	_, err := NewFileReader(FormatYAML, filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestNewFileReaderAuto(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.json")
	if err := os.WriteFile(path, []byte(`{"name":"news","value":11}`), 0600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	reader, err := NewFileReaderAuto(path)
	if err != nil {
		t.Fatalf("NewFileReaderAuto failed: %v", err)
	}
	defer reader.Close()

	var got testArtifact
	if err := reader.Deserialize(&got); err != nil {
		t.Fatalf("Deserialize failed: %v", err)
	}
	if got.Name != "news" {
		t.Errorf("Unexpected data: %+v", got)
	}
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "artifact.yaml")
	if err := os.WriteFile(path, []byte("name: base\nvalue: 42\n"), 0600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	got, err := FromFile[testArtifact](path)
	if err != nil {
		t.Fatalf("FromFile failed: %v", err)
	}
	if got.Name != "base" || got.Value != 42 {
		t.Errorf("Unexpected data: %+v", got)
	}
}

func TestFromFile_MissingFile(t *testing.T) {
	_, err := FromFile[testArtifact](filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestFromFile_HTTPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/x-yaml")
		_, _ = w.Write([]byte("name: remote\nvalue: 5\n"))
	}))
	defer srv.Close()

	got, err := FromFile[testArtifact](srv.URL + "/artifact.yaml")
	if err != nil {
		t.Fatalf("FromFile over HTTP failed: %v", err)
	}
	if got.Name != "remote" || got.Value != 5 {
		t.Errorf("Unexpected data: %+v", got)
	}
}
