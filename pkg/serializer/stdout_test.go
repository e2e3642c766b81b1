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
	"bytes"
	"encoding/json"
	"io"
	"os"
	"testing"
)

func TestStdoutSerializer_Serialize(t *testing.T) {
	// Capture stdout
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	defer func() {
		os.Stdout = oldStdout
	}()

	serializer := &StdoutSerializer{}
	data := map[string]any{
		"recipe": "base",
		"count":  42,
	}

	err := serializer.Serialize(data)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	// Close writer and read captured output
	w.Close()
	var buf bytes.Buffer
	io.Copy(&buf, r)

	// Verify it's valid JSON
	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("failed to unmarshal output: %v", err)
	}

	if result["recipe"] != "base" {
		t.Errorf("expected recipe=base, got %v", result["recipe"])
	}
}

func TestStdoutSerializer_SerializeUnmarshalable(t *testing.T) {
	serializer := &StdoutSerializer{}

	// Channels cannot be marshaled to JSON
	err := serializer.Serialize(make(chan int))
	if err == nil {
		t.Error("expected error for unmarshalable value")
	}
}
