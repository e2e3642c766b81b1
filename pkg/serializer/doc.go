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

// Package serializer provides encoding and decoding of cookbook artifacts in multiple formats.
//
// # Overview
//
// The serializer package handles conversion between cookbook data structures
// (plans, run reports, validation results) and various output formats including
// JSON, YAML, and human-readable tables. It supports both encoding (writing
// data) and decoding (reading data) operations with automatic format detection.
//
// # Supported Formats
//
// JSON:
//   - Machine-parseable, compact representation
//   - Suitable for API responses and programmatic consumption
//   - Standard encoding/json package
//
// YAML:
//   - Human-readable with preserved structure
//   - Suitable for configuration files and version control
//   - gopkg.in/yaml.v3 package
//
// Table:
//   - Flattened key/value text representation
//   - Suitable for terminal/console viewing
//   - Read-only (no deserialization support)
//
// # Usage - Encoding
//
// Write to a file, falling back to stdout when the path is empty:
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatYAML, path)
//	defer w.Close()
//
//	if err := w.Serialize(plan); err != nil {
//	    return err
//	}
//
// # Usage - Decoding
//
// Read a typed artifact from a file or HTTP URL in one call:
//
//	p, err := serializer.FromFile[plan.Plan]("plan.yaml")
//	if err != nil {
//	    return err
//	}
//
// Read with a custom io.Reader:
//
//	r, err := serializer.NewReader(serializer.FormatYAML, strings.NewReader(data))
//	if err != nil {
//	    return err
//	}
//
//	var def recipe.Definition
//	if err := r.Deserialize(&def); err != nil {
//	    return err
//	}
//
// # Format Detection
//
// File extension-based detection:
//   - .json → JSON
//   - .yaml, .yml → YAML
//   - .table, .txt → Table
//   - Other → JSON (default)
//
// # Resource Management
//
// Always close writers and readers that manage files:
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatJSON, "report.json")
//	defer w.Close() // Required for file resources
//
// Stdout-backed writers don't require closing but Close() is safe to call.
//
// # Error Handling
//
// Errors are returned when:
//   - Format is unknown or unsupported
//   - File cannot be opened or created
//   - Data cannot be marshaled/unmarshaled
//   - Table format used for deserialization
//
// # Integration
//
// Used throughout the cookbook tools for data I/O:
//   - pkg/cli - Command output formatting
//   - pkg/api - HTTP response encoding
//   - pkg/batch - Run report output
package serializer
