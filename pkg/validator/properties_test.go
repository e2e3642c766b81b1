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

package validator

import (
	"runtime"
	"sort"
	"testing"

	"github.com/NVIDIA/cookbook/pkg/errors"
)

func TestHostProperties(t *testing.T) {
	props := HostProperties("0.2.0")

	if got := props[PropCookctl]; got != "0.2.0" {
		t.Errorf("cookctl = %q, want %q", got, "0.2.0")
	}
	if got := props[PropPlatformOS]; got != runtime.GOOS {
		t.Errorf("platform.os = %q, want %q", got, runtime.GOOS)
	}
	if got := props[PropPlatformArch]; got != runtime.GOARCH {
		t.Errorf("platform.arch = %q, want %q", got, runtime.GOARCH)
	}
}

func TestProperties_Resolve(t *testing.T) {
	props := Properties{
		"cookctl":     "0.2.0",
		"platform.os": "linux",
	}

	tests := []struct {
		name     string
		property string
		want     string
		wantErr  bool
		wantCode errors.ErrorCode
	}{
		{name: "known tool", property: "cookctl", want: "0.2.0"},
		{name: "known platform fact", property: "platform.os", want: "linux"},
		{name: "unknown property", property: "database", wantErr: true, wantCode: errors.ErrCodeNotFound},
		{name: "empty name", property: "", wantErr: true, wantCode: errors.ErrCodeInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := props.Resolve(tt.property)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Resolve(%q) error = %v, wantErr %v", tt.property, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.HasCode(err, tt.wantCode) {
					t.Errorf("error code = %v, want %v", errors.CodeOf(err), tt.wantCode)
				}
				return
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.property, got, tt.want)
			}
		})
	}
}

func TestProperties_Merge(t *testing.T) {
	base := Properties{
		"cookctl":     "0.2.0",
		"platform.os": "linux",
	}
	overrides := Properties{
		"cookctl":  "9.9.9",
		"database": "10.4",
	}

	merged := base.Merge(overrides)

	if got := merged["cookctl"]; got != "9.9.9" {
		t.Errorf("override not applied: cookctl = %q", got)
	}
	if got := merged["platform.os"]; got != "linux" {
		t.Errorf("base value lost: platform.os = %q", got)
	}
	if got := merged["database"]; got != "10.4" {
		t.Errorf("new property missing: database = %q", got)
	}

	// Inputs stay untouched
	if base["cookctl"] != "0.2.0" {
		t.Errorf("base mutated: cookctl = %q", base["cookctl"])
	}
	if _, ok := base["database"]; ok {
		t.Error("base mutated: database added")
	}
}

func TestProperties_Names(t *testing.T) {
	props := Properties{
		"platform.os": "linux",
		"cookctl":     "0.2.0",
		"database":    "10.4",
	}

	names := props.Names()
	if len(names) != 3 {
		t.Fatalf("expected 3 names, got %d", len(names))
	}
	if !sort.StringsAreSorted(names) {
		t.Errorf("names not sorted: %v", names)
	}
}
