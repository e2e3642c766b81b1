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
	"os"
	"path/filepath"
	"testing"
)

const ubuntuOSRelease = `PRETTY_NAME="Ubuntu 24.04.1 LTS"
NAME="Ubuntu"
VERSION_ID="24.04"
VERSION="24.04.1 LTS (Noble Numbat)"
ID=ubuntu
ID_LIKE=debian
HOME_URL="https://www.ubuntu.com/"
`

// overrideOSReleasePaths points the os-release lookup at test files and
// restores the real locations when the test finishes.
func overrideOSReleasePaths(t *testing.T, primary, fallback string) {
	t.Helper()
	origPrimary, origFallback := osReleasePrimary, osReleaseFallback
	osReleasePrimary, osReleaseFallback = primary, fallback
	t.Cleanup(func() {
		osReleasePrimary, osReleaseFallback = origPrimary, origFallback
	})
}

func writeOSRelease(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "os-release")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write os-release fixture: %v", err)
	}
	return path
}

func TestOSReleaseProperties(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist")

	t.Run("primary file", func(t *testing.T) {
		overrideOSReleasePaths(t, writeOSRelease(t, ubuntuOSRelease), missing)

		props := osReleaseProperties()
		if got := props[PropPlatformOSID]; got != "ubuntu" {
			t.Errorf("platform.os.id = %q, want %q", got, "ubuntu")
		}
		if got := props[PropPlatformOSVersion]; got != "24.04" {
			t.Errorf("platform.os.version = %q, want %q", got, "24.04")
		}
	})

	t.Run("fallback file", func(t *testing.T) {
		fallback := writeOSRelease(t, "ID=rhel\nVERSION_ID=\"9.4\"\n")
		overrideOSReleasePaths(t, missing, fallback)

		props := osReleaseProperties()
		if got := props[PropPlatformOSID]; got != "rhel" {
			t.Errorf("platform.os.id = %q, want %q", got, "rhel")
		}
		if got := props[PropPlatformOSVersion]; got != "9.4" {
			t.Errorf("platform.os.version = %q, want %q", got, "9.4")
		}
	})

	t.Run("no file on host", func(t *testing.T) {
		overrideOSReleasePaths(t, missing, missing)

		if props := osReleaseProperties(); len(props) != 0 {
			t.Errorf("expected no properties, got %v", props)
		}
	})

	t.Run("rolling release without version", func(t *testing.T) {
		overrideOSReleasePaths(t, writeOSRelease(t, "ID=arch\n"), missing)

		props := osReleaseProperties()
		if got := props[PropPlatformOSID]; got != "arch" {
			t.Errorf("platform.os.id = %q, want %q", got, "arch")
		}
		if _, ok := props[PropPlatformOSVersion]; ok {
			t.Error("platform.os.version should be absent without VERSION_ID")
		}
	})
}

func TestHostProperties_IncludesOSRelease(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist")
	overrideOSReleasePaths(t, writeOSRelease(t, ubuntuOSRelease), missing)

	props := HostProperties("0.2.0")
	if got := props[PropCookctl]; got != "0.2.0" {
		t.Errorf("cookctl = %q, want %q", got, "0.2.0")
	}
	if got := props[PropPlatformOSID]; got != "ubuntu" {
		t.Errorf("platform.os.id = %q, want %q", got, "ubuntu")
	}
}

func TestParseOSRelease(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    map[string]string
	}{
		{
			name:    "double quoted values",
			content: `NAME="Ubuntu"`,
			want:    map[string]string{"NAME": "Ubuntu"},
		},
		{
			name:    "single quoted values",
			content: `NAME='SLES'`,
			want:    map[string]string{"NAME": "SLES"},
		},
		{
			name:    "unquoted values",
			content: "ID=debian",
			want:    map[string]string{"ID": "debian"},
		},
		{
			name:    "comments and blank lines skipped",
			content: "# managed by the image builder\n\nID=ubuntu\n",
			want:    map[string]string{"ID": "ubuntu"},
		},
		{
			name:    "empty values skipped",
			content: "ID=\nVERSION_ID=\"\"\nNAME=Ubuntu\n",
			want:    map[string]string{"NAME": "Ubuntu"},
		},
		{
			name:    "lines without separator skipped",
			content: "garbage line\nID=ubuntu\n",
			want:    map[string]string{"ID": "ubuntu"},
		},
		{
			name:    "surrounding whitespace trimmed",
			content: "  ID = ubuntu \n",
			want:    map[string]string{"ID": "ubuntu"},
		},
		{
			name:    "empty content",
			content: "",
			want:    map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseOSRelease(tt.content)
			if len(got) != len(tt.want) {
				t.Fatalf("parsed %d fields, want %d: %v", len(got), len(tt.want), got)
			}
			for k, want := range tt.want {
				if got[k] != want {
					t.Errorf("%s = %q, want %q", k, got[k], want)
				}
			}
		})
	}
}
