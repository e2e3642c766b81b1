/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"testing"
)

func TestConstants(t *testing.T) {
	if name != "cookctl" {
		t.Errorf("name = %v, want cookctl", name)
	}
	if versionDefault != "dev" {
		t.Errorf("versionDefault = %v, want dev", versionDefault)
	}
	if version == "" {
		t.Error("version should not be empty")
	}
	if commit == "" {
		t.Error("commit should not be empty")
	}
	if date == "" {
		t.Error("date should not be empty")
	}
}

func TestRootCmd_CommandStructure(t *testing.T) {
	cmd := rootCmd()

	if cmd.Name != name {
		t.Errorf("Name = %v, want %v", cmd.Name, name)
	}
	if cmd.Usage == "" {
		t.Error("Usage should not be empty")
	}
	if cmd.Version == "" {
		t.Error("Version should not be empty")
	}
	if cmd.Before == nil {
		t.Error("Before should not be nil")
	}
	if !cmd.EnableShellCompletion {
		t.Error("shell completion should be enabled")
	}

	found := false
	for _, flag := range cmd.Flags {
		if hasName(flag, "log-level") {
			found = true
			break
		}
	}
	if !found {
		t.Error("required flag \"log-level\" not found")
	}

	wantCommands := []string{"apply", "plan", "list", "validate", "cache", "push", "pull"}
	for _, want := range wantCommands {
		found := false
		for _, sub := range cmd.Commands {
			if sub.Name == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("command %q not found", want)
		}
	}
}
