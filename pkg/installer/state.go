/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package installer

// InstallState is the host-provided context an install pipeline runs
// under. Stages read it; the pipeline never mutates it.
type InstallState struct {
	// SiteName is the human-chosen name of the site being installed.
	SiteName string `json:"siteName" yaml:"siteName"`

	// Recipes are the recipe names chosen for this install, in apply
	// order.
	Recipes []string `json:"recipes" yaml:"recipes"`

	// Interactive reports whether a human is driving the install and
	// can answer prompts.
	Interactive bool `json:"interactive" yaml:"interactive"`

	// Parameters carries any further host-specific settings.
	Parameters map[string]any `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}
