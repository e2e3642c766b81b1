/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package plan

import "fmt"

// Kind classifies an operation.
type Kind string

const (
	// KindEnableExtension turns an extension on.
	KindEnableExtension Kind = "enable-extension"

	// KindImportConfig writes one named configuration object.
	KindImportConfig Kind = "import-config"

	// KindRunAction runs a named post-apply action.
	KindRunAction Kind = "run-action"
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	return string(k)
}

// Operation is one atomic, idempotent step of a plan. Operations are
// ordered; later operations may depend on state established by earlier
// ones, so they must run strictly in sequence.
type Operation struct {
	// Kind says what the operation does.
	Kind Kind `json:"kind" yaml:"kind"`

	// Name is the extension, config object, or action the operation
	// targets.
	Name string `json:"name" yaml:"name"`

	// Recipe is the recipe that contributed the operation.
	Recipe string `json:"recipe" yaml:"recipe"`

	// Config is the materialized payload of an import-config
	// operation. It is captured at expansion time so plans are
	// self-contained.
	Config map[string]any `json:"config,omitempty" yaml:"config,omitempty"`

	// Args are the arguments of a run-action operation.
	Args map[string]any `json:"args,omitempty" yaml:"args,omitempty"`
}

// Key identifies the effect of an operation for idempotent collapse.
// Enabling an extension or importing a config object has the same
// effect no matter which recipe asks for it, so those keys carry only
// the target name. Actions are keyed per recipe.
func (o Operation) Key() string {
	switch o.Kind {
	case KindRunAction:
		return fmt.Sprintf("%s/%s/%s", o.Kind, o.Recipe, o.Name)
	default:
		return fmt.Sprintf("%s/%s", o.Kind, o.Name)
	}
}

// Description renders the operation for progress reporting.
func (o Operation) Description() string {
	switch o.Kind {
	case KindEnableExtension:
		return fmt.Sprintf("enable extension %s", o.Name)
	case KindImportConfig:
		return fmt.Sprintf("import config %s", o.Name)
	case KindRunAction:
		return fmt.Sprintf("run action %s", o.Name)
	default:
		return fmt.Sprintf("%s %s", o.Kind, o.Name)
	}
}
