/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package plan

import (
	"strings"

	"github.com/NVIDIA/cookbook/pkg/header"
	"github.com/NVIDIA/cookbook/pkg/recipe"
)

// Plan is the serializable expansion result: the recipes that were
// asked for and the flat, ordered operation list they expand to.
type Plan struct {
	header.Header `json:",inline" yaml:",inline"`

	// Recipes are the names the plan was built from, in request order.
	Recipes []string `json:"recipes" yaml:"recipes"`

	// Operations is the ordered operation list. Executing them in
	// sequence applies every recipe in Recipes.
	Operations []Operation `json:"operations" yaml:"operations"`
}

// New builds a Plan artifact. version stamps the generator version into
// the header metadata.
func New(version string, recipes []string, ops []Operation) *Plan {
	p := &Plan{
		Recipes:    recipes,
		Operations: ops,
	}
	p.Init(header.KindPlan, recipe.APIVersion, version)
	return p
}

// Total returns the number of operations in the plan.
func (p *Plan) Total() int {
	return len(p.Operations)
}

// Title renders a human-readable batch title for the plan.
func (p *Plan) Title() string {
	if len(p.Recipes) == 0 {
		return "apply recipes"
	}
	return "apply recipes: " + strings.Join(p.Recipes, ", ")
}
