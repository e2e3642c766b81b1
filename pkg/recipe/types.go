package recipe

import (
	"fmt"
	"path"
	"strings"

	"github.com/NVIDIA/cookbook/pkg/errors"
	"github.com/NVIDIA/cookbook/pkg/header"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// APIVersion is the artifact schema version accepted by the loader.
	APIVersion = "cookbook.nvidia.com/v1alpha1"

	// DefinitionFileName is the file that defines a recipe inside its
	// directory in the cookbook.
	DefinitionFileName = "recipe.yaml"
)

// Definition is a parsed recipe document. A recipe declares the
// sub-recipes it composes, the extensions it enables, the configuration
// objects it imports, and the actions it runs once everything else is
// in place.
type Definition struct {
	Kind       string   `json:"kind" yaml:"kind"`
	APIVersion string   `json:"apiVersion" yaml:"apiVersion"`
	Metadata   Metadata `json:"metadata" yaml:"metadata"`
	Spec       Spec     `json:"spec" yaml:"spec"`
}

// Metadata identifies a recipe.
type Metadata struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Spec holds the composable parts of a recipe. All lists are ordered:
// expansion preserves the order in which entries appear here.
type Spec struct {
	Recipes    []string       `json:"recipes,omitempty" yaml:"recipes,omitempty"`
	Extensions []string       `json:"extensions,omitempty" yaml:"extensions,omitempty"`
	Configs    []ConfigRef    `json:"configs,omitempty" yaml:"configs,omitempty"`
	Actions    []Action       `json:"actions,omitempty" yaml:"actions,omitempty"`
	Requires   []Requirement  `json:"requires,omitempty" yaml:"requires,omitempty"`
	Settings   map[string]any `json:"settings,omitempty" yaml:"settings,omitempty"`
}

// ConfigRef names a configuration object a recipe imports. The payload
// comes from a file next to the definition or from inline data, never
// both.
type ConfigRef struct {
	Name string         `json:"name" yaml:"name"`
	File string         `json:"file,omitempty" yaml:"file,omitempty"`
	Data map[string]any `json:"data,omitempty" yaml:"data,omitempty"`
}

// Action names a step a recipe runs after its extensions and configs
// are applied.
type Action struct {
	Name string         `json:"name" yaml:"name"`
	Args map[string]any `json:"args,omitempty" yaml:"args,omitempty"`
}

// Requirement constrains the host a recipe may be applied to, e.g.
// {Name: "platform", Value: ">= 11.1"}.
type Requirement struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

var titleCaser = cases.Title(language.English)

// DisplayName renders the recipe name for human-facing output:
// "corp/blog_stack" becomes "Blog Stack".
func (d *Definition) DisplayName() string {
	name := path.Base(d.Metadata.Name)
	name = strings.NewReplacer("_", " ", "-", " ").Replace(name)
	return titleCaser.String(name)
}

// Validate checks structural integrity of the definition. When name is
// not empty it must match the metadata name, which ties a definition to
// the directory it was loaded from.
func (d *Definition) Validate(name string) error {
	if d.Kind != header.KindRecipe.String() {
		return errors.NewWithContext(errors.ErrCodeMalformedRecipe,
			fmt.Sprintf("unexpected kind %q, want %q", d.Kind, header.KindRecipe),
			map[string]any{"recipe": name})
	}
	if d.APIVersion != APIVersion {
		return errors.NewWithContext(errors.ErrCodeMalformedRecipe,
			fmt.Sprintf("unsupported apiVersion %q, want %q", d.APIVersion, APIVersion),
			map[string]any{"recipe": name})
	}
	if d.Metadata.Name == "" {
		return errors.NewWithContext(errors.ErrCodeMalformedRecipe,
			"metadata.name is required",
			map[string]any{"recipe": name})
	}
	if name != "" && d.Metadata.Name != name {
		return errors.NewWithContext(errors.ErrCodeMalformedRecipe,
			fmt.Sprintf("metadata.name %q does not match recipe name %q", d.Metadata.Name, name),
			map[string]any{"recipe": name})
	}
	for i, sub := range d.Spec.Recipes {
		if err := ValidateName(sub); err != nil {
			return errors.WrapWithContext(errors.ErrCodeMalformedRecipe,
				fmt.Sprintf("invalid sub-recipe reference at spec.recipes[%d]", i), err,
				map[string]any{"recipe": name})
		}
	}
	for i, ext := range d.Spec.Extensions {
		if strings.TrimSpace(ext) == "" {
			return errors.NewWithContext(errors.ErrCodeMalformedRecipe,
				fmt.Sprintf("empty extension name at spec.extensions[%d]", i),
				map[string]any{"recipe": name})
		}
	}
	for i, cfg := range d.Spec.Configs {
		if err := cfg.validate(); err != nil {
			return errors.WrapWithContext(errors.ErrCodeMalformedRecipe,
				fmt.Sprintf("invalid config at spec.configs[%d]", i), err,
				map[string]any{"recipe": name})
		}
	}
	for i, act := range d.Spec.Actions {
		if strings.TrimSpace(act.Name) == "" {
			return errors.NewWithContext(errors.ErrCodeMalformedRecipe,
				fmt.Sprintf("empty action name at spec.actions[%d]", i),
				map[string]any{"recipe": name})
		}
	}
	for i, req := range d.Spec.Requires {
		if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Value) == "" {
			return errors.NewWithContext(errors.ErrCodeMalformedRecipe,
				fmt.Sprintf("requirement at spec.requires[%d] needs both name and value", i),
				map[string]any{"recipe": name})
		}
	}
	return nil
}

func (c ConfigRef) validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New(errors.ErrCodeMalformedRecipe, "config name is required")
	}
	if c.File == "" && len(c.Data) == 0 {
		return errors.New(errors.ErrCodeMalformedRecipe,
			fmt.Sprintf("config %q declares neither file nor data", c.Name))
	}
	if c.File != "" && len(c.Data) > 0 {
		return errors.New(errors.ErrCodeMalformedRecipe,
			fmt.Sprintf("config %q declares both file and data", c.Name))
	}
	if c.File != "" {
		if path.IsAbs(c.File) || strings.Contains(c.File, "..") {
			return errors.New(errors.ErrCodeMalformedRecipe,
				fmt.Sprintf("config %q file %q must be relative to the recipe directory", c.Name, c.File))
		}
	}
	return nil
}

// ValidateName rejects recipe names that are empty, absolute, or that
// could escape the cookbook root. Names are slash-separated relative
// paths, e.g. "base" or "corp/blog".
func ValidateName(name string) error {
	if name == "" {
		return errors.New(errors.ErrCodeInvalidRequest, "recipe name is empty")
	}
	if strings.Contains(name, "\\") {
		return errors.New(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("recipe name %q contains a backslash, use forward slashes", name))
	}
	if path.IsAbs(name) || strings.Contains(name, "..") {
		return errors.New(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("recipe name %q attempts path traversal", name))
	}
	if cleaned := path.Clean(name); cleaned != name {
		return errors.New(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("recipe name %q is not in canonical form, want %q", name, cleaned))
	}
	return nil
}
