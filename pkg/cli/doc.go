// Package cli implements the command-line interface for the cookctl tool.
//
// # Overview
//
// The cookctl CLI applies layered site recipes from a cookbook: it loads
// recipe definitions, expands their composition into flat ordered operation
// plans, and applies those plans to site directories. It is designed for
// platform operators managing fleets of sites from a shared cookbook.
//
// # Commands
//
// apply - Apply recipes to a site:
//
//	cookctl apply -r base -r corp/blog --cookbook DIR --site DIR [--step N] [--dry-run]
//
// Expands the named recipes into one operation plan and applies it to the
// site directory, strictly in order, stopping at the first failure. The job
// position is saved under the site directory, so an interrupted apply
// re-run with the same recipes resumes where it left off.
//
// plan - Preview the operation plan:
//
//	cookctl plan -r base -r corp/blog --cookbook DIR [--output FILE]
//
// Expands the named recipes and prints the resulting flat operation plan
// without applying anything.
//
// list - List cookbook recipes:
//
//	cookctl list --cookbook DIR [--format yaml|json|table]
//
// Lists every recipe the cookbook holds with a summary of what each one
// composes.
//
// validate - Check recipes and host requirements:
//
//	cookctl validate [-r NAME | --all] --cookbook DIR [--fail-on-error]
//
// Checks that definitions parse, compositions expand without cycles, and
// declared host requirements hold on this host.
//
// cache - Manage the definition cache:
//
//	cookctl cache warm --cookbook DIR [--cache-dir DIR]
//	cookctl cache purge [--cache-dir DIR]
//
// Warms or purges the fingerprint-keyed definition cache used by commands
// run with --cache.
//
// push / pull - Move cookbooks through OCI registries:
//
//	cookctl push oci://REGISTRY/REPOSITORY[:TAG] --cookbook DIR
//	cookctl pull oci://REGISTRY/REPOSITORY[:TAG] [--output DIR]
//
// Packages a cookbook directory as an OCI artifact, or restores one.
//
// # Global Flags
//
//	--output, -o     Output file path (default: stdout)
//	--format, -t     Output format: yaml, json, table (default: yaml)
//	--log-level      Logging verbosity: debug, info, warn, error
//	--help, -h       Show command help
//	--version, -v    Show version information
//
// # Output Formats
//
// YAML (default):
//   - Human-readable, preserves structure
//   - Suitable for version control
//
// JSON:
//   - Machine-parseable, compact
//   - Suitable for programmatic consumption
//
// Table:
//   - Hierarchical text representation
//   - Suitable for terminal viewing
//
// # Usage Examples
//
// Preview what a recipe stack would do:
//
//	cookctl plan -r base -r corp/blog --cookbook ./cookbook
//
// Apply it to a site, one operation at a time:
//
//	cookctl apply -r base -r corp/blog --cookbook ./cookbook --site ./site --step 1
//
// Validate the whole cookbook in CI:
//
//	cookctl validate --all --cookbook ./cookbook --fail-on-error --format json -o result.json
//
// Ship the cookbook to a registry:
//
//	cookctl push oci://registry.example.com/platform/cookbook:v1 --cookbook ./cookbook
//
// # Environment Variables
//
//	LOG_LEVEL         Set logging verbosity (debug, info, warn, error)
//	COOKBOOK_DIR      Default cookbook directory for all commands
//	COOKCTL_CACHE     Enable the definition cache (same as --cache)
//	COOKCTL_CACHE_DIR Definition cache directory (same as --cache-dir)
//
// # Exit Codes
//
//	0  Success
//	1  General error (invalid arguments, execution failure)
//	2  Context canceled or timeout
//
// # Architecture
//
// The CLI uses the urfave/cli/v3 framework and delegates to specialized packages:
//   - pkg/recipe - Definition loading, validation, and caching
//   - pkg/plan - Composition expansion into ordered operations
//   - pkg/applier - Plan and job construction
//   - pkg/batch - Sequential, resumable job execution
//   - pkg/site - Site state store and operation targets
//   - pkg/installer - Staged install pipeline
//   - pkg/validator - Host requirement checks
//   - pkg/oci - Cookbook registry push/pull
//   - pkg/serializer - Output formatting
//   - pkg/logging - Structured logging
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/cookbook/pkg/cli.version=1.0.0'"
package cli
