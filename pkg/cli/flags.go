/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/cookbook/pkg/serializer"
)

// Flags shared by more than one command. Commands that need a
// different default or usage text define their own.
var (
	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output file path (default: stdout)",
	}

	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatYAML),
		Usage: fmt.Sprintf("Output format (supported values: %s)",
			strings.Join(serializer.SupportedFormats(), ", ")),
	}

	cookbookFlag = &cli.StringFlag{
		Name:    "cookbook",
		Aliases: []string{"c"},
		Value:   ".",
		Sources: cli.EnvVars("COOKBOOK_DIR"),
		Usage:   "Cookbook directory holding recipe definitions",
	}

	cacheFlag = &cli.BoolFlag{
		Name:    "cache",
		Sources: cli.EnvVars("COOKCTL_CACHE"),
		Usage:   "Cache parsed definitions keyed by content fingerprint",
	}

	cacheDirFlag = &cli.StringFlag{
		Name:    "cache-dir",
		Sources: cli.EnvVars("COOKCTL_CACHE_DIR"),
		Usage:   "Definition cache directory (default: per-user cache dir)",
	}
)
