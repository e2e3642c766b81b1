/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/cookbook/pkg/defaults"
	"github.com/NVIDIA/cookbook/pkg/oci"
)

func pullCmd() *cli.Command {
	return &cli.Command{
		Name:                  "pull",
		EnableShellCompletion: true,
		Usage:                 "Pull a cookbook from an OCI registry",
		ArgsUsage:             "oci://REGISTRY/REPOSITORY[:TAG]",
		Description: `Pulls a cookbook artifact from the given registry reference and
restores it into a local directory. Without a tag, "latest" is pulled.

# Examples

Pull a cookbook into the current directory:
  cookctl pull oci://registry.example.com/platform/cookbook:v1

Pull into a specific directory:
  cookctl pull oci://registry.example.com/platform/cookbook -o ./cookbook`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   ".",
				Usage:   "Directory the cookbook is restored into",
			},
			&cli.BoolFlag{
				Name:  "plain-http",
				Usage: "Use plain HTTP instead of HTTPS",
			},
			&cli.BoolFlag{
				Name:  "insecure-tls",
				Usage: "Skip TLS certificate verification",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			target := cmd.Args().First()
			if target == "" {
				return fmt.Errorf("a pull target is required (format: %sREGISTRY/REPOSITORY[:TAG])", oci.URIScheme)
			}
			ref, err := oci.ParseTarget(target)
			if err != nil {
				return err
			}
			if !ref.IsOCI {
				return fmt.Errorf("pull target must be an %s reference, got %q", oci.URIScheme, target)
			}
			tag := ref.Tag
			if tag == "" {
				tag = "latest"
			}

			ctx, cancel := context.WithTimeout(ctx, defaults.RegistryPullTimeout)
			defer cancel()

			slog.Info("pulling cookbook",
				"reference", ref.WithTag(tag).String(),
				"dir", cmd.String("output"))

			res, err := oci.Pull(ctx, oci.PullOptions{
				Registry:    ref.Registry,
				Repository:  ref.Repository,
				Tag:         tag,
				DestDir:     cmd.String("output"),
				PlainHTTP:   cmd.Bool("plain-http"),
				InsecureTLS: cmd.Bool("insecure-tls"),
			})
			if err != nil {
				return err
			}

			fmt.Printf("pulled %s\n  digest: %s\n  into: %s\n", res.Reference, res.Digest, res.DestDir)
			return nil
		},
	}
}
