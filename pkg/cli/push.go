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

func pushCmd() *cli.Command {
	return &cli.Command{
		Name:                  "push",
		EnableShellCompletion: true,
		Usage:                 "Push a cookbook to an OCI registry",
		ArgsUsage:             "oci://REGISTRY/REPOSITORY[:TAG]",
		Description: `Packages the cookbook directory as an OCI artifact and pushes it to
the given registry reference. Without a tag the artifact is tagged
with this binary's version.

# Examples

Push a cookbook:
  cookctl push oci://registry.example.com/platform/cookbook:v1 --cookbook ./cookbook

Push a single recipe directory:
  cookctl push oci://registry.example.com/platform/blog --cookbook ./cookbook --recipe corp/blog

Push to a local registry over plain HTTP:
  cookctl push oci://localhost:5000/cookbook --plain-http`,
		Flags: []cli.Flag{
			cookbookFlag,
			&cli.StringFlag{
				Name:  "recipe",
				Usage: "Limit the push to a single recipe directory",
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
				return fmt.Errorf("a push target is required (format: %sREGISTRY/REPOSITORY[:TAG])", oci.URIScheme)
			}
			ref, err := oci.ParseTarget(target)
			if err != nil {
				return err
			}
			if !ref.IsOCI {
				return fmt.Errorf("push target must be an %s reference, got %q", oci.URIScheme, target)
			}
			tag := ref.Tag
			if tag == "" {
				tag = version
			}

			ctx, cancel := context.WithTimeout(ctx, defaults.RegistryPushTimeout)
			defer cancel()

			dir := cmd.String("cookbook")
			slog.Info("pushing cookbook",
				"reference", ref.WithTag(tag).String(),
				"dir", dir)

			res, err := oci.Push(ctx, oci.PushOptions{
				SourceDir:   dir,
				Registry:    ref.Registry,
				Repository:  ref.Repository,
				Tag:         tag,
				SubDir:      cmd.String("recipe"),
				PlainHTTP:   cmd.Bool("plain-http"),
				InsecureTLS: cmd.Bool("insecure-tls"),
				Annotations: oci.DefaultAnnotations(version),
			})
			if err != nil {
				return err
			}

			fmt.Printf("pushed %s\n  digest: %s\n", res.Reference, res.Digest)
			return nil
		},
	}
}
