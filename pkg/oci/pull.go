/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package oci

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"
	oras "oras.land/oras-go/v2"
	"oras.land/oras-go/v2/content/file"
	"oras.land/oras-go/v2/registry/remote"

	apperrors "github.com/NVIDIA/cookbook/pkg/errors"
)

// PullOptions configures the OCI pull operation.
type PullOptions struct {
	// Registry is the OCI registry host (e.g., "ghcr.io", "localhost:5000").
	Registry string
	// Repository is the image repository path (e.g., "nvidia/cookbooks").
	Repository string
	// Tag is the image tag to pull.
	Tag string
	// DestDir is the directory the cookbook is restored into.
	// Defaults to the current directory when empty.
	DestDir string
	// PlainHTTP uses HTTP instead of HTTPS for the registry connection.
	PlainHTTP bool
	// InsecureTLS skips TLS certificate verification.
	InsecureTLS bool
}

// PullResult contains the result of a successful OCI pull.
type PullResult struct {
	// Digest is the SHA256 digest of the pulled artifact.
	Digest string
	// Reference is the full image reference (registry/repository:tag).
	Reference string
	// DestDir is the directory the cookbook was restored into.
	DestDir string
}

// Pull fetches a cookbook artifact from a registry and restores its contents
// into the destination directory.
func Pull(ctx context.Context, opts PullOptions) (*PullResult, error) {
	if opts.Tag == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "tag is required to pull a cookbook")
	}
	if err := ValidateRegistryReference(opts.Registry, opts.Repository); err != nil {
		return nil, err
	}
	if opts.DestDir == "" {
		opts.DestDir = "."
	}

	registryHost := stripProtocol(opts.Registry)
	refString := fmt.Sprintf("%s/%s:%s", registryHost, opts.Repository, opts.Tag)

	repo, err := remote.NewRepository(fmt.Sprintf("%s/%s", registryHost, opts.Repository))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to initialize remote repository", err)
	}
	repo.PlainHTTP = opts.PlainHTTP
	repo.Client = createAuthClient(opts.PlainHTTP, opts.InsecureTLS)

	desc, err := pullInto(ctx, repo, opts.Tag, opts.DestDir)
	if err != nil {
		return nil, apperrors.WrapWithContext(apperrors.ErrCodeInternal, "failed to pull cookbook from registry", err,
			map[string]any{"reference": refString})
	}

	slog.Info("cookbook pulled",
		"reference", refString,
		"digest", desc.Digest.String(),
		"dest", opts.DestDir,
	)

	return &PullResult{
		Digest:    desc.Digest.String(),
		Reference: refString,
		DestDir:   opts.DestDir,
	}, nil
}

// pullInto copies the tagged artifact from src into a file store rooted at
// destDir. The file store unpacks directory layers back onto disk.
func pullInto(ctx context.Context, src oras.ReadOnlyTarget, tag, destDir string) (ociv1.Descriptor, error) {
	absDest, err := filepath.Abs(destDir)
	if err != nil {
		return ociv1.Descriptor{}, fmt.Errorf("failed to resolve destination directory: %w", err)
	}
	if err := os.MkdirAll(absDest, 0o755); err != nil {
		return ociv1.Descriptor{}, fmt.Errorf("failed to create destination directory: %w", err)
	}

	fs, err := file.New(absDest)
	if err != nil {
		return ociv1.Descriptor{}, fmt.Errorf("failed to create file store: %w", err)
	}
	defer func() { _ = fs.Close() }()

	return oras.Copy(ctx, src, tag, fs, tag, oras.DefaultCopyOptions)
}
