// Package oci provides functionality for distributing cookbooks through OCI-compliant registries.
//
// This package enables cookbook directories to be pushed to and pulled from any
// OCI-compliant registry (Docker Hub, GHCR, ECR, local registries, etc.) using
// the ORAS (OCI Registry As Storage) library. A cookbook is packed as a single
// gzipped tar layer under an OCI 1.1 manifest, so a pull restores the exact
// directory tree that was pushed.
//
// # Overview
//
// The package provides two main operations:
//   - Push: Packs a cookbook directory and pushes it to a remote registry
//   - Pull: Fetches a cookbook artifact and restores it into a local directory
//
// ParseTarget supports CLI flags that accept either an oci:// URI or a plain
// directory path, returning a Reference that distinguishes the two.
//
// # Core Types
//
//   - PushOptions: Configuration for pushing (source dir, registry, repository, tag)
//   - PushResult: Result of a successful push (digest, reference)
//   - PullOptions: Configuration for pulling (registry, repository, tag, destination)
//   - PullResult: Result of a successful pull (digest, reference, destination)
//   - Reference: A parsed distribution target (OCI registry or local path)
//
// # Usage
//
// Push a cookbook and pull it back:
//
//	pushResult, err := oci.Push(ctx, oci.PushOptions{
//	    SourceDir:  "/path/to/cookbook",
//	    Registry:   "ghcr.io",
//	    Repository: "nvidia/cookbooks",
//	    Tag:        "v1.0.0",
//	})
//	if err != nil {
//	    return err
//	}
//
//	pullResult, err := oci.Pull(ctx, oci.PullOptions{
//	    Registry:   "ghcr.io",
//	    Repository: "nvidia/cookbooks",
//	    Tag:        "v1.0.0",
//	    DestDir:    "/path/to/restore",
//	})
//
// # Configuration
//
// PushOptions supports reproducible builds and custom metadata:
//   - ReproducibleTimestamp: Set a fixed created annotation; combined with
//     deterministic tars this makes repeated pushes of the same content
//     produce the same digest
//   - Annotations: Additional manifest annotations (see DefaultAnnotations)
//
// Both PushOptions and PullOptions support local development registries:
//   - PlainHTTP: Use HTTP instead of HTTPS
//   - InsecureTLS: Skip TLS certificate verification
//
// # Authentication
//
// The package automatically uses Docker credential helpers for authentication.
// Credentials are loaded from the standard Docker configuration (~/.docker/config.json)
// using the ORAS credentials package.
//
// # Artifact Type
//
// Artifacts are pushed with the media type "application/vnd.nvidia.cookbook.artifact".
// This custom media type identifies cookbooks and distinguishes them from
// runnable container images. Consumers that don't understand this type should
// treat the artifact as a non-executable blob.
package oci
