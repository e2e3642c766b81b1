// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package defaults

import "time"

// Loader timeouts for reading and parsing recipe definitions.
const (
	// LoadTimeout is the default timeout for loading a single recipe.
	// Loads should respect parent context deadlines when shorter.
	LoadTimeout = 10 * time.Second

	// ExpandTimeout is the timeout for expanding a full recipe list,
	// including every composed sub-recipe and its config payloads.
	ExpandTimeout = 30 * time.Second
)

// Handler timeouts for HTTP request processing.
const (
	// RecipeHandlerTimeout is the timeout for recipe read requests.
	RecipeHandlerTimeout = 30 * time.Second

	// PlanHandlerTimeout is the timeout for plan expansion requests.
	// Should be more than ExpandTimeout to allow error handling.
	PlanHandlerTimeout = 35 * time.Second
)

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading request headers.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = 30 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)

// Registry timeouts for OCI push and pull operations.
const (
	// RegistryPushTimeout is the timeout for pushing a cookbook artifact.
	RegistryPushTimeout = 5 * time.Minute

	// RegistryPullTimeout is the timeout for pulling a cookbook artifact.
	RegistryPullTimeout = 5 * time.Minute
)

// HTTP client timeouts for outbound requests, such as remote plan files.
const (
	// HTTPClientTimeout is the default total timeout for HTTP requests.
	HTTPClientTimeout = 30 * time.Second

	// HTTPConnectTimeout is the timeout for establishing connections.
	HTTPConnectTimeout = 5 * time.Second

	// HTTPTLSHandshakeTimeout is the timeout for TLS handshake.
	HTTPTLSHandshakeTimeout = 5 * time.Second

	// HTTPResponseHeaderTimeout is the timeout for reading response headers.
	HTTPResponseHeaderTimeout = 10 * time.Second

	// HTTPIdleConnTimeout is the timeout for idle connections in the pool.
	HTTPIdleConnTimeout = 90 * time.Second

	// HTTPKeepAlive is the keep-alive duration for connections.
	HTTPKeepAlive = 30 * time.Second
)

// CLI timeouts for command-line operations.
const (
	// CLIApplyTimeout is the default timeout for a full apply run.
	CLIApplyTimeout = 10 * time.Minute

	// CLIPlanTimeout is the default timeout for plan and validate runs.
	CLIPlanTimeout = 1 * time.Minute
)
