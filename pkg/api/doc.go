// Package api provides the HTTP API layer of the cookbook daemon.
//
// This package acts as a thin wrapper around the reusable pkg/server package,
// configuring it with application-specific routes and handlers. It exposes
// recipe discovery and plan expansion over REST. Note: the API server never
// executes plans; use the CLI to apply recipes to a site.
//
// # Usage
//
// To start the API server:
//
//	package main
//
//	import (
//	    "log"
//	    "github.com/NVIDIA/cookbook/pkg/api"
//	)
//
//	func main() {
//	    if err := api.Serve(); err != nil {
//	        log.Fatalf("server error: %v", err)
//	    }
//	}
//
// # Architecture
//
// The API layer is responsible for:
//   - Configuring structured logging with application name and version
//   - Opening the cookbook directory and the optional definition cache
//   - Setting up route handlers (e.g., /v1/recipes, /v1/plan)
//   - Delegating server lifecycle management to pkg/server
//
// The pkg/server package handles:
//   - HTTP server setup and graceful shutdown
//   - Middleware (rate limiting, logging, metrics, panic recovery)
//   - Health and readiness endpoints
//   - Prometheus metrics
//
// # Endpoints
//
// Application Endpoints (with rate limiting):
//   - GET /v1/recipes         - List the recipes the cookbook contains
//   - GET /v1/recipes/{name}  - Return the parsed definition of one recipe
//   - POST /v1/plan           - Expand requested recipes into an operation plan
//
// System Endpoints (no rate limiting):
//   - GET /health  - Health check (liveness probe)
//   - GET /ready   - Readiness check
//   - GET /metrics - Prometheus metrics
//
// # Request Body (POST /v1/plan)
//
// POST requests accept the recipe list in the request body. Supports both
// JSON (application/json) and YAML (application/x-yaml) formats.
//
// Example request body:
//
//	recipes:
//	  - base
//	  - corp/blog
//
// Example curl command:
//
//	curl -X POST http://localhost:8080/v1/plan \
//	  -H "Content-Type: application/json" \
//	  -d '{"recipes": ["base", "corp/blog"]}'
//
// The response is a Plan artifact: the requested recipe names plus the
// flat, ordered operation list they expand to. Cycles in recipe
// composition are rejected with a 422 and the offending chain.
//
// # Configuration
//
// The server is configured via environment variables:
//   - PORT: HTTP server port (default: 8080)
//   - LOG_LEVEL: Logging level (debug, info, warn, error)
//   - COOKBOOK_DIR: Cookbook directory to serve (default: current directory)
//   - COOKBOOK_CACHE_DIR: Enable the definition cache in this directory
//
// Version information is set at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/cookbook/pkg/api.version=1.0.0'"
package api
