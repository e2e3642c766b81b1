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

// Package server provides a reusable HTTP server with the middleware stack
// shared by all cookbook services. Route handlers are injected through
// options; the server owns everything around them.
//
// # Architecture
//
// The server implements a stateless HTTP API with the following key components:
//
//   - Rate limiting using token bucket algorithm (golang.org/x/time/rate)
//   - Request ID tracking for distributed tracing
//   - API version negotiation via vendor MIME types
//   - Prometheus request metrics exposed on /metrics
//   - Panic recovery for resilience
//   - Graceful shutdown handling
//   - Health and readiness probes for Kubernetes
//
// # Usage
//
// Basic server startup:
//
//	package main
//
//	import (
//	    "context"
//	    "net/http"
//
//	    "github.com/NVIDIA/cookbook/pkg/server"
//	)
//
//	func main() {
//	    s := server.New(
//	        server.WithName("cookd"),
//	        server.WithVersion("v1.0.0"),
//	        server.WithHandler(map[string]http.HandlerFunc{
//	            "/v1/recipes": handleRecipes,
//	        }),
//	    )
//	    if err := s.Run(context.Background()); err != nil {
//	        panic(err)
//	    }
//	}
//
// Custom configuration:
//
//	cfg := server.NewConfig()
//	cfg.Port = 9090
//	cfg.RateLimit = 200  // 200 requests/sec
//	cfg.RateLimitBurst = 400
//	cfg.MaxPlanRecipes = 50
//
//	s := server.New(server.WithConfig(cfg))
//
// # Endpoints
//
// Every server exposes the following routes in addition to the injected
// handlers:
//
//	GET /        - Service index: name, version, readiness, route listing
//	GET /health  - Health check (for liveness probe), always 200 OK
//	GET /ready   - Readiness check (for readiness probe), 200 when ready, 503 when not
//	GET /metrics - Prometheus metrics
//
// Injected routes pass through the middleware chain; the system routes
// above stay bare so probes are never rate limited.
//
// # Observability
//
// Request ID Tracking:
//
//	All requests accept an optional X-Request-Id header (UUID format).
//	If not provided, the server generates one automatically.
//	The request ID is returned in the X-Request-Id response header
//	and included in all error responses for tracing.
//
// Rate Limiting:
//
//	Response headers indicate rate limit status:
//	  X-RateLimit-Limit: Total requests allowed per window
//	  X-RateLimit-Remaining: Requests remaining in current window
//	  X-RateLimit-Reset: Unix timestamp when window resets
//
//	When rate limited, returns 429 with Retry-After header.
//
// Metrics:
//
//	cookbook_http_requests_total{method,path,status}
//	cookbook_http_request_duration_seconds{method,path}
//	cookbook_http_requests_in_flight
//	cookbook_rate_limit_rejects_total
//	cookbook_panic_recoveries_total
//
// # Error Handling
//
// All errors return a consistent JSON structure:
//
//	{
//	  "code": "NOT_FOUND",
//	  "message": "recipe not found",
//	  "details": {"recipe": "wordpress"},
//	  "requestId": "550e8400-e29b-41d4-a716-446655440000",
//	  "timestamp": "2025-12-22T12:00:00Z",
//	  "retryable": false
//	}
//
// Status codes are derived from the structured error codes in
// pkg/errors:
//   - INVALID_REQUEST: Invalid request or payload (400)
//   - NOT_FOUND: Recipe or resource not found (404)
//   - METHOD_NOT_ALLOWED: Wrong HTTP method (405)
//   - MALFORMED_RECIPE, RECIPE_CYCLE: Definition cannot be processed (422)
//   - RATE_LIMIT_EXCEEDED: Too many requests (429)
//   - INTERNAL: Server error (500)
//   - SERVICE_UNAVAILABLE: Dependency unavailable (503)
//   - TIMEOUT: Upstream deadline exceeded (504)
//
// # References
//
//   - Rate limiting: https://pkg.go.dev/golang.org/x/time/rate
//   - UUID generation: https://pkg.go.dev/github.com/google/uuid
//   - Error groups: https://pkg.go.dev/golang.org/x/sync/errgroup
//   - HTTP best practices: https://datatracker.ietf.org/doc/html/rfc7807
//   - Kubernetes probes: https://kubernetes.io/docs/tasks/configure-pod-container/configure-liveness-readiness-startup-probes/
package server
