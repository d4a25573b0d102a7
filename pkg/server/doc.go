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

// Package server provides the HTTP server shared by the focus binaries.
//
// # Architecture
//
// Route handlers passed with WithHandler are wrapped in a fixed middleware
// chain, outermost first:
//
//   - metrics: Prometheus RED metrics labeled by route pattern
//   - CORS: Access-Control-* headers for the configured origin
//   - version: X-API-Version negotiated from the Accept header
//   - request ID: X-Request-Id, generated when missing or not a UUID
//   - panic recovery: 500 with a structured error body
//   - rate limit: token bucket (golang.org/x/time/rate), 429 when empty
//   - logging: slog request start/completion
//
// System endpoints skip the chain:
//
//	GET /health   liveness, always 200 while the process runs
//	GET /ready    readiness, 503 before Start and after Shutdown
//	GET /metrics  Prometheus exposition
//
// A root handler describing the server and its routes is installed unless
// the caller registers "/" itself.
//
// # Usage
//
//	s := server.New(
//	    server.WithName("focusd"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/api/analyze": h.HandleAnalyze,
//	    }),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// # Configuration
//
// NewConfig reads PORT, RATE_LIMIT, RATE_LIMIT_BURST,
// SHUTDOWN_TIMEOUT_SECONDS and CORS_ALLOWED_ORIGIN from the environment.
//
// # Errors
//
// Handlers report failures with WriteError or WriteErrorFromErr. The body is
//
//	{"error": "...", "code": "INVALID_REQUEST", "requestId": "...",
//	 "timestamp": "...", "retryable": false}
//
// and the status follows HTTPStatusFromCode.
package server
