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

// Package api wires the focusd HTTP service.
//
// It is a thin layer over pkg/server: it loads configuration from the
// environment (and an optional .env file), configures structured logging,
// builds the analyzer with its Gemini client and optional Redis cache, and
// registers the application routes.
//
// # Usage
//
//	func main() {
//	    if err := api.Serve(); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// # Endpoints
//
//	GET /api/analyze?food=<name>[&style=<style>]  generated answer as {"text": "..."}
//	GET /                                         single-page form
//	GET /health, /ready, /metrics                 provided by pkg/server
//
// # Configuration
//
//	GEMINI_API_KEY             credential for the Gemini API (required for answers)
//	GEMINI_MODEL               model name (default gemini-2.0-flash)
//	GEMINI_BASE_URL            API base URL
//	UPSTREAM_TIMEOUT_SECONDS   per-call upstream timeout (default 30)
//	PROMPT_STYLE               default prompt style: focus, kid, science
//	REDIS_URL                  enables the response cache, e.g. redis://localhost:6379/0
//	CACHE_TTL_SECONDS          cache entry lifetime (default 86400)
//	LOG_LEVEL                  debug, info, warn, error
//
// Server settings (PORT, RATE_LIMIT, ...) are documented in pkg/server.
package api
