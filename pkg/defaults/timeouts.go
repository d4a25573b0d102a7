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

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading request headers.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	// Must stay above UpstreamTimeout so upstream errors can still be written.
	ServerWriteTimeout = 45 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)

// Handler limits for /api/analyze.
const (
	// AnalyzeHandlerTimeout bounds the whole analyze request including cache I/O.
	AnalyzeHandlerTimeout = 40 * time.Second

	// MaxFoodLength is the maximum accepted food name length in runes.
	MaxFoodLength = 100
)

// Upstream timeouts for Gemini calls.
const (
	// UpstreamTimeout is the default per-call timeout for generateContent.
	UpstreamTimeout = 30 * time.Second

	// UpstreamMaxResponseBytes caps how much of an upstream body is read.
	UpstreamMaxResponseBytes = 1 << 20
)

// HTTP client timeouts for outbound requests.
const (
	// HTTPClientTimeout is the default total timeout for HTTP requests.
	HTTPClientTimeout = 45 * time.Second

	// HTTPConnectTimeout is the timeout for establishing connections.
	HTTPConnectTimeout = 5 * time.Second

	// HTTPTLSHandshakeTimeout is the timeout for TLS handshake.
	HTTPTLSHandshakeTimeout = 5 * time.Second

	// HTTPResponseHeaderTimeout is the timeout for reading response headers.
	// Generation can take a while before the first byte arrives.
	HTTPResponseHeaderTimeout = 30 * time.Second

	// HTTPIdleConnTimeout is the timeout for idle connections in the pool.
	HTTPIdleConnTimeout = 90 * time.Second

	// HTTPKeepAlive is the keep-alive duration for connections.
	HTTPKeepAlive = 30 * time.Second

	// HTTPExpectContinueTimeout is the timeout for Expect: 100-continue.
	HTTPExpectContinueTimeout = 1 * time.Second
)

// Cache settings for the optional Redis response cache.
const (
	// CacheTTL is how long a generated answer is reused.
	CacheTTL = 24 * time.Hour

	// CacheConnectTimeout bounds the initial Redis ping.
	CacheConnectTimeout = 2 * time.Second

	// CacheOpTimeout bounds a single cache Get or Set.
	CacheOpTimeout = 500 * time.Millisecond
)
