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

// Package defaults provides centralized configuration constants for the Focus Engine.
//
// Timeout values and request limits used across the codebase live here so
// that the server, the Gemini client and the CLI agree on them.
//
// # Categories
//
//   - Server timeouts: For HTTP server configuration
//   - Handler timeouts and limits: For /api/analyze processing
//   - Upstream timeouts: For outbound Gemini calls
//   - HTTP client timeouts: For the CLI's outbound requests
//   - Cache: For the optional Redis response cache
//
// # Usage
//
//	import "github.com/focusengine/dietitian-focus/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.UpstreamTimeout)
//	defer cancel()
package defaults
