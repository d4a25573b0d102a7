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

// Package analyzer answers "what is the single most basic health benefit of
// this food" by turning a food name into a prompt and asking a text
// generator for the answer.
//
// Service holds the transport-free logic: input normalization, prompt
// selection, the optional response cache and the generator call. Handler
// exposes it over HTTP:
//
//	GET /api/analyze?food=kale&style=kid
//
//	200 {"text": "..."}
//	400 {"error": "...", "code": "INVALID_REQUEST", ...}
//	500 {"error": "Missing GEMINI_API_KEY", "code": "CONFIGURATION_ERROR", ...}
//	502 {"error": "Failed to generate a response", "code": "UPSTREAM_ERROR", ...}
//	504 {"error": "Failed to generate a response", "code": "TIMEOUT", ...}
//
// An empty food falls back to DefaultFood. Upstream error details are
// logged and never returned to the caller.
package analyzer
