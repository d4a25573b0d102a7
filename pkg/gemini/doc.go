// Package gemini is a small client for the Gemini generateContent REST API.
//
// It sends a single text prompt and maps the response shape
// candidates[0].content.parts[0].text back to a string. When the upstream
// returns no usable text the client returns FallbackText instead of an error.
//
// Usage:
//
//	c := gemini.NewClient(
//	    gemini.WithAPIKey(os.Getenv("GEMINI_API_KEY")),
//	    gemini.WithModel("gemini-2.0-flash"),
//	)
//	text, err := c.GenerateText(ctx, "What is the main health benefit of kale?")
//
// Errors are *errors.StructuredError values: ErrMissingAPIKey
// (CONFIGURATION_ERROR) is returned before any network I/O when no key is
// configured; transport, status and decoding failures are UPSTREAM_ERROR and
// deadline overruns are TIMEOUT. No retries are attempted.
package gemini
