// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeUpstream,
//	    "gemini generateContent failed",
//	    cause,
//	    map[string]any{
//	        "model":  model,
//	        "status": resp.StatusCode,
//	    },
//	)
package errors
