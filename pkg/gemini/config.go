package gemini

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment variables read by EnvOptions.
const (
	EnvAPIKey                 = "GEMINI_API_KEY"
	EnvModel                  = "GEMINI_MODEL"
	EnvBaseURL                = "GEMINI_BASE_URL"
	EnvUpstreamTimeoutSeconds = "UPSTREAM_TIMEOUT_SECONDS"
)

// EnvOptions returns client options from the environment. Unset variables
// leave the defaults in place; an invalid timeout is logged and ignored.
func EnvOptions() []Option {
	opts := []Option{
		WithAPIKey(os.Getenv(EnvAPIKey)),
		WithModel(os.Getenv(EnvModel)),
		WithBaseURL(os.Getenv(EnvBaseURL)),
	}

	if v := strings.TrimSpace(os.Getenv(EnvUpstreamTimeoutSeconds)); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil || seconds <= 0 {
			slog.Warn("ignoring invalid upstream timeout", "env", EnvUpstreamTimeoutSeconds, "value", v)
		} else {
			opts = append(opts, WithTimeout(time.Duration(seconds)*time.Second))
		}
	}

	return opts
}
