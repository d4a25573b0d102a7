// Package cli implements the focus command-line tool.
//
// # Commands
//
// analyze - Get the most basic health benefit of a food:
//
//	focus analyze --food kale [--style focus|kid|science] [--server URL | --direct]
//	              [--format text|json|yaml] [--output FILE]
//
// By default the request goes to a focusd server (--server, or FOCUS_SERVER,
// default http://localhost:8080). With --direct the Gemini API is called
// in-process and GEMINI_API_KEY must be set in the environment or in a .env
// file in the working directory.
//
// prompt - Print the prompt that would be sent:
//
//	focus prompt --food kale --style science
//
// styles - List the supported prompt styles.
//
// # Global Flags
//
//	--log-level    Log level: debug, info, warn, error (env LOG_LEVEL)
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// # Output Formats
//
// text (default) prints only the answer. json and yaml print the full result
// including the normalized food, the style and whether the answer was cached.
package cli
