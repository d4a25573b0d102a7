/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/focusengine/dietitian-focus/pkg/analyzer"
	"github.com/focusengine/dietitian-focus/pkg/defaults"
	"github.com/focusengine/dietitian-focus/pkg/gemini"
	"github.com/focusengine/dietitian-focus/pkg/serializer"
	"github.com/focusengine/dietitian-focus/pkg/server"
)

const (
	defaultServerURL = "http://localhost:8080"
	analyzePath      = "/api/analyze"
)

func analyzeCmd() *cli.Command {
	return &cli.Command{
		Name:                  "analyze",
		EnableShellCompletion: true,
		Usage:                 "Get the most basic health benefit of a food",
		Description: `Ask for the single most basic health benefit of a food.

By default the question goes to a running focusd server. With --direct the
Gemini API is called in-process using GEMINI_API_KEY (a .env file in the
working directory is honored).

Examples:
  focus analyze --food kale
  focus analyze --food "sweet potato" --style kid --format yaml
  focus analyze --food lentils --direct --output answer.json --format json`,
		Flags: []cli.Flag{
			foodFlag(),
			styleFlag(),
			&cli.StringFlag{
				Name:    "server",
				Usage:   "Base URL of the focusd server",
				Value:   defaultServerURL,
				Sources: cli.EnvVars("FOCUS_SERVER"),
			},
			&cli.BoolFlag{
				Name:  "direct",
				Usage: "Call the Gemini API directly instead of a focusd server",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Overall request timeout",
				Value: defaults.HTTPClientTimeout,
			},
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			food, style := cmd.String("food"), cmd.String("style")

			var res *analyzer.Result
			if cmd.Bool("direct") {
				res, err = analyzeDirect(ctx, food, style, cmd.Duration("timeout"))
			} else {
				res, err = analyzeRemote(ctx, cmd.String("server"), food, style, cmd.Duration("timeout"))
			}
			if err != nil {
				return err
			}

			return writeResult(ctx, outFormat, cmd.String("output"), res)
		},
	}
}

// analyzeDirect runs the analyzer in-process against the Gemini API.
func analyzeDirect(ctx context.Context, food, style string, timeout time.Duration) (*analyzer.Result, error) {
	opts := gemini.EnvOptions()
	if timeout > 0 {
		opts = append(opts, gemini.WithTimeout(timeout))
	}
	svc := analyzer.NewService(gemini.NewClient(opts...))

	res, err := svc.Analyze(ctx, food, style)
	if err != nil {
		return nil, fmt.Errorf("analyze %q: %w", food, err)
	}
	return res, nil
}

// analyzeRemote calls GET /api/analyze on a focusd server.
func analyzeRemote(ctx context.Context, base, food, style string, timeout time.Duration) (*analyzer.Result, error) {
	normalized, err := analyzer.NormalizeFood(food)
	if err != nil {
		return nil, err
	}

	endpoint, err := analyzeURL(base, normalized, style)
	if err != nil {
		return nil, err
	}

	reader := serializer.NewHttpReader(serializer.WithTotalTimeout(timeout))
	body, err := reader.ReadWithContext(ctx, endpoint)
	if err != nil {
		return nil, remoteError(err)
	}

	var resp analyzer.AnalyzeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("invalid response from %s: %w", base, err)
	}

	return &analyzer.Result{
		Food:  normalized,
		Style: analyzer.Style(strings.ToLower(strings.TrimSpace(style))),
		Text:  resp.Text,
	}, nil
}

func analyzeURL(base, food, style string) (string, error) {
	u, err := url.Parse(strings.TrimRight(strings.TrimSpace(base), "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid server URL %q", base)
	}
	u.Path += analyzePath

	q := url.Values{}
	q.Set("food", food)
	if style != "" {
		q.Set("style", style)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// remoteError surfaces the server's error message when the response carried one.
func remoteError(err error) error {
	var se *serializer.StatusError
	if !stderrors.As(err, &se) {
		return fmt.Errorf("server request failed: %w", err)
	}

	var body server.ErrorResponse
	if jerr := json.Unmarshal(se.Body, &body); jerr == nil && body.Error != "" {
		if body.Code != "" {
			return fmt.Errorf("server returned %s: %s (%s)", se.Status, body.Error, body.Code)
		}
		return fmt.Errorf("server returned %s: %s", se.Status, body.Error)
	}
	return err
}
