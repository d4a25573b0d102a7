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

package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

type testResult struct {
	Food string `json:"food" yaml:"food"`
	Text string `json:"text" yaml:"text"`
}

type stringerResult struct {
	text string
}

func (s stringerResult) String() string { return s.text }

func TestWriter_SerializeJSON(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatJSON, &buf)

	data := testResult{Food: "kale", Text: "Rich in vitamin K."}

	if err := writer.Serialize(context.Background(), data); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	var result testResult
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to unmarshal JSON: %v", err)
	}

	if result != data {
		t.Errorf("Unexpected data: %+v", result)
	}
}

func TestWriter_SerializeYAML(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatYAML, &buf)

	data := testResult{Food: "oats", Text: "Fiber supports digestion."}

	if err := writer.Serialize(context.Background(), data); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	var result testResult
	if err := yaml.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to unmarshal YAML: %v", err)
	}

	if result != data {
		t.Errorf("Unexpected data: %+v", result)
	}
}

func TestWriter_SerializeText(t *testing.T) {
	t.Run("stringer is printed verbatim", func(t *testing.T) {
		var buf bytes.Buffer
		writer := NewWriter(FormatText, &buf)

		if err := writer.Serialize(context.Background(), stringerResult{text: "Bananas give potassium."}); err != nil {
			t.Fatalf("Serialize failed: %v", err)
		}

		if got := buf.String(); got != "Bananas give potassium.\n" {
			t.Errorf("unexpected output %q", got)
		}
	})

	t.Run("struct is flattened into a table", func(t *testing.T) {
		var buf bytes.Buffer
		writer := NewWriter(FormatText, &buf)

		data := []any{
			testResult{Food: "kale", Text: "a"},
			testResult{Food: "oats", Text: "b"},
		}
		if err := writer.Serialize(context.Background(), data); err != nil {
			t.Fatalf("Serialize failed: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "FIELD") || !strings.Contains(output, "VALUE") {
			t.Error("Expected table header not found")
		}
		if !strings.Contains(output, "[0].Food") || !strings.Contains(output, "[1].Text") {
			t.Error("Expected flattened keys not found")
		}
	})

	t.Run("empty value", func(t *testing.T) {
		var buf bytes.Buffer
		writer := NewWriter(FormatText, &buf)

		if err := writer.Serialize(context.Background(), struct{}{}); err != nil {
			t.Fatalf("Serialize failed: %v", err)
		}
		if !strings.Contains(buf.String(), "<empty>") {
			t.Errorf("expected <empty>, got %q", buf.String())
		}
	})
}

func TestWriter_UnknownFormatFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter("xml", &buf)

	data := testResult{Food: "kale", Text: "x"}
	if err := writer.Serialize(context.Background(), data); err != nil {
		t.Fatalf("Serialize should not fail with unknown format: %v", err)
	}

	var result testResult
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to unmarshal as JSON: %v", err)
	}
}

func TestNewFileWriterOrStdout(t *testing.T) {
	t.Run("writes to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.json")

		writer := NewFileWriterOrStdout(FormatJSON, path)
		if err := writer.Serialize(context.Background(), testResult{Food: "kale"}); err != nil {
			t.Fatalf("Serialize failed: %v", err)
		}
		if err := writer.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
		// Second close is a no-op.
		if err := writer.Close(); err != nil {
			t.Fatalf("second Close failed: %v", err)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read output: %v", err)
		}
		if !strings.Contains(string(content), `"food": "kale"`) {
			t.Errorf("unexpected file content: %s", content)
		}
	})

	t.Run("empty path uses stdout", func(t *testing.T) {
		writer := NewFileWriterOrStdout(FormatJSON, "  ")
		if writer.output != os.Stdout {
			t.Error("expected stdout writer")
		}
		if err := writer.Close(); err != nil {
			t.Errorf("Close on stdout writer should not fail: %v", err)
		}
	})

	t.Run("unwritable path falls back to stdout", func(t *testing.T) {
		writer := NewFileWriterOrStdout(FormatJSON, filepath.Join(t.TempDir(), "missing", "out.json"))
		if writer.output != os.Stdout {
			t.Error("expected stdout fallback")
		}
	})
}

func TestFormat_IsUnknown(t *testing.T) {
	for _, f := range SupportedFormats() {
		if Format(f).IsUnknown() {
			t.Errorf("%s should be known", f)
		}
	}
	if !Format("table").IsUnknown() {
		t.Error("table should be unknown")
	}
}
