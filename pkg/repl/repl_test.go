package repl

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func runShell(t *testing.T, input string, opts Options) string {
	t.Helper()
	var out bytes.Buffer
	if err := Start(NewScannerReader(strings.NewReader(input)), &out, opts); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return out.String()
}

func TestRenderMode(t *testing.T) {
	got := runShell(t, "1 + (2 + 3) + 4\nlet x = add(1, 2 * 3);\n", Options{NoColor: true})
	want := "((1 + (2 + 3)) + 4)\nlet x = add(1,(2 * 3));\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestExitStopsReading(t *testing.T) {
	got := runShell(t, "a\n  exit  \nb\n", Options{NoColor: true})
	if got != "a\n" {
		t.Fatalf("output = %q, want only the first line", got)
	}
}

func TestEmptyLinesAreSkipped(t *testing.T) {
	var seen []string
	got := runShell(t, "\n   \nx\n", Options{NoColor: true, OnLine: func(line string) { seen = append(seen, line) }})
	if got != "x\n" {
		t.Fatalf("output = %q", got)
	}
	if diff := cmp.Diff([]string{"x"}, seen); diff != "" {
		t.Fatalf("OnLine calls mismatch (-want +got):\n%s", diff)
	}
}

func TestDiagnosticsAreListed(t *testing.T) {
	got := runShell(t, "let = 5;\n", Options{NoColor: true})
	want := "parser errors:\n" +
		"\texpected next token to be IDENT, got = instead\n" +
		"\tno prefix parse function for = found\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestDiagnosticHeaderIsColored(t *testing.T) {
	got := runShell(t, "+\n", Options{})
	if !strings.Contains(got, "\x1b[") {
		t.Fatalf("expected ANSI escape in %q", got)
	}
	if !strings.Contains(got, "\tno prefix parse function for + found\n") {
		t.Fatalf("missing diagnostic in %q", got)
	}
}

func TestLiteralEcho(t *testing.T) {
	got := runShell(t, "5\ntrue;\nx\n", Options{NoColor: true})
	want := "5\n5\ntrue\ntrue\nx\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestTokensMode(t *testing.T) {
	got := runShell(t, "let five = 5;\n", Options{Mode: ModeTokens})
	want := "LET\nIDENT(five)\n=\nINT(5)\n;\nEOF\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONMode(t *testing.T) {
	got := runShell(t, "-x\n", Options{Mode: ModeJSON, NoColor: true})
	var decoded map[string]any
	if err := json.Unmarshal([]byte(got), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, got)
	}
	want := map[string]any{
		"type": "Program",
		"statements": []any{
			map[string]any{
				"type": "ExpressionStatement",
				"expression": map[string]any{
					"type":     "PrefixExpression",
					"operator": "-",
					"right":    map[string]any{"type": "Identifier", "value": "x"},
				},
			},
		},
	}
	if diff := cmp.Diff(want, decoded); diff != "" {
		t.Fatalf("JSON mismatch (-want +got):\n%s", diff)
	}
}

func TestPromptIsWritten(t *testing.T) {
	var prompts bytes.Buffer
	reader := NewScannerReader(strings.NewReader("1\n")).WithPromptOutput(&prompts)
	if err := Start(reader, io.Discard, Options{}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if got := prompts.String(); got != DefaultPrompt+DefaultPrompt {
		t.Fatalf("prompts = %q", got)
	}

	prompts.Reset()
	reader = NewScannerReader(strings.NewReader("")).WithPromptOutput(&prompts)
	if err := Start(reader, io.Discard, Options{Prompt: "monkey> "}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if got := prompts.String(); got != "monkey> " {
		t.Fatalf("custom prompt = %q", got)
	}
}

type failingReader struct{}

func (failingReader) Prompt(string) (string, error) { return "", errors.New("terminal gone") }

func TestReadErrorIsReturned(t *testing.T) {
	err := Start(failingReader{}, io.Discard, Options{})
	if err == nil || !strings.Contains(err.Error(), "terminal gone") {
		t.Fatalf("Start error = %v", err)
	}
}

func TestParseMode(t *testing.T) {
	cases := map[string]Mode{"": ModeRender, "render": ModeRender, "JSON": ModeJSON, " tokens ": ModeTokens}
	for in, want := range cases {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Fatalf("ParseMode(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseMode("yaml"); err == nil {
		t.Fatalf("ParseMode(yaml) succeeded")
	}
	if err := Start(NewScannerReader(strings.NewReader("")), io.Discard, Options{Mode: "bogus"}); err == nil {
		t.Fatalf("Start accepted an unknown mode")
	}
}
