package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const minimalDocsMD = "" +
	"# Test API\n" +
	"\n" +
	"GET /hello\n" +
	"Says hello\n"

func captureStdout(fn func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w
	defer func() { os.Stdout = old }()
	fn()
	_ = w.Close()
	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

func TestConvertPipeline_WritesYAML(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "api.md")
	if err := os.WriteFile(inputPath, []byte(minimalDocsMD), 0o600); err != nil {
		t.Fatalf("write input: %v", err)
	}
	outPath := filepath.Join(dir, "api.yaml")

	root := NewRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"convert", "--input", inputPath, "--out", outPath, "--cache-dir", filepath.Join(dir, "cache")})

	out := captureStdout(func() {
		if err := root.Execute(); err != nil {
			t.Fatalf("execute: %v", err)
		}
	})
	if !strings.Contains(out, "Output written to:") {
		t.Fatalf("expected confirmation output, got: %s", out)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	s := string(data)
	if !strings.Contains(s, "openapi: 3.0.0") {
		t.Errorf("missing openapi version: %s", s)
	}
	if !strings.Contains(s, "title: Test API") {
		t.Errorf("missing derived title: %s", s)
	}
	if !strings.Contains(s, "operationId: get_hello") {
		t.Errorf("missing operation: %s", s)
	}
}

func TestConvertPipeline_DerivesOutputPath(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "api.md")
	if err := os.WriteFile(inputPath, []byte(minimalDocsMD), 0o600); err != nil {
		t.Fatalf("write input: %v", err)
	}

	root := NewRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"convert", "--input", inputPath, "--format", "json", "--no-cache"})

	_ = captureStdout(func() {
		if err := root.Execute(); err != nil {
			t.Fatalf("execute: %v", err)
		}
	})

	derived := filepath.Join(dir, "api.json")
	if _, err := os.Stat(derived); err != nil {
		t.Fatalf("expected derived output file %s: %v", derived, err)
	}
}

func TestConvertPipeline_UnreadableInputIsFatal(t *testing.T) {
	dir := t.TempDir()

	root := NewRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"convert", "--input", filepath.Join(dir, "missing.md"), "--no-cache"})

	err := root.Execute()
	if err == nil {
		t.Fatalf("expected error for unreadable input")
	}
	if !strings.Contains(err.Error(), "read input") {
		t.Fatalf("unexpected error text: %v", err)
	}
}
