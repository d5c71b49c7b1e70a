package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	args = append([]string{"-config", filepath.Join(t.TempDir(), "none.toml")}, args...)
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestBatchFromStdin(t *testing.T) {
	code, out, errOut := runCLI(t, "one two three", "-motions", "w,w,e")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	want := "w\t1:5 found\nw\t1:9 found\ne\t1:13 clamped\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestBatchFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("alpha beta\ngamma"), 0o644); err != nil {
		t.Fatal(err)
	}

	code, out, errOut := runCLI(t, "", "-motions", "W", "-count", "2", path)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if out != "W\t2:1 found\n" {
		t.Errorf("output = %q", out)
	}
}

func TestBatchDashReadsStdin(t *testing.T) {
	code, out, errOut := runCLI(t, "foo.bar", "-motions", "w", "-")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if out != "w\t1:4 found\n" {
		t.Errorf("output = %q", out)
	}
}

func TestBatchStats(t *testing.T) {
	code, out, errOut := runCLI(t, "one two three", "-motions", "w,w,e", "-stats")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if out != "w\t1:5 found\nw\t1:9 found\ne\t1:13 clamped\n" {
		t.Errorf("output = %q", out)
	}
	if !strings.HasPrefix(errOut, "stats: dispatches=3 errors=0 panics=0 avg=") ||
		!strings.HasSuffix(errOut, " top=motion.nextWordStart:2,motion.nextWordEnd:1\n") {
		t.Errorf("stats line = %q", errOut)
	}

	_, _, errOut = runCLI(t, "one two", "-motions", "w")
	if strings.Contains(errOut, "stats:") {
		t.Errorf("stats reported without -stats: %q", errOut)
	}
}

func TestList(t *testing.T) {
	code, out, _ := runCLI(t, "", "-list")
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	if !strings.Contains(out, "w\tnext_word_start\n") || !strings.Contains(out, "E\tnext_long_word_end\n") {
		t.Errorf("unexpected list output:\n%s", out)
	}
}

func TestCLIErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
		msg  string
	}{
		{"unknown motion", []string{"-motions", "w,sideways"}, 1, "sideways"},
		{"bad log level", []string{"-log-level", "loud"}, 1, "invalid log level"},
		{"zero count", []string{"-count", "0"}, 1, "count must be at least 1"},
		{"two files", []string{"a", "b"}, 1, "at most one file"},
		{"unknown flag", []string{"-nope"}, 2, "flag provided but not defined"},
		{"missing file", []string{"-motions", "w", "/nonexistent/file.txt"}, 1, "failed to initialize"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, errOut := runCLI(t, "one two", tt.args...)
			if code != tt.code {
				t.Errorf("exit = %d, want %d", code, tt.code)
			}
			if !strings.Contains(errOut, tt.msg) {
				t.Errorf("stderr %q does not mention %q", errOut, tt.msg)
			}
		})
	}
}

func TestHelp(t *testing.T) {
	code, _, errOut := runCLI(t, "", "-h")
	if code != 0 {
		t.Errorf("exit = %d, want 0", code)
	}
	if !strings.Contains(errOut, "Usage: hxmotion") {
		t.Errorf("usage not printed: %q", errOut)
	}
}
