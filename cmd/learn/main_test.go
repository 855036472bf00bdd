package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runArgs(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunIDErrors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		want     string
	}{
		{"no id", nil, 1, "Call with the number of the tutorial, e.g. `1_1_2`"},
		{"two ids", []string{"1_1", "1_2"}, 1, usageHint},
		{"unknown id", []string{"9_9"}, 0, "Unknown tutorial id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, _ := runArgs(t, tt.args...)
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", code, tt.wantCode)
			}
			if strings.TrimSpace(stdout) != tt.want {
				t.Errorf("stdout = %q, want %q", stdout, tt.want)
			}
		})
	}
}

func TestRunArgumentErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad backend", []string{"-backend", "metal", "1_3"}, "unknown backend"},
		{"bad clear", []string{"-clear", "zz", "1_3"}, "invalid hex color"},
		{"bad size", []string{"-width", "0", "1_3"}, "must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runArgs(t, tt.args...)
			if code != 1 {
				t.Errorf("exit code = %d, want 1", code)
			}
			if !strings.Contains(stderr, tt.want) {
				t.Errorf("stderr = %q, want it to contain %q", stderr, tt.want)
			}
		})
	}
}

func TestRunBadFlag(t *testing.T) {
	if code, _, _ := runArgs(t, "-nope"); code != 2 {
		t.Errorf("exit code = %d, want 2", code)
	}
}

func TestRunList(t *testing.T) {
	code, stdout, _ := runArgs(t, "-list")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	for _, id := range []string{"1_1", "1_3", "1_5_1"} {
		if !strings.Contains(stdout, id) {
			t.Errorf("list output missing %s:\n%s", id, stdout)
		}
	}
}

func TestRunCaptureAndPreview(t *testing.T) {
	dir := t.TempDir()
	capture := filepath.Join(dir, "frame.png")
	preview := filepath.Join(dir, "preview.bmp")

	code, stdout, stderr := runArgs(t,
		"-backend", "noop", "-width", "32", "-height", "32",
		"-capture", capture, "-preview", preview, "-space", "1_3_1")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}
	for _, path := range []string{capture, preview} {
		if fi, err := os.Stat(path); err != nil || fi.Size() == 0 {
			t.Errorf("%s not written: %v", path, err)
		}
	}
	if !strings.Contains(stdout, "Frame saved to") || !strings.Contains(stdout, "Preview saved to") {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestRunCaptureUnsupportedFormat(t *testing.T) {
	out := filepath.Join(t.TempDir(), "frame.jpg")
	code, _, stderr := runArgs(t, "-backend", "noop", "-width", "8", "-height", "8", "-capture", out, "1_2")
	if code != 1 || !strings.Contains(stderr, "unsupported") {
		t.Errorf("code = %d, stderr = %q", code, stderr)
	}
}
