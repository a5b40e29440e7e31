package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("INPUTBUS_TAP_THRESHOLD_MS", "")
	t.Setenv("INPUTBUS_LOG_LEVEL", "")
	t.Setenv("INPUTBUS_DEBUG_ADDR", "")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if !strings.HasPrefix(out, "inputbus dev") {
		t.Errorf("output = %q", out)
	}
}

func TestReplayCmd(t *testing.T) {
	path := writeFile(t, "tap.yaml", `events:
  - {at: 0, kind: key, code: 32, action: press}
  - {at: 100, kind: key, code: 32, action: release}
`)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"default threshold", []string{"replay", path}, []string{"0s key_down space", "100ms key_pressed space"}},
		{"flag threshold", []string{"replay", "--threshold-ms", "50", path}, []string{"0s key_down space", "100ms key_up space"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if err != nil {
				t.Fatalf("replay error = %v", err)
			}
			got := strings.Split(strings.TrimSpace(out), "\n")
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReplayCmd_ConfigThreshold(t *testing.T) {
	script := writeFile(t, "tap.yaml", `events:
  - {at: 0, kind: button, code: 0, action: press}
  - {at: 100, kind: button, code: 0, action: release}
`)
	cfg := writeFile(t, "inputbus.toml", "[input]\ntap_threshold_ms = 80\n")

	out, err := execute(t, "--config", cfg, "replay", script)
	if err != nil {
		t.Fatalf("replay error = %v", err)
	}
	if !strings.Contains(out, "100ms button_up left") {
		t.Errorf("output = %q, want button_up with an 80ms threshold", out)
	}
}

func TestReplayCmd_Errors(t *testing.T) {
	bad := writeFile(t, "bad.yaml", "events:\n  - {at: 0, kind: joystick}\n")

	tests := []struct {
		name string
		args []string
	}{
		{"missing file", []string{"replay", filepath.Join(t.TempDir(), "none.yaml")}},
		{"invalid script", []string{"replay", bad}},
		{"no args", []string{"replay"}},
		{"bad log level", []string{"--log-level", "loud", "replay", bad}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}
