package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/NielsdaWheelz/mazegen/internal/errors"
)

func TestRun_NoArgs(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := Run([]string{}, &stdout, &stderr)

	if err == nil {
		t.Fatal("expected error for no args")
	}
	if errors.GetCode(err) != errors.EUsage {
		t.Errorf("code = %q, want %q", errors.GetCode(err), errors.EUsage)
	}
	if !strings.Contains(stdout.String(), "Usage:") {
		t.Error("expected usage in stdout")
	}
}

func TestRun_Help(t *testing.T) {
	tests := []string{"-h", "--help"}
	for _, arg := range tests {
		t.Run(arg, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			err := Run([]string{arg}, &stdout, &stderr)

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(stdout.String(), "Usage:") {
				t.Error("expected usage in stdout")
			}
			for _, sub := range []string{"json", "text", "check", "init"} {
				if !strings.Contains(stdout.String(), sub) {
					t.Errorf("expected %q in help", sub)
				}
			}
		})
	}
}

func TestRun_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := Run([]string{"--version"}, &stdout, &stderr)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(stdout.String(), "mazegen ") {
		t.Errorf("unexpected version output %q", stdout.String())
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := Run([]string{"nope"}, &stdout, &stderr)

	if err == nil {
		t.Fatal("expected error for unknown command")
	}
	if errors.GetCode(err) != errors.EUsage {
		t.Errorf("code = %q, want %q", errors.GetCode(err), errors.EUsage)
	}
	if !strings.Contains(err.Error(), "nope") {
		t.Error("expected unknown command name in error")
	}
	if errors.ExitCode(err) != 2 {
		t.Errorf("exit code = %d, want 2", errors.ExitCode(err))
	}
}

func TestRun_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"text", "--bogus"}},
		{"bad int", []string{"text", "-n", "many"}},
		{"non-positive items", []string{"check", "-n", "0"}},
		{"positional arg", []string{"json", "extra"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			err := Run(tt.args, &stdout, &stderr)
			if errors.GetCode(err) != errors.EUsage {
				t.Errorf("code = %q, want %q (err = %v)", errors.GetCode(err), errors.EUsage, err)
			}
		})
	}
}

func TestRun_SubcommandHelp(t *testing.T) {
	tests := []struct {
		cmd  string
		flag string
	}{
		{"json", "--out_dir"},
		{"text", "--items_per_subject"},
		{"check", "--json"},
		{"init", "--force"},
	}
	for _, tt := range tests {
		t.Run(tt.cmd, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if err := Run([]string{tt.cmd, "--help"}, &stdout, &stderr); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(stdout.String(), tt.flag) {
				t.Errorf("expected %s in help:\n%s", tt.flag, stdout.String())
			}
		})
	}
}

func TestRun_MissingExplicitConfig(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := Run([]string{"--config", filepath.Join(t.TempDir(), "none.yaml"), "check"}, &stdout, &stderr)
	if errors.GetCode(err) != errors.ENoConfig {
		t.Errorf("code = %q, want %q", errors.GetCode(err), errors.ENoConfig)
	}
}

func TestRun_TextWithConfigAndFlags(t *testing.T) {
	root := t.TempDir()
	materials := filepath.Join(root, "stimuli")
	if err := os.MkdirAll(materials, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(materials, "practice_1.txt"),
		[]byte(`[["practice", 1], "Maze", {s:"a", a:"b"}],`+"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	configPath := filepath.Join(root, "mazegen.yaml")
	config := "materials_dir: " + materials + "\ntext:\n  out_path: " + filepath.Join(root, "from_config.js") + "\n  items_per_subject: 7\n"
	if err := os.WriteFile(configPath, []byte(config), 0644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(root, "from_flag.js")

	var stdout, stderr bytes.Buffer
	err := Run([]string{"-v", "--config", configPath, "text", "--out_path", out}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("unexpected error: %v\nstderr: %s", err, stderr.String())
	}

	script, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("flag did not override out_path: %v", err)
	}
	if !strings.Contains(string(script), "var total_items = 7;") {
		t.Error("config items_per_subject not applied")
	}
	if _, err := os.Stat(filepath.Join(root, "from_config.js")); !os.IsNotExist(err) {
		t.Error("config out_path should have been overridden")
	}
	if !strings.Contains(stdout.String(), "written: "+out+"\n") {
		t.Errorf("unexpected stdout:\n%s", stdout.String())
	}
	if !strings.Contains(stderr.String(), "loaded materials") {
		t.Errorf("expected debug log with -v, got stderr:\n%s", stderr.String())
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "mazegen.yaml")
	if err := os.WriteFile(configPath, []byte("text:\n  items_per_subject: 0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	var stdout, stderr bytes.Buffer
	err := Run([]string{"--config", configPath, "check"}, &stdout, &stderr)
	if errors.GetCode(err) != errors.EInvalidConfig {
		t.Errorf("code = %q, want %q", errors.GetCode(err), errors.EInvalidConfig)
	}
	if errors.ExitCode(err) != 1 {
		t.Errorf("exit code = %d, want 1", errors.ExitCode(err))
	}
}

func TestRun_FlagOverridesInvalidConfigValue(t *testing.T) {
	root := t.TempDir()
	configPath := filepath.Join(root, "mazegen.yaml")
	config := "materials_dir: " + filepath.Join(root, "none") + "\ntext:\n  items_per_subject: 0\n"
	if err := os.WriteFile(configPath, []byte(config), 0644); err != nil {
		t.Fatal(err)
	}
	var stdout, stderr bytes.Buffer
	err := Run([]string{"--config", configPath, "check", "-n", "5"}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout.String(), "items_per_subject: 5\n") {
		t.Errorf("flag value not used:\n%s", stdout.String())
	}
}
