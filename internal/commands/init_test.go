package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/NielsdaWheelz/mazegen/internal/errors"
	"github.com/NielsdaWheelz/mazegen/internal/fs"
	"github.com/NielsdaWheelz/mazegen/internal/scaffold"
)

func TestInit_CreatesConfigAndStubs(t *testing.T) {
	root := t.TempDir()
	var stdout bytes.Buffer

	if err := Init(fs.NewRealFS(), root, InitOpts{}, zap.NewNop(), &stdout); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(root, "mazegen.yaml"))
	if err != nil {
		t.Fatalf("failed to read mazegen.yaml: %v", err)
	}
	if string(content) != scaffold.ConfigTemplate {
		t.Errorf("mazegen.yaml content mismatch:\ngot:\n%s\nwant:\n%s", string(content), scaffold.ConfigTemplate)
	}

	practice, err := os.ReadFile(filepath.Join(root, "materials", "practice_example.txt"))
	if err != nil {
		t.Fatalf("failed to read example materials: %v", err)
	}
	if string(practice) != scaffold.PracticeStub {
		t.Error("example materials content mismatch")
	}

	if _, err := os.Stat(filepath.Join(root, "templates")); !os.IsNotExist(err) {
		t.Error("templates/ should only be created with --templates")
	}

	want := "root: " + root + "\n" +
		"config: created\n" +
		"files_created: " + filepath.Join("materials", "practice_example.txt") + "\n"
	if stdout.String() != want {
		t.Errorf("output mismatch:\ngot:\n%s\nwant:\n%s", stdout.String(), want)
	}
}

func TestInit_Templates(t *testing.T) {
	root := t.TempDir()
	var stdout bytes.Buffer

	if err := Init(fs.NewRealFS(), root, InitOpts{Templates: true}, zap.NewNop(), &stdout); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(root, "templates", scaffold.TextIncludeName))
	if err != nil {
		t.Fatalf("failed to read template copy: %v", err)
	}
	if string(content) != scaffold.TextIncludeTemplate {
		t.Error("text template copy differs from the embedded template")
	}
	if !strings.Contains(stdout.String(), filepath.Join("templates", scaffold.JSONIncludeName)) {
		t.Errorf("output does not list the JSON template copy:\n%s", stdout.String())
	}
}

func TestInit_ExistingConfigWithoutForce(t *testing.T) {
	root := t.TempDir()
	configPath := filepath.Join(root, "mazegen.yaml")
	if err := os.WriteFile(configPath, []byte("materials_dir: mine\n"), 0644); err != nil {
		t.Fatal(err)
	}
	var stdout bytes.Buffer

	err := Init(fs.NewRealFS(), root, InitOpts{}, zap.NewNop(), &stdout)
	if err == nil {
		t.Fatal("expected error for existing config")
	}
	if errors.GetCode(err) != errors.EConfigExists {
		t.Errorf("expected E_CONFIG_EXISTS, got %s", errors.GetCode(err))
	}

	content, _ := os.ReadFile(configPath)
	if string(content) != "materials_dir: mine\n" {
		t.Error("existing config was modified")
	}
}

func TestInit_ForceOverwritesConfigButKeepsStubs(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "mazegen.yaml"), []byte("materials_dir: mine\n"), 0644); err != nil {
		t.Fatal(err)
	}
	practicePath := filepath.Join(root, "materials", "practice_example.txt")
	if err := os.MkdirAll(filepath.Dir(practicePath), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(practicePath, []byte("custom\n"), 0644); err != nil {
		t.Fatal(err)
	}
	var stdout bytes.Buffer

	if err := Init(fs.NewRealFS(), root, InitOpts{Force: true}, zap.NewNop(), &stdout); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	content, _ := os.ReadFile(filepath.Join(root, "mazegen.yaml"))
	if string(content) != scaffold.ConfigTemplate {
		t.Error("config was not overwritten")
	}
	practice, _ := os.ReadFile(practicePath)
	if string(practice) != "custom\n" {
		t.Error("existing materials were overwritten")
	}

	out := stdout.String()
	if !strings.Contains(out, "config: overwritten\n") {
		t.Errorf("expected overwritten state, got:\n%s", out)
	}
	if !strings.Contains(out, "files_created: none\n") {
		t.Errorf("expected no files created, got:\n%s", out)
	}
	if !strings.Contains(out, "files_kept: "+filepath.Join("materials", "practice_example.txt")+"\n") {
		t.Errorf("expected kept file listed, got:\n%s", out)
	}
}
