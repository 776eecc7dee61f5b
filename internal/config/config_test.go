package config_test

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"minic/internal/config"
)

func TestParse(t *testing.T) {
	cfg, err := config.Parse(strings.NewReader(`
class: Factorial
assembler: [java, -jar, jasmin.jar, -d, out]
interpreter:
  max_steps: 5000
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if cfg.Class != "Factorial" {
		t.Errorf("expected class Factorial, got %q", cfg.Class)
	}
	if !slices.Equal(cfg.Assembler, []string{"java", "-jar", "jasmin.jar", "-d", "out"}) {
		t.Errorf("unexpected assembler %v", cfg.Assembler)
	}
	if cfg.Interpreter.MaxSteps != 5000 {
		t.Errorf("expected max_steps 5000, got %d", cfg.Interpreter.MaxSteps)
	}

	// keys missing from the document keep their defaults
	def := config.Default()
	if cfg.OutputDir != def.OutputDir || cfg.Interpreter.MaxDepth != def.Interpreter.MaxDepth || !cfg.Interpreter.Interactive {
		t.Errorf("expected defaults to survive, got %+v", cfg)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input       string
		contains    string
		description string
	}{
		{"clas: Typo", "clas", "unknown key"},
		{"interpreter: {max_depth: -1}", "max_depth", "negative depth"},
		{"interpreter: {max_steps: -5}", "max_steps", "negative steps"},
		{"output_dir: ''", "output_dir", "empty output dir"},
		{"assembler: [java, '']", "assembler argument 1", "empty assembler argument"},
		{"interpreter: [1, 2]", "cannot unmarshal", "wrong shape"},
	}

	for _, test := range tests {
		_, err := config.Parse(strings.NewReader(test.input))
		if err == nil {
			t.Errorf("%s: expected an error", test.description)
			continue
		}
		if !strings.Contains(err.Error(), test.contains) {
			t.Errorf("%s: expected error containing %q, got %q", test.description, test.contains, err)
		}
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minic.yml")
	if err := os.WriteFile(path, []byte("output_dir: build\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.OutputDir != "build" {
		t.Errorf("expected output_dir build, got %q", cfg.OutputDir)
	}

	empty := filepath.Join(t.TempDir(), "empty.yml")
	if err := os.WriteFile(empty, nil, 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := config.Load(empty); err != nil {
		t.Errorf("an empty file should load the defaults, got %v", err)
	}

	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Errorf("expected an error for a missing file")
	}
}
