package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the settings a minic.yml file can carry. Command line flags override them.
type Config struct {
	Class       string      `yaml:"class"`      // name of the generated class, derived from the source file when empty
	OutputDir   string      `yaml:"output_dir"` // directory for .j files
	Assembler   []string    `yaml:"assembler"`  // e.g. [java, -jar, jasmin.jar, -d, out]
	Interpreter Interpreter `yaml:"interpreter"`
}

type Interpreter struct {
	MaxSteps    int  `yaml:"max_steps"`   // 0 = unlimited
	MaxDepth    int  `yaml:"max_depth"`   // 0 = unlimited
	Interactive bool `yaml:"interactive"` // prompt for input when stdin is a terminal
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		OutputDir: ".",
		Interpreter: Interpreter{
			MaxDepth:    10000,
			Interactive: true,
		},
	}
}

// Load reads a config file on top of the defaults
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a config document. Unknown keys are errors.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings no run could use
func (c *Config) Validate() error {
	if c.Interpreter.MaxSteps < 0 {
		return fmt.Errorf("interpreter.max_steps must not be negative, got %d", c.Interpreter.MaxSteps)
	}
	if c.Interpreter.MaxDepth < 0 {
		return fmt.Errorf("interpreter.max_depth must not be negative, got %d", c.Interpreter.MaxDepth)
	}
	if c.OutputDir == "" {
		return errors.New("output_dir must not be empty")
	}
	for i, arg := range c.Assembler {
		if arg == "" {
			return fmt.Errorf("assembler argument %d is empty", i)
		}
	}
	return nil
}
