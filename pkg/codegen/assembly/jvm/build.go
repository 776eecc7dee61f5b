package jvm

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Build writes <class>.j and Runtime.j to the output directory and runs the assembler on them when one is configured
func (j *jvm) Build() error {
	if j.class == RuntimeClass {
		return ErrReservedClass
	}
	if err := os.MkdirAll(j.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %v", err)
	}

	files := []struct {
		name string
		code string
	}{
		{j.class + ".j", j.GetCode()},
		{RuntimeClass + ".j", runtimeSource},
	}

	paths := make([]string, 0, len(files))
	for _, f := range files {
		path := filepath.Join(j.outputDir, f.name)
		if err := os.WriteFile(path, []byte(f.code), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %v", f.name, err)
		}
		log.Info("Wrote assembly", "file", path)
		paths = append(paths, path)
	}

	if len(j.assembler) == 0 {
		return nil
	}

	for _, path := range paths {
		args := append(append([]string{}, j.assembler[1:]...), path)
		cmd := exec.Command(j.assembler[0], args...)
		output, err := cmd.CombinedOutput()
		if err != nil {
			return fmt.Errorf("assembly failed: %v\nOutput: %s", err, output)
		}
		log.Debug("Assembled", "file", path, "output", string(output))
	}
	return nil
}
