package console

import (
	"errors"
	"io"
	"os"

	"github.com/peterh/liner"
)

// Console reads interpreter input lines from a terminal with line editing and history.
type Console struct {
	ln     *liner.State
	prompt string
}

// New puts the terminal in raw mode. Close restores it.
func New(prompt string) *Console {
	ln := liner.NewLiner()
	ln.SetCtrlCAborts(true)
	return &Console{ln: ln, prompt: prompt}
}

// ReadLine prompts for one line. Ctrl-D and Ctrl-C both end the input.
func (c *Console) ReadLine() (string, error) {
	line, err := c.ln.Prompt(c.prompt)
	if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
		return "", io.EOF
	}
	if err != nil {
		return "", err
	}
	if line != "" {
		c.ln.AppendHistory(line)
	}
	return line, nil
}

func (c *Console) Close() error {
	return c.ln.Close()
}

// StdinIsTerminal reports whether prompting makes sense for stdin
func StdinIsTerminal() bool {
	if !liner.TerminalSupported() {
		return false
	}
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
