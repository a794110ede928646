package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// System reads and writes the desktop clipboard.
type System struct{}

func (System) ReadText() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("read clipboard: %w", err)
	}
	return text, nil
}

func (System) WriteText(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}

// Available reports whether a clipboard backend was found on this machine.
func Available() bool {
	return !clipboard.Unsupported
}

// Memory is an in-process clipboard, used when no system clipboard is available.
type Memory struct {
	text string
}

func (m *Memory) ReadText() (string, error) {
	return m.text, nil
}

func (m *Memory) WriteText(text string) error {
	m.text = text
	return nil
}
