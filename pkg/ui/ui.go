// Package ui provides a unified interface for rendering command output in
// different formats: rich terminal, plain text, and JSON.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/recule556688/obsidian-dotfiles/pkg/ui/display"
	"github.com/recule556688/obsidian-dotfiles/pkg/ui/json"
)

// Renderer is the common interface for all output renderers.
type Renderer interface {
	// RenderResult renders a command result struct.
	RenderResult(result interface{}) error

	// RenderError renders an error with appropriate formatting.
	RenderError(err error) error

	// RenderMessage renders a simple message.
	RenderMessage(msg string) error
}

// NewRenderer creates a renderer for the given format. FormatAuto inspects
// the output's terminal capabilities when it is a file, and falls back to
// rich output otherwise.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		return NewRenderer(FormatTerminal, output)
	case FormatTerminal:
		return display.New(output, false)
	case FormatText:
		return display.New(output, true)
	case FormatJSON:
		return json.New(output)
	default:
		return nil, fmt.Errorf("unknown format: %v", format)
	}
}
