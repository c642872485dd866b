package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format represents the output format type.
type Format int

const (
	// FormatAuto picks a format based on the terminal's capabilities.
	FormatAuto Format = iota
	// FormatTerminal renders rich output with colors and styling.
	FormatTerminal
	// FormatText renders plain text without any styling.
	FormatText
	// FormatJSON renders machine readable JSON.
	FormatJSON
)

// String returns the canonical name of the format.
func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatTerminal:
		return "term"
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// FormatNames lists the accepted format names for flag help.
func FormatNames() []string {
	return []string{"auto", "term", "text", "json"}
}

// ParseFormat parses a format name. The empty string means auto.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return FormatAuto, nil
	case "term", "terminal":
		return FormatTerminal, nil
	case "text", "plain":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatAuto, fmt.Errorf("unknown format: %s, expected one of %s",
			s, strings.Join(FormatNames(), ", "))
	}
}

// DetectFormat picks term or text for the given output file. NO_COLOR,
// piped output and colorless terminals all downgrade to plain text.
func DetectFormat(output *os.File) Format {
	if os.Getenv("NO_COLOR") != "" {
		return FormatText
	}

	if !isatty.IsTerminal(output.Fd()) && !isatty.IsCygwinTerminal(output.Fd()) {
		return FormatText
	}

	if termenv.ColorProfile() == termenv.Ascii {
		return FormatText
	}

	return FormatTerminal
}
