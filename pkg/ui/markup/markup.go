package markup

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/beevik/etree"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// NoFormatTag marks content that is only rendered when the terminal does
// not support color.
const NoFormatTag = "no-format"

// wrapperTag encloses the input so fragments with multiple top-level tags
// still parse as a single XML document.
const wrapperTag = "markup-render-root"

// StyleMap associates tag names with the lipgloss styles applied to their
// content.
type StyleMap map[string]lipgloss.Style

var defaultRenderer = lipgloss.DefaultRenderer()

// SetDefaultRenderer sets the lipgloss renderer used to detect the
// terminal's color capabilities. Callers writing somewhere other than
// stdout should install a renderer bound to their writer before rendering.
func SetDefaultRenderer(r *lipgloss.Renderer) {
	defaultRenderer = r
}

// Render expands tmpl with data through text/template, then applies the
// styles to the tags in the expanded output. Template parse and execution
// errors are returned; tag expansion follows the ExpandTags rules.
func Render(tmpl string, data interface{}, styles StyleMap) (string, error) {
	t, err := template.New("markup").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return ExpandTags(buf.String(), styles)
}

// ExpandTags replaces XML-like tags in input with styled text. Tags found
// in styles are rendered through their lipgloss style, unknown tags are
// unwrapped, and <no-format> content appears only when the terminal has no
// color support. Input that does not parse as XML is returned unchanged
// with a nil error.
func ExpandTags(input string, styles StyleMap) (string, error) {
	if input == "" {
		return "", nil
	}

	root, ok := parse(input)
	if !ok {
		return input, nil
	}

	return flatten(root, styles, colorEnabled()), nil
}

// StripTags removes every tag from input, keeping only the text content.
// Unlike ExpandTags it always includes <no-format> content, since stripped
// output is the plain text path. Input that does not parse as XML is
// returned unchanged.
func StripTags(input string) string {
	if input == "" {
		return ""
	}

	root, ok := parse(input)
	if !ok {
		return input
	}

	return flatten(root, nil, false)
}

func parse(input string) (*etree.Element, bool) {
	doc := etree.NewDocument()
	wrapped := "<" + wrapperTag + ">" + input + "</" + wrapperTag + ">"
	if err := doc.ReadFromString(wrapped); err != nil {
		return nil, false
	}
	root := doc.Root()
	if root == nil {
		return nil, false
	}
	return root, true
}

// flatten walks the element tree depth first, styling inner tags before
// outer ones so nested styles compose.
func flatten(el *etree.Element, styles StyleMap, color bool) string {
	var b strings.Builder
	for _, child := range el.Child {
		switch node := child.(type) {
		case *etree.CharData:
			b.WriteString(node.Data)
		case *etree.Element:
			content := flatten(node, styles, color)
			if node.Tag == NoFormatTag {
				if !color {
					b.WriteString(content)
				}
				continue
			}
			if style, found := styles[node.Tag]; found && color {
				content = style.Render(content)
			}
			b.WriteString(content)
		}
	}
	return b.String()
}

func colorEnabled() bool {
	return defaultRenderer != nil && defaultRenderer.ColorProfile() != termenv.Ascii
}
