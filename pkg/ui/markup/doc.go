/*
Package markup provides a small template engine for rich terminal rendering.

Markup combines Go's text/template with lipgloss styling through XML-like
tags, so output templates stay declarative and adapt to the terminal's
capabilities at render time.

# Core Functions

The package offers three main functions:
  - Render: Processes Go templates then expands style tags
  - ExpandTags: Only expands style tags (no template processing)
  - StripTags: Removes all style tags for plain text output

# Usage with Go templating

	styles := markup.StyleMap{
		"title": lipgloss.NewStyle().Bold(true),
		"date":  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
	template := `<title>{{.Title}}</title> <date>{{.Date}}</date>`
	data := struct {
		Title string
		Date  string
	}{
		Title: "Hello, World!",
		Date:  "2026-08-25",
	}
	output, err := markup.Render(template, data, styles)
	fmt.Println(output)

# Tags

Tag names must correspond to keys in the StyleMap passed to Render or
ExpandTags. Unknown tags are unwrapped, leaving their content untouched,
so templates degrade gracefully when a style is missing.

	<vault-name>This text will be styled.</vault-name>

# Special Tags

The <no-format> tag only renders when the terminal doesn't support color:

	<status>Done</status><no-format> ✓</no-format>

In the example above, the "✓" only appears in plain text mode where the
styled status marker carries no visual weight of its own.

# Malformed input

Content that does not parse as XML (unescaped & or <, unclosed tags) is
returned unchanged rather than failing the render. Literal special
characters inside tag content must be escaped as &amp;, &lt; and &gt;.
*/
package markup
