package notes

import "strings"

// FixHeading ensures content starts with a markdown heading. When it does
// not, an H1 derived from the note's date is prepended, falling back to
// the bare stem when the name carries no date. Returns the updated
// content and whether a heading was added.
func FixHeading(content []byte, stem string) ([]byte, bool) {
	if strings.HasPrefix(strings.TrimSpace(string(content)), "#") {
		return content, false
	}

	title := stem
	if d, ok := ParseStem(stem); ok {
		title = d.Heading()
	}

	updated := append([]byte("# "+title+"\n\n"), content...)
	return updated, true
}
