package notes

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Daily note stems are month-day-year, e.g. 7-4-2025
var stemPattern = regexp.MustCompile(`^(\d{1,2})-(\d{1,2})-(\d{4})$`)

// Copy markers like (1) at the end of a stem, with or without a space
var markerPattern = regexp.MustCompile(`\s*\(\d+\)$`)

// NoteDate is a calendar date parsed from a daily note filename.
type NoteDate struct {
	Month int
	Day   int
	Year  int
}

// ParseFilename extracts the date from a daily note filename such as
// 7-4-2025.md. A trailing (N) copy marker is ignored, so 7-4-2025(1).md
// parses to the same date. Returns ok=false when the name does not match
// month-day-year or the date does not exist on the calendar.
func ParseFilename(name string) (NoteDate, bool) {
	return ParseStem(strings.TrimSuffix(name, ".md"))
}

// ParseStem extracts the date from a note filename whose extension has
// already been removed.
func ParseStem(stem string) (NoteDate, bool) {
	stem, _ = StripDuplicateMarker(stem)

	m := stemPattern.FindStringSubmatch(stem)
	if m == nil {
		return NoteDate{}, false
	}

	// \d{1,2} and \d{4} never overflow int
	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])

	d := NoteDate{Month: month, Day: day, Year: year}
	if !d.valid() {
		return NoteDate{}, false
	}
	return d, true
}

// StripDuplicateMarker removes a trailing (N) copy marker from a note
// stem, reporting whether one was present.
func StripDuplicateMarker(stem string) (string, bool) {
	stripped := markerPattern.ReplaceAllString(stem, "")
	return stripped, stripped != stem
}

// valid reports whether the date exists on the calendar. time.Date
// normalizes out-of-range components, so the round trip catches Feb 30.
func (d NoteDate) valid() bool {
	t := d.Time()
	return t.Year() == d.Year && t.Month() == time.Month(d.Month) && t.Day() == d.Day
}

// Time returns the date at midnight UTC.
func (d NoteDate) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// Bucket returns the YYYY-MM folder name the note belongs in.
func (d NoteDate) Bucket() string {
	return fmt.Sprintf("%04d-%02d", d.Year, d.Month)
}

// Heading returns the display heading for the date, e.g. "July 4, 2025".
func (d NoteDate) Heading() string {
	return d.Time().Format("January 2, 2006")
}

// Before reports whether d is chronologically before other.
func (d NoteDate) Before(other NoteDate) bool {
	return d.Time().Before(other.Time())
}
