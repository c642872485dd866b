// Package notes implements daily note handling: parsing dates from note
// filenames, organizing notes into month folders, and linking them in
// chronological order.
//
// Daily notes are named month-day-year (7-4-2025.md). Organizing moves
// them into YYYY-MM bucket folders, adding a (N) marker on name
// collisions. Linking appends a footer to each dated note pointing at the
// chronologically next one using Obsidian's [[wiki link]] syntax.
package notes
