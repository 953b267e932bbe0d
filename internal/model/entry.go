package model

import "strings"

// Delimiter separates the segments of a taxonomy code, e.g. "Pr_20_93_58".
const Delimiter = "_"

// Entry is a single taxonomy entry, immutable once loaded.
type Entry struct {
	Code     string
	Title    string
	Level    int      // segment count of Code; 1 = top of the hierarchy
	Parent   string   // Code with its last segment removed; "" at level 1
	Category string   // coarse grouping derived from the code prefix
	Keywords []string // lower-cased title words, stop-word filtered
}

// LevelOf returns the hierarchy level of a taxonomy code: the number of
// delimiter-separated segments. An empty code has level 0.
func LevelOf(code string) int {
	if code == "" {
		return 0
	}
	return strings.Count(code, Delimiter) + 1
}

// ParentOf returns the code with its last segment removed, or "" for a
// level-1 code.
func ParentOf(code string) string {
	i := strings.LastIndex(code, Delimiter)
	if i < 0 {
		return ""
	}
	return code[:i]
}

// TruncateCode cuts a code down to its first level segments. Codes at or
// below the requested level are returned unchanged.
func TruncateCode(code string, level int) string {
	if level < 1 {
		return code
	}
	segs := strings.Split(code, Delimiter)
	if len(segs) <= level {
		return code
	}
	return strings.Join(segs[:level], Delimiter)
}
