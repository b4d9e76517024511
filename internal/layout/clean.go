package layout

import (
	"regexp"
	"strings"
)

const (
	minHeadingChars = 3
	maxHeadingChars = 200
)

var (
	sectionWordRe  = regexp.MustCompile(`(?i)^(chapter|section|part)\s*\d*\.?\s*`)
	trailingPageRe = regexp.MustCompile(`\s+\d+\s*$`)
	titleExtRe     = regexp.MustCompile(`(?i)\.(pdf|docx?)$`)
)

// CleanHeadingText normalizes heading text: whitespace is collapsed,
// "Chapter N" style prefixes and trailing standalone page numbers (as left
// over from table-of-contents rows) are stripped. Returns "" when the
// result falls outside plausible heading length.
func CleanHeadingText(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	text = sectionWordRe.ReplaceAllString(text, "")
	text = trailingPageRe.ReplaceAllString(text, "")
	if n := len([]rune(text)); n < minHeadingChars || n > maxHeadingChars {
		return ""
	}
	return text
}

// CleanTitleText normalizes a document title: whitespace is collapsed, a
// trailing filename extension is removed, and the result is capped at 200
// characters.
func CleanTitleText(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	text = titleExtRe.ReplaceAllString(text, "")
	if r := []rune(text); len(r) > maxHeadingChars {
		text = string(r[:maxHeadingChars])
	}
	return text
}
