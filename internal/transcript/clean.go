// Package transcript cleans raw speech-to-text output before it reaches the
// scoring prompt.
package transcript

import (
	"regexp"
	"strings"
)

var (
	// ASS/SSA subtitle override tags the transcription API leaks through,
	// e.g. `\an8`.
	subtitleTags = regexp.MustCompile(`\\an\d+\\?`)

	// punctuation noise that adds tokens without meaning
	noiseChars = regexp.MustCompile("[-–—_=*#{}<>\\[\\]\"'`|]")

	runsOfSpace    = regexp.MustCompile(`\s{2,}`)
	runsOfNewlines = regexp.MustCompile(`\n{2,}`)

	// hh:mm:ss style timestamps (also matched with dots as separators)
	timestamps = regexp.MustCompile(`\d{2,}[:.]\d{2,}[:.]\d{2,}`)
)

// Clean strips subtitle artifacts, punctuation noise and timestamps from a
// raw transcript and collapses whitespace. Pure string transform.
func Clean(text string) string {
	text = subtitleTags.ReplaceAllString(text, "")
	text = noiseChars.ReplaceAllString(text, "")
	text = runsOfSpace.ReplaceAllString(text, " ")
	text = runsOfNewlines.ReplaceAllString(text, "\n")
	text = timestamps.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// Join concatenates per-chunk transcript parts in order and cleans the result.
func Join(parts []string) string {
	return Clean(strings.TrimSpace(strings.Join(parts, " ")))
}
