// Package respond validates and cleans generator output before it reaches
// the caller.
//
// Clean is idempotent: running it over already-cleaned text changes nothing,
// so the pipeline can apply it without tracking whether text was cleaned
// upstream.
package respond

import (
	"regexp"
	"strings"
)

// Role-label markers that must never leak into a final answer. Any line
// containing one is dropped wholesale.
var roleMarkers = []string{"system:", "user:", "assistant:", "model:", "instruction:"}

// Canonical devotional openings. Clean prepends the greeting only when the
// text starts with none of these.
var openings = []string{"In the name of Allah", "As-salamu", "Bismillah"}

// Canonical devotional closings.
var closings = []string{"Allah knows best.", "Allah knows best"}

const (
	greeting = "As-salamu alaykum. "
	closing  = "\n\nAnd Allah knows best."
)

// Refusal and self-disclosure patterns. A response matching any of these is
// rejected and replaced by a fallback template.
var refusalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)i cannot answer`),
	regexp.MustCompile(`(?i)i can't answer`),
	regexp.MustCompile(`(?i)i am unable to answer`),
	regexp.MustCompile(`(?i)as an ai`),
	regexp.MustCompile(`(?i)as a language model`),
	regexp.MustCompile(`(?i)i don't have.*information`),
	regexp.MustCompile(`(?i)i do not have.*information`),
}

// minAcceptableLength is the minimum trimmed length of a usable answer.
const minAcceptableLength = 50

// Clean normalizes raw generator output: drops lines carrying role-label
// markers, strips leading markdown and role-prefix tokens, and enforces the
// devotional opening and closing.
func Clean(raw string) string {
	var kept []string
	for _, line := range strings.Split(raw, "\n") {
		if containsRoleMarker(line) {
			continue
		}
		kept = append(kept, line)
	}

	text := strings.TrimSpace(strings.Join(kept, "\n"))
	text = stripLeadingTokens(text)

	if !hasOpening(text) {
		text = greeting + text
	}
	if !hasClosing(text) {
		text += closing
	}
	return text
}

// IsAcceptable reports whether cleaned generator text can be surfaced as a
// final answer: long enough to be substantive and free of refusal or
// self-disclosure patterns.
func IsAcceptable(text string) bool {
	if len(strings.TrimSpace(text)) < minAcceptableLength {
		return false
	}
	for _, pat := range refusalPatterns {
		if pat.MatchString(text) {
			return false
		}
	}
	return true
}

func containsRoleMarker(line string) bool {
	lower := strings.ToLower(line)
	for _, marker := range roleMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// stripLeadingTokens removes code fences, markdown heading hashes, and stray
// role-prefix tokens from the front of the text.
func stripLeadingTokens(text string) string {
	for {
		trimmed := strings.TrimSpace(text)

		if strings.HasPrefix(trimmed, "```") {
			if idx := strings.IndexByte(trimmed, '\n'); idx >= 0 {
				text = trimmed[idx+1:]
				continue
			}
			return ""
		}
		if strings.HasPrefix(trimmed, "#") {
			text = strings.TrimLeft(trimmed, "# ")
			continue
		}
		lower := strings.ToLower(trimmed)
		stripped := false
		for _, prefix := range []string{"answer:", "response:"} {
			if strings.HasPrefix(lower, prefix) {
				text = strings.TrimSpace(trimmed[len(prefix):])
				stripped = true
				break
			}
		}
		if stripped {
			continue
		}
		return trimmed
	}
}

func hasOpening(text string) bool {
	for _, o := range openings {
		if strings.HasPrefix(text, o) {
			return true
		}
	}
	return false
}

func hasClosing(text string) bool {
	for _, c := range closings {
		if strings.HasSuffix(text, c) {
			return true
		}
	}
	return false
}
