// Package sections classifies each line of a resume into a semantic role
// for structured display. This is a display-layer classifier only; it
// never feeds back into field extraction.
package sections

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// LineType is the semantic role assigned to one resume line.
type LineType string

const (
	TypeHeading    LineType = "heading"
	TypeSubheading LineType = "subheading"
	TypeBullet     LineType = "bullet"
	TypeDate       LineType = "date"
	TypeContact    LineType = "contact"
	TypeText       LineType = "text"
	TypeEmpty      LineType = "empty"
)

// Line is one classified resume line.
type Line struct {
	Type    LineType `json:"type"`
	Content string   `json:"content"`
}

// contactWindow is how many leading lines may be classified as contact
// info; an email further down is body text, not a contact line.
const contactWindow = 8

var (
	headingKeywords = map[string]struct{}{
		"summary": {}, "professional summary": {}, "objective": {},
		"career objective": {}, "profile": {}, "about me": {},
		"experience": {}, "work experience": {}, "professional experience": {},
		"employment": {}, "employment history": {}, "education": {},
		"skills": {}, "technical skills": {}, "core competencies": {},
		"projects": {}, "personal projects": {}, "certifications": {},
		"certificates": {}, "achievements": {}, "accomplishments": {},
		"awards": {}, "languages": {}, "interests": {}, "hobbies": {},
		"references": {}, "contact": {}, "contact information": {},
		"publications": {}, "volunteering": {},
	}

	decorative = regexp.MustCompile(`[^a-zA-Z ]`)
	allCaps    = regexp.MustCompile(`^[A-Z][A-Z\s&/.-]{2,}$`)
	bullet     = regexp.MustCompile(`^\s*(?:[-•*‣▪◦]\s+|\d{1,2}[.)]\s+)`)
	monthYear  = regexp.MustCompile(`(?i)\b(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d{4}\b`)
	yearRange  = regexp.MustCompile(`(?i)\b(?:19|20)\d{2}\s*(?:[-–—]|to)\s*(?:(?:19|20)\d{2}|present|current|now)\b`)
	email      = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phone      = regexp.MustCompile(`\+?\d[\d\s().-]{8,}\d`)
	url        = regexp.MustCompile(`(?i)\b(?:https?://|www\.)\S+|\blinkedin\.com/\S+|\bgithub\.com/\S+`)
)

// Classify tags every line of the text in order. Each line gets exactly
// one tag; the rules are checked in priority order.
func Classify(text string) []Line {
	var out []Line
	idx := 0
	for raw := range strings.Lines(text) {
		out = append(out, classifyLine(strings.TrimRight(raw, "\r\n"), idx))
		idx++
	}
	return out
}

func classifyLine(line string, idx int) Line {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Line{Type: TypeEmpty}
	}

	if isHeading(trimmed) {
		return Line{Type: TypeHeading, Content: trimmed}
	}
	if m := bullet.FindString(trimmed); m != "" {
		return Line{Type: TypeBullet, Content: strings.TrimSpace(trimmed[len(m):])}
	}
	if monthYear.MatchString(trimmed) || yearRange.MatchString(trimmed) {
		return Line{Type: TypeDate, Content: trimmed}
	}
	if idx < contactWindow && isContact(trimmed) {
		return Line{Type: TypeContact, Content: trimmed}
	}
	if isSubheading(trimmed) {
		return Line{Type: TypeSubheading, Content: trimmed}
	}
	return Line{Type: TypeText, Content: trimmed}
}

// isHeading recognizes known section names (after stripping decorative
// punctuation) and short all-caps lines.
func isHeading(line string) bool {
	stripped := strings.ToLower(strings.TrimSpace(decorative.ReplaceAllString(line, "")))
	stripped = strings.Join(strings.Fields(stripped), " ")
	if _, ok := headingKeywords[stripped]; ok {
		return true
	}
	return len(line) <= 40 && allCaps.MatchString(line)
}

func isContact(line string) bool {
	return email.MatchString(line) || phone.MatchString(line) || url.MatchString(line)
}

// isSubheading matches short single-sentence-shaped lines that start with
// a capital letter, e.g. a company or degree name.
func isSubheading(line string) bool {
	if len(line) >= 65 || strings.Contains(line, "@") {
		return false
	}
	first, _ := utf8.DecodeRuneInString(line)
	if !unicode.IsUpper(first) {
		return false
	}
	// More than one sentence terminator means prose, not a subheading.
	return strings.Count(line, ". ") == 0
}
