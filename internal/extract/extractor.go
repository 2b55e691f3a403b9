// Package extract derives structured candidate fields from raw resume
// text. Every extractor is a pure function of its input and the lexicon:
// identical text always yields identical fields, malformed input degrades
// to an empty result, and nothing here performs I/O.
package extract

import (
	"regexp"
	"strings"
	"time"

	"talentsift/internal/lexicon"
	"talentsift/internal/types"

	"github.com/google/uuid"
)

// UnknownName is the sentinel used when no plausible name line exists.
const UnknownName = "Unknown Candidate"

// Extractor bundles the lexicon with the precompiled field patterns. All
// patterns are built once here so the escaping and boundary handling is
// auditable in one place.
type Extractor struct {
	lex  *lexicon.Lexicon
	pats patterns
}

type patterns struct {
	email        *regexp.Regexp
	url          *regexp.Regexp
	phones       []*regexp.Regexp
	phoneLoose   *regexp.Regexp
	experience   *regexp.Regexp
	nameSep      *regexp.Regexp
	digitRun     *regexp.Regexp
	cityAbbr     *regexp.Regexp
	cityState    *regexp.Regexp
	cityZip      *regexp.Regexp
	locationLine *regexp.Regexp
	remote       *regexp.Regexp
	country      *regexp.Regexp
	titleLine    *regexp.Regexp
	titleDesc    *regexp.Regexp
	summaryHead  *regexp.Regexp
	narrative    *regexp.Regexp
	heading      *regexp.Regexp
}

// New builds an extractor over the given lexicon.
func New(lex *lexicon.Lexicon) *Extractor {
	// Multi-word city names join on spaces or tabs only; \s would let the
	// match bleed across a line break into the preceding line.
	city := `([A-Z][a-z]+(?:[ \t][A-Z][a-z]+){0,2})`
	return &Extractor{
		lex: lex,
		pats: patterns{
			email: regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`),
			url:   regexp.MustCompile(`(?i)\b(?:https?://|www\.)\S+|\blinkedin\.com/\S+|\bgithub\.com/\S+`),
			// Ordered most-specific first so a fully formatted number is
			// preferred over a truncated substring of itself.
			phones: []*regexp.Regexp{
				regexp.MustCompile(`\+\d{1,3}[-.\s]?\(?\d{2,4}\)?[-.\s]?\d{3,5}[-.\s]?\d{3,5}`),
				regexp.MustCompile(`\(\d{3}\)[-.\s]?\d{3}[-.\s]?\d{4}`),
				regexp.MustCompile(`\b\d{3}[-.\s]\d{3}[-.\s]\d{4}\b`),
				regexp.MustCompile(`\+?\d[\d\s().-]{8,}\d`),
			},
			phoneLoose:   regexp.MustCompile(`\+?\d[\d\s().-]{8,}\d`),
			experience:   regexp.MustCompile(`\d+\+?\s?years?`),
			nameSep:      regexp.MustCompile(`[|•·,]+`),
			digitRun:     regexp.MustCompile(`\d{6,}`),
			cityAbbr:     regexp.MustCompile(city + `\s*,\s*([A-Z]{2})\b`),
			cityState:    regexp.MustCompile(city + `\s*,\s*([A-Z][a-z]+(?:[ \t][A-Z][a-z]+)?)\b`),
			cityZip:      regexp.MustCompile(city + `\s*,?\s+([A-Z]{2})\s+(\d{5})(?:-\d{4})?\b`),
			locationLine: regexp.MustCompile(`(?i)^\s*(?:location|address|based in|city|residence)\s*[:\-]\s*(.+)$`),
			remote:       regexp.MustCompile(`(?i)\b(remote|work from home|wfh|hybrid)\b`),
			country:      regexp.MustCompile(`(?i)\b(?:usa|u\.s\.a\.?|u\.s\.|united states(?: of america)?)\b`),
			titleLine:    regexp.MustCompile(`(?i)^\s*(?:job\s+)?(?:title|role|designation|position)\s*[:\-]\s*(.+)$`),
			titleDesc:    regexp.MustCompile(`(?i)[|.]?\s*description\s*[:.\-].*$`),
			summaryHead:  regexp.MustCompile(`(?i)^\s*(?:professional\s+)?(?:summary|objective|profile|about\s+me)\b`),
			narrative: regexp.MustCompile(`(?i)\b(?:experienced|skilled|certified|seasoned|passionate)\s+` +
				`((?:[A-Za-z/+#.&-]+\s+){0,4}?(?:developer|engineer|analyst|scientist|architect|manager|consultant|designer|administrator))\b`),
			heading: regexp.MustCompile(`^[A-Z][A-Z\s&/-]{2,}$`),
		},
	}
}

// Parse runs every field extractor over the text and assembles a new
// Candidate. The id and timestamp are the only non-deterministic parts.
func (e *Extractor) Parse(text, fileName string) types.Candidate {
	return types.Candidate{
		ID:         uuid.NewString(),
		Name:       e.Name(text),
		Title:      e.Title(text),
		Email:      e.Email(text),
		Phone:      e.Phone(text),
		Location:   e.Location(text),
		Experience: e.Experience(text),
		Skills:     strings.Join(e.Skills(text), ", "),
		Content:    text,
		FileName:   fileName,
		UploadedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// Name takes the first non-empty line, truncated to 60 characters, with
// embedded email/phone/URL fragments stripped and separator punctuation
// collapsed to spaces.
func (e *Extractor) Name(text string) string {
	line := firstNonEmptyLine(text)
	if line == "" {
		return UnknownName
	}
	line = truncateRunes(line, 60)
	line = e.pats.email.ReplaceAllString(line, " ")
	line = e.pats.url.ReplaceAllString(line, " ")
	line = e.pats.phoneLoose.ReplaceAllString(line, " ")
	line = e.pats.nameSep.ReplaceAllString(line, " ")
	line = strings.Join(strings.Fields(line), " ")
	if len(line) < 2 {
		return UnknownName
	}
	return line
}

// Email returns the first email-shaped substring; syntax only, no
// deliverability validation.
func (e *Extractor) Email(text string) string {
	return e.pats.email.FindString(text)
}

// Phone tries the ordered phone patterns and returns the first hit.
func (e *Extractor) Phone(text string) string {
	for _, re := range e.pats.phones {
		if m := re.FindString(text); m != "" {
			return strings.TrimSpace(m)
		}
	}
	return ""
}

// Experience returns the first "<n>[+] year(s)" mention verbatim; the
// literal text is the canonical form, no numeric normalization.
func (e *Extractor) Experience(text string) string {
	return strings.TrimSpace(e.pats.experience.FindString(strings.ToLower(text)))
}

// Skills returns every lexicon skill found in the text, lexicon order.
func (e *Extractor) Skills(text string) []string {
	return e.lex.MatchSkills(text)
}

func firstNonEmptyLine(text string) string {
	for line := range strings.Lines(text) {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func nonEmptyLines(text string) []string {
	var lines []string
	for line := range strings.Lines(text) {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.TrimSpace(string(runes[:n]))
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}
