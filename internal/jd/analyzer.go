// Package jd analyzes free-text job descriptions: it splits the text into
// required and preferred sections and extracts the target title and skill
// sets that drive match scoring.
package jd

import (
	"regexp"
	"strings"

	"talentsift/internal/extract"
	"talentsift/internal/lexicon"
)

// Analysis is the transient result of analyzing one job description. It is
// recomputed on every matching run and never persisted.
type Analysis struct {
	// Title is the best-effort detected target role title, "" if none.
	Title string `json:"jdTitle"`

	// Required and Preferred are disjoint: a skill found in both sections
	// stays required only.
	Required  []string `json:"requiredSkills"`
	Preferred []string `json:"preferredSkills"`

	// All is the full skill set found anywhere in the JD, used as the
	// fallback when no structured sections exist. No skill is ever
	// silently dropped: an unstructured JD is treated as 100% required.
	All []string `json:"allJdSkills"`

	// Keywords are the unique JD content words (>4 chars, no stop words)
	// used for keyword-overlap scoring.
	Keywords []string `json:"-"`
}

// IsEmpty reports whether the JD yielded nothing to match against.
func (a Analysis) IsEmpty() bool {
	return a.Title == "" && len(a.Required) == 0 && len(a.Preferred) == 0 &&
		len(a.All) == 0 && len(a.Keywords) == 0
}

// Analyzer splits JDs into sections using the shared lexicon and title
// extractor.
type Analyzer struct {
	lex *lexicon.Lexicon
	ex  *extract.Extractor

	requiredHead  *regexp.Regexp
	preferredHead *regexp.Regexp
	word          *regexp.Regexp
}

// NewAnalyzer builds a JD analyzer over the given lexicon and extractor.
func NewAnalyzer(lex *lexicon.Lexicon, ex *extract.Extractor) *Analyzer {
	return &Analyzer{
		lex: lex,
		ex:  ex,
		requiredHead: regexp.MustCompile(`(?i)^\s*[-•*]?\s*` +
			`(?:minimum\s+qualifications?|requirements?|required(?:\s+(?:skills?|qualifications?|experience))?|` +
			`must[\s-]have|mandatory(?:\s+skills?)?)\b\s*[:\-]?\s*(.*)$`),
		preferredHead: regexp.MustCompile(`(?i)^\s*[-•*]?\s*` +
			`(?:preferred(?:\s+(?:skills?|qualifications?|experience))?|nice[\s-]to[\s-]have|` +
			`bonus(?:\s+(?:points|skills?))?|desired(?:\s+skills?)?|good[\s-]to[\s-]have|plus(?:es)?)\b\s*[:\-]?\s*(.*)$`),
		word: regexp.MustCompile(`[a-z0-9+#]+`),
	}
}

// Analyze scans the JD line by line. A required/preferred header switches
// the accumulation target (any trailing text on the header line itself is
// kept); any other heading-shaped line switches accumulation off so that
// unrelated sections like "Responsibilities" are not misattributed.
func (a *Analyzer) Analyze(text string) Analysis {
	if strings.TrimSpace(text) == "" {
		return Analysis{}
	}

	var requiredBuf, preferredBuf []string
	inRequired, inPreferred := false, false

	for line := range strings.Lines(text) {
		trimmed := strings.TrimSpace(line)

		if m := a.matchHeader(a.requiredHead, trimmed); m != nil {
			inRequired, inPreferred = true, false
			if rest := strings.TrimSpace(m[1]); rest != "" {
				requiredBuf = append(requiredBuf, rest)
			}
			continue
		}
		if m := a.matchHeader(a.preferredHead, trimmed); m != nil {
			inRequired, inPreferred = false, true
			if rest := strings.TrimSpace(m[1]); rest != "" {
				preferredBuf = append(preferredBuf, rest)
			}
			continue
		}
		if isGenericHeading(trimmed) {
			inRequired, inPreferred = false, false
			continue
		}
		if inRequired {
			requiredBuf = append(requiredBuf, trimmed)
		} else if inPreferred {
			preferredBuf = append(preferredBuf, trimmed)
		}
	}

	required := a.lex.MatchSkills(strings.Join(requiredBuf, "\n"))
	preferred := a.lex.MatchSkills(strings.Join(preferredBuf, "\n"))
	all := a.lex.MatchSkills(text)

	// No structured sections found anywhere: the whole JD is required.
	if len(required) == 0 && len(preferred) == 0 {
		required = all
	}
	preferred = subtract(preferred, required)

	return Analysis{
		Title:     a.ex.Title(text),
		Required:  required,
		Preferred: preferred,
		All:       all,
		Keywords:  a.keywords(text),
	}
}

// matchHeader applies a header pattern. The patterns are anchored to the
// line start, so prose mentioning "required" mid-sentence never flips the
// state; no length limit applies because a header line may carry an
// arbitrarily long trailing skill list.
func (a *Analyzer) matchHeader(re *regexp.Regexp, line string) []string {
	if line == "" {
		return nil
	}
	return re.FindStringSubmatch(line)
}

// isGenericHeading matches short heading-shaped lines: all caps or ending
// in a colon.
func isGenericHeading(line string) bool {
	if line == "" || len(line) >= 60 {
		return false
	}
	if strings.HasSuffix(line, ":") {
		return true
	}
	hasLetter := false
	for _, r := range line {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if r >= 'A' && r <= 'Z' {
			hasLetter = true
		}
	}
	return hasLetter
}

// keywords returns the unique JD words longer than 4 characters that are
// not stop words, in first-seen order.
func (a *Analyzer) keywords(text string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, w := range a.word.FindAllString(strings.ToLower(text), -1) {
		if len(w) <= 4 || a.lex.IsStopWord(w) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

func subtract(from, remove []string) []string {
	if len(from) == 0 || len(remove) == 0 {
		return from
	}
	removeSet := make(map[string]struct{}, len(remove))
	for _, r := range remove {
		removeSet[r] = struct{}{}
	}
	var out []string
	for _, f := range from {
		if _, drop := removeSet[f]; !drop {
			out = append(out, f)
		}
	}
	return out
}
