package lexicon

import (
	"regexp"
	"sort"
	"strings"
)

// Lexicon is the immutable reference vocabulary driving every extractor
// and scorer. It is constructed once at startup and passed by reference;
// nothing mutates it afterwards, which keeps extraction purely functional
// and lets tests substitute a small lexicon of their own.
type Lexicon struct {
	// Skills in canonical lower-case form, lexicon order.
	Skills []string

	// Titles is the generated job-title vocabulary, deduplicated and
	// sorted longest-first so multi-word titles win over sub-phrases.
	Titles []string

	// CoreRoles are the role nouns used for title-mismatch detection
	// ("engineer" vs "manager").
	CoreRoles []string

	// USCities / ExcludedCities / WorldCities partition the city registry
	// by region context. ExcludedCities are locations outside the target
	// market that commonly appear in resumes as prior-employer or project
	// locations and must never be reported as the candidate's location.
	USCities       []string
	ExcludedCities []string
	WorldCities    []string

	// ExcludedHints are contextual keywords whose presence marks a
	// document as carrying excluded-region context.
	ExcludedHints []string

	// StateAbbrs maps lower-case full state names to their two-letter
	// postal abbreviation.
	StateAbbrs map[string]string

	// AmbiguousAbbrs are state codes that double as foreign region codes
	// (e.g. "IN"); they only count as a US state when paired with a
	// verified US city name. The exact membership is a tuning knob, not
	// a hard rule.
	AmbiguousAbbrs map[string]struct{}

	// StopWords excluded from keyword-overlap scoring.
	StopWords map[string]struct{}

	skillMatchers  []skillMatcher
	titleSet       map[string]struct{}
	usCitySet      map[string]struct{}
	excludedSet    map[string]struct{}
	abbrSet        map[string]struct{}
	usCityRe       *regexp.Regexp
	excludedHintRe *regexp.Regexp
}

// skillMatcher matches one skill. Single-token alphanumeric skills use a
// word-boundary regex; multi-word or punctuated skills ("c++", ".net",
// "ci/cd") fall back to substring containment because \b is unreliable
// around those characters.
type skillMatcher struct {
	label string
	re    *regexp.Regexp // nil means substring match
}

var simpleToken = regexp.MustCompile(`^[a-z0-9]+$`)

// Data is the raw, uncompiled vocabulary a Lexicon is built from.
type Data struct {
	Skills          []string
	TitleQualifiers []string
	TitleDomains    []string
	TitleRoles      []string
	IrregularTitles []string
	CoreRoles       []string
	USCities        []string
	ExcludedCities  []string
	WorldCities     []string
	ExcludedHints   []string
	StateAbbrs      map[string]string
	AmbiguousAbbrs  []string
	StopWords       []string
}

// New compiles a Lexicon from raw data.
func New(d Data) *Lexicon {
	lex := &Lexicon{
		Skills:         d.Skills,
		Titles:         generateTitles(d),
		CoreRoles:      d.CoreRoles,
		USCities:       d.USCities,
		ExcludedCities: d.ExcludedCities,
		WorldCities:    d.WorldCities,
		ExcludedHints:  d.ExcludedHints,
		StateAbbrs:     d.StateAbbrs,
		AmbiguousAbbrs: toSet(d.AmbiguousAbbrs),
		StopWords:      toSet(d.StopWords),
	}
	lex.compile()
	return lex
}

// Default returns the lexicon built from the built-in vocabulary.
func Default() *Lexicon {
	return New(DefaultData())
}

// generateTitles builds the title vocabulary: the qualifier x domain x role
// cross-product plus irregular titles, deduplicated and sorted longest-first.
func generateTitles(d Data) []string {
	seen := make(map[string]struct{})
	var titles []string
	add := func(t string) {
		t = strings.TrimSpace(t)
		if t == "" {
			return
		}
		if _, dup := seen[t]; dup {
			return
		}
		seen[t] = struct{}{}
		titles = append(titles, t)
	}

	qualifiers := append([]string{""}, d.TitleQualifiers...)
	domains := append([]string{""}, d.TitleDomains...)
	for _, q := range qualifiers {
		for _, dom := range domains {
			for _, role := range d.TitleRoles {
				parts := make([]string, 0, 3)
				for _, p := range []string{q, dom, role} {
					if p != "" {
						parts = append(parts, p)
					}
				}
				add(strings.Join(parts, " "))
			}
		}
	}
	for _, t := range d.IrregularTitles {
		add(strings.ToLower(t))
	}

	sort.Slice(titles, func(i, j int) bool {
		if len(titles[i]) != len(titles[j]) {
			return len(titles[i]) > len(titles[j])
		}
		return titles[i] < titles[j]
	})
	return titles
}

func (l *Lexicon) compile() {
	l.skillMatchers = make([]skillMatcher, 0, len(l.Skills))
	for _, s := range l.Skills {
		m := skillMatcher{label: s}
		if simpleToken.MatchString(s) {
			m.re = regexp.MustCompile(`\b` + regexp.QuoteMeta(s) + `\b`)
		}
		l.skillMatchers = append(l.skillMatchers, m)
	}

	l.titleSet = toSet(l.Titles)
	l.usCitySet = toSet(l.USCities)
	l.excludedSet = toSet(l.ExcludedCities)

	l.abbrSet = make(map[string]struct{}, len(l.StateAbbrs))
	for _, abbr := range l.StateAbbrs {
		l.abbrSet[abbr] = struct{}{}
	}

	if len(l.USCities) > 0 {
		l.usCityRe = regexp.MustCompile(`(?i)\b(` + joinQuoted(l.USCities) + `)\b`)
	}
	if len(l.ExcludedHints) > 0 || len(l.ExcludedCities) > 0 {
		hints := append(append([]string{}, l.ExcludedHints...), l.ExcludedCities...)
		l.excludedHintRe = regexp.MustCompile(`(?i)\b(` + joinQuoted(hints) + `)\b`)
	}
}

func joinQuoted(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return strings.Join(quoted, "|")
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[strings.ToLower(it)] = struct{}{}
	}
	return set
}

// MatchSkills returns every lexicon skill present in the text, preserving
// lexicon order. The result has no duplicates because the skill list has
// none.
func (l *Lexicon) MatchSkills(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, m := range l.skillMatchers {
		if m.re != nil {
			if m.re.MatchString(lower) {
				found = append(found, m.label)
			}
		} else if strings.Contains(lower, m.label) {
			found = append(found, m.label)
		}
	}
	return found
}

// ContainsTitle reports whether s, lower-cased and trimmed, is a known
// job title.
func (l *Lexicon) ContainsTitle(s string) bool {
	_, ok := l.titleSet[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// FindTitle returns the first (longest, by vocabulary order) lexicon title
// contained in the text, requiring at least minWords words. It returns the
// substring as it appears in the input, preserving the author's casing.
func (l *Lexicon) FindTitle(text string, minWords int) string {
	lower := lowerASCII(text)
	for _, title := range l.Titles {
		if minWords > 1 && strings.Count(title, " ") < minWords-1 {
			continue
		}
		idx := indexWord(lower, title)
		if idx >= 0 {
			return text[idx : idx+len(title)]
		}
	}
	return ""
}

// lowerASCII lower-cases ASCII letters only, leaving every other byte in
// place. Unlike strings.ToLower it never changes byte lengths, so an index
// into the result is a valid index into the original string. The title
// vocabulary is ASCII, so this loses no matches.
func lowerASCII(s string) string {
	var b []byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			if b == nil {
				b = []byte(s)
			}
			b[i] = c + ('a' - 'A')
		}
	}
	if b == nil {
		return s
	}
	return string(b)
}

// indexWord finds needle in haystack at word boundaries (both already
// lower-case). Returns -1 when absent.
func indexWord(haystack, needle string) int {
	start := 0
	for {
		idx := strings.Index(haystack[start:], needle)
		if idx < 0 {
			return -1
		}
		idx += start
		before := idx == 0 || !isWordChar(haystack[idx-1])
		afterIdx := idx + len(needle)
		after := afterIdx >= len(haystack) || !isWordChar(haystack[afterIdx])
		if before && after {
			return idx
		}
		start = idx + 1
		if start >= len(haystack) {
			return -1
		}
	}
}

func isWordChar(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

// CoreRole returns the core role noun contained in the title, or "".
func (l *Lexicon) CoreRole(title string) string {
	lower := strings.ToLower(title)
	for _, role := range l.CoreRoles {
		if indexWord(lower, role) >= 0 {
			return role
		}
	}
	return ""
}

// IsUSCity reports whether name is a known target-market city.
func (l *Lexicon) IsUSCity(name string) bool {
	_, ok := l.usCitySet[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// IsExcludedCity reports whether name is in the excluded-region city set.
func (l *Lexicon) IsExcludedCity(name string) bool {
	_, ok := l.excludedSet[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// FindUSCity scans text for a known target-market city and returns it in
// canonical title case, or "".
func (l *Lexicon) FindUSCity(text string) string {
	if l.usCityRe == nil {
		return ""
	}
	m := l.usCityRe.FindString(text)
	if m == "" {
		return ""
	}
	return TitleCase(m)
}

// HasExcludedContext reports whether the text carries any excluded-region
// signal (city name or contextual keyword).
func (l *Lexicon) HasExcludedContext(text string) bool {
	return l.excludedHintRe != nil && l.excludedHintRe.MatchString(text)
}

// IsStateAbbr reports whether code is a US state postal abbreviation.
func (l *Lexicon) IsStateAbbr(code string) bool {
	_, ok := l.abbrSet[strings.ToUpper(code)]
	return ok
}

// IsAmbiguousAbbr reports whether the state code also reads as a foreign
// region code and therefore needs city corroboration.
func (l *Lexicon) IsAmbiguousAbbr(code string) bool {
	_, ok := l.AmbiguousAbbrs[strings.ToLower(code)]
	return ok
}

// IsStopWord reports whether w is excluded from keyword scoring.
func (l *Lexicon) IsStopWord(w string) bool {
	_, ok := l.StopWords[strings.ToLower(w)]
	return ok
}

// TitleCase upper-cases the first letter of each space-separated word.
func TitleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
