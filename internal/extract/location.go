package extract

import "strings"

// locationContext is the per-document state shared by the cascade steps.
type locationContext struct {
	text     string
	lines    []string
	head     string // first 10 non-empty lines
	excluded bool   // excluded-region signal anywhere in the document
}

// locationStep is one strategy in the cascade; first non-empty result wins.
type locationStep struct {
	name string
	fn   func(*Extractor, *locationContext) string
}

// The cascade order is load-bearing. Resumes routinely mention a prior
// employer's city or an unrelated project location, so the full-document
// scans only fire when nothing contradicts them: the header-only scan
// (first 10 lines) covers the common case of the real location near the
// top, and the whole-document scan runs only when no excluded-region
// signal exists anywhere.
var locationCascade = []locationStep{
	{"city-state-abbr", (*Extractor).locCityAbbr},
	{"city-state-name", (*Extractor).locCityStateName},
	{"city-zip", (*Extractor).locCityZip},
	{"label-line", (*Extractor).locLabelLine},
	{"header-city", (*Extractor).locHeaderCity},
	{"document-city", (*Extractor).locDocumentCity},
	{"remote", (*Extractor).locRemote},
	{"country", (*Extractor).locCountry},
}

// Location runs the cascade and returns the first hit, or "".
func (e *Extractor) Location(text string) string {
	lines := nonEmptyLines(text)
	head := lines
	if len(head) > 10 {
		head = head[:10]
	}
	ctx := &locationContext{
		text:     text,
		lines:    lines,
		head:     strings.Join(head, "\n"),
		excluded: e.lex.HasExcludedContext(text),
	}
	for _, step := range locationCascade {
		if v := step.fn(e, ctx); v != "" {
			return v
		}
	}
	return ""
}

// locCityAbbr matches "City, ST" against the state abbreviation set. An
// excluded-region city is rejected outright, and an ambiguous state code
// (one that doubles as a foreign region code) only counts when the city
// itself is a verified target-market city.
func (e *Extractor) locCityAbbr(ctx *locationContext) string {
	for _, m := range e.pats.cityAbbr.FindAllStringSubmatch(ctx.text, -1) {
		city, abbr := strings.TrimSpace(m[1]), m[2]
		if !e.lex.IsStateAbbr(abbr) {
			continue
		}
		if e.lex.IsExcludedCity(city) {
			continue
		}
		if e.lex.IsAmbiguousAbbr(abbr) && !e.lex.IsUSCity(city) {
			continue
		}
		return city + ", " + abbr
	}
	return ""
}

// locCityStateName matches "City, Full State Name".
func (e *Extractor) locCityStateName(ctx *locationContext) string {
	for _, m := range e.pats.cityState.FindAllStringSubmatch(ctx.text, -1) {
		city, state := strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
		if _, ok := e.lex.StateAbbrs[strings.ToLower(state)]; !ok {
			continue
		}
		if e.lex.IsExcludedCity(city) {
			continue
		}
		return city + ", " + state
	}
	return ""
}

// locCityZip matches the postal-code anchored "City, ST 94105" form.
func (e *Extractor) locCityZip(ctx *locationContext) string {
	for _, m := range e.pats.cityZip.FindAllStringSubmatch(ctx.text, -1) {
		city, abbr := strings.TrimSpace(m[1]), m[2]
		if !e.lex.IsStateAbbr(abbr) {
			continue
		}
		if e.lex.IsExcludedCity(city) {
			continue
		}
		return city + ", " + abbr
	}
	return ""
}

// locLabelLine accepts an explicit "Location:"/"Address:" line, unless the
// value carries excluded-region context, is a long digit run (an ID or
// postal number), or is an email.
func (e *Extractor) locLabelLine(ctx *locationContext) string {
	for _, line := range ctx.lines {
		m := e.pats.locationLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		value := strings.Trim(strings.TrimSpace(m[1]), "|,;.")
		if value == "" {
			continue
		}
		if e.lex.HasExcludedContext(value) {
			continue
		}
		if e.pats.digitRun.MatchString(value) || strings.Contains(value, "@") {
			continue
		}
		return value
	}
	return ""
}

// locHeaderCity scans only the first 10 lines for a known target-market
// city, rejecting the hit when those same lines carry excluded-region
// context.
func (e *Extractor) locHeaderCity(ctx *locationContext) string {
	if e.lex.HasExcludedContext(ctx.head) {
		return ""
	}
	return e.lex.FindUSCity(ctx.head)
}

// locDocumentCity scans the whole document, but only when no
// excluded-region signal was detected anywhere.
func (e *Extractor) locDocumentCity(ctx *locationContext) string {
	if ctx.excluded {
		return ""
	}
	return e.lex.FindUSCity(ctx.text)
}

// locRemote picks up remote/hybrid working arrangements.
func (e *Extractor) locRemote(ctx *locationContext) string {
	m := strings.ToLower(e.pats.remote.FindString(ctx.text))
	switch m {
	case "remote", "wfh", "work from home":
		return "Remote"
	case "hybrid":
		return "Hybrid"
	}
	return ""
}

// locCountry is the last resort: a bare country mention, and only when
// nothing contradicts it.
func (e *Extractor) locCountry(ctx *locationContext) string {
	if ctx.excluded {
		return ""
	}
	if e.pats.country.MatchString(ctx.text) {
		return "USA"
	}
	return ""
}
