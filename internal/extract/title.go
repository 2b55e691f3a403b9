package extract

import "strings"

// titleStep is one strategy in the title cascade; first hit wins.
type titleStep struct {
	name string
	fn   func(*Extractor, *titleContext) string
}

type titleContext struct {
	text  string
	lines []string
}

// Position in the document decides how much we trust a line. An explicit
// "Title:" label is trusted even for unrecognized values as long as they
// are short; the lines right under the name are only trusted when the
// lexicon recognizes a title in them, because taglines and addresses live
// there too.
var titleCascade = []titleStep{
	{"labeled", (*Extractor).titleLabeled},
	{"under-name", (*Extractor).titleUnderName},
	{"summary", (*Extractor).titleSummary},
	{"narrative", (*Extractor).titleNarrative},
	{"anywhere", (*Extractor).titleAnywhere},
}

// Title runs the title cascade and returns the first hit, or "".
func (e *Extractor) Title(text string) string {
	ctx := &titleContext{text: text, lines: nonEmptyLines(text)}
	for _, step := range titleCascade {
		if v := step.fn(e, ctx); v != "" {
			return v
		}
	}
	return ""
}

// titleLabeled looks for an explicit "Title:"/"Role:" label in the first
// 30 lines. The value is taken verbatim when the lexicon recognizes it,
// or when it is short enough to plausibly be a title anyway.
func (e *Extractor) titleLabeled(ctx *titleContext) string {
	limit := len(ctx.lines)
	if limit > 30 {
		limit = 30
	}
	for _, line := range ctx.lines[:limit] {
		m := e.pats.titleLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		value := strings.TrimSpace(m[1])
		value = e.pats.titleDesc.ReplaceAllString(value, "")
		value = strings.Trim(strings.TrimSpace(value), "|,;-")
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if e.lex.ContainsTitle(value) || e.lex.FindTitle(value, 1) != "" {
			return value
		}
		if wordCount(value) <= 6 && len(value) <= 55 {
			return value
		}
	}
	return ""
}

// titleUnderName checks lines 2-8, skipping contact-shaped lines. Only a
// lexicon-recognized title is accepted at this position.
func (e *Extractor) titleUnderName(ctx *titleContext) string {
	end := len(ctx.lines)
	if end > 8 {
		end = 8
	}
	if end < 2 {
		return ""
	}
	for _, line := range ctx.lines[1:end] {
		if e.isContactShaped(line) {
			continue
		}
		if t := e.lex.FindTitle(line, 1); t != "" {
			return t
		}
	}
	return ""
}

// titleSummary extracts a recognized title from the body of a
// Summary/Objective/Profile section.
func (e *Extractor) titleSummary(ctx *titleContext) string {
	for i, line := range ctx.lines {
		if !e.pats.summaryHead.MatchString(line) {
			continue
		}
		var body []string
		for j := i + 1; j < len(ctx.lines) && j <= i+8; j++ {
			next := ctx.lines[j]
			if e.pats.heading.MatchString(next) {
				break
			}
			body = append(body, next)
		}
		return e.lex.FindTitle(strings.Join(body, "\n"), 1)
	}
	return ""
}

// titleNarrative matches "Experienced/Skilled/Certified ... <role>" prose.
func (e *Extractor) titleNarrative(ctx *titleContext) string {
	m := e.pats.narrative.FindStringSubmatch(ctx.text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// titleAnywhere scans the whole document, but only for multi-word titles;
// a bare "manager" out of context is not evidence.
func (e *Extractor) titleAnywhere(ctx *titleContext) string {
	return e.lex.FindTitle(ctx.text, 2)
}

// isContactShaped reports whether a line looks like contact info rather
// than a role line.
func (e *Extractor) isContactShaped(line string) bool {
	if strings.Contains(line, "@") {
		return true
	}
	if e.pats.phoneLoose.MatchString(line) {
		return true
	}
	if e.pats.url.MatchString(line) {
		return true
	}
	return false
}
