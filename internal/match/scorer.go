// Package match computes the weighted compatibility score between a
// candidate and an analyzed job description.
package match

import (
	"math"
	"sort"
	"strings"

	"talentsift/internal/jd"
	"talentsift/internal/lexicon"
	"talentsift/internal/types"
)

// Scoring weights. When the JD has no detectable title the title term is
// dropped and its weight redistributed across the remaining factors.
const (
	weightTitle     = 0.30
	weightRequired  = 0.45
	weightPreferred = 0.15
	weightKeyword   = 0.10

	weightRequiredNoTitle  = 0.55
	weightPreferredNoTitle = 0.25
	weightKeywordNoTitle   = 0.20

	// coreRoleMismatchPenalty keeps a Manager from scoring well against
	// an Engineer JD purely on shared adjectives.
	coreRoleMismatchPenalty = 0.15
)

// Result is the per-candidate output of scoring one JD.
type Result struct {
	Score            int      `json:"score"`
	MatchedSkills    []string `json:"matchedSkills"`
	MissingSkills    []string `json:"missingSkills"`
	MatchedPreferred []string `json:"matchedPreferred"`
	MissingPreferred []string `json:"missingPreferred"`
}

// Ranked pairs a candidate with its match result for ordered output.
type Ranked struct {
	Candidate types.Candidate `json:"candidate"`
	Result    Result          `json:"result"`
}

// Scorer scores candidates against a JD analysis.
type Scorer struct {
	lex *lexicon.Lexicon
}

// NewScorer builds a scorer over the given lexicon.
func NewScorer(lex *lexicon.Lexicon) *Scorer {
	return &Scorer{lex: lex}
}

// Score computes the weighted match between one candidate and the JD.
// An empty analysis short-circuits to a zero result.
func (s *Scorer) Score(c *types.Candidate, an jd.Analysis) Result {
	matched, missing := partition(an.Required, c.SkillList())
	matchedPref, missingPref := partition(an.Preferred, c.SkillList())
	result := Result{
		MatchedSkills:    matched,
		MissingSkills:    missing,
		MatchedPreferred: matchedPref,
		MissingPreferred: missingPref,
	}
	if an.IsEmpty() {
		return result
	}

	candText := strings.ToLower(c.Content)

	requiredScore := ratio(len(matched), len(an.Required))
	preferredScore := ratio(len(matchedPref), len(an.Preferred))
	keywordScore := s.keywordOverlap(an.Keywords, candText)

	var combined, titleScore float64
	hasTitle := an.Title != ""
	if hasTitle {
		titleScore = s.titleScore(c.Title, an.Title, candText)
		combined = weightTitle*titleScore +
			weightRequired*requiredScore +
			weightPreferred*preferredScore +
			weightKeyword*keywordScore
	} else {
		combined = weightRequiredNoTitle*requiredScore +
			weightPreferredNoTitle*preferredScore +
			weightKeywordNoTitle*keywordScore
	}

	// Post-hoc caps, applied in order, each only ever lowering the score.
	// Keyword noise must not produce a high score for a candidate who is
	// the wrong role or missing every hard requirement: false negatives
	// are cheaper than false positives in a hiring filter.
	badTitle := hasTitle && titleScore < 0.1
	noRequiredMatch := len(an.Required) >= 1 && len(matched) == 0
	if badTitle && combined > 0.35 {
		combined = 0.35
	}
	if noRequiredMatch && combined > 0.25 {
		combined = 0.25
	}
	if badTitle && len(an.Required) >= 1 && len(matched) <= 1 && combined > 0.15 {
		combined = 0.15
	}

	result.Score = clampScore(int(math.Round(combined * 100)))
	return result
}

// Apply scores the candidate and writes the match fields in place.
func (s *Scorer) Apply(c *types.Candidate, an jd.Analysis) {
	r := s.Score(c, an)
	c.MatchScore = &r.Score
	c.MatchedSkills = r.MatchedSkills
	c.MissingSkills = r.MissingSkills
	c.MatchedPreferred = r.MatchedPreferred
	c.MissingPreferred = r.MissingPreferred
}

// RankAll scores every candidate and returns them ordered by descending
// score, ties broken by name for stable output.
func (s *Scorer) RankAll(candidates []types.Candidate, an jd.Analysis) []Ranked {
	ranked := make([]Ranked, 0, len(candidates))
	for _, c := range candidates {
		ranked = append(ranked, Ranked{Candidate: c, Result: s.Score(&c, an)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Result.Score != ranked[j].Result.Score {
			return ranked[i].Result.Score > ranked[j].Result.Score
		}
		return ranked[i].Candidate.Name < ranked[j].Candidate.Name
	})
	return ranked
}

// titleScore grades the candidate title against the JD title. Substring
// containment either way is a full match; otherwise score by the fraction
// of JD-title content words present in the candidate title, with an 85%
// penalty when the two titles carry different core role nouns. A candidate
// with no detected title gets a flat 0.5 only when the literal JD title
// appears somewhere in their resume text.
func (s *Scorer) titleScore(candTitle, jdTitle, candText string) float64 {
	jt := strings.ToLower(strings.TrimSpace(jdTitle))
	ct := strings.ToLower(strings.TrimSpace(candTitle))
	if jt == "" {
		return 0
	}
	if ct == "" {
		if strings.Contains(candText, jt) {
			return 0.5
		}
		return 0
	}
	if strings.Contains(ct, jt) || strings.Contains(jt, ct) {
		return 1.0
	}

	var contentWords []string
	for _, w := range strings.Fields(jt) {
		if !s.lex.IsStopWord(w) {
			contentWords = append(contentWords, w)
		}
	}
	if len(contentWords) == 0 {
		return 0
	}
	overlap := 0
	for _, w := range contentWords {
		if strings.Contains(ct, w) {
			overlap++
		}
	}
	score := float64(overlap) / float64(len(contentWords))

	jdCore := s.lex.CoreRole(jt)
	candCore := s.lex.CoreRole(ct)
	if jdCore != "" && candCore != "" && jdCore != candCore {
		score *= coreRoleMismatchPenalty
	}
	return score
}

// keywordOverlap is the fraction of JD keywords present anywhere in the
// candidate's raw text.
func (s *Scorer) keywordOverlap(keywords []string, candText string) float64 {
	if len(keywords) == 0 {
		return 0
	}
	hits := 0
	for _, kw := range keywords {
		if strings.Contains(candText, kw) {
			hits++
		}
	}
	return float64(hits) / float64(len(keywords))
}

// partition splits the JD skill list into matched and missing against the
// candidate's skills, preserving JD order. matched and missing are always
// disjoint and together cover the full list.
func partition(jdSkills, candidateSkills []string) (matched, missing []string) {
	matched, missing = []string{}, []string{}
	have := make(map[string]struct{}, len(candidateSkills))
	for _, s := range candidateSkills {
		have[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}
	for _, s := range jdSkills {
		if _, ok := have[strings.ToLower(s)]; ok {
			matched = append(matched, s)
		} else {
			missing = append(missing, s)
		}
	}
	return matched, missing
}

func ratio(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total)
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
