package types

import "strings"

// Candidate is one parsed resume. Every extracted field is best-effort:
// an empty string means "not detected" and is rendered as "N/A".
type Candidate struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Title      string `json:"title"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Location   string `json:"location"`
	Experience string `json:"experience"`

	// Skills is the comma-joined list of matched lexicon skills, in
	// lexicon order and lexicon casing.
	Skills string `json:"skills"`

	// Content is the full extracted resume text, verbatim. Never mutated
	// after creation.
	Content    string `json:"content"`
	FileName   string `json:"fileName"`
	UploadedAt string `json:"uploadedAt"`

	// Match fields are only set once a job description has been applied.
	// nil means "no JD matching performed yet", which is distinct from a
	// zero score.
	MatchScore       *int     `json:"matchScore,omitempty"`
	MatchedSkills    []string `json:"matchedSkills,omitempty"`
	MissingSkills    []string `json:"missingSkills,omitempty"`
	MatchedPreferred []string `json:"matchedPreferred,omitempty"`
	MissingPreferred []string `json:"missingPreferred,omitempty"`
}

// SkillList splits the stored comma-joined skills back into a slice.
func (c *Candidate) SkillList() []string {
	if c.Skills == "" {
		return nil
	}
	parts := strings.Split(c.Skills, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			skills = append(skills, p)
		}
	}
	return skills
}

// HasMatch reports whether a JD has been applied to this candidate.
func (c *Candidate) HasMatch() bool {
	return c.MatchScore != nil
}

// ClearMatch removes all JD match fields, returning the candidate to the
// "no JD applied" state.
func (c *Candidate) ClearMatch() {
	c.MatchScore = nil
	c.MatchedSkills = nil
	c.MissingSkills = nil
	c.MatchedPreferred = nil
	c.MissingPreferred = nil
}

// Filter narrows a candidate listing. All fields are case-insensitive
// substring matches; empty fields match everything.
type Filter struct {
	Name  string
	Email string
	Skill string
}

// Matches reports whether the candidate passes the filter.
func (f Filter) Matches(c *Candidate) bool {
	if f.Name != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(f.Name)) {
		return false
	}
	if f.Email != "" && !strings.Contains(strings.ToLower(c.Email), strings.ToLower(f.Email)) {
		return false
	}
	if f.Skill != "" && !strings.Contains(strings.ToLower(c.Skills), strings.ToLower(f.Skill)) {
		return false
	}
	return true
}

// FileFailure records one failed file in a batch ingest.
type FileFailure struct {
	FileName string `json:"fileName"`
	Reason   string `json:"reason"`
}

// BatchReport aggregates the outcome of a bulk resume ingest. Individual
// file failures are collected here rather than aborting the batch.
type BatchReport struct {
	Succeeded int           `json:"succeeded"`
	Failed    []FileFailure `json:"failed,omitempty"`
}

// Total returns the number of files processed.
func (r BatchReport) Total() int {
	return r.Succeeded + len(r.Failed)
}
