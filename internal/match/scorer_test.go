package match

import (
	"slices"
	"strings"
	"testing"

	"talentsift/internal/jd"
	"talentsift/internal/lexicon"
	"talentsift/internal/types"
)

func newTestScorer() *Scorer {
	return NewScorer(lexicon.Default())
}

func candidate(name, title, skills, content string) types.Candidate {
	return types.Candidate{
		Name:    name,
		Title:   title,
		Skills:  skills,
		Content: content,
	}
}

func TestPartition(t *testing.T) {
	tests := []struct {
		name            string
		jdSkills        []string
		candidateSkills []string
		wantMatched     []string
		wantMissing     []string
	}{
		{
			name:            "partial overlap",
			jdSkills:        []string{"python", "sql", "aws"},
			candidateSkills: []string{"python", "aws"},
			wantMatched:     []string{"python", "aws"},
			wantMissing:     []string{"sql"},
		},
		{
			name:            "case and whitespace insensitive",
			jdSkills:        []string{"python"},
			candidateSkills: []string{" Python "},
			wantMatched:     []string{"python"},
			wantMissing:     []string{},
		},
		{
			name:            "empty jd list",
			jdSkills:        nil,
			candidateSkills: []string{"python"},
			wantMatched:     []string{},
			wantMissing:     []string{},
		},
		{
			name:            "nothing matches",
			jdSkills:        []string{"rust", "scala"},
			candidateSkills: []string{"python"},
			wantMatched:     []string{},
			wantMissing:     []string{"rust", "scala"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched, missing := partition(tt.jdSkills, tt.candidateSkills)
			if !slices.Equal(matched, tt.wantMatched) {
				t.Errorf("matched = %v, want %v", matched, tt.wantMatched)
			}
			if !slices.Equal(missing, tt.wantMissing) {
				t.Errorf("missing = %v, want %v", missing, tt.wantMissing)
			}
			// The two halves always cover the full JD list.
			if len(matched)+len(missing) != len(tt.jdSkills) {
				t.Errorf("partition lost entries: %d+%d != %d",
					len(matched), len(missing), len(tt.jdSkills))
			}
		})
	}
}

func TestScoreRequiredRatio(t *testing.T) {
	s := newTestScorer()
	an := jd.Analysis{
		Required: []string{"python", "sql", "aws"},
	}

	c := candidate("A", "", "python, aws", "python aws")
	r := s.Score(&c, an)

	if !slices.Equal(r.MatchedSkills, []string{"python", "aws"}) {
		t.Errorf("MatchedSkills = %v", r.MatchedSkills)
	}
	if !slices.Equal(r.MissingSkills, []string{"sql"}) {
		t.Errorf("MissingSkills = %v", r.MissingSkills)
	}
	// No title: required weight 0.55, 2/3 matched -> 0.55*2/3 ≈ 0.367.
	want := 37
	if r.Score != want {
		t.Errorf("Score = %d, want %d", r.Score, want)
	}
}

func TestScoreEmptyAnalysis(t *testing.T) {
	s := newTestScorer()
	c := candidate("A", "Engineer", "python", "python everywhere")

	r := s.Score(&c, jd.Analysis{})

	if r.Score != 0 {
		t.Errorf("Score = %d, want 0 for empty analysis", r.Score)
	}
}

func TestScoreRange(t *testing.T) {
	s := newTestScorer()
	an := jd.Analysis{
		Title:     "Data Engineer",
		Required:  []string{"python", "sql"},
		Preferred: []string{"aws"},
		Keywords:  []string{"pipelines", "warehouse"},
	}

	candidates := []types.Candidate{
		candidate("Perfect", "Data Engineer", "python, sql, aws", "python sql aws pipelines warehouse"),
		candidate("Partial", "Data Analyst", "python", "python pipelines"),
		candidate("None", "", "", "unrelated text"),
	}

	for _, c := range candidates {
		r := s.Score(&c, an)
		if r.Score < 0 || r.Score > 100 {
			t.Errorf("%s: score %d out of range", c.Name, r.Score)
		}
	}

	perfect := s.Score(&candidates[0], an)
	if perfect.Score != 100 {
		t.Errorf("perfect candidate scored %d, want 100", perfect.Score)
	}
	none := s.Score(&candidates[2], an)
	if none.Score != 0 {
		t.Errorf("empty candidate scored %d, want 0", none.Score)
	}
}

func TestTitleScore(t *testing.T) {
	s := newTestScorer()

	tests := []struct {
		name      string
		candTitle string
		jdTitle   string
		candText  string
		expected  float64
	}{
		{
			name:      "exact containment is a full match",
			candTitle: "Senior Data Engineer",
			jdTitle:   "Data Engineer",
			expected:  1.0,
		},
		{
			name:      "containment the other way",
			candTitle: "Engineer",
			jdTitle:   "Software Engineer",
			expected:  1.0,
		},
		{
			name:      "no candidate title but JD title in resume text",
			candTitle: "",
			jdTitle:   "Data Engineer",
			candText:  "worked as data engineer at acme",
			expected:  0.5,
		},
		{
			name:      "no candidate title and no mention",
			candTitle: "",
			jdTitle:   "Data Engineer",
			candText:  "unrelated",
			expected:  0,
		},
		{
			name:      "empty jd title",
			candTitle: "Engineer",
			jdTitle:   "",
			expected:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.titleScore(tt.candTitle, tt.jdTitle, tt.candText)
			if got != tt.expected {
				t.Errorf("titleScore = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestTitleScoreCoreRoleMismatch(t *testing.T) {
	s := newTestScorer()

	// "Senior Data Engineer" vs "Marketing Manager": one shared content
	// word at most, and disjoint core roles apply the heavy penalty.
	got := s.titleScore("Marketing Manager", "Senior Data Engineer", "")
	if got > 0.15 {
		t.Errorf("mismatched core roles scored %v, want <= 0.15", got)
	}
}

func TestScoreCaps(t *testing.T) {
	s := newTestScorer()

	// Wrong role with every required skill and full keyword overlap: the
	// bad-title cap holds the score at 35.
	an := jd.Analysis{
		Title:    "Senior Data Engineer",
		Required: []string{"python", "sql"},
		Keywords: []string{"pipelines"},
	}
	c := candidate("WrongRole", "Marketing Manager", "python, sql", "python sql pipelines")
	r := s.Score(&c, an)
	if r.Score > 35 {
		t.Errorf("bad-title candidate scored %d, want <= 35", r.Score)
	}

	// Right role but zero required matches: capped at 25.
	c2 := candidate("NoSkills", "Data Engineer", "", "pipelines pipelines senior data engineer")
	r2 := s.Score(&c2, an)
	if r2.Score > 25 {
		t.Errorf("no-required-match candidate scored %d, want <= 25", r2.Score)
	}

	// Both: wrong role and at most one required match: capped at 15.
	c3 := candidate("Both", "Marketing Manager", "python", "python pipelines")
	r3 := s.Score(&c3, an)
	if r3.Score > 15 {
		t.Errorf("doubly-capped candidate scored %d, want <= 15", r3.Score)
	}
}

func TestApplyWritesMatchFields(t *testing.T) {
	s := newTestScorer()
	an := jd.Analysis{Required: []string{"python"}}
	c := candidate("A", "", "python", "python")

	if c.HasMatch() {
		t.Fatal("fresh candidate must not have a match")
	}
	s.Apply(&c, an)
	if !c.HasMatch() {
		t.Fatal("Apply must set the match score")
	}
	if !slices.Equal(c.MatchedSkills, []string{"python"}) {
		t.Errorf("MatchedSkills = %v", c.MatchedSkills)
	}

	c.ClearMatch()
	if c.HasMatch() {
		t.Error("ClearMatch must remove the score")
	}
}

func TestRankAllOrdering(t *testing.T) {
	s := newTestScorer()
	an := jd.Analysis{Required: []string{"python", "sql"}}

	candidates := []types.Candidate{
		candidate("Zoe", "", "python", "python"),
		candidate("Amy", "", "python, sql", "python sql"),
		candidate("Bob", "", "python", "python"),
	}

	ranked := s.RankAll(candidates, an)

	if len(ranked) != 3 {
		t.Fatalf("got %d ranked entries", len(ranked))
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i-1].Result.Score < ranked[i].Result.Score {
			t.Fatalf("not sorted by descending score at %d", i)
		}
	}
	if ranked[0].Candidate.Name != "Amy" {
		t.Errorf("best candidate = %q, want Amy", ranked[0].Candidate.Name)
	}
	// Equal scores tie-break by name.
	if ranked[1].Candidate.Name != "Bob" || ranked[2].Candidate.Name != "Zoe" {
		t.Errorf("tie-break order = %q, %q; want Bob, Zoe",
			ranked[1].Candidate.Name, ranked[2].Candidate.Name)
	}
}

func BenchmarkScore(b *testing.B) {
	s := newTestScorer()
	an := jd.Analysis{
		Title:     "Data Engineer",
		Required:  []string{"python", "sql", "aws"},
		Preferred: []string{"kafka"},
		Keywords:  strings.Fields("pipelines warehouse streaming batch orchestration"),
	}
	c := candidate("Bench", "Senior Data Engineer", "python, sql, kafka",
		"built streaming pipelines and a warehouse with python sql kafka")
	for b.Loop() {
		s.Score(&c, an)
	}
}
