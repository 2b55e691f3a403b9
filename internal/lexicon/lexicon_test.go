package lexicon

import (
	"slices"
	"strings"
	"testing"
)

func testData() Data {
	return Data{
		Skills: []string{"python", "java", "c++", "go", "machine learning", "r"},
		TitleQualifiers: []string{"senior"},
		TitleDomains:    []string{"software", "data"},
		TitleRoles:      []string{"engineer", "analyst"},
		IrregularTitles: []string{"scrum master"},
		CoreRoles:       []string{"engineer", "analyst", "manager"},
		USCities:        []string{"austin", "new york", "columbus"},
		ExcludedCities:  []string{"mumbai", "pune"},
		ExcludedHints:   []string{"india"},
		StateAbbrs: map[string]string{
			"texas": "TX", "indiana": "IN", "ohio": "OH",
		},
		AmbiguousAbbrs: []string{"IN"},
		StopWords:      []string{"the", "senior"},
	}
}

func TestMatchSkills(t *testing.T) {
	lex := New(testData())

	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "simple token at word boundary",
			text:     "Expert in Python and Java",
			expected: []string{"python", "java"},
		},
		{
			name:     "no match inside larger word",
			text:     "javanese pythonic",
			expected: nil,
		},
		{
			name:     "punctuated skill matches by substring",
			text:     "Ten years of C++ development",
			expected: []string{"c++"},
		},
		{
			name:     "multi-word skill",
			text:     "applied machine learning at scale",
			expected: []string{"machine learning"},
		},
		{
			name:     "lexicon order preserved",
			text:     "java before python in the text",
			expected: []string{"python", "java"},
		},
		{
			name:     "single letter skill needs boundaries",
			text:     "statistical modeling in R and Python",
			expected: []string{"python", "r"},
		},
		{
			name:     "empty text",
			text:     "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lex.MatchSkills(tt.text)
			if !slices.Equal(got, tt.expected) {
				t.Errorf("MatchSkills(%q) = %v, want %v", tt.text, got, tt.expected)
			}
		})
	}
}

func TestGenerateTitles(t *testing.T) {
	lex := New(testData())

	// Longest titles must sort first so FindTitle prefers them.
	for i := 1; i < len(lex.Titles); i++ {
		if len(lex.Titles[i-1]) < len(lex.Titles[i]) {
			t.Fatalf("titles not sorted longest-first: %q before %q",
				lex.Titles[i-1], lex.Titles[i])
		}
	}

	for _, want := range []string{
		"engineer",
		"software engineer",
		"senior software engineer",
		"data analyst",
		"scrum master",
	} {
		if !lex.ContainsTitle(want) {
			t.Errorf("expected generated title %q", want)
		}
	}
}

func TestFindTitle(t *testing.T) {
	lex := New(testData())

	tests := []struct {
		name     string
		text     string
		minWords int
		expected string
	}{
		{
			name:     "longest title wins over sub-phrase",
			text:     "I am a Senior Software Engineer at Acme",
			minWords: 1,
			expected: "Senior Software Engineer",
		},
		{
			name:     "casing of the input is preserved",
			text:     "DATA ANALYST with five years",
			minWords: 1,
			expected: "DATA ANALYST",
		},
		{
			name:     "minWords filters single-word titles",
			text:     "worked with an engineer on the team",
			minWords: 2,
			expected: "",
		},
		{
			name:     "word boundary prevents partial match",
			text:     "bioengineering lab",
			minWords: 1,
			expected: "",
		},
		{
			name:     "no title",
			text:     "completely unrelated text",
			minWords: 1,
			expected: "",
		},
		{
			// "Ⱥ" grows from 2 to 3 bytes under Unicode lower-casing, so
			// the match offset must come from a length-preserving mapping.
			name:     "length-changing rune before the title",
			text:     strings.Repeat("Ⱥ", 10) + " software engineer",
			minWords: 2,
			expected: "software engineer",
		},
		{
			name:     "dotted capital I before the title",
			text:     "İstanbul based Data Analyst",
			minWords: 2,
			expected: "Data Analyst",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lex.FindTitle(tt.text, tt.minWords)
			if got != tt.expected {
				t.Errorf("FindTitle(%q, %d) = %q, want %q",
					tt.text, tt.minWords, got, tt.expected)
			}
		})
	}
}

func TestCoreRole(t *testing.T) {
	lex := New(testData())

	tests := []struct {
		title    string
		expected string
	}{
		{"Senior Software Engineer", "engineer"},
		{"Data Analyst", "analyst"},
		{"Engineering Manager", "manager"},
		{"Product Owner", ""},
	}

	for _, tt := range tests {
		if got := lex.CoreRole(tt.title); got != tt.expected {
			t.Errorf("CoreRole(%q) = %q, want %q", tt.title, got, tt.expected)
		}
	}
}

func TestCityClassification(t *testing.T) {
	lex := New(testData())

	if !lex.IsUSCity("Austin") {
		t.Error("expected Austin to be a US city")
	}
	if lex.IsUSCity("Mumbai") {
		t.Error("Mumbai must not be a US city")
	}
	if !lex.IsExcludedCity("mumbai") {
		t.Error("expected mumbai in the excluded set")
	}
	if !lex.HasExcludedContext("worked in Pune, India") {
		t.Error("expected excluded-region context")
	}
	if lex.HasExcludedContext("worked in Austin, Texas") {
		t.Error("unexpected excluded-region context")
	}
	if got := lex.FindUSCity("relocating to new york next month"); got != "New York" {
		t.Errorf("FindUSCity = %q, want %q", got, "New York")
	}
}

func TestStateAbbrs(t *testing.T) {
	lex := New(testData())

	if !lex.IsStateAbbr("TX") {
		t.Error("TX should be a state abbreviation")
	}
	if !lex.IsStateAbbr("tx") {
		t.Error("state abbreviation check should be case-insensitive")
	}
	if lex.IsStateAbbr("XX") {
		t.Error("XX is not a state abbreviation")
	}
	if !lex.IsAmbiguousAbbr("IN") {
		t.Error("IN should be ambiguous")
	}
	if lex.IsAmbiguousAbbr("TX") {
		t.Error("TX should not be ambiguous")
	}
}

func TestTitleCase(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"new york", "New York"},
		{"AUSTIN", "Austin"},
		{"salt lake city", "Salt Lake City"},
	}
	for _, tt := range tests {
		if got := TitleCase(tt.in); got != tt.out {
			t.Errorf("TitleCase(%q) = %q, want %q", tt.in, got, tt.out)
		}
	}
}

func TestDefaultLexicon(t *testing.T) {
	lex := Default()

	if len(lex.Skills) == 0 {
		t.Fatal("default lexicon has no skills")
	}
	if !lex.ContainsTitle("senior software engineer") {
		t.Error("default lexicon should contain 'senior software engineer'")
	}
	if !lex.IsStopWord("The") {
		t.Error("stop word check should be case-insensitive")
	}
}

func BenchmarkMatchSkills(b *testing.B) {
	lex := Default()
	text := "Senior engineer with Python, SQL, AWS, Docker, Kubernetes, React and TypeScript experience building ETL pipelines"
	for b.Loop() {
		lex.MatchSkills(text)
	}
}
