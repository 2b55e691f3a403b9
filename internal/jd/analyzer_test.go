package jd

import (
	"slices"
	"testing"

	"talentsift/internal/extract"
	"talentsift/internal/lexicon"
)

func newTestAnalyzer() *Analyzer {
	lex := lexicon.Default()
	return NewAnalyzer(lex, extract.New(lex))
}

func TestAnalyzeStructuredJD(t *testing.T) {
	a := newTestAnalyzer()

	jd := `Senior Data Engineer

Required Skills:
Python, SQL, AWS

Preferred Skills:
Kafka, Airflow
`
	an := a.Analyze(jd)

	if an.Title != "Senior Data Engineer" {
		t.Errorf("Title = %q", an.Title)
	}
	if !slices.Equal(an.Required, []string{"python", "sql", "aws"}) {
		t.Errorf("Required = %v", an.Required)
	}
	if !slices.Equal(an.Preferred, []string{"kafka", "airflow"}) {
		t.Errorf("Preferred = %v", an.Preferred)
	}
	for _, p := range an.Preferred {
		if slices.Contains(an.Required, p) {
			t.Errorf("%q is in both required and preferred", p)
		}
	}
}

func TestAnalyzeSkillInBothSectionsStaysRequired(t *testing.T) {
	a := newTestAnalyzer()

	an := a.Analyze(`Requirements:
Python and SQL

Nice to have:
Python, Kafka
`)

	if !slices.Contains(an.Required, "python") {
		t.Error("python should be required")
	}
	if slices.Contains(an.Preferred, "python") {
		t.Error("python must not also be preferred")
	}
	if !slices.Contains(an.Preferred, "kafka") {
		t.Error("kafka should stay preferred")
	}
}

func TestAnalyzeUnstructuredJDAllRequired(t *testing.T) {
	a := newTestAnalyzer()

	an := a.Analyze("We want someone who knows Python, SQL and Docker for our data team.")

	if !slices.Equal(an.Required, []string{"python", "sql", "docker"}) {
		t.Errorf("Required = %v, want all detected skills", an.Required)
	}
	if len(an.Preferred) != 0 {
		t.Errorf("Preferred = %v, want empty", an.Preferred)
	}
	if !slices.Equal(an.All, an.Required) {
		t.Errorf("All = %v should equal Required for unstructured JD", an.All)
	}
}

func TestAnalyzeGenericHeadingStopsAccumulation(t *testing.T) {
	a := newTestAnalyzer()

	an := a.Analyze(`Requirements:
Python

Responsibilities:
Maintain the Java monolith
`)

	if !slices.Contains(an.Required, "python") {
		t.Error("python should be required")
	}
	if slices.Contains(an.Required, "java") {
		t.Error("java under Responsibilities must not be counted as required")
	}
	// It still appears in the full-document skill set.
	if !slices.Contains(an.All, "java") {
		t.Error("java should appear in All")
	}
}

func TestAnalyzeLongProseLineIsNotAHeader(t *testing.T) {
	a := newTestAnalyzer()

	an := a.Analyze(`Summary:
This role requires working closely with stakeholders and is required to deliver value quickly with Python.

Preferred:
Kafka
`)

	// The prose line mentions "required" mid-sentence, so the anchored
	// header pattern must not flip the state: python stays out of Required.
	if !slices.Contains(an.Preferred, "kafka") {
		t.Errorf("Preferred = %v", an.Preferred)
	}
	if slices.Contains(an.Required, "python") {
		t.Errorf("Required = %v, prose line must not open a required section", an.Required)
	}
	if !slices.Contains(an.All, "python") {
		t.Errorf("All = %v, want python", an.All)
	}
}

func TestAnalyzeLongHeaderLineWithTrailingSkills(t *testing.T) {
	a := newTestAnalyzer()

	// A required header carrying its skills inline can easily run past any
	// plausible heading length; the trailing text still belongs to the
	// required buffer.
	an := a.Analyze(`Required Skills: Python, SQL, AWS, Kafka, Airflow and Spark too
Preferred Skills:
Docker
`)

	for _, want := range []string{"python", "sql", "aws", "kafka", "airflow", "spark"} {
		if !slices.Contains(an.Required, want) {
			t.Errorf("Required = %v, want %q", an.Required, want)
		}
	}
	if !slices.Equal(an.Preferred, []string{"docker"}) {
		t.Errorf("Preferred = %v", an.Preferred)
	}
}

func TestAnalyzeEmpty(t *testing.T) {
	a := newTestAnalyzer()

	for _, text := range []string{"", "   \n\t\n"} {
		an := a.Analyze(text)
		if !an.IsEmpty() {
			t.Errorf("Analyze(%q) should be empty, got %+v", text, an)
		}
	}
}

func TestKeywords(t *testing.T) {
	a := newTestAnalyzer()

	an := a.Analyze("Build distributed streaming pipelines. The distributed systems must scale.")

	if !slices.Contains(an.Keywords, "distributed") {
		t.Errorf("Keywords = %v, want distributed", an.Keywords)
	}
	// Unique, first-seen order.
	if n := countOf(an.Keywords, "distributed"); n != 1 {
		t.Errorf("distributed appears %d times", n)
	}
	// Short words and stop words are excluded.
	for _, kw := range an.Keywords {
		if len(kw) <= 4 {
			t.Errorf("keyword %q too short", kw)
		}
	}
	if slices.Contains(an.Keywords, "build") {
		t.Error("stop word 'build' must be excluded")
	}
}

func countOf(items []string, want string) int {
	n := 0
	for _, it := range items {
		if it == want {
			n++
		}
	}
	return n
}
