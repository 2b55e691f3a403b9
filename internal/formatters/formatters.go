package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"talentsift/internal/jd"
	"talentsift/internal/match"
	"talentsift/internal/sections"
	"talentsift/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "Candidate", &CandidateTextFormatter{})
	registry.RegisterFormatter("markdown", "Candidate", &CandidateMarkdownFormatter{})
	registry.RegisterFormatter("text", "CandidateList", &CandidateListTextFormatter{})
	registry.RegisterFormatter("markdown", "CandidateList", &CandidateListMarkdownFormatter{})
	registry.RegisterFormatter("text", "RankedList", &RankedTextFormatter{})
	registry.RegisterFormatter("markdown", "RankedList", &RankedMarkdownFormatter{})
	registry.RegisterFormatter("text", "Analysis", &AnalysisTextFormatter{})
	registry.RegisterFormatter("markdown", "Analysis", &AnalysisMarkdownFormatter{})
	registry.RegisterFormatter("text", "BatchReport", &BatchReportTextFormatter{})
	registry.RegisterFormatter("text", "SectionLines", &SectionsTextFormatter{})
	registry.RegisterFormatter("markdown", "SectionLines", &SectionsMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.Candidate:
		return "Candidate"
	case []types.Candidate:
		return "CandidateList"
	case []match.Ranked:
		return "RankedList"
	case jd.Analysis:
		return "Analysis"
	case types.BatchReport:
		return "BatchReport"
	case []sections.Line:
		return "SectionLines"
	default:
		return "any"
	}
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// CandidateTextFormatter handles text formatting for a single candidate
type CandidateTextFormatter struct{}

func (cf *CandidateTextFormatter) Format(data any) (string, error) {
	c, ok := data.(types.Candidate)
	if !ok {
		return "", fmt.Errorf("expected Candidate, got %T", data)
	}

	var output strings.Builder
	output.WriteString(fmt.Sprintf("ID:         %s\n", c.ID))
	output.WriteString(fmt.Sprintf("Name:       %s\n", orNA(c.Name)))
	output.WriteString(fmt.Sprintf("Title:      %s\n", orNA(c.Title)))
	output.WriteString(fmt.Sprintf("Email:      %s\n", orNA(c.Email)))
	output.WriteString(fmt.Sprintf("Phone:      %s\n", orNA(c.Phone)))
	output.WriteString(fmt.Sprintf("Location:   %s\n", orNA(c.Location)))
	output.WriteString(fmt.Sprintf("Experience: %s\n", orNA(c.Experience)))
	output.WriteString(fmt.Sprintf("Skills:     %s\n", orNA(c.Skills)))
	output.WriteString(fmt.Sprintf("File:       %s\n", orNA(c.FileName)))
	output.WriteString(fmt.Sprintf("Uploaded:   %s\n", orNA(c.UploadedAt)))

	if c.MatchScore != nil {
		output.WriteString(fmt.Sprintf("\nMatch Score: %d%%\n", *c.MatchScore))
		if len(c.MatchedSkills) > 0 {
			output.WriteString(fmt.Sprintf("Matched Skills: %s\n", strings.Join(c.MatchedSkills, ", ")))
		}
		if len(c.MissingSkills) > 0 {
			output.WriteString(fmt.Sprintf("Missing Skills: %s\n", strings.Join(c.MissingSkills, ", ")))
		}
		if len(c.MatchedPreferred) > 0 {
			output.WriteString(fmt.Sprintf("Matched Preferred: %s\n", strings.Join(c.MatchedPreferred, ", ")))
		}
		if len(c.MissingPreferred) > 0 {
			output.WriteString(fmt.Sprintf("Missing Preferred: %s\n", strings.Join(c.MissingPreferred, ", ")))
		}
	}
	return output.String(), nil
}

func (cf *CandidateTextFormatter) SupportedType() string {
	return "Candidate"
}

// CandidateMarkdownFormatter handles markdown formatting for a single candidate
type CandidateMarkdownFormatter struct{}

func (cf *CandidateMarkdownFormatter) Format(data any) (string, error) {
	c, ok := data.(types.Candidate)
	if !ok {
		return "", fmt.Errorf("expected Candidate, got %T", data)
	}

	var output strings.Builder
	output.WriteString(fmt.Sprintf("# %s\n\n", orNA(c.Name)))
	output.WriteString(fmt.Sprintf("- **Title:** %s\n", orNA(c.Title)))
	output.WriteString(fmt.Sprintf("- **Email:** %s\n", orNA(c.Email)))
	output.WriteString(fmt.Sprintf("- **Phone:** %s\n", orNA(c.Phone)))
	output.WriteString(fmt.Sprintf("- **Location:** %s\n", orNA(c.Location)))
	output.WriteString(fmt.Sprintf("- **Experience:** %s\n", orNA(c.Experience)))
	output.WriteString(fmt.Sprintf("- **Skills:** %s\n", orNA(c.Skills)))
	output.WriteString(fmt.Sprintf("- **File:** %s\n", orNA(c.FileName)))

	if c.MatchScore != nil {
		output.WriteString(fmt.Sprintf("\n## Match: %d%%\n\n", *c.MatchScore))
		if len(c.MatchedSkills) > 0 {
			output.WriteString(fmt.Sprintf("**Matched:** %s\n\n", strings.Join(c.MatchedSkills, ", ")))
		}
		if len(c.MissingSkills) > 0 {
			output.WriteString(fmt.Sprintf("**Missing:** %s\n", strings.Join(c.MissingSkills, ", ")))
		}
	}
	return output.String(), nil
}

func (cf *CandidateMarkdownFormatter) SupportedType() string {
	return "Candidate"
}

// CandidateListTextFormatter renders a candidate listing as one line each
type CandidateListTextFormatter struct{}

func (cf *CandidateListTextFormatter) Format(data any) (string, error) {
	list, ok := data.([]types.Candidate)
	if !ok {
		return "", fmt.Errorf("expected []Candidate, got %T", data)
	}
	if len(list) == 0 {
		return "No candidates stored.\n", nil
	}

	var output strings.Builder
	for i := range list {
		c := &list[i]
		output.WriteString(fmt.Sprintf("%s  %-25s %-30s %s", c.ID, orNA(c.Name), orNA(c.Title), orNA(c.Email)))
		if c.MatchScore != nil {
			output.WriteString(fmt.Sprintf("  [%d%%]", *c.MatchScore))
		}
		output.WriteString("\n")
	}
	output.WriteString(fmt.Sprintf("\n%d candidate(s)\n", len(list)))
	return output.String(), nil
}

func (cf *CandidateListTextFormatter) SupportedType() string {
	return "CandidateList"
}

// CandidateListMarkdownFormatter renders a candidate listing as a table
type CandidateListMarkdownFormatter struct{}

func (cf *CandidateListMarkdownFormatter) Format(data any) (string, error) {
	list, ok := data.([]types.Candidate)
	if !ok {
		return "", fmt.Errorf("expected []Candidate, got %T", data)
	}
	if len(list) == 0 {
		return "No candidates stored.\n", nil
	}

	var output strings.Builder
	output.WriteString("| Name | Title | Email | Location | Match |\n")
	output.WriteString("|------|-------|-------|----------|-------|\n")
	for i := range list {
		c := &list[i]
		matchCol := "-"
		if c.MatchScore != nil {
			matchCol = fmt.Sprintf("%d%%", *c.MatchScore)
		}
		output.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
			orNA(c.Name), orNA(c.Title), orNA(c.Email), orNA(c.Location), matchCol))
	}
	return output.String(), nil
}

func (cf *CandidateListMarkdownFormatter) SupportedType() string {
	return "CandidateList"
}

// RankedTextFormatter renders a scored candidate ranking
type RankedTextFormatter struct{}

func (rf *RankedTextFormatter) Format(data any) (string, error) {
	ranked, ok := data.([]match.Ranked)
	if !ok {
		return "", fmt.Errorf("expected []Ranked, got %T", data)
	}
	if len(ranked) == 0 {
		return "No candidates to rank.\n", nil
	}

	var output strings.Builder
	output.WriteString("=== CANDIDATE RANKING ===\n\n")
	for i, r := range ranked {
		output.WriteString(fmt.Sprintf("%d. %s (%d%%)", i+1, orNA(r.Candidate.Name), r.Result.Score))
		if r.Candidate.Title != "" {
			output.WriteString(" - " + r.Candidate.Title)
		}
		output.WriteString("\n")
		if len(r.Result.MatchedSkills) > 0 {
			output.WriteString(fmt.Sprintf("   Matched: %s\n", strings.Join(r.Result.MatchedSkills, ", ")))
		}
		if len(r.Result.MissingSkills) > 0 {
			output.WriteString(fmt.Sprintf("   Missing: %s\n", strings.Join(r.Result.MissingSkills, ", ")))
		}
		output.WriteString("\n")
	}
	return output.String(), nil
}

func (rf *RankedTextFormatter) SupportedType() string {
	return "RankedList"
}

// RankedMarkdownFormatter renders the ranking as a markdown table
type RankedMarkdownFormatter struct{}

func (rf *RankedMarkdownFormatter) Format(data any) (string, error) {
	ranked, ok := data.([]match.Ranked)
	if !ok {
		return "", fmt.Errorf("expected []Ranked, got %T", data)
	}
	if len(ranked) == 0 {
		return "No candidates to rank.\n", nil
	}

	var output strings.Builder
	output.WriteString("# Candidate Ranking\n\n")
	output.WriteString("| # | Name | Title | Score | Matched | Missing |\n")
	output.WriteString("|---|------|-------|-------|---------|--------|\n")
	for i, r := range ranked {
		output.WriteString(fmt.Sprintf("| %d | %s | %s | %d%% | %s | %s |\n",
			i+1, orNA(r.Candidate.Name), orNA(r.Candidate.Title), r.Result.Score,
			strings.Join(r.Result.MatchedSkills, ", "),
			strings.Join(r.Result.MissingSkills, ", ")))
	}
	return output.String(), nil
}

func (rf *RankedMarkdownFormatter) SupportedType() string {
	return "RankedList"
}

// AnalysisTextFormatter renders a JD analysis
type AnalysisTextFormatter struct{}

func (af *AnalysisTextFormatter) Format(data any) (string, error) {
	an, ok := data.(jd.Analysis)
	if !ok {
		return "", fmt.Errorf("expected Analysis, got %T", data)
	}

	var output strings.Builder
	output.WriteString("=== JOB DESCRIPTION ANALYSIS ===\n\n")
	output.WriteString(fmt.Sprintf("Target Title: %s\n\n", orNA(an.Title)))
	output.WriteString(fmt.Sprintf("Required Skills (%d):\n", len(an.Required)))
	for _, s := range an.Required {
		output.WriteString(fmt.Sprintf("- %s\n", s))
	}
	output.WriteString(fmt.Sprintf("\nPreferred Skills (%d):\n", len(an.Preferred)))
	for _, s := range an.Preferred {
		output.WriteString(fmt.Sprintf("- %s\n", s))
	}
	return output.String(), nil
}

func (af *AnalysisTextFormatter) SupportedType() string {
	return "Analysis"
}

// AnalysisMarkdownFormatter renders a JD analysis as markdown
type AnalysisMarkdownFormatter struct{}

func (af *AnalysisMarkdownFormatter) Format(data any) (string, error) {
	an, ok := data.(jd.Analysis)
	if !ok {
		return "", fmt.Errorf("expected Analysis, got %T", data)
	}

	var output strings.Builder
	output.WriteString("# Job Description Analysis\n\n")
	output.WriteString(fmt.Sprintf("**Target Title:** %s\n\n", orNA(an.Title)))
	output.WriteString("## Required Skills\n\n")
	for _, s := range an.Required {
		output.WriteString(fmt.Sprintf("- %s\n", s))
	}
	output.WriteString("\n## Preferred Skills\n\n")
	for _, s := range an.Preferred {
		output.WriteString(fmt.Sprintf("- %s\n", s))
	}
	return output.String(), nil
}

func (af *AnalysisMarkdownFormatter) SupportedType() string {
	return "Analysis"
}

// BatchReportTextFormatter summarizes a bulk ingest
type BatchReportTextFormatter struct{}

func (bf *BatchReportTextFormatter) Format(data any) (string, error) {
	report, ok := data.(types.BatchReport)
	if !ok {
		return "", fmt.Errorf("expected BatchReport, got %T", data)
	}

	var output strings.Builder
	output.WriteString(fmt.Sprintf("Processed %d file(s): %d succeeded, %d failed\n",
		report.Total(), report.Succeeded, len(report.Failed)))
	for _, f := range report.Failed {
		output.WriteString(fmt.Sprintf("  FAILED %s: %s\n", f.FileName, f.Reason))
	}
	return output.String(), nil
}

func (bf *BatchReportTextFormatter) SupportedType() string {
	return "BatchReport"
}

// SectionsTextFormatter renders classified resume lines with their tags
type SectionsTextFormatter struct{}

func (sf *SectionsTextFormatter) Format(data any) (string, error) {
	lines, ok := data.([]sections.Line)
	if !ok {
		return "", fmt.Errorf("expected []Line, got %T", data)
	}

	var output strings.Builder
	for _, line := range lines {
		if line.Type == sections.TypeEmpty {
			output.WriteString("\n")
			continue
		}
		output.WriteString(fmt.Sprintf("[%-10s] %s\n", line.Type, line.Content))
	}
	return output.String(), nil
}

func (sf *SectionsTextFormatter) SupportedType() string {
	return "SectionLines"
}

// SectionsMarkdownFormatter renders classified resume lines as markdown
type SectionsMarkdownFormatter struct{}

func (sf *SectionsMarkdownFormatter) Format(data any) (string, error) {
	lines, ok := data.([]sections.Line)
	if !ok {
		return "", fmt.Errorf("expected []Line, got %T", data)
	}

	var output strings.Builder
	for _, line := range lines {
		switch line.Type {
		case sections.TypeEmpty:
			output.WriteString("\n")
		case sections.TypeHeading:
			output.WriteString(fmt.Sprintf("## %s\n", line.Content))
		case sections.TypeSubheading:
			output.WriteString(fmt.Sprintf("**%s**\n", line.Content))
		case sections.TypeBullet:
			output.WriteString(fmt.Sprintf("- %s\n", line.Content))
		case sections.TypeDate:
			output.WriteString(fmt.Sprintf("*%s*\n", line.Content))
		default:
			output.WriteString(line.Content + "\n")
		}
	}
	return output.String(), nil
}

func (sf *SectionsMarkdownFormatter) SupportedType() string {
	return "SectionLines"
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
