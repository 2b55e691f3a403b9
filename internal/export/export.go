// Package export renders candidate lists for use outside the tool:
// CSV files, tab-separated clipboard text, and contact URIs.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"talentsift/internal/errors"
	"talentsift/internal/types"
)

// placeholder renders undetected fields in tabular output.
const placeholder = "N/A"

var baseHeader = []string{"Name", "Title", "Email", "Phone", "Location", "Experience", "Skills"}

// WriteCSV writes the candidates as CSV. The Match % column is present
// only when at least one candidate carries a match score, so an export
// taken before any JD run has no misleading empty column.
func WriteCSV(w io.Writer, candidates []types.Candidate) error {
	withMatch := anyMatched(candidates)

	cw := csv.NewWriter(w)
	header := baseHeader
	if withMatch {
		header = append(append([]string{}, baseHeader...), "Match %")
	}
	if err := cw.Write(header); err != nil {
		return errors.NewIOError(errors.ErrCodeStoreWriteFailed, "Failed to write CSV header", err)
	}
	for i := range candidates {
		if err := cw.Write(row(&candidates[i], withMatch)); err != nil {
			return errors.NewIOError(errors.ErrCodeStoreWriteFailed, "Failed to write CSV row", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.NewIOError(errors.ErrCodeStoreWriteFailed, "Failed to flush CSV output", err)
	}
	return nil
}

// ClipboardText renders the candidates as tab-separated lines with a
// header row, the format spreadsheets paste cleanly.
func ClipboardText(candidates []types.Candidate) string {
	withMatch := anyMatched(candidates)

	var b strings.Builder
	header := baseHeader
	if withMatch {
		header = append(append([]string{}, baseHeader...), "Match %")
	}
	b.WriteString(strings.Join(header, "\t"))
	b.WriteString("\n")
	for i := range candidates {
		fields := row(&candidates[i], withMatch)
		// Tabs and newlines inside a field would shift columns on paste.
		for j, f := range fields {
			f = strings.ReplaceAll(f, "\t", " ")
			fields[j] = strings.ReplaceAll(f, "\n", " ")
		}
		b.WriteString(strings.Join(fields, "\t"))
		b.WriteString("\n")
	}
	return b.String()
}

func row(c *types.Candidate, withMatch bool) []string {
	fields := []string{
		orNA(c.Name),
		orNA(c.Title),
		orNA(c.Email),
		orNA(c.Phone),
		orNA(c.Location),
		orNA(c.Experience),
		orNA(c.Skills),
	}
	if withMatch {
		if c.MatchScore != nil {
			fields = append(fields, strconv.Itoa(*c.MatchScore)+"%")
		} else {
			fields = append(fields, placeholder)
		}
	}
	return fields
}

func anyMatched(candidates []types.Candidate) bool {
	for i := range candidates {
		if candidates[i].HasMatch() {
			return true
		}
	}
	return false
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}

// MailtoURI builds a mailto link for the candidate, "" when no email was
// detected.
func MailtoURI(c *types.Candidate, subject string) string {
	if c.Email == "" {
		return ""
	}
	uri := "mailto:" + c.Email
	if subject != "" {
		uri += "?subject=" + url.QueryEscape(subject)
	}
	return uri
}

// TelURI builds a tel link, "" when no phone was detected.
func TelURI(c *types.Candidate) string {
	if c.Phone == "" {
		return ""
	}
	return "tel:" + strings.Map(keepDialable, c.Phone)
}

// WhatsAppURI builds a wa.me link. WhatsApp wants bare digits with the
// country code, no plus or punctuation.
func WhatsAppURI(c *types.Candidate) string {
	if c.Phone == "" {
		return ""
	}
	digits := strings.Map(keepDigit, c.Phone)
	if digits == "" {
		return ""
	}
	return fmt.Sprintf("https://wa.me/%s", digits)
}

func keepDialable(r rune) rune {
	if (r >= '0' && r <= '9') || r == '+' {
		return r
	}
	return -1
}

func keepDigit(r rune) rune {
	if r >= '0' && r <= '9' {
		return r
	}
	return -1
}
