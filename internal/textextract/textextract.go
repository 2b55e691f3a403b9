// Package textextract turns uploaded resume files into plain text. It is
// a thin decode layer: PDF via ledongthuc/pdf, DOCX via nguyenthenguyen/
// docx, and plain text passed through untouched. The returned text is
// untrimmed; the extractors downstream tolerate leading and trailing
// whitespace.
package textextract

import (
	"bytes"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"talentsift/internal/errors"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// SupportedExtensions lists the file types the service can decode.
var SupportedExtensions = []string{".pdf", ".docx", ".txt", ".text", ".md"}

// Service decodes resume files into raw text.
type Service struct {
	logger *errors.Logger
}

// NewService creates a text extraction service.
func NewService(logger *errors.Logger) *Service {
	return &Service{logger: logger}
}

// IsSupported reports whether the file's extension is decodable.
func IsSupported(fileName string) bool {
	return slices.Contains(SupportedExtensions, strings.ToLower(filepath.Ext(fileName)))
}

// Extract decodes the file content into plain text based on the declared
// extension. It returns a validation error for unsupported types and a
// parse error when decoding fails.
func (s *Service) Extract(data []byte, fileName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	switch ext {
	case ".pdf":
		text, err := extractPDF(data)
		if err != nil {
			return "", errors.NewParseError(errors.ErrCodeExtractionFailed,
				fmt.Sprintf("Failed to extract text from PDF: %s", fileName), err)
		}
		return text, nil
	case ".docx":
		text, err := extractDOCX(data)
		if err != nil {
			return "", errors.NewParseError(errors.ErrCodeExtractionFailed,
				fmt.Sprintf("Failed to extract text from DOCX: %s", fileName), err)
		}
		return text, nil
	case ".txt", ".text", ".md":
		return string(data), nil
	default:
		return "", errors.NewValidationError(errors.ErrCodeUnsupportedFile,
			fmt.Sprintf("Unsupported file type: %s", ext), nil).
			WithContext("file_name", fileName).
			WithContext("supported", SupportedExtensions)
	}
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}

	var text strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		// A page that fails to decode is skipped rather than failing the
		// whole document.
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		text.WriteString(content)
		text.WriteString("\n")
	}
	return text.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse docx: %w", err)
	}
	defer doc.Close()

	return stripDocxTags(doc.Editable().GetContent()), nil
}

// stripDocxTags reduces the raw document XML to line-per-paragraph text.
func stripDocxTags(content string) string {
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	var text strings.Builder
	inTag := false
	for _, r := range content {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			text.WriteRune(r)
		}
	}
	return text.String()
}
