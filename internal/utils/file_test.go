package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateInputFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "resume.txt")
	if err := os.WriteFile(good, []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		filename  string
		expectErr bool
	}{
		{"existing file", good, false},
		{"empty filename", "", true},
		{"missing file", filepath.Join(dir, "gone.txt"), true},
		{"directory", dir, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInputFile(tt.filename)
			if tt.expectErr && err == nil {
				t.Error("expected an error")
			}
			if !tt.expectErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateFileSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.txt")
	if err := os.WriteFile(path, make([]byte, 100), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := ValidateFileSize(path, 200); err != nil {
		t.Errorf("file within limit: %v", err)
	}
	if err := ValidateFileSize(path, 50); err == nil {
		t.Error("expected an error for a file over the limit")
	}
	if err := ValidateFileSize(path, 0); err != nil {
		t.Errorf("zero limit disables the check: %v", err)
	}
	if err := ValidateFileSize(filepath.Join(dir, "gone.txt"), 50); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestGetFileExtension(t *testing.T) {
	tests := []struct {
		filename string
		expected string
	}{
		{"resume.PDF", ".pdf"},
		{"resume.txt", ".txt"},
		{"resume", ""},
		{"archive.tar.gz", ".gz"},
	}

	for _, tt := range tests {
		if got := GetFileExtension(tt.filename); got != tt.expected {
			t.Errorf("GetFileExtension(%q) = %q, want %q", tt.filename, got, tt.expected)
		}
	}
}

func TestIsTextFile(t *testing.T) {
	if !IsTextFile("notes.md") {
		t.Error("markdown is a text file")
	}
	if IsTextFile("resume.pdf") {
		t.Error("pdf is not a text file")
	}
}

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		size     int64
		expected string
	}{
		{512, "512 B"},
		{1024, "1.0 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
		{int64(1.5 * 1024 * 1024 * 1024), "1.5 GB"},
	}

	for _, tt := range tests {
		if got := FormatFileSize(tt.size); got != tt.expected {
			t.Errorf("FormatFileSize(%d) = %q, want %q", tt.size, got, tt.expected)
		}
	}
}
