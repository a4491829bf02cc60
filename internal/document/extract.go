// Package document extracts plain text from uploaded reference files.
package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"scholar-ai/internal/apperr"
)

// Extract reads the document at path and returns its plain text. The
// declared extension of originalName picks the extraction strategy:
// .txt is read as-is, .pdf is extracted page by page, .docx as whole-
// document raw text. Anything else is unsupported.
func Extract(path, originalName string) (string, error) {
	switch strings.ToLower(filepath.Ext(originalName)) {
	case ".txt":
		raw, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("%w: failed to read text file: %v", apperr.ErrValidation, err)
		}
		return strings.TrimSpace(string(raw)), nil
	case ".pdf":
		return extractPDF(path)
	case ".docx":
		return extractDOCX(path)
	default:
		return "", fmt.Errorf("%w: %s", apperr.ErrUnsupportedFormat, filepath.Ext(originalName))
	}
}
