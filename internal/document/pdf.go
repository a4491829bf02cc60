package document

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"scholar-ai/internal/apperr"
)

// extractPDF walks the document page by page and concatenates the plain
// text of each page.
func extractPDF(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: failed to open PDF: %v", apperr.ErrValidation, err)
	}
	defer f.Close()

	var builder strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("%w: failed to extract page %d: %v", apperr.ErrValidation, i, err)
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}
	return strings.TrimSpace(builder.String()), nil
}
