package document

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"scholar-ai/internal/apperr"
)

// extractDOCX pulls whole-document raw text out of the word/document.xml
// part of the archive. A .docx is a zip container; only text runs are
// kept, with paragraphs separated by newlines.
func extractDOCX(path string) (string, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("%w: failed to open DOCX archive: %v", apperr.ErrValidation, err)
	}
	defer archive.Close()

	var docPart *zip.File
	for _, f := range archive.File {
		if f.Name == "word/document.xml" {
			docPart = f
			break
		}
	}
	if docPart == nil {
		return "", fmt.Errorf("%w: DOCX missing word/document.xml", apperr.ErrValidation)
	}

	rc, err := docPart.Open()
	if err != nil {
		return "", fmt.Errorf("%w: failed to read DOCX document part: %v", apperr.ErrValidation, err)
	}
	defer rc.Close()

	return decodeDocumentXML(rc)
}

// decodeDocumentXML streams the WordprocessingML and collects character
// data inside <w:t> runs, inserting newlines at paragraph ends.
func decodeDocumentXML(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)
	var builder strings.Builder
	inText := false

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("%w: malformed DOCX XML: %v", apperr.ErrValidation, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			if t.Name.Local == "t" {
				inText = false
			}
			if t.Name.Local == "p" {
				builder.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				builder.Write(t)
			}
		}
	}
	return strings.TrimSpace(builder.String()), nil
}
