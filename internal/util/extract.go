package util

import (
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// ExtractPDFText pulls the embedded text layer out of a PDF resume.
func ExtractPDFText(path string) (string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var fullText strings.Builder
	for n := 0; n < doc.NumPage(); n++ {
		pageText, err := doc.Text(n)
		if err != nil {
			return "", fmt.Errorf("page %d: failed to extract text: %w", n+1, err)
		}
		pageText = strings.TrimSpace(pageText)
		if pageText != "" {
			fullText.WriteString(pageText)
			fullText.WriteString("\n\n")
		}
	}

	result := strings.TrimSpace(fullText.String())
	if result == "" {
		return "", fmt.Errorf("no text extracted from PDF (file might be empty or scanned images)")
	}
	return result, nil
}
