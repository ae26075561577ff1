// Package pdftext extracts a best-effort linear text layout from PDF
// invoices. It is a thin black-box collaborator: the parsing core only ever
// sees the resulting text blob and tolerates whatever layout damage the
// extraction introduces.
package pdftext

import (
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Extract reads every page of the PDF at path and returns the concatenated
// plain text, newline-delimited per page.
func Extract(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}
	defer f.Close()

	return readPages(r)
}

// ExtractReader extracts text from an in-memory or seekable PDF source.
func ExtractReader(ra io.ReaderAt, size int64) (string, error) {
	r, err := pdf.NewReader(ra, size)
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	return readPages(r)
}

func readPages(r *pdf.Reader) (string, error) {
	var sb strings.Builder

	for pageNum := 1; pageNum <= r.NumPage(); pageNum++ {
		page := r.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// A damaged page degrades output; it doesn't fail the invoice.
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	return sb.String(), nil
}
