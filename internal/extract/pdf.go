// Package extract reads plain text out of uploaded resume files. A failure
// here is reported to the caller, which feeds the parser stage empty input
// so one unreadable file never aborts the batch.
package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

var pdfMagic = []byte("%PDF")

// IsPDF sniffs the PDF magic bytes.
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(data, pdfMagic)
}

// Text extracts the plain text of every page of the PDF.
func Text(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("file is empty")
	}
	if !IsPDF(data) {
		return "", fmt.Errorf("not a PDF file")
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}

	var builder strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}

	extracted := strings.TrimSpace(builder.String())
	if extracted == "" {
		return "", fmt.Errorf("no extractable text")
	}

	return extracted, nil
}
