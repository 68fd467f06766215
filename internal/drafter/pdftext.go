package drafter

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// TextExtractor pulls plain text out of a PDF document.
type TextExtractor interface {
	Extract(data []byte, maxChars int) (string, error)
}

type pdfExtractor struct{}

func NewPDFExtractor() TextExtractor {
	return pdfExtractor{}
}

// Extract reads pages in order, stopping once maxChars characters have been
// collected. Pages are separated by a blank line.
func (pdfExtractor) Extract(data []byte, maxChars int) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}

	var (
		chunks []string
		total  int
	)
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("reading pdf page %d: %w", i, err)
		}
		text = strings.TrimSpace(text)
		chunks = append(chunks, text)
		total += len([]rune(text))
		if maxChars > 0 && total >= maxChars {
			break
		}
	}

	return truncateRunes(strings.Join(chunks, "\n\n"), maxChars), nil
}

func truncateRunes(s string, maxChars int) string {
	if maxChars <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxChars {
		return s
	}
	return string(runes[:maxChars])
}
