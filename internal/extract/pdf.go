package extract

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// DefaultMaxPDFPages bounds extraction on long documents; the leading pages
// carry enough signal for an embedding.
const DefaultMaxPDFPages = 15

// PDF extracts text from the first MaxPages pages of a PDF document.
type PDF struct {
	MaxPages int
}

func (p PDF) Extract(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	pages := r.NumPage()
	if p.MaxPages > 0 && pages > p.MaxPages {
		pages = p.MaxPages
	}

	var b strings.Builder
	for i := 1; i <= pages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue // one malformed page shouldn't lose the rest
		}
		b.WriteString(text)
		b.WriteByte('\n')
	}
	return b.String(), nil
}
