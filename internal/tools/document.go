package tools

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// BuildDocument renders generated markdown content into a downloadable
// PDF. Markdown structure is flattened to headings and body text; the
// rich HTML view stays in the app, the PDF is the printable copy.
func BuildDocument(title, content string) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle(title, true)
	doc.AddPage()
	tr := doc.UnicodeTranslatorFromDescriptor("")

	doc.SetFont("Helvetica", "B", 18)
	doc.MultiCell(0, 10, tr(title), "", "L", false)
	doc.Ln(4)

	for _, line := range strings.Split(content, "\n") {
		switch {
		case strings.HasPrefix(line, "### "):
			doc.SetFont("Helvetica", "B", 12)
			doc.MultiCell(0, 7, tr(strings.TrimPrefix(line, "### ")), "", "L", false)
		case strings.HasPrefix(line, "## "):
			doc.SetFont("Helvetica", "B", 14)
			doc.MultiCell(0, 8, tr(strings.TrimPrefix(line, "## ")), "", "L", false)
		case strings.HasPrefix(line, "# "):
			doc.SetFont("Helvetica", "B", 16)
			doc.MultiCell(0, 9, tr(strings.TrimPrefix(line, "# ")), "", "L", false)
		default:
			doc.SetFont("Helvetica", "", 11)
			doc.MultiCell(0, 6, tr(stripInlineMarkdown(line)), "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// stripInlineMarkdown drops emphasis and code markers that read as
// noise in plain PDF text.
func stripInlineMarkdown(line string) string {
	r := strings.NewReplacer("**", "", "__", "", "`", "")
	return r.Replace(line)
}
