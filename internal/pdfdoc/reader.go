// Package pdfdoc is the PDF collaborator: it pulls positioned text
// fragments, the embedded metadata title, native bookmarks and the page
// count out of PDF files. All layout decisions happen elsewhere.
package pdfdoc

import (
	"fmt"
	"strings"

	"github.com/docrill/pdfoutliner/internal/layout"
	pdflib "github.com/ledongthuc/pdf"
)

// Document is the raw material read from one PDF file.
type Document struct {
	Title     string // from the Info dictionary, may be empty
	Pages     int
	Fragments []layout.Fragment // ordered by page
}

// Read extracts all text fragments, annotated with font and position
// metadata, from the PDF at path. Pages without extractable text
// contribute no fragments. Malformed files surface as an error, never a
// panic (the underlying parser panics on some damaged inputs).
func Read(path string) (doc *Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = fmt.Errorf("read pdf %s: %v", path, r)
		}
	}()

	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	doc = &Document{
		Title: infoTitle(reader),
		Pages: reader.NumPage(),
	}

	for i := 1; i <= doc.Pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content := page.Content()
		for _, t := range content.Text {
			doc.Fragments = append(doc.Fragments, layout.Fragment{
				Text:     t.S,
				Page:     i,
				FontSize: t.FontSize,
				Bold:     IsBoldFont(t.Font),
				FontName: t.Font,
				X0:       t.X,
				Y0:       t.Y,
				X1:       t.X + t.W,
				Y1:       t.Y + t.FontSize,
			})
		}
	}

	return doc, nil
}

// infoTitle pulls the Title string from the document Info dictionary.
func infoTitle(r *pdflib.Reader) string {
	v := r.Trailer().Key("Info").Key("Title")
	if v.Kind() != pdflib.String {
		return ""
	}
	return strings.TrimSpace(v.Text())
}

// boldMarkers are font name substrings indicating a bold weight.
var boldMarkers = []string{"bold", "black", "heavy", "semibold", "demibold"}

// IsBoldFont reports whether a PostScript font name indicates a bold
// weight (e.g. "Helvetica-Bold", "NotoSans-SemiBold").
func IsBoldFont(name string) bool {
	lower := strings.ToLower(name)
	for _, m := range boldMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}
