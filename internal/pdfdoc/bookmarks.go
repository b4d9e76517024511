package pdfdoc

import (
	"fmt"
	"os"

	"github.com/docrill/pdfoutliner/internal/layout"
	"github.com/docrill/pdfoutliner/internal/outline"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PageCount returns the number of pages without parsing page content, so
// oversized documents can be rejected before any extraction work.
func PageCount(path string) (int, error) {
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("page count: %w", err)
	}
	return n, nil
}

// NativeBookmarks reads the bookmark tree embedded in the PDF, if any.
// A document without bookmarks yields an empty slice, not an error.
func NativeBookmarks(path string) ([]pdfcpu.Bookmark, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	bms, err := api.Bookmarks(f, model.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("read bookmarks: %w", err)
	}
	return bms, nil
}

// BookmarkEntries flattens a bookmark tree into outline entries in
// document order. Depth is capped at H3; deeper bookmarks fold into H3.
// Bookmarks whose cleaned title is empty are skipped, their kids kept at
// their own depth.
func BookmarkEntries(bms []pdfcpu.Bookmark) []outline.Entry {
	var entries []outline.Entry
	var walk func(bms []pdfcpu.Bookmark, depth int)
	walk = func(bms []pdfcpu.Bookmark, depth int) {
		for _, bm := range bms {
			if text := layout.CleanHeadingText(bm.Title); text != "" {
				entries = append(entries, outline.Entry{
					Level: levelForDepth(depth),
					Text:  text,
					Page:  bm.PageFrom,
				})
			}
			walk(bm.Kids, depth+1)
		}
	}
	walk(bms, 1)
	return entries
}

func levelForDepth(d int) string {
	return layout.LevelForDepth(d).String()
}
