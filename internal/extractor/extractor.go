// Package extractor runs the per-document outline pipeline: page-count
// guard, native bookmark path, then the font-heuristic path.
package extractor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/docrill/pdfoutliner/internal/layout"
	"github.com/docrill/pdfoutliner/internal/outline"
	"github.com/docrill/pdfoutliner/internal/pdfdoc"
)

// ErrPageLimit marks a document rejected for exceeding the page limit.
// Rejection happens before any content parsing; there is no partial output.
var ErrPageLimit = errors.New("page limit exceeded")

// Extractor turns one PDF into an Outline. Safe for concurrent use:
// each Extract call is an independent pipeline with no shared mutable
// state beyond the latency stats.
type Extractor struct {
	maxPages     int
	preferNative bool
	classifier   *layout.Classifier
	log          *slog.Logger

	// Stats aggregates per-document extraction latency.
	Stats *Stats
}

// New creates an extractor. maxPages <= 0 disables the page-count guard.
func New(maxPages int, preferNative bool, log *slog.Logger) *Extractor {
	return &Extractor{
		maxPages:     maxPages,
		preferNative: preferNative,
		classifier:   layout.NewClassifier(),
		log:          log,
		Stats:        NewStats(time.Hour),
	}
}

// Extract produces the outline for the PDF at path. The native bookmark
// tree takes precedence when present; the heuristic path is the fallback.
func (e *Extractor) Extract(ctx context.Context, path string) (*outline.Outline, error) {
	start := time.Now()
	defer func() { e.Stats.Record(time.Since(start).Milliseconds()) }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if e.maxPages > 0 {
		pages, err := pdfdoc.PageCount(path)
		if err != nil {
			return nil, fmt.Errorf("inspect %s: %w", path, err)
		}
		if pages > e.maxPages {
			return nil, fmt.Errorf("%s has %d pages (limit %d): %w", path, pages, e.maxPages, ErrPageLimit)
		}
	}

	doc, err := pdfdoc.Read(path)
	if err != nil {
		return nil, err
	}
	title := layout.CleanTitleText(doc.Title)

	if e.preferNative {
		if ol, ok := e.nativeOutline(path, title); ok {
			return ol, nil
		}
	}

	return e.fromFragments(title, doc.Fragments), nil
}

// nativeOutline tries the embedded bookmark tree. ok is false when the
// document has no usable bookmarks, which is not an error.
func (e *Extractor) nativeOutline(path, title string) (*outline.Outline, bool) {
	bms, err := pdfdoc.NativeBookmarks(path)
	if err != nil {
		e.log.Debug("no native outline", "path", path, "error", err)
		return nil, false
	}
	entries := pdfdoc.BookmarkEntries(bms)
	if len(entries) == 0 {
		return nil, false
	}
	e.log.Info("using native outline", "path", path, "headings", len(entries))
	return outline.FromEntries(title, entries), true
}

// fromFragments is the heuristic path: normalize fragments into lines,
// profile the document's font usage, classify each line, and assemble the
// accepted headings. A degenerate layout yields an empty outline.
func (e *Extractor) fromFragments(metaTitle string, frags []layout.Fragment) *outline.Outline {
	lines := layout.BuildLines(frags)
	profile := layout.BuildProfile(lines)
	cands := e.classifier.ClassifyLines(lines, profile)

	pageTitle, body := layout.PickTitle(cands)
	title := metaTitle
	if title == "" {
		title = pageTitle
	}

	return outline.Assemble(title, body)
}
