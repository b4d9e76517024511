package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/docrill/pdfoutliner/internal/emit"
	"github.com/docrill/pdfoutliner/internal/extractor"
	"github.com/docrill/pdfoutliner/internal/outline"
)

// DocumentExtractor turns one PDF file into an outline. Satisfied by
// *extractor.Extractor; narrowed to an interface so the pipeline can be
// tested without real PDFs.
type DocumentExtractor interface {
	Extract(ctx context.Context, path string) (*outline.Outline, error)
}

// Worker processes single outline-extraction jobs. Documents are
// independent: a worker never shares state with another document's
// pipeline.
type Worker struct {
	ex     DocumentExtractor
	outDir string
	log    *slog.Logger
}

func NewWorker(ex DocumentExtractor, outDir string, log *slog.Logger) *Worker {
	return &Worker{ex: ex, outDir: outDir, log: log}
}

// Process runs the extraction pipeline for one job. All failures are
// recorded on the job and logged; they never propagate.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "file", job.Filename)

	if job.ephemeral {
		defer os.Remove(job.path)
	}

	job.SetStatus(StatusExtracting)
	ol, err := w.ex.Extract(ctx, job.path)
	if err != nil {
		if errors.Is(err, extractor.ErrPageLimit) {
			log.Warn("document rejected", "error", err)
			job.Fail(StatusRejected, err.Error())
			return
		}
		log.Error("extraction failed", "error", err)
		job.Fail(StatusFailed, err.Error())
		return
	}

	doc := ol.Contract()
	job.SetResult(doc)

	job.SetStatus(StatusWriting)
	path, err := emit.Write(w.outDir, job.Filename, doc)
	if err != nil {
		log.Error("write failed", "error", err)
		job.Fail(StatusFailed, err.Error())
		return
	}

	log.Info("outline written", "output", path, "headings", len(doc.Outline), "title", doc.Title)
	job.SetStatus(StatusCompleted)
}
