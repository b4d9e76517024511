package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// BatchResult summarizes one batch run over an input directory.
type BatchResult struct {
	Processed int // outlines written
	Failed    int // unreadable/malformed documents
	Rejected  int // page limit exceeded
	Skipped   int // non-PDF files, ignored silently
}

// Failures is the number of documents that produced no output.
func (r BatchResult) Failures() int {
	return r.Failed + r.Rejected
}

// RunBatch processes every PDF in inputDir with a bounded worker pool,
// writing one JSON outline per document. Documents are independent and
// processed concurrently; a failing document never aborts the rest.
func RunBatch(ctx context.Context, ex DocumentExtractor, inputDir, outputDir string, workers int, log *slog.Logger) (BatchResult, error) {
	var res BatchResult

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return res, fmt.Errorf("read input dir: %w", err)
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return res, fmt.Errorf("create output dir: %w", err)
	}

	var jobs []*Job
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.EqualFold(filepath.Ext(name), ".pdf") {
			res.Skipped++
			continue
		}
		jobs = append(jobs, NewJob(name, filepath.Join(inputDir, name), false))
	}

	if len(jobs) == 0 {
		log.Warn("no PDF files found", "input_dir", inputDir)
		return res, nil
	}

	if workers <= 0 {
		workers = 1
	}
	queue := make(chan *Job)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := NewWorker(ex, outputDir, log)
			for job := range queue {
				w.Process(ctx, job)
			}
		}()
	}

	for _, job := range jobs {
		select {
		case <-ctx.Done():
			// Remaining jobs stay queued; mark them failed for the tally.
			job.Fail(StatusFailed, ctx.Err().Error())
		case queue <- job:
		}
	}
	close(queue)
	wg.Wait()

	for _, job := range jobs {
		switch job.Snapshot().Status {
		case StatusCompleted:
			res.Processed++
		case StatusRejected:
			res.Rejected++
		default:
			res.Failed++
		}
	}

	log.Info("batch complete",
		"processed", res.Processed,
		"failed", res.Failed,
		"rejected", res.Rejected,
		"skipped", res.Skipped,
	)
	return res, nil
}
