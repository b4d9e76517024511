package pipeline

import (
	"sync"
	"time"

	"github.com/docrill/pdfoutliner/internal/outline"
)

// JobStatus represents the state of an outline extraction job.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusExtracting JobStatus = "extracting"
	StatusWriting    JobStatus = "writing"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
	StatusRejected   JobStatus = "rejected" // page limit exceeded
)

// Job tracks the extraction of a single PDF.
type Job struct {
	mu sync.Mutex

	ID       string    `json:"job_id"`
	Filename string    `json:"filename"`
	Status   JobStatus `json:"status"`
	Error    string    `json:"error,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Internal: not serialized.
	path      string // source PDF on disk
	ephemeral bool   // true for uploads spooled to a temp file
	result    *outline.Document
}

// NewJob creates a queued job for the PDF at path. Ephemeral jobs own
// their source file and have it removed after processing.
func NewJob(filename, path string, ephemeral bool) *Job {
	now := time.Now()
	return &Job{
		ID:        newULID(),
		Filename:  filename,
		Status:    StatusQueued,
		CreatedAt: now,
		UpdatedAt: now,
		path:      path,
		ephemeral: ephemeral,
	}
}

// SetStatus updates the job state atomically.
func (j *Job) SetStatus(status JobStatus) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.UpdatedAt = time.Now()
}

// Fail marks the job failed (or rejected) with an error message.
func (j *Job) Fail(status JobStatus, msg string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Error = msg
	j.UpdatedAt = time.Now()
}

// SetResult stores the extracted outline contract.
func (j *Job) SetResult(doc outline.Document) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.result = &doc
	j.UpdatedAt = time.Now()
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID       string            `json:"job_id"`
	Filename string            `json:"filename"`
	Status   JobStatus         `json:"status"`
	Error    string            `json:"error,omitempty"`
	Result   *outline.Document `json:"result,omitempty"`
}

// Snapshot returns a JSON-safe copy of the job state, including the
// outline once the job has completed.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	return JobSnapshot{
		ID:       j.ID,
		Filename: j.Filename,
		Status:   j.Status,
		Error:    j.Error,
		Result:   j.result,
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > s.ttl {
			delete(s.jobs, id)
		}
	}
}
