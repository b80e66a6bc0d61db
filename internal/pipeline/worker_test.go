package pipeline

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/dgallion1/pdfgen/internal/config"
	"github.com/dgallion1/pdfgen/internal/inspect"
	"github.com/dgallion1/pdfgen/internal/layout"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newJob(filename, body string) *Job {
	now := time.Now()
	job := &Job{
		ID:        NewJobID(),
		Status:    StatusQueued,
		Phase:     "queued",
		Filename:  filename,
		CreatedAt: now,
		UpdatedAt: now,
	}
	job.SetFileData([]byte(body))
	return job
}

func TestWorker_RendersMarkdown(t *testing.T) {
	job := newJob("notes.md", "# Notes\n\nFirst paragraph.\n\n- one\n- two\n")
	NewWorker(testLogger(), layout.DefaultOptions(), nil).Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusCompleted {
		t.Fatalf("expected completed, got %s (%v)", snap.Status, snap.Progress.Errors)
	}
	if snap.Title != "Notes" {
		t.Errorf("expected title %q, got %q", "Notes", snap.Title)
	}
	if snap.Progress.Pages != 1 || snap.Progress.Lines != 6 {
		t.Errorf("expected 1 page and 6 lines, got %+v", snap.Progress)
	}
	if snap.ContentHash == "" {
		t.Error("expected content hash")
	}

	data, ok := job.PDF()
	if !ok {
		t.Fatal("expected rendered PDF")
	}
	pages, err := inspect.ExtractLines(data)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	want := []string{"Notes", "First paragraph.", "- one", "- two"}
	if strings.Join(pages[0], "|") != strings.Join(want, "|") {
		t.Errorf("expected %q, got %q", want, pages[0])
	}
}

func TestWorker_LinesPerPageOverride(t *testing.T) {
	job := newJob("rows.txt", "a\nb\nc\nd\ne")
	job.LinesPerPage = 2
	NewWorker(testLogger(), layout.DefaultOptions(), nil).Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusCompleted {
		t.Fatalf("expected completed, got %s (%v)", snap.Status, snap.Progress.Errors)
	}
	if snap.Progress.Pages != 3 {
		t.Errorf("expected 3 pages, got %d", snap.Progress.Pages)
	}
}

func TestWorker_UnsupportedFormat(t *testing.T) {
	job := newJob("image.png", "x")
	NewWorker(testLogger(), layout.DefaultOptions(), nil).Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusFailed || snap.Phase != "parsing" {
		t.Errorf("expected failed in parsing, got %s/%s", snap.Status, snap.Phase)
	}
}

func TestWorker_UnencodableText(t *testing.T) {
	job := newJob("check.txt", "done ✓")
	NewWorker(testLogger(), layout.DefaultOptions(), nil).Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusFailed || snap.Phase != "assembling" {
		t.Fatalf("expected failed in assembling, got %s/%s", snap.Status, snap.Phase)
	}
	if len(snap.Progress.Errors) != 1 || !strings.Contains(snap.Progress.Errors[0], "WinAnsiEncoding") {
		t.Errorf("expected encoding error, got %v", snap.Progress.Errors)
	}
	if _, ok := job.PDF(); ok {
		t.Error("expected no PDF for failed job")
	}
}

func TestWorker_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	job := newJob("a.txt", "hello")
	NewWorker(testLogger(), layout.DefaultOptions(), nil).Process(ctx, job)

	if snap := job.Snapshot(); snap.Status != StatusFailed {
		t.Errorf("expected failed, got %s", snap.Status)
	}
}

func TestOrchestrator_ProcessesJobs(t *testing.T) {
	cfg := config.Config{WorkerCount: 2, MaxQueueSize: 10, JobTTL: time.Hour}
	o := NewOrchestrator(cfg, layout.DefaultOptions(), testLogger())
	o.Start(context.Background())
	defer o.Stop()

	var jobs []*Job
	for i := 0; i < 4; i++ {
		job := newJob("doc.txt", "line one\n\nline two")
		if err := o.Submit(job); err != nil {
			t.Fatalf("submit: %v", err)
		}
		jobs = append(jobs, job)
	}

	deadline := time.Now().Add(5 * time.Second)
	for _, job := range jobs {
		for job.Snapshot().Status != StatusCompleted {
			if time.Now().After(deadline) {
				t.Fatalf("job %s stuck in %s", job.ID, job.Snapshot().Status)
			}
			time.Sleep(5 * time.Millisecond)
		}
		if o.GetJob(job.ID) != job {
			t.Errorf("expected job %s to be tracked", job.ID)
		}
	}
	if o.JobCount() != 4 {
		t.Errorf("expected 4 tracked jobs, got %d", o.JobCount())
	}
	// Stats are recorded just after the final status change.
	for o.Stats().Completed < 4 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if st := o.Stats(); st.Completed != 4 || st.Failed != 0 {
		t.Errorf("expected 4 completed renders in stats, got %+v", st)
	}
}

func TestOrchestrator_QueueFull(t *testing.T) {
	cfg := config.Config{WorkerCount: 1, MaxQueueSize: 1, JobTTL: time.Hour}
	// Not started, so nothing drains the queue.
	o := NewOrchestrator(cfg, layout.DefaultOptions(), testLogger())

	if err := o.Submit(newJob("a.txt", "a")); err != nil {
		t.Fatalf("expected first submit to succeed, got %v", err)
	}
	full := newJob("b.txt", "b")
	if err := o.Submit(full); err == nil {
		t.Fatal("expected queue full error")
	}
	if snap := full.Snapshot(); snap.Status != StatusFailed || snap.Phase != "queue_full" {
		t.Errorf("expected failed/queue_full, got %s/%s", snap.Status, snap.Phase)
	}
	if o.QueueDepth() != 1 {
		t.Errorf("expected queue depth 1, got %d", o.QueueDepth())
	}
}
