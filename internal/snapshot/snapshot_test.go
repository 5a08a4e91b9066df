package snapshot

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/prideworks/marquee/internal/eventstore"
	"github.com/prideworks/marquee/internal/model"
)

type captureDestination struct {
	mu     sync.Mutex
	writes [][]byte
}

func (d *captureDestination) Write(_ context.Context, data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	d.writes = append(d.writes, cp)
	return nil
}

func (d *captureDestination) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.writes)
}

func TestSchedulerSnapshotsExistingFile(t *testing.T) {
	files := eventstore.New(filepath.Join(t.TempDir(), "events.json"))
	doc := model.NewDocument()
	start := time.Date(2026, 6, 20, 17, 0, 0, 0, time.UTC)
	doc.Events = append(doc.Events, &model.Event{
		ID: "1", Title: "Picnic", StartDate: start, EndDate: start.Add(time.Hour),
	})
	if err := files.Save(doc); err != nil {
		t.Fatal(err)
	}

	dest := &captureDestination{}
	s := NewScheduler(files, []Destination{dest}, time.Hour, slog.New(slog.DiscardHandler))
	s.Start()
	defer s.Stop()

	// The initial snapshot runs immediately on Start.
	deadline := time.After(2 * time.Second)
	for dest.count() == 0 {
		select {
		case <-deadline:
			t.Fatal("no snapshot written")
		case <-time.After(10 * time.Millisecond):
		}
	}

	dest.mu.Lock()
	got := string(dest.writes[0])
	dest.mu.Unlock()
	if got == "" || got[0] != '{' {
		t.Errorf("snapshot is not the raw document: %q", got)
	}
}

func TestSchedulerSkipsMissingFile(t *testing.T) {
	files := eventstore.New(filepath.Join(t.TempDir(), "events.json"))
	dest := &captureDestination{}
	s := NewScheduler(files, []Destination{dest}, time.Hour, slog.New(slog.DiscardHandler))

	s.snapshotOnce(context.Background())
	if dest.count() != 0 {
		t.Errorf("expected no writes for missing file, got %d", dest.count())
	}
}
