// Package snapshot periodically copies the events document to off-git
// destinations (S3). The git history is the system of record; snapshots are
// a disaster copy only.
package snapshot

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/prideworks/marquee/internal/eventstore"
)

// Destination is the interface for a snapshot target.
type Destination interface {
	// Write sends the raw document bytes to the destination.
	Write(ctx context.Context, data []byte) error
}

// Scheduler runs periodic snapshots to one or more destinations.
type Scheduler struct {
	files        *eventstore.Store
	destinations []Destination
	interval     time.Duration
	logger       *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewScheduler creates a scheduler that copies the document file to the given
// destinations at the specified interval.
func NewScheduler(files *eventstore.Store, destinations []Destination, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		files:        files,
		destinations: destinations,
		interval:     interval,
		logger:       logger,
	}
}

// Start begins periodic snapshots. It runs an initial snapshot immediately,
// then on each tick.
func (s *Scheduler) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run(ctx)
	}()
}

// Stop cancels the scheduler and waits for the current snapshot (if any) to finish.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

func (s *Scheduler) run(ctx context.Context) {
	s.snapshotOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.snapshotOnce(ctx)
		}
	}
}

// snapshotOnce reads the raw file so the snapshot is byte-identical to what
// git historizes. A missing file means no mutation has happened yet; skip.
func (s *Scheduler) snapshotOnce(ctx context.Context) {
	data, err := os.ReadFile(s.files.Path())
	if os.IsNotExist(err) {
		return
	}
	if err != nil {
		s.logger.Error("snapshot read failed", "err", err)
		return
	}

	for i, dest := range s.destinations {
		if err := dest.Write(ctx, data); err != nil {
			s.logger.Error("snapshot destination write failed", "destination", i, "err", err)
		}
	}

	s.logger.Info("snapshot completed", "destinations", len(s.destinations), "bytes", len(data))
}
