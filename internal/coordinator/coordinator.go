// Package coordinator serializes mutations of the events document. It is the
// only caller of eventstore writes and history operations, and the only place
// allowed to turn a no-op into a non-error result.
package coordinator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prideworks/marquee/internal/events"
	"github.com/prideworks/marquee/internal/eventstore"
	"github.com/prideworks/marquee/internal/history"
	"github.com/prideworks/marquee/internal/model"
)

// State is the terminal state of one mutation request. Every call returns
// exactly one of these; there is no exception path.
type State string

const (
	// StateSucceeded: file saved, entry committed, remote updated.
	StateSucceeded State = "succeeded"
	// StateRejected: caller error (duplicate add, unknown remove, invalid
	// record, or timeout before any work). No side effects.
	StateRejected State = "rejected"
	// StateNoop: the change produced no effective difference; nothing was
	// committed. Reported, never silently swallowed.
	StateNoop State = "noop"
	// StateFailedIO: the save failed; the file is unchanged.
	StateFailedIO State = "failed_io"
	// StateFailedHistory: stage or commit failed after the file changed on
	// disk. Disk and history have diverged; needs operator attention.
	StateFailedHistory State = "failed_history"
	// StateFailedPush: local file and history are ahead of the remote.
	// Retrying push alone is the correct recovery.
	StateFailedPush State = "failed_push"
)

// Result is the outcome of one mutation request.
type Result struct {
	State State  `json:"state"`
	ID    string `json:"id,omitempty"`
	Title string `json:"title,omitempty"`
	Err   error  `json:"-"`
}

// OK reports whether the mutation fully succeeded.
func (r Result) OK() bool { return r.State == StateSucceeded }

// Coordinator applies one add/remove at a time across the file store and the
// history backend. Reads do not go through the coordinator; the store's
// atomic save guarantees they never see a torn file.
type Coordinator struct {
	files     *eventstore.Store
	hist      history.Backend
	publisher events.Publisher
	logger    *slog.Logger

	// relPath is the events file path relative to the history repo root,
	// i.e. what gets staged.
	relPath string

	// sem is a one-slot semaphore instead of a sync.Mutex so that waiters
	// can give up when their context expires rather than holding the caller
	// forever.
	sem chan struct{}
}

// New returns a coordinator over the given stores. relPath is the events file
// path relative to the history repository root.
func New(files *eventstore.Store, hist history.Backend, relPath string, publisher events.Publisher, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		files:     files,
		hist:      hist,
		publisher: publisher,
		logger:    logger,
		relPath:   relPath,
		sem:       make(chan struct{}, 1),
	}
}

// acquire takes the mutation lock, or fails when ctx expires first.
func (c *Coordinator) acquire(ctx context.Context) error {
	select {
	case c.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for mutation lock: %w", ctx.Err())
	}
}

func (c *Coordinator) release() { <-c.sem }

// Add appends a new event to the document and records it in history. The
// event must already be resolved and normalized; the coordinator performs no
// network fetches inside the lock.
func (c *Coordinator) Add(ctx context.Context, ev *model.Event) Result {
	if err := ev.Validate(); err != nil {
		return Result{State: StateRejected, Err: err}
	}

	if err := c.acquire(ctx); err != nil {
		return Result{State: StateRejected, ID: ev.ID, Title: ev.Title, Err: err}
	}
	defer c.release()

	c.preflight(ctx)

	doc, err := c.files.Load()
	if err != nil {
		return Result{State: StateFailedIO, ID: ev.ID, Title: ev.Title, Err: err}
	}
	if doc.Find(ev.ID) != nil {
		return Result{
			State: StateRejected,
			ID:    ev.ID,
			Title: ev.Title,
			Err:   fmt.Errorf("event %s already exists; remove it first", ev.ID),
		}
	}

	doc.Events = append(doc.Events, ev)
	message := fmt.Sprintf("events: add %q (%s)", ev.Title, ev.ID)

	res := c.persist(ctx, doc, message)
	res.ID, res.Title = ev.ID, ev.Title
	if res.OK() {
		c.publish(ctx, events.TopicEventAdded, ev.ID, events.EventAdded{Event: ev})
	}
	return res
}

// Remove deletes the event with the given id and records the removal.
func (c *Coordinator) Remove(ctx context.Context, id string) Result {
	if id == "" {
		return Result{State: StateRejected, Err: fmt.Errorf("event id is required")}
	}

	if err := c.acquire(ctx); err != nil {
		return Result{State: StateRejected, ID: id, Err: err}
	}
	defer c.release()

	c.preflight(ctx)

	doc, err := c.files.Load()
	if err != nil {
		return Result{State: StateFailedIO, ID: id, Err: err}
	}
	ev := doc.Find(id)
	if ev == nil {
		return Result{State: StateRejected, ID: id, Err: fmt.Errorf("event %s not found", id)}
	}

	doc.Remove(id)
	message := fmt.Sprintf("events: remove %q (%s)", ev.Title, id)

	res := c.persist(ctx, doc, message)
	res.ID, res.Title = id, ev.Title
	if res.OK() {
		c.publish(ctx, events.TopicEventRemoved, id, events.EventRemoved{EventID: id, Title: ev.Title})
	}
	return res
}

// RetryPush publishes local history that a previous failed_push left behind.
// It re-runs push only; the file and local history are not touched, so a
// retry after success produces no duplicate entry.
func (c *Coordinator) RetryPush(ctx context.Context) Result {
	if err := c.acquire(ctx); err != nil {
		return Result{State: StateRejected, Err: err}
	}
	defer c.release()

	if err := c.hist.Push(ctx); err != nil {
		return Result{State: StateFailedPush, Err: err}
	}
	c.publish(ctx, events.TopicPushRetried, "", events.PushRetried{Succeeded: true})
	return Result{State: StateSucceeded}
}

// persist drives save -> stage -> commit -> push and maps each failure to its
// terminal state.
func (c *Coordinator) persist(ctx context.Context, doc *model.Document, message string) Result {
	if err := c.files.Save(doc); err != nil {
		return Result{State: StateFailedIO, Err: err}
	}

	if err := c.hist.Stage(ctx, c.relPath); err != nil {
		return Result{State: StateFailedHistory, Err: err}
	}

	if err := c.hist.Commit(ctx, message); err != nil {
		if errors.Is(err, history.ErrNothingToCommit) {
			return Result{State: StateNoop, Err: err}
		}
		return Result{State: StateFailedHistory, Err: err}
	}

	if err := c.hist.Push(ctx); err != nil {
		return Result{State: StateFailedPush, Err: err}
	}

	return Result{State: StateSucceeded}
}

// preflight warns when the working tree is already dirty. A dirty tree means
// a previous mutation failed between save and commit; the upcoming stage and
// commit will sweep that divergence into this entry.
func (c *Coordinator) preflight(ctx context.Context) {
	clean, err := c.hist.Status(ctx)
	if err != nil {
		c.logger.Warn("history status check failed", "err", err)
		return
	}
	if !clean {
		c.logger.Warn("working tree dirty before mutation; a previous change may not have been committed")
	}
}

// publish is best-effort; a bus failure never fails the mutation.
func (c *Coordinator) publish(ctx context.Context, topic, id string, event any) {
	if err := c.publisher.Publish(ctx, topic, event); err != nil {
		c.logger.Warn("failed to publish event", "topic", topic, "event_id", id, "err", err)
	}
}
