// Package server exposes the event document and the roles panel over
// HTTP/JSON.
package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/prideworks/marquee/internal/coordinator"
	"github.com/prideworks/marquee/internal/events"
	"github.com/prideworks/marquee/internal/eventstore"
	"github.com/prideworks/marquee/internal/store"
	"github.com/prideworks/marquee/internal/ticketing"
)

// Server holds the wiring for all HTTP handlers. The roles store is optional;
// when nil the roles routes are not registered and the server runs as a pure
// event-document service.
type Server struct {
	coord     *coordinator.Coordinator
	files     *eventstore.Store
	tickets   *ticketing.Client
	roles     store.RoleStore
	publisher events.Publisher
	logger    *slog.Logger

	mutationTimeout time.Duration
}

// Options configures optional Server dependencies.
type Options struct {
	Roles           store.RoleStore
	MutationTimeout time.Duration
}

// New returns a Server wired to the given coordinator, file store, and
// ticketing client.
func New(coord *coordinator.Coordinator, files *eventstore.Store, tickets *ticketing.Client, publisher events.Publisher, logger *slog.Logger, opts Options) *Server {
	if opts.MutationTimeout <= 0 {
		opts.MutationTimeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		coord:           coord,
		files:           files,
		tickets:         tickets,
		roles:           opts.Roles,
		publisher:       publisher,
		logger:          logger,
		mutationTimeout: opts.MutationTimeout,
	}
}

// publish emits an event to the bus. Best-effort; failures are logged but do
// not fail the request.
func (s *Server) publish(ctx context.Context, topic string, event any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, topic, event); err != nil {
		s.logger.Warn("failed to publish event", "topic", topic, "error", err)
	}
}
