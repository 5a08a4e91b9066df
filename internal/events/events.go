package events

import (
	"context"

	"github.com/prideworks/marquee/internal/model"
)

// Event topic constants
const (
	TopicEventAdded   = "marquee.event.added"
	TopicEventRemoved = "marquee.event.removed"
	TopicPushRetried  = "marquee.history.pushed"

	// Roles panel events
	TopicRoleCreated         = "marquee.role.created"
	TopicRoleUpdated         = "marquee.role.updated"
	TopicRoleDeleted         = "marquee.role.deleted"
	TopicApplicationReceived = "marquee.application.received"
	TopicApplicationDecided  = "marquee.application.decided"
)

// Event types

type EventAdded struct {
	Event *model.Event `json:"event"`
}

type EventRemoved struct {
	EventID string `json:"event_id"`
	Title   string `json:"title,omitempty"`
}

type PushRetried struct {
	Succeeded bool `json:"succeeded"`
}

type RoleCreated struct {
	Role *model.Role `json:"role"`
}

type RoleUpdated struct {
	Role    *model.Role    `json:"role"`
	Changes map[string]any `json:"changes"` // field name -> new value
}

type RoleDeleted struct {
	RoleID string `json:"role_id"`
}

type ApplicationReceived struct {
	Application *model.Application `json:"application"`
}

type ApplicationDecided struct {
	Application *model.Application `json:"application"`
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
