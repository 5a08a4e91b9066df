// Package client provides a transport-agnostic interface for the marquee
// service and an HTTP/JSON implementation that talks to the marquee REST API.
package client

import (
	"context"

	"github.com/prideworks/marquee/internal/model"
)

// MarqueeClient is the interface that all marquee CLI commands use to
// communicate with the server. It is implemented by HTTPClient.
type MarqueeClient interface {
	// Events
	ListEvents(ctx context.Context) (*model.Document, error)
	AddEvent(ctx context.Context, req *AddEventRequest) (*Outcome, error)
	RemoveEvent(ctx context.Context, id string) (*Outcome, error)
	RetryPush(ctx context.Context) (*Outcome, error)

	// Roles
	ListRoles(ctx context.Context, req *ListRolesRequest) ([]*model.Role, error)
	CreateRole(ctx context.Context, req *CreateRoleRequest) (*model.Role, error)
	GetRole(ctx context.Context, id string) (*model.Role, error)
	UpdateRole(ctx context.Context, id string, req *UpdateRoleRequest) (*model.Role, error)
	DeleteRole(ctx context.Context, id string) error

	// Applications
	ListApplications(ctx context.Context, roleID string) ([]*model.Application, error)
	Apply(ctx context.Context, roleID string, req *ApplyRequest) (*model.Application, error)
	SetApplicationStatus(ctx context.Context, id, status string) (*model.Application, error)

	// Health
	Health(ctx context.Context) (string, error)

	// Lifecycle
	Close() error
}

// Outcome is the terminal state of an event mutation as reported by the
// server. State is populated even when the HTTP status signals failure.
type Outcome struct {
	State string `json:"state"`
	ID    string `json:"id,omitempty"`
	Title string `json:"title,omitempty"`
	Error string `json:"error,omitempty"`
}

// Succeeded reports whether the mutation fully completed, including the
// remote push.
func (o *Outcome) Succeeded() bool { return o.State == "succeeded" }

// AddEventRequest holds parameters for adding an event.
type AddEventRequest struct {
	Reference     string `json:"reference"`
	CustomSummary string `json:"custom_summary,omitempty"`
	CustomCta     string `json:"custom_cta,omitempty"`
}

// ListRolesRequest holds filters for listing roles.
type ListRolesRequest struct {
	Team     string
	OpenOnly bool
	Search   string
}

// CreateRoleRequest holds parameters for creating a role.
type CreateRoleRequest struct {
	Title       string `json:"title"`
	Summary     string `json:"summary,omitempty"`
	Description string `json:"description,omitempty"`
	Team        string `json:"team,omitempty"`
	Commitment  string `json:"commitment,omitempty"`
	Open        *bool  `json:"open,omitempty"`
}

// UpdateRoleRequest holds optional parameters for updating a role.
// Nil pointer fields mean "don't change".
type UpdateRoleRequest struct {
	Title       *string `json:"title,omitempty"`
	Summary     *string `json:"summary,omitempty"`
	Description *string `json:"description,omitempty"`
	Team        *string `json:"team,omitempty"`
	Commitment  *string `json:"commitment,omitempty"`
	Open        *bool   `json:"open,omitempty"`
}

// ApplyRequest holds parameters for submitting a volunteer application.
type ApplyRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message,omitempty"`
}
