package model

import "time"

// ApplicationStatus tracks a volunteer application through review.
type ApplicationStatus string

const (
	ApplicationReceived  ApplicationStatus = "received"
	ApplicationReviewing ApplicationStatus = "reviewing"
	ApplicationAccepted  ApplicationStatus = "accepted"
	ApplicationDeclined  ApplicationStatus = "declined"
)

// IsValid checks whether the status is a known value.
func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationReceived, ApplicationReviewing, ApplicationAccepted, ApplicationDeclined:
		return true
	}
	return false
}

// Role is one volunteer position advertised on the site.
type Role struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary,omitempty"`
	Description string    `json:"description,omitempty"`
	Team        string    `json:"team,omitempty"`
	Commitment  string    `json:"commitment,omitempty"`
	Open        bool      `json:"open"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RoleFilter narrows ListRoles results.
type RoleFilter struct {
	Team     string
	OpenOnly bool
	Search   string
}

// Application is one volunteer's application for a role.
type Application struct {
	ID        string            `json:"id"`
	RoleID    string            `json:"role_id"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Message   string            `json:"message,omitempty"`
	Status    ApplicationStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}
