package model

import (
	"fmt"
	"time"
)

// DocumentVersion is the schema version written to every saved document.
const DocumentVersion = "1"

// Venue is the optional location block of an event.
type Venue struct {
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`
}

// Event is one calendar event as persisted in the config document.
// IDs are assigned by the ticketing service, not generated locally.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	URL         string    `json:"url,omitempty"`
	Venue       *Venue    `json:"venue,omitempty"`
	Logo        string    `json:"logo,omitempty"`
	Category    string    `json:"category,omitempty"`
	Format      string    `json:"format,omitempty"`

	// Operator-supplied presentation overrides; absent unless set explicitly.
	CustomSummary string `json:"customSummary,omitempty"`
	CustomCta     string `json:"customCta,omitempty"`
}

// Validate checks the invariants every stored event must satisfy.
func (e *Event) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("event id is required")
	}
	if e.Title == "" {
		return fmt.Errorf("event title is required")
	}
	if e.StartDate.IsZero() || e.EndDate.IsZero() {
		return fmt.Errorf("event start and end dates are required")
	}
	if e.EndDate.Before(e.StartDate) {
		return fmt.Errorf("event end date %s is before start date %s",
			e.EndDate.Format(time.RFC3339), e.StartDate.Format(time.RFC3339))
	}
	return nil
}

// Document is the root object persisted to the events file. Events keep
// insertion order; the slice is rewritten wholesale on every mutation.
type Document struct {
	Version     string     `json:"version"`
	LastUpdated *time.Time `json:"lastUpdated"`
	Events      []*Event   `json:"events"`
}

// NewDocument returns an empty document with the current schema version.
func NewDocument() *Document {
	return &Document{
		Version: DocumentVersion,
		Events:  []*Event{},
	}
}

// Find returns the event with the given id, or nil.
func (d *Document) Find(id string) *Event {
	for _, e := range d.Events {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// Remove deletes the event with the given id, preserving the order of the
// remaining events. It reports whether an event was removed.
func (d *Document) Remove(id string) bool {
	for i, e := range d.Events {
		if e.ID == id {
			d.Events = append(d.Events[:i], d.Events[i+1:]...)
			return true
		}
	}
	return false
}
