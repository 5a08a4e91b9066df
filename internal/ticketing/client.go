// Package ticketing fetches canonical event data from the third-party
// ticketing API and normalizes it into the local event shape. It never
// touches local state.
package ticketing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/prideworks/marquee/internal/model"
)

// ErrInvalidReference is returned when a reference is neither an event id
// nor a share URL ending in one.
var ErrInvalidReference = errors.New("invalid event reference")

// UpstreamError reports a non-success response from the ticketing API. The
// status and body travel with the error for diagnostics.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("ticketing API returned %d: %s", e.StatusCode, e.Body)
}

// Share URLs end in the numeric event id, e.g.
// https://tickets.example/e/pride-picnic-123456789
var trailingID = regexp.MustCompile(`(\d+)/?$`)

// ResolveID extracts the event id from a share URL, or passes a bare numeric
// id through unchanged.
func ResolveID(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidReference)
	}
	m := trailingID.FindStringSubmatch(ref)
	if m == nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidReference, ref)
	}
	return m[1], nil
}

// Client calls the ticketing API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient returns a client for the API at baseURL. The token is sent as a
// Bearer credential on every request.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// apiEvent mirrors the subset of the upstream event payload we consume.
type apiEvent struct {
	ID   string `json:"id"`
	Name struct {
		Text string `json:"text"`
	} `json:"name"`
	Description struct {
		HTML string `json:"html"`
	} `json:"description"`
	Start apiTimestamp `json:"start"`
	End   apiTimestamp `json:"end"`
	URL   string       `json:"url"`
	Logo  *struct {
		URL string `json:"url"`
	} `json:"logo"`
	Venue *struct {
		Name    string `json:"name"`
		Address struct {
			Address1 string `json:"address_1"`
			City     string `json:"city"`
			Country  string `json:"country"`
		} `json:"address"`
	} `json:"venue"`
	Category *struct {
		Name string `json:"name"`
	} `json:"category"`
	Format *struct {
		Name string `json:"name"`
	} `json:"format"`
}

type apiTimestamp struct {
	UTC   string `json:"utc"`
	Local string `json:"local"`
}

// parse prefers the UTC field; the local field carries no zone and is only a
// fallback.
func (ts apiTimestamp) parse() (time.Time, error) {
	if ts.UTC != "" {
		return time.Parse(time.RFC3339, ts.UTC)
	}
	if ts.Local != "" {
		return time.Parse("2006-01-02T15:04:05", ts.Local)
	}
	return time.Time{}, fmt.Errorf("timestamp missing both utc and local")
}

// FetchEvent retrieves one event by id and maps it into the local shape.
// Idempotent and side-effect-free.
func (c *Client) FetchEvent(ctx context.Context, id string) (*model.Event, error) {
	url := fmt.Sprintf("%s/v3/events/%s/?expand=venue,category,format", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ticketing API request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return nil, fmt.Errorf("reading ticketing response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var ae apiEvent
	if err := json.Unmarshal(body, &ae); err != nil {
		return nil, fmt.Errorf("decode ticketing response: %w", err)
	}
	return normalize(&ae)
}

func normalize(ae *apiEvent) (*model.Event, error) {
	start, err := ae.Start.parse()
	if err != nil {
		return nil, fmt.Errorf("event %s start: %w", ae.ID, err)
	}
	end, err := ae.End.parse()
	if err != nil {
		return nil, fmt.Errorf("event %s end: %w", ae.ID, err)
	}

	ev := &model.Event{
		ID:          ae.ID,
		Title:       ae.Name.Text,
		Description: ae.Description.HTML,
		StartDate:   start.UTC(),
		EndDate:     end.UTC(),
		URL:         ae.URL,
	}
	if ae.Logo != nil {
		ev.Logo = ae.Logo.URL
	}
	if ae.Venue != nil {
		ev.Venue = &model.Venue{
			Name:    ae.Venue.Name,
			Address: ae.Venue.Address.Address1,
			City:    ae.Venue.Address.City,
			Country: ae.Venue.Address.Country,
		}
	}
	if ae.Category != nil {
		ev.Category = ae.Category.Name
	}
	if ae.Format != nil {
		ev.Format = ae.Format.Name
	}
	if err := ev.Validate(); err != nil {
		return nil, fmt.Errorf("upstream event %s: %w", ae.ID, err)
	}
	return ev, nil
}
