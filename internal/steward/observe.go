// Package steward implements an autonomous player for a running nation.
// It observes the game via the API, triages the nation's health, decides
// on at most one command per cycle and acts via the command endpoints.
package steward

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/talgya/axinode/internal/engine"
	"github.com/talgya/axinode/internal/events"
	"github.com/talgya/axinode/internal/realm"
)

// Snapshot holds all data collected during an observation cycle.
type Snapshot struct {
	Status Status
	State  realm.State
	Event  *events.Prompt // nil when no decision is pending
}

// Status mirrors GET /api/v1/status.
type Status struct {
	Summary  string          `json:"summary"`
	Day      int             `json:"day"`
	Paused   bool            `json:"paused"`
	Speed    int             `json:"speed"`
	Pending  bool            `json:"event_pending"`
	InBattle bool            `json:"in_battle"`
	Outcome  *engine.Outcome `json:"outcome,omitempty"`
	Seed     int64           `json:"seed"`
}

// Observer fetches game state from the API.
type Observer struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewObserver creates an Observer targeting the given API base URL.
func NewObserver(baseURL string) *Observer {
	return &Observer{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Observe fetches status, full state and the pending event.
func (o *Observer) Observe() (*Snapshot, error) {
	snap := &Snapshot{}

	if err := o.fetchJSON("/api/v1/status", &snap.Status); err != nil {
		return nil, fmt.Errorf("fetch status: %w", err)
	}
	if err := o.fetchJSON("/api/v1/state", &snap.State); err != nil {
		return nil, fmt.Errorf("fetch state: %w", err)
	}
	if snap.Status.Pending {
		var p events.Prompt
		if err := o.fetchJSON("/api/v1/event", &p); err != nil {
			return nil, fmt.Errorf("fetch event: %w", err)
		}
		if p.ID != "" {
			snap.Event = &p
		}
	}

	return snap, nil
}

// fetchJSON GETs a path and decodes the JSON response into target.
// 204 No Content leaves target untouched.
func (o *Observer) fetchJSON(path string, target any) error {
	resp, err := o.HTTPClient.Get(o.BaseURL + path)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("GET %s returned %d: %s", path, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
