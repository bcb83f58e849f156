package persistence

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/talgya/axinode/internal/realm"
)

// SchemaVersion is the snapshot layout written by Encode.
const SchemaVersion = 5

var (
	// ErrCorrupt reports a snapshot whose checksum or contents do not hold.
	ErrCorrupt = errors.New("corrupt snapshot")
	// ErrUnsupportedVersion reports a snapshot from a newer schema.
	ErrUnsupportedVersion = errors.New("unsupported snapshot version")
	// ErrFinished reports a snapshot of a game that has already ended.
	ErrFinished = errors.New("snapshot of a finished game")
)

type envelope struct {
	Version int             `json:"version"`
	State   json.RawMessage `json:"state"`
}

// Migration upgrades a decoded snapshot document from version From to
// From+1. defaults is realm.NewState in the same document form.
type Migration struct {
	From  int
	Apply func(doc, defaults map[string]any) error
}

// Migrations upgrade old snapshots one version at a time. Every step only
// adds fields.
var Migrations = []Migration{
	// v2 introduced hired personnel and timed spell effects.
	{From: 1, Apply: func(doc, defaults map[string]any) error {
		backfill(doc, defaults, "specialists", "heroes", "active_effects")
		return nil
	}},
	// v3 introduced chained events and the monthly ledger.
	{From: 2, Apply: func(doc, defaults map[string]any) error {
		backfill(doc, defaults, "pending_events", "ledger")
		return nil
	}},
	// v4 introduced the tax rate, the revolution counter and equipment.
	{From: 3, Apply: func(doc, defaults map[string]any) error {
		backfill(doc, defaults, "tax_rate", "low_satisfaction_days")
		mil, ok := doc["military"].(map[string]any)
		if !ok {
			return fmt.Errorf("military is %T", doc["military"])
		}
		if _, ok := mil["equipment_rate"]; !ok {
			mil["equipment_rate"] = defaults["military"].(map[string]any)["equipment_rate"]
		}
		return nil
	}},
	// v5 introduced mage warriors and hero levels and loyalty.
	{From: 4, Apply: func(doc, _ map[string]any) error {
		mil, ok := doc["military"].(map[string]any)
		if !ok {
			return fmt.Errorf("military is %T", doc["military"])
		}
		if _, ok := mil["mage_warriors"]; !ok {
			mil["mage_warriors"] = 0
		}
		heroes, _ := doc["heroes"].([]any)
		for i, h := range heroes {
			hero, ok := h.(map[string]any)
			if !ok {
				return fmt.Errorf("hero %d is %T", i, h)
			}
			backfill(hero, map[string]any{"level": 1, "loyalty": realm.HeroMinLoyalty}, "level", "loyalty")
		}
		return nil
	}},
}

func backfill(doc, defaults map[string]any, keys ...string) {
	for _, k := range keys {
		if _, ok := doc[k]; !ok {
			doc[k] = defaults[k]
		}
	}
}

// Encode serializes a state at the current schema version.
func Encode(s realm.State) ([]byte, error) {
	body, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal state: %w", err)
	}
	return json.Marshal(envelope{Version: SchemaVersion, State: body})
}

// Decode parses a snapshot of any supported version, migrating older ones
// forward. The result is checked against the state invariants.
func Decode(data []byte) (realm.State, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return realm.State{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if env.Version < 1 || env.Version > SchemaVersion {
		return realm.State{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, env.Version)
	}

	body := []byte(env.State)
	if env.Version < SchemaVersion {
		var err error
		body, err = migrate(body, env.Version)
		if err != nil {
			return realm.State{}, fmt.Errorf("migrate from v%d: %w", env.Version, err)
		}
	}

	var s realm.State
	if err := json.Unmarshal(body, &s); err != nil {
		return realm.State{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if err := s.Validate(); err != nil {
		return realm.State{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return s, nil
}

func migrate(body []byte, from int) ([]byte, error) {
	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	defaults, err := defaultDoc()
	if err != nil {
		return nil, err
	}
	for v := from; v < SchemaVersion; v++ {
		m, ok := migrationFrom(v)
		if !ok {
			return nil, fmt.Errorf("no migration from v%d", v)
		}
		if err := m.Apply(doc, defaults); err != nil {
			return nil, fmt.Errorf("v%d: %w", v, err)
		}
	}
	return json.Marshal(doc)
}

func migrationFrom(v int) (Migration, bool) {
	for _, m := range Migrations {
		if m.From == v {
			return m, true
		}
	}
	return Migration{}, false
}

func defaultDoc() (map[string]any, error) {
	body, err := json.Marshal(realm.NewState())
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
