// Simulation owns the nation state and wires every system together.
// Nothing outside the engine mutates the state; observers get clones.
package engine

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/dustin/go-humanize"

	"github.com/talgya/axinode/internal/economy"
	"github.com/talgya/axinode/internal/entropy"
	"github.com/talgya/axinode/internal/realm"
)

// Options configures a new or resumed game.
type Options struct {
	Seed      int64          // 0 draws a random seed
	Random    entropy.Source // overrides the seeded source, for tests
	Presenter Presenter      // nil uses AutoPresenter
	Upgrades  []string       // prestige upgrades applied to a new game
}

// Outcome summarizes a finished game for the host to persist.
type Outcome struct {
	Victory   bool   `json:"victory"`
	Kind      string `json:"kind"` // victory type or defeat reason
	Day       int    `json:"day"`
	Conquests int    `json:"conquests"`
	Prestige  int    `json:"prestige"`
}

// Engine is the single-threaded simulation. It has no locks of its own;
// a Runner serializes callers.
type Engine struct {
	state     realm.State
	rng       entropy.Source
	seed      int64
	presenter Presenter
	pending   *pendingEvent
	outcome   *Outcome

	subs    map[int]func(realm.State)
	nextSub int
}

// New starts a fresh game.
func New(opts Options) *Engine {
	e := newEngine(opts)
	s := &e.state
	*s = realm.NewState()
	s.SeedNations(e.rng)
	s.ApplyUpgrades(opts.Upgrades)
	s.Military.EquipmentRate = economy.EquipmentRate(s)
	slog.Info("new game", "seed", e.seed, "nations", len(s.Nations), "upgrades", len(opts.Upgrades))
	return e
}

// Resume continues a saved game. A snapshot saved while an event awaited a
// choice resumes unpaused: the pending choice cannot be restored.
func Resume(s realm.State, opts Options) *Engine {
	e := newEngine(opts)
	e.state = s.Clone()
	e.state.RandomState = nil
	if opts.Random == nil {
		e.rng = resumedStream(e.seed, s)
	}
	if e.state.EventPaused {
		e.state.EventPaused = false
		e.state.Logf(realm.CategoryImportant, "An unresolved matter was forgotten while the court was away.")
	}
	if e.state.Terminal() {
		e.recordOutcome()
	}
	slog.Info("game resumed", "day", e.state.DayNumber(), "seed", e.seed)
	return e
}

// resumedStream continues the saved stream, or starts one salted with the
// current day so a reload does not replay the rolls of day one.
func resumedStream(seed int64, s realm.State) *entropy.Seeded {
	if len(s.RandomState) > 0 {
		sd := entropy.NewSeeded(seed)
		err := sd.UnmarshalBinary(s.RandomState)
		if err == nil {
			return sd
		}
		slog.Warn("discarding saved random stream", "error", err)
	}
	return entropy.NewSeededAt(seed, s.DayNumber())
}

func newEngine(opts Options) *Engine {
	seed := opts.Seed
	if seed == 0 {
		seed = entropy.RandomSeed()
	}
	rng := opts.Random
	if rng == nil {
		rng = entropy.NewSeeded(seed)
	}
	p := opts.Presenter
	if p == nil {
		p = AutoPresenter{}
	}
	return &Engine{
		rng:       rng,
		seed:      seed,
		presenter: p,
		subs:      make(map[int]func(realm.State)),
	}
}

// Seed returns the seed the game's random stream was created from.
func (e *Engine) Seed() int64 {
	return e.seed
}

// Snapshot returns a deep copy of the current state, including the random
// stream position when the engine owns a seeded stream.
func (e *Engine) Snapshot() realm.State {
	c := e.state.Clone()
	if sd, ok := e.rng.(*entropy.Seeded); ok {
		if pos, err := sd.MarshalBinary(); err == nil {
			c.RandomState = pos
		}
	}
	return c
}

// Outcome returns the result of a finished game.
func (e *Engine) Outcome() (Outcome, bool) {
	if e.outcome == nil {
		return Outcome{}, false
	}
	return *e.outcome, true
}

// Subscribe registers fn to receive a copy of the state after every
// mutating call. The returned func removes the subscription.
func (e *Engine) Subscribe(fn func(realm.State)) (unsubscribe func()) {
	id := e.nextSub
	e.nextSub++
	e.subs[id] = fn
	return func() {
		delete(e.subs, id)
	}
}

// notify delivers a fresh clone to each subscriber in registration order.
func (e *Engine) notify() {
	if len(e.subs) == 0 {
		return
	}
	ids := make([]int, 0, len(e.subs))
	for id := range e.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if fn, ok := e.subs[id]; ok {
			fn(e.state.Clone())
		}
	}
}

// Summary is a one-line status used by logs and the CLI.
func Summary(s *realm.State) string {
	return fmt.Sprintf("day %d: %s people, %s gold, %s food, satisfaction %d",
		s.DayNumber(), humanize.Comma(int64(s.Population.Total)),
		humanize.Comma(int64(s.Resources.Gold)), humanize.Comma(int64(s.Resources.Food)), s.Satisfaction)
}
