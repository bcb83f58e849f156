// Package events holds the narrative event catalog and the weighted,
// condition-filtered selection the dispatcher draws from.
package events

import (
	"fmt"
	"log/slog"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/talgya/axinode/internal/entropy"
	"github.com/talgya/axinode/internal/realm"
)

// Choice is one branch of an event.
type Choice struct {
	Label   string
	Outcome string // logged after the effect runs
	// Apply mutates the state. A non-empty return replaces Outcome.
	Apply func(s *realm.State, rng entropy.Source) string
	Next  string // event ID queued for the next day, if any
}

// Event is a narrative situation with branching choices.
type Event struct {
	ID          string
	Title       string
	Description string
	Category    string
	Weight      float64
	Condition   string  // expr source over Env; empty always passes
	Chained     bool    // only reachable through a Choice.Next
	Chance      float64 // own daily roll, kept out of the weighted draw

	Choices []Choice

	program *vm.Program
}

// Prompt is what a presenter shows the player.
type Prompt struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Choices     []string `json:"choices"`
}

// Prompt returns the presentable part of the event.
func (e *Event) Prompt() Prompt {
	p := Prompt{ID: e.ID, Title: e.Title, Description: e.Description}
	for _, c := range e.Choices {
		p.Choices = append(p.Choices, c.Label)
	}
	return p
}

// Choose applies choice i to s and returns the message to log. An index
// out of range selects the last choice.
func (e *Event) Choose(i int, s *realm.State, rng entropy.Source) (Choice, string) {
	if len(e.Choices) == 0 {
		return Choice{}, ""
	}
	if i < 0 || i >= len(e.Choices) {
		i = len(e.Choices) - 1
	}
	c := e.Choices[i]
	msg := c.Outcome
	if c.Apply != nil {
		if m := c.Apply(s, rng); m != "" {
			msg = m
		}
	}
	s.Resources.Clamp()
	s.Population.Recount()
	s.SyncMilitary()
	return c, msg
}

// Compile compiles the event's condition. Events without a condition
// always pass.
func (e *Event) Compile() error {
	if e.Condition == "" {
		return nil
	}
	prog, err := expr.Compile(e.Condition, expr.Env(Env{}), expr.AsBool())
	if err != nil {
		return fmt.Errorf("compile event %q: %w", e.ID, err)
	}
	e.program = prog
	return nil
}

// Eligible reports whether the event's condition holds for env.
func (e *Event) Eligible(env Env) bool {
	if e.program == nil {
		return e.Condition == ""
	}
	out, err := vm.Run(e.program, env)
	if err != nil {
		slog.Warn("event condition failed", "event", e.ID, "error", err)
		return false
	}
	ok, _ := out.(bool)
	return ok
}

var index = make(map[string]*Event)

func init() {
	for _, e := range Catalog {
		if err := e.Compile(); err != nil {
			panic(err)
		}
		index[e.ID] = e
	}
}

// ByID returns the catalog event id.
func ByID(id string) (*Event, bool) {
	e, ok := index[id]
	return e, ok
}

// Candidates returns the catalog events in the weighted draw whose
// condition passes.
func Candidates(s *realm.State) []*Event {
	env := NewEnv(s)
	var out []*Event
	for _, e := range Catalog {
		if !e.Chained && e.Chance == 0 && e.Eligible(env) {
			out = append(out, e)
		}
	}
	return out
}

// Pick chooses one candidate by cumulative weight, or nil when nothing
// qualifies.
func Pick(s *realm.State, rng entropy.Source) *Event {
	cands := Candidates(s)
	weights := make([]float64, len(cands))
	for i, e := range cands {
		weights[i] = e.Weight
	}
	i := entropy.WeightedIndex(rng, weights)
	if i < 0 {
		return nil
	}
	return cands[i]
}

// Roll tries each event that has its own daily chance and returns the
// first eligible one whose roll succeeds.
func Roll(s *realm.State, rng entropy.Source) *Event {
	env := NewEnv(s)
	for _, e := range Catalog {
		if e.Chance > 0 && e.Eligible(env) && entropy.Chance(rng, e.Chance) {
			return e
		}
	}
	return nil
}
