package engine

import (
	"log/slog"

	"github.com/talgya/axinode/internal/entropy"
	"github.com/talgya/axinode/internal/events"
	"github.com/talgya/axinode/internal/realm"
)

// EventChance is the daily probability of a random event.
const EventChance = 0.05

// Presenter shows an event to the player. choose must eventually be called
// with the selected index; the simulation stays paused until it is. Calls
// after the first are ignored.
type Presenter interface {
	Present(p events.Prompt, choose func(index int))
}

// AutoPresenter picks the first choice immediately.
type AutoPresenter struct{}

// Present selects choice 0.
func (AutoPresenter) Present(_ events.Prompt, choose func(int)) { choose(0) }

// Deferred leaves the choice to a later Engine.ResolveEvent call, as the
// HTTP API does.
type Deferred struct{}

// Present does nothing.
func (Deferred) Present(events.Prompt, func(int)) {}

type pendingEvent struct {
	event *events.Event
	done  bool
}

// dispatchEvents presents a queued chain event or rolls for a random one.
// Events with their own chance are rolled on days nothing else was drawn.
func (e *Engine) dispatchEvents() {
	s := &e.state
	if e.pending != nil || s.Terminal() {
		return
	}
	for len(s.PendingEvents) > 0 {
		id := s.PendingEvents[0]
		s.PendingEvents = s.PendingEvents[1:]
		if ev, ok := events.ByID(id); ok {
			e.present(ev)
			return
		}
		slog.Warn("dropping unknown chained event", "event", id)
	}
	if entropy.Chance(e.rng, EventChance) {
		if ev := events.Pick(s, e.rng); ev != nil {
			e.present(ev)
			return
		}
	}
	if ev := events.Roll(s, e.rng); ev != nil {
		e.present(ev)
	}
}

// present pauses the simulation and hands the event to the presenter.
func (e *Engine) present(ev *events.Event) {
	p := &pendingEvent{event: ev}
	e.pending = p
	e.state.EventPaused = true
	slog.Debug("event presented", "event", ev.ID, "day", e.state.DayNumber())
	e.presenter.Present(ev.Prompt(), func(i int) { e.choose(p, i) })
}

// choose applies choice i of the pending event exactly once.
func (e *Engine) choose(p *pendingEvent, i int) {
	if p.done || e.pending != p {
		return
	}
	p.done = true
	e.pending = nil

	s := &e.state
	s.EventPaused = false
	if s.Terminal() {
		e.notify()
		return
	}
	c, msg := p.event.Choose(i, s, e.rng)
	if msg != "" {
		s.AddLog(p.event.Category, realm.PriorityNormal, msg)
	}
	if c.Next != "" {
		s.PendingEvents = append(s.PendingEvents, c.Next)
	}
	slog.Debug("event resolved", "event", p.event.ID, "choice", c.Label)
	e.notify()
}

// PendingEvent returns the event awaiting a choice, if any.
func (e *Engine) PendingEvent() (events.Prompt, bool) {
	if e.pending == nil {
		return events.Prompt{}, false
	}
	return e.pending.event.Prompt(), true
}

// ResolveEvent answers the pending event. An index out of range selects
// the last choice.
func (e *Engine) ResolveEvent(index int) Result {
	p := e.pending
	if p == nil {
		return fail("No event is awaiting a decision.")
	}
	title := p.event.Title
	e.choose(p, index)
	return succeed("Decision made on %q.", title)
}
