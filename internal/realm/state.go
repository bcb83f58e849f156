// Package realm defines the nation state snapshot that every simulation
// system reads and mutates.
package realm

import (
	"github.com/google/uuid"

	"github.com/talgya/axinode/internal/catalog"
	"github.com/talgya/axinode/internal/combat"
	"github.com/talgya/axinode/internal/entropy"
)

// Resources are the nation's stockpiles. Gold may go negative (debt);
// everything else is clamped at zero.
type Resources struct {
	Gold    float64 `json:"gold"`
	Food    float64 `json:"food"`
	Ore     float64 `json:"ore"`
	Mana    float64 `json:"mana"`
	Weapons float64 `json:"weapons"`
	Armor   float64 `json:"armor"`
}

// Clamp enforces non-negativity on every pool except gold.
func (r *Resources) Clamp() {
	r.Food = max(0, r.Food)
	r.Ore = max(0, r.Ore)
	r.Mana = max(0, r.Mana)
	r.Weapons = max(0, r.Weapons)
	r.Armor = max(0, r.Armor)
}

// Wealth sums every stockpile.
func (r Resources) Wealth() float64 {
	return r.Gold + r.Food + r.Ore + r.Mana + r.Weapons + r.Armor
}

// Military mirrors population.Soldiers and breaks it down by unit type.
type Military struct {
	TotalSoldiers int `json:"total_soldiers"`
	Infantry      int `json:"infantry"`
	Archers       int `json:"archers"`
	Cavalry       int `json:"cavalry"`
	MageWarriors  int `json:"mage_warriors"`  // each draws 1 mana a day
	Morale        int `json:"morale"`         // 0-100
	EquipmentRate int `json:"equipment_rate"` // 0-100
}

// Assigned returns soldiers with a unit type.
func (m Military) Assigned() int {
	return m.Infantry + m.Archers + m.Cavalry + m.MageWarriors
}

// Unassigned returns soldiers without a unit type.
func (m Military) Unassigned() int {
	return max(0, m.TotalSoldiers-m.Assigned())
}

// Forces converts the army to its combat breakdown.
func (m Military) Forces() combat.Forces {
	return combat.Forces{
		Infantry:   m.Infantry,
		Archers:    m.Archers,
		Cavalry:    m.Cavalry,
		Mages:      m.MageWarriors,
		Unassigned: m.Unassigned(),
	}
}

// trimUnits drops unit-type assignments that exceed TotalSoldiers, taking
// infantry first, then archers, cavalry and mage warriors.
func (m *Military) trimUnits() {
	excess := m.Assigned() - m.TotalSoldiers
	for _, u := range []*int{&m.Infantry, &m.Archers, &m.Cavalry, &m.MageWarriors} {
		if excess <= 0 {
			return
		}
		take := min(*u, excess)
		*u -= take
		excess -= take
	}
}

// Building is a completed building instance.
type Building struct {
	ID      string `json:"id"`
	BuiltAt int    `json:"built_at"`
}

// Order is a queued construction or research item.
type Order struct {
	ItemID    string  `json:"item_id"`
	StartDay  int     `json:"start_day"`
	Remaining float64 `json:"remaining"` // sim-seconds
}

// Technology is one research tree node's dynamic state.
type Technology struct {
	ID           string `json:"id"`
	Researched   bool   `json:"researched"`
	ResearchedAt int    `json:"researched_at,omitempty"`
}

// Specialist is a hired specialist.
type Specialist struct {
	ID         string `json:"id"`
	TemplateID string `json:"template_id"`
	HiredAt    int    `json:"hired_at"`
}

// Hero is a hired hero.
type Hero struct {
	ID         string `json:"id"`
	TemplateID string `json:"template_id"`
	HiredAt    int    `json:"hired_at"`
	Level      int    `json:"level"`
	Loyalty    int    `json:"loyalty"` // 0-100
}

// Heroes join at level 1 with loyalty in [HeroMinLoyalty, 100).
const HeroMinLoyalty = 70

// NewHero enlists template templateID on day.
func NewHero(templateID string, day int, src entropy.Source) Hero {
	return Hero{
		ID:         uuid.NewString(),
		TemplateID: templateID,
		HiredAt:    day,
		Level:      1,
		Loyalty:    HeroMinLoyalty + src.IntN(100-HeroMinLoyalty),
	}
}

// ActiveEffect is a timed bonus, usually from a spell.
type ActiveEffect struct {
	Source     string  `json:"source"`
	Type       string  `json:"type"`
	Value      float64 `json:"value"`
	ExpiresDay float64 `json:"expires_day"`
}

// Ledger records the last computed monthly cash flow.
type Ledger struct {
	Tax         float64 `json:"tax"`
	Trade       float64 `json:"trade"`
	Maintenance float64 `json:"maintenance"`
}

// Net returns income minus maintenance.
func (l Ledger) Net() float64 {
	return l.Tax + l.Trade - l.Maintenance
}

// State is the complete simulation snapshot.
type State struct {
	Day         float64 `json:"day"`
	Speed       int     `json:"speed"`
	Paused      bool    `json:"paused"`
	EventPaused bool    `json:"event_paused"`

	Resources    Resources  `json:"resources"`
	Population   Population `json:"population"`
	Satisfaction int        `json:"satisfaction"` // 0-100
	TaxRate      float64    `json:"tax_rate"`
	Military     Military   `json:"military"`

	Buildings         []Building   `json:"buildings"`
	ConstructionQueue []Order      `json:"construction_queue"`
	Technologies      []Technology `json:"technologies"`
	ResearchQueue     []Order      `json:"research_queue"`

	Specialists   []Specialist   `json:"specialists"`
	Heroes        []Hero         `json:"heroes"`
	ActiveEffects []ActiveEffect `json:"active_effects"`

	Nations    []Nation `json:"nations"`
	Reputation int      `json:"reputation"` // -100..100
	Conquests  int      `json:"conquests"`

	Battle *combat.Battle `json:"battle"`

	Log           []LogEntry `json:"log"`
	PendingEvents []string   `json:"pending_events"`

	Ledger Ledger `json:"ledger"`

	// RandomState is the saved position of the game's random stream.
	RandomState []byte `json:"random_state,omitempty"`

	BankruptcyDays      int `json:"bankruptcy_days"`
	LowSatisfactionDays int `json:"low_satisfaction_days"`

	Victory        bool   `json:"victory"`
	VictoryType    string `json:"victory_type,omitempty"`
	GameOver       bool   `json:"game_over"`
	GameOverReason string `json:"game_over_reason,omitempty"`
}

// Terminal reports whether the game has ended either way.
func (s *State) Terminal() bool {
	return s.Victory || s.GameOver
}

// DayNumber returns the whole simulated day.
func (s *State) DayNumber() int {
	return int(s.Day)
}

// SetSoldiers changes the soldier bucket and keeps Military in sync.
// The difference is absorbed by Total, not by Unemployed.
func (s *State) SetSoldiers(n int) {
	s.Population.Soldiers = max(0, n)
	s.Population.Recount()
	s.SyncMilitary()
}

// SyncMilitary copies the soldier count into the army and trims unit types.
// Call it after any population mutation that may touch the soldier bucket.
func (s *State) SyncMilitary() {
	s.Military.TotalSoldiers = s.Population.Soldiers
	s.Military.trimUnits()
}

// Researched reports whether technology id is complete.
func (s *State) Researched(id string) bool {
	for _, t := range s.Technologies {
		if t.ID == id {
			return t.Researched
		}
	}
	return false
}

// BuiltCount returns how many of building id are complete.
func (s *State) BuiltCount(id string) int {
	n := 0
	for _, b := range s.Buildings {
		if b.ID == id {
			n++
		}
	}
	return n
}

// QueuedCount returns how many of item id sit in a queue.
func QueuedCount(queue []Order, id string) int {
	n := 0
	for _, o := range queue {
		if o.ItemID == id {
			n++
		}
	}
	return n
}

// Nation returns the nation with the given ID.
func (s *State) Nation(id string) *Nation {
	for i := range s.Nations {
		if s.Nations[i].ID == id {
			return &s.Nations[i]
		}
	}
	return nil
}

// AvailableHeroes returns the hero templates not yet in our service.
func (s *State) AvailableHeroes() []catalog.HeroTemplate {
	var out []catalog.HeroTemplate
	for _, t := range catalog.Heroes {
		hired := false
		for _, h := range s.Heroes {
			if h.TemplateID == t.ID {
				hired = true
				break
			}
		}
		if !hired {
			out = append(out, t)
		}
	}
	return out
}

// LivingNations returns nations not yet defeated.
func (s *State) LivingNations() []*Nation {
	var out []*Nation
	for i := range s.Nations {
		if !s.Nations[i].Defeated {
			out = append(out, &s.Nations[i])
		}
	}
	return out
}

// AdjustReputation moves reputation by delta within -100..100.
func (s *State) AdjustReputation(delta int) {
	s.Reputation = max(-100, min(100, s.Reputation+delta))
}

// AdjustSatisfaction moves satisfaction by delta within 0..100.
func (s *State) AdjustSatisfaction(delta int) {
	s.Satisfaction = max(0, min(100, s.Satisfaction+delta))
}

// AdjustMorale moves army morale by delta within 0..100.
func (s *State) AdjustMorale(delta int) {
	s.Military.Morale = max(0, min(100, s.Military.Morale+delta))
}

// Clone returns a deep copy safe to hand to observers. Slices come back
// non-nil so an empty list encodes as [] rather than null.
func (s *State) Clone() State {
	c := *s
	c.Buildings = cloneSlice(s.Buildings)
	c.ConstructionQueue = cloneSlice(s.ConstructionQueue)
	c.Technologies = cloneSlice(s.Technologies)
	c.ResearchQueue = cloneSlice(s.ResearchQueue)
	c.Specialists = cloneSlice(s.Specialists)
	c.Heroes = cloneSlice(s.Heroes)
	c.ActiveEffects = cloneSlice(s.ActiveEffects)
	c.Log = cloneSlice(s.Log)
	c.PendingEvents = cloneSlice(s.PendingEvents)
	c.Nations = make([]Nation, len(s.Nations))
	for i, n := range s.Nations {
		n.Treaties = cloneSlice(n.Treaties)
		c.Nations[i] = n
	}
	c.Battle = s.Battle.Clone()
	return c
}

func cloneSlice[T any](src []T) []T {
	return append(make([]T, 0, len(src)), src...)
}
