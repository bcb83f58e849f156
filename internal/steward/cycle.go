package steward

import (
	"fmt"
	"log/slog"
)

// RunCycle executes one observe, decide, act cycle and records it.
func RunCycle(observer *Observer, actor *Actor, mem *CycleMemory) (*Decision, error) {
	snap, err := observer.Observe()
	if err != nil {
		return nil, fmt.Errorf("observe: %w", err)
	}
	health := Triage(snap)
	slog.Info("observation complete",
		"day", snap.Status.Day,
		"crisis", health.CrisisLevel,
		"food_balance", health.FoodBalance,
		"monthly_net", fmt.Sprintf("%.0f", health.MonthlyNet),
		"satisfaction", health.Satisfaction,
		"threats", health.Threats,
	)

	decision := Decide(snap, health, mem)
	rec := CycleRecord{
		Day:         snap.Status.Day,
		Action:      decision.Action,
		CrisisLevel: health.CrisisLevel,
		Gold:        int(snap.State.Resources.Gold),
		Population:  snap.State.Population.Total,
		Rationale:   decision.Rationale,
	}

	if decision.Command == nil {
		slog.Info("steward cycle complete, no action", "rationale", decision.Rationale)
		mem.Record(rec)
		return decision, nil
	}

	result, err := actor.Act(decision.Command)
	if err != nil {
		mem.Record(rec)
		return decision, fmt.Errorf("act %s: %w", decision.Action, err)
	}
	rec.Success = result.Success
	mem.Record(rec)

	slog.Info("command executed",
		"action", decision.Action,
		"path", decision.Command.Path,
		"success", result.Success,
		"message", result.Message,
		"rationale", decision.Rationale,
	)
	return decision, nil
}
