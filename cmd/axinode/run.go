package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/talgya/axinode/internal/api"
	"github.com/talgya/axinode/internal/engine"
	"github.com/talgya/axinode/internal/persistence"
	"github.com/talgya/axinode/internal/realm"
)

type runOptions struct {
	slot     string
	seed     int64
	port     int
	adminKey string
	autosave time.Duration
	fresh    bool
	speed    int
}

func runCmd() *cobra.Command {
	var o runOptions
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the simulation and serve the HTTP API",
		Long: `Resumes the game in the slot or starts a new one with the owned
prestige upgrades, then runs until interrupted or the game ends.
With an admin key set, events wait for a choice via the API; without one
the first choice is taken automatically.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGame(cmd.Context(), o)
		},
	}

	seed, _ := strconv.ParseInt(envOrDefault("AXINODE_SEED", "0"), 10, 64)
	cmd.Flags().StringVar(&o.slot, "slot", envOrDefault("AXINODE_SLOT", "main"), "Save slot")
	cmd.Flags().Int64Var(&o.seed, "seed", seed, "Seed for a new game (0 = random)")
	cmd.Flags().IntVar(&o.port, "port", envIntOrDefault("AXINODE_PORT", 8080), "HTTP API port (0 disables the API)")
	cmd.Flags().StringVar(&o.adminKey, "admin-key", os.Getenv("AXINODE_ADMIN_KEY"), "Bearer token for command endpoints")
	cmd.Flags().DurationVar(&o.autosave, "autosave", time.Minute, "Autosave interval (0 disables autosave)")
	cmd.Flags().BoolVar(&o.fresh, "new", false, "Discard the slot and start a new game")
	cmd.Flags().IntVar(&o.speed, "speed", 0, "Game speed for the session (1, 2, 5, 10 or 20)")
	return cmd
}

func (o runOptions) validate() error {
	if o.autosave < 0 {
		return fmt.Errorf("autosave interval must not be negative, got %s", o.autosave)
	}
	return nil
}

// autosaveTicks fires every d. With d zero the channel is nil and never
// fires.
func autosaveTicks(d time.Duration) (<-chan time.Time, func()) {
	if d <= 0 {
		return nil, func() {}
	}
	t := time.NewTicker(d)
	return t.C, t.Stop
}

func runGame(parent context.Context, o runOptions) error {
	if err := o.validate(); err != nil {
		return err
	}
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	opts := engine.Options{Seed: o.seed}
	if o.port > 0 && o.adminKey != "" {
		opts.Presenter = engine.Deferred{}
	}

	e, err := loadOrCreate(st, o, opts)
	if err != nil {
		return err
	}
	if err := st.SaveMeta(persistence.MetaLastSlot, o.slot); err != nil {
		slog.Warn("failed to record last slot", "error", err)
	}
	if err := st.SaveMeta(persistence.MetaLastSeed, strconv.FormatInt(e.Seed(), 10)); err != nil {
		slog.Warn("failed to record seed", "error", err)
	}

	if o.speed != 0 {
		if r := e.SetSpeed(o.speed); !r.Success {
			return errors.New(r.Message)
		}
	}
	if r := startUnpaused(e); !r.Success {
		return errors.New(r.Message)
	}

	runner := engine.NewRunner(e, nil)

	if o.port > 0 {
		srv := &api.Server{
			Runner:   runner,
			Store:    st,
			Slot:     o.slot,
			Port:     o.port,
			AdminKey: o.adminKey,
		}
		srv.Start(ctx)
	}

	done := make(chan struct{})
	go func() {
		runner.Run(ctx)
		close(done)
	}()

	autosave, stop := autosaveTicks(o.autosave)
	defer stop()

	for {
		select {
		case <-autosave:
			save(st, runner, o.slot)
		case <-done:
			return finish(st, runner, o.slot)
		}
	}
}

// loadOrCreate resumes the slot or starts a fresh game.
func loadOrCreate(st *persistence.Store, o runOptions, opts engine.Options) (*engine.Engine, error) {
	if o.fresh {
		if err := st.DeleteGame(o.slot); err != nil {
			return nil, fmt.Errorf("discard slot: %w", err)
		}
	} else {
		s, found, err := st.LoadGame(o.slot)
		if err != nil {
			return nil, fmt.Errorf("load slot %q: %w", o.slot, err)
		}
		if found {
			if opts.Seed == 0 {
				if v, err := st.GetMeta(persistence.MetaLastSeed); err == nil {
					opts.Seed, _ = strconv.ParseInt(v, 10, 64)
				}
			}
			return engine.Resume(s, opts), nil
		}
	}

	p, err := st.LoadPrestige()
	if err != nil {
		return nil, err
	}
	opts.Upgrades = p.Upgrades
	e := engine.New(opts)
	slog.Info("new game started", "slot", o.slot, "seed", e.Seed(), "upgrades", len(p.Upgrades))
	return e, nil
}

func startUnpaused(e *engine.Engine) engine.Result {
	s := e.Snapshot()
	if !s.Paused {
		return engine.Result{Success: true}
	}
	return e.TogglePause()
}

// save writes the current state unless the game has ended; finished games
// are recorded by finish instead.
func save(st *persistence.Store, runner *engine.Runner, slot string) {
	var s realm.State
	runner.Do(func(e *engine.Engine) { s = e.Snapshot() })
	if s.Terminal() {
		return
	}
	if err := st.SaveGame(slot, s); err != nil {
		slog.Error("autosave failed", "slot", slot, "error", err)
		return
	}
	if err := st.ArchiveLog(slot, s.Log); err != nil {
		slog.Warn("log archive failed", "slot", slot, "error", err)
	}
	slog.Info("autosaved", "slot", slot, "summary", engine.Summary(&s))
}

// finish saves an interrupted game, or records a finished one in the
// prestige record and clears its slot.
func finish(st *persistence.Store, runner *engine.Runner, slot string) error {
	var (
		s        realm.State
		outcome  engine.Outcome
		finished bool
	)
	runner.Do(func(e *engine.Engine) {
		s = e.Snapshot()
		outcome, finished = e.Outcome()
	})

	if !finished {
		save(st, runner, slot)
		fmt.Println("Game saved. Goodbye.")
		return nil
	}

	p, err := st.LoadPrestige()
	if err != nil {
		return err
	}
	p.Record(&s)
	if err := st.SavePrestige(p); err != nil {
		return fmt.Errorf("save prestige: %w", err)
	}
	if err := st.DeleteGame(slot); err != nil {
		return err
	}
	printOutcome(outcome, p)
	return nil
}
