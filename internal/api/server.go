// Package api serves the nation over HTTP: read-only observation routes,
// bearer-guarded command routes and a WebSocket state stream.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/talgya/axinode/internal/catalog"
	"github.com/talgya/axinode/internal/engine"
	"github.com/talgya/axinode/internal/persistence"
	"github.com/talgya/axinode/internal/realm"
)

// Server exposes one running game.
type Server struct {
	Runner   *engine.Runner
	Store    *persistence.Store // nil disables /save and /log/archive
	Slot     string
	Port     int
	AdminKey string // required for POST routes

	// Command rate per client IP. Zero uses 5/s with a burst of 10.
	CommandRate  float64
	CommandBurst int

	hub *Hub
}

// Handler builds the router, starts the WebSocket hub and subscribes it
// to the engine. The hub stops when ctx ends.
func (s *Server) Handler(ctx context.Context) http.Handler {
	s.hub = NewHub()
	go s.hub.Run(ctx)

	var unsubscribe func()
	s.Runner.Do(func(e *engine.Engine) {
		unsubscribe = e.Subscribe(s.hub.Publish)
	})
	go func() {
		<-ctx.Done()
		s.Runner.Do(func(*engine.Engine) { unsubscribe() })
	}()

	rateLimit, burst := s.CommandRate, s.CommandBurst
	if rateLimit <= 0 {
		rateLimit, burst = 5, 10
	}
	limiter := NewRateLimiter(rateLimit, max(1, burst))

	r := chi.NewRouter()
	r.Use(corsMiddleware)

	// Public endpoints (GET, read-only).
	r.Get("/api/v1/status", s.handleStatus)
	r.Get("/api/v1/state", s.handleState)
	r.Get("/api/v1/nations", s.handleNations)
	r.Get("/api/v1/catalog/{kind}", s.handleCatalog)
	r.Get("/api/v1/log", s.handleLog)
	r.Get("/api/v1/log/archive", s.handleLogArchive)
	r.Get("/api/v1/event", s.handleEvent)
	r.Get("/api/v1/ws", s.handleWS)

	// Commands (POST, bearer token, rate limited).
	r.Group(func(r chi.Router) {
		r.Use(s.adminOnly, limiter.Middleware)

		r.Post("/api/v1/pause", s.simple(func(e *engine.Engine) engine.Result { return e.TogglePause() }))
		r.Post("/api/v1/speed", s.handleSpeed)
		r.Post("/api/v1/tax", s.handleTax)
		r.Post("/api/v1/assign", s.handleAssign)
		r.Post("/api/v1/units", s.handleUnits)
		r.Post("/api/v1/construction", s.byID(func(e *engine.Engine, id string) engine.Result { return e.StartConstruction(id) }))
		r.Post("/api/v1/construction/cancel", s.byIndex(func(e *engine.Engine, i int) engine.Result { return e.CancelConstruction(i) }))
		r.Post("/api/v1/research", s.byID(func(e *engine.Engine, id string) engine.Result { return e.StartResearch(id) }))
		r.Post("/api/v1/research/cancel", s.byIndex(func(e *engine.Engine, i int) engine.Result { return e.CancelResearch(i) }))
		r.Post("/api/v1/specialists/hire", s.byID(func(e *engine.Engine, id string) engine.Result { return e.HireSpecialist(id) }))
		r.Post("/api/v1/specialists/dismiss", s.byID(func(e *engine.Engine, id string) engine.Result { return e.DismissSpecialist(id) }))
		r.Post("/api/v1/heroes/hire", s.byID(func(e *engine.Engine, id string) engine.Result { return e.HireHero(id) }))
		r.Post("/api/v1/heroes/dismiss", s.byID(func(e *engine.Engine, id string) engine.Result { return e.DismissHero(id) }))
		r.Post("/api/v1/nations/{id}/attack", s.byNation(func(e *engine.Engine, id string) engine.Result { return e.AttackNation(id) }))
		r.Post("/api/v1/nations/{id}/trade", s.byNation(func(e *engine.Engine, id string) engine.Result { return e.ProposeTradeAgreement(id) }))
		r.Post("/api/v1/nations/{id}/treaty", s.handleTreaty)
		r.Post("/api/v1/nations/{id}/espionage", s.handleEspionage)
		r.Post("/api/v1/magic", s.handleMagic)
		r.Post("/api/v1/battle/retreat", s.simple(func(e *engine.Engine) engine.Result { return e.RetreatFromBattle() }))
		r.Post("/api/v1/battle/close", s.simple(func(e *engine.Engine) engine.Result { return e.CloseBattle() }))
		r.Post("/api/v1/event/choose", s.byIndex(func(e *engine.Engine, i int) engine.Result { return e.ResolveEvent(i) }))
		r.Post("/api/v1/save", s.handleSave)
	})

	return r
}

// Start launches the HTTP server in the background.
func (s *Server) Start(ctx context.Context) *http.Server {
	addr := fmt.Sprintf(":%d", s.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
	}
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "")

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", "error", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()
	return srv
}

// corsMiddleware adds CORS headers for allowed frontend origins.
// Set CORS_ORIGINS to a comma-separated list of extra origins.
// Localhost dev servers are always allowed.
func corsMiddleware(next http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:4173": true,
		"http://localhost:3000": true,
	}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins[origin] = true
			}
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// checkBearerToken validates the Authorization header against AdminKey.
func (s *Server) checkBearerToken(r *http.Request) bool {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	return ok && token == s.AdminKey
}

// adminOnly requires the admin bearer token on POST requests.
func (s *Server) adminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if s.AdminKey == "" {
				http.Error(w, "commands disabled (no AXINODE_ADMIN_KEY set)", http.StatusForbidden)
				return
			}
			if !s.checkBearerToken(r) {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// snapshot copies the state under the runner lock.
func (s *Server) snapshot() realm.State {
	var st realm.State
	s.Runner.Do(func(e *engine.Engine) { st = e.Snapshot() })
	return st
}

type statusResponse struct {
	Summary   string          `json:"summary"`
	Day       int             `json:"day"`
	Paused    bool            `json:"paused"`
	Speed     int             `json:"speed"`
	Pending   bool            `json:"event_pending"`
	InBattle  bool            `json:"in_battle"`
	Outcome   *engine.Outcome `json:"outcome,omitempty"`
	Seed      int64           `json:"seed"`
	Observers int             `json:"observers"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	var resp statusResponse
	s.Runner.Do(func(e *engine.Engine) {
		st := e.Snapshot()
		_, pending := e.PendingEvent()
		resp = statusResponse{
			Summary:  engine.Summary(&st),
			Day:      st.DayNumber(),
			Paused:   st.Paused,
			Speed:    st.Speed,
			Pending:  pending,
			InBattle: st.Battle != nil,
			Seed:     e.Seed(),
		}
		if o, ok := e.Outcome(); ok {
			resp.Outcome = &o
		}
	})
	resp.Observers = s.hub.Clients()
	writeJSON(w, resp)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.snapshot())
}

func (s *Server) handleNations(w http.ResponseWriter, r *http.Request) {
	st := s.snapshot()
	writeJSON(w, st.Nations)
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	var data any
	switch kind := chi.URLParam(r, "kind"); kind {
	case "buildings":
		data = catalog.Buildings
	case "technologies":
		data = catalog.Technologies
	case "specialists":
		data = catalog.Specialists
	case "heroes":
		data = catalog.Heroes
	case "spells":
		data = catalog.Spells
	case "upgrades":
		data = catalog.Upgrades
	default:
		http.Error(w, fmt.Sprintf("unknown catalog %q", kind), http.StatusNotFound)
		return
	}
	writeJSON(w, data)
}

// queryLimit parses ?limit=, clamped to [1, ceiling].
func queryLimit(r *http.Request, def, ceiling int) int {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || n <= 0 {
		return def
	}
	return min(n, ceiling)
}

func (s *Server) handleLog(w http.ResponseWriter, r *http.Request) {
	st := s.snapshot()
	limit := queryLimit(r, realm.LogCapacity, realm.LogCapacity)
	entries := st.Log
	if len(entries) > limit {
		entries = entries[:limit]
	}
	writeJSON(w, entries)
}

func (s *Server) handleLogArchive(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		http.Error(w, "no store configured", http.StatusServiceUnavailable)
		return
	}
	entries, err := s.Store.RecentLog(s.Slot, queryLimit(r, 100, 1000))
	if err != nil {
		slog.Error("read log archive", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []realm.LogEntry{}
	}
	writeJSON(w, entries)
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	var (
		prompt  any
		pending bool
	)
	s.Runner.Do(func(e *engine.Engine) {
		prompt, pending = e.PendingEvent()
	})
	if !pending {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, prompt)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	s.hub.serve(w, r, s.snapshot())
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		http.Error(w, "no store configured", http.StatusServiceUnavailable)
		return
	}
	st := s.snapshot()
	if err := s.Store.SaveGame(s.Slot, st); err != nil {
		slog.Error("save game", "slot", s.Slot, "error", err)
		http.Error(w, "save failed", http.StatusInternalServerError)
		return
	}
	if err := s.Store.ArchiveLog(s.Slot, st.Log); err != nil {
		slog.Warn("archive log", "slot", s.Slot, "error", err)
	}
	writeJSON(w, engine.Result{Success: true, Message: fmt.Sprintf("Saved day %d to %q.", st.DayNumber(), s.Slot)})
}

// Command bodies.

type idRequest struct {
	ID string `json:"id"`
}

type indexRequest struct {
	Index int `json:"index"`
}

type speedRequest struct {
	Speed int `json:"speed"`
}

type taxRequest struct {
	Rate float64 `json:"rate"`
}

type countRequest struct {
	Job   string `json:"job,omitempty"`
	Unit  string `json:"unit,omitempty"`
	Count int    `json:"count"`
}

type treatyRequest struct {
	Kind string `json:"kind"`
}

type espionageRequest struct {
	Kind string `json:"kind"`
}

type magicRequest struct {
	Spell  string `json:"spell"`
	Target string `json:"target,omitempty"`
}

// decode reads a JSON body into v, answering 400 on failure.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<16)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// run executes cmd under the runner lock and writes its Result. Rejected
// commands answer 409 with the same body.
func (s *Server) run(w http.ResponseWriter, cmd func(e *engine.Engine) engine.Result) {
	var res engine.Result
	s.Runner.Do(func(e *engine.Engine) { res = cmd(e) })
	if !res.Success {
		writeJSONStatus(w, http.StatusConflict, res)
		return
	}
	writeJSON(w, res)
}

func (s *Server) simple(cmd func(e *engine.Engine) engine.Result) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.run(w, cmd)
	}
}

func (s *Server) byID(cmd func(e *engine.Engine, id string) engine.Result) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req idRequest
		if !decode(w, r, &req) {
			return
		}
		s.run(w, func(e *engine.Engine) engine.Result { return cmd(e, req.ID) })
	}
}

func (s *Server) byIndex(cmd func(e *engine.Engine, i int) engine.Result) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req indexRequest
		if !decode(w, r, &req) {
			return
		}
		s.run(w, func(e *engine.Engine) engine.Result { return cmd(e, req.Index) })
	}
}

func (s *Server) byNation(cmd func(e *engine.Engine, id string) engine.Result) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		s.run(w, func(e *engine.Engine) engine.Result { return cmd(e, id) })
	}
}

func (s *Server) handleSpeed(w http.ResponseWriter, r *http.Request) {
	var req speedRequest
	if !decode(w, r, &req) {
		return
	}
	s.run(w, func(e *engine.Engine) engine.Result { return e.SetSpeed(req.Speed) })
}

func (s *Server) handleTax(w http.ResponseWriter, r *http.Request) {
	var req taxRequest
	if !decode(w, r, &req) {
		return
	}
	s.run(w, func(e *engine.Engine) engine.Result { return e.SetTaxRate(req.Rate) })
}

func (s *Server) handleAssign(w http.ResponseWriter, r *http.Request) {
	var req countRequest
	if !decode(w, r, &req) {
		return
	}
	s.run(w, func(e *engine.Engine) engine.Result { return e.AssignPopulation(req.Job, req.Count) })
}

func (s *Server) handleUnits(w http.ResponseWriter, r *http.Request) {
	var req countRequest
	if !decode(w, r, &req) {
		return
	}
	s.run(w, func(e *engine.Engine) engine.Result { return e.OrganizeUnits(req.Unit, req.Count) })
}

func (s *Server) handleTreaty(w http.ResponseWriter, r *http.Request) {
	var req treatyRequest
	if !decode(w, r, &req) {
		return
	}
	id := chi.URLParam(r, "id")
	s.run(w, func(e *engine.Engine) engine.Result { return e.SignTreaty(id, req.Kind) })
}

func (s *Server) handleEspionage(w http.ResponseWriter, r *http.Request) {
	var req espionageRequest
	if !decode(w, r, &req) {
		return
	}
	id := chi.URLParam(r, "id")
	s.run(w, func(e *engine.Engine) engine.Result { return e.ExecuteEspionage(req.Kind, id) })
}

func (s *Server) handleMagic(w http.ResponseWriter, r *http.Request) {
	var req magicRequest
	if !decode(w, r, &req) {
		return
	}
	s.run(w, func(e *engine.Engine) engine.Result { return e.CastMagic(req.Spell, req.Target) })
}

func writeJSON(w http.ResponseWriter, data any) {
	writeJSONStatus(w, http.StatusOK, data)
}

func writeJSONStatus(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
