// Command steward plays a running axinode game through its HTTP API.
// Each cycle it observes the nation, triages its health and issues at
// most one command.
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/talgya/axinode/internal/steward"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Configuration from environment.
	apiURL := envOrDefault("AXINODE_API_URL", "http://localhost:8080")
	adminKey := os.Getenv("AXINODE_ADMIN_KEY")
	memoryPath := envOrDefault("STEWARD_MEMORY", "steward_memory.json")
	interval, err := time.ParseDuration(envOrDefault("STEWARD_INTERVAL", "10s"))
	if err != nil || interval <= 0 {
		slog.Error("STEWARD_INTERVAL must be a positive duration", "value", os.Getenv("STEWARD_INTERVAL"))
		os.Exit(1)
	}

	if adminKey == "" {
		slog.Error("AXINODE_ADMIN_KEY is required")
		os.Exit(1)
	}

	slog.Info("axinode steward starting",
		"api_url", apiURL,
		"interval", interval,
	)

	observer := steward.NewObserver(apiURL)
	actor := steward.NewActor(apiURL, adminKey)
	mem := steward.LoadMemory(memoryPath)

	slog.Info("waiting for axinode API...")
	waitForAPI(apiURL)

	if report := mem.Report(); report != "" {
		fmt.Print("Recent cycles:\n" + report)
	}

	runCycle(observer, actor, mem)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-ticker.C:
			if done := runCycle(observer, actor, mem); done {
				fmt.Println("The game is over. Steward stopped.")
				return
			}
		case sig := <-sigCh:
			slog.Info("received signal, shutting down", "signal", sig)
			mem.Save()
			fmt.Println("Steward stopped.")
			return
		}
	}
}

// runCycle executes one cycle and reports whether the game has ended.
func runCycle(observer *steward.Observer, actor *steward.Actor, mem *steward.CycleMemory) bool {
	defer mem.Save()
	decision, err := steward.RunCycle(observer, actor, mem)
	if err != nil {
		slog.Error("steward cycle failed", "error", err)
		return false
	}
	return decision.Action == steward.ActionGameOver
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

// waitForAPI polls the status endpoint with exponential backoff until it
// responds. Exits after 5 minutes if the API never becomes ready.
func waitForAPI(apiURL string) {
	backoff := 2 * time.Second
	maxBackoff := 30 * time.Second
	deadline := time.Now().Add(5 * time.Minute)

	for {
		resp, err := http.Get(apiURL + "/api/v1/status")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				slog.Info("axinode API is ready")
				return
			}
		}
		if time.Now().After(deadline) {
			slog.Error("axinode API did not become ready within 5 minutes")
			os.Exit(1)
		}
		slog.Info("axinode not ready, retrying...", "backoff", backoff)
		time.Sleep(backoff)
		backoff = min(backoff*2, maxBackoff)
	}
}
