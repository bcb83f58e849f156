package steward

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

const (
	maxRecords    = 20
	reportRecords = 5 // how many recent records Report prints
)

// CycleRecord captures what happened in a single steward cycle.
type CycleRecord struct {
	Day         int    `json:"day"`
	Action      string `json:"action"`
	Success     bool   `json:"success"`
	CrisisLevel string `json:"crisis_level"`
	Gold        int    `json:"gold"`
	Population  int    `json:"population"`
	Rationale   string `json:"rationale,omitempty"`
}

// CycleMemory manages a ring of recent steward cycle records.
type CycleMemory struct {
	Records []CycleRecord `json:"records"`

	path string
}

// LoadMemory reads the memory file at path. Returns empty memory if it is
// missing or unreadable. An empty path keeps memory in-process only.
func LoadMemory(path string) *CycleMemory {
	mem := &CycleMemory{path: path}
	if path == "" {
		return mem
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return mem
	}
	if err := json.Unmarshal(data, mem); err != nil {
		slog.Warn("steward memory corrupted, starting fresh", "error", err)
		return &CycleMemory{path: path}
	}
	return mem
}

// Save writes the memory to disk.
func (m *CycleMemory) Save() {
	if m.path == "" {
		return
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		slog.Error("failed to marshal steward memory", "error", err)
		return
	}
	if err := os.WriteFile(m.path, data, 0644); err != nil {
		slog.Error("failed to write steward memory", "error", err)
	}
}

// Record adds a cycle record, trimming to maxRecords.
func (m *CycleMemory) Record(r CycleRecord) {
	m.Records = append(m.Records, r)
	if len(m.Records) > maxRecords {
		m.Records = m.Records[len(m.Records)-maxRecords:]
	}
}

// RecentlyDid reports whether one of the last n cycles succeeded at action.
func (m *CycleMemory) RecentlyDid(action string, n int) bool {
	if m == nil {
		return false
	}
	start := max(0, len(m.Records)-n)
	for _, r := range m.Records[start:] {
		if r.Action == action && r.Success {
			return true
		}
	}
	return false
}

// Report summarizes the last few cycles, one per line.
func (m *CycleMemory) Report() string {
	if len(m.Records) == 0 {
		return ""
	}

	var b strings.Builder
	start := max(0, len(m.Records)-reportRecords)
	for _, r := range m.Records[start:] {
		fmt.Fprintf(&b, "- Day %d: action=%s, ok=%t, crisis=%s, gold=%d, population=%d",
			r.Day, r.Action, r.Success, r.CrisisLevel, r.Gold, r.Population)
		if r.Rationale != "" {
			fmt.Fprintf(&b, " (%s)", r.Rationale)
		}
		b.WriteString("\n")
	}
	return b.String()
}
