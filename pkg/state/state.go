// Package state persists per-run summaries under the target root
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/gamekeeper/gamekeeper/pkg/logger"
	"github.com/gamekeeper/gamekeeper/pkg/types"
)

// RunState is the persisted summary of one harvest run. It is advisory
// only; the manifest at the target root remains the commit point.
type RunState struct {
	RunID        string              `json:"runId"`
	Source       string              `json:"source"`
	Target       string              `json:"target"`
	Pattern      string              `json:"pattern"`
	Status       types.HarvestStatus `json:"status"`
	StartedAt    time.Time           `json:"startedAt"`
	CompletedAt  time.Time           `json:"completedAt,omitempty"`
	GameNames    []string            `json:"gameNames,omitempty"`
	BuildCount   int                 `json:"buildCount"`
	FailureCount int                 `json:"failureCount"`
	LastError    string              `json:"lastError,omitempty"`
	ProcessID    int                 `json:"processId"`
}

// Manager handles run-state files under <target>/.gamekeeper/state
type Manager struct {
	stateDir string
	logger   logger.Logger
}

// NewManager creates a state manager rooted at the target directory
func NewManager(targetRoot string, log logger.Logger) *Manager {
	return &Manager{
		stateDir: filepath.Join(targetRoot, ".gamekeeper", "state"),
		logger:   log,
	}
}

// NewRun creates the in-memory state for a fresh run
func (m *Manager) NewRun(source, target, pattern string) *RunState {
	return &RunState{
		RunID:     uuid.NewString(),
		Source:    source,
		Target:    target,
		Pattern:   pattern,
		Status:    types.HarvestStatusScanning,
		StartedAt: time.Now(),
		ProcessID: os.Getpid(),
	}
}

// Save writes the run state to disk, creating the state directory on
// first use
func (m *Manager) Save(rs *RunState) error {
	if err := os.MkdirAll(m.stateDir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(rs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run state: %w", err)
	}

	path := filepath.Join(m.stateDir, "run-"+rs.RunID+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write run state: %w", err)
	}

	if m.logger != nil {
		m.logger.Debug("Saved run state", logger.WithField("runId", rs.RunID))
	}
	return nil
}

// Load reads a run state by ID
func (m *Manager) Load(runID string) (*RunState, error) {
	path := filepath.Join(m.stateDir, "run-"+runID+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("run state not found: %s", runID)
	}

	var rs RunState
	if err := json.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("failed to parse run state %s: %w", path, err)
	}
	return &rs, nil
}

// Latest returns the most recently started run, or an error when the
// target has no recorded runs
func (m *Manager) Latest() (*RunState, error) {
	runs, err := m.DiscoverRuns()
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, fmt.Errorf("no harvest runs recorded under %s", m.stateDir)
	}
	return runs[len(runs)-1], nil
}

// DiscoverRuns loads all recorded runs, ordered by start time
func (m *Manager) DiscoverRuns() ([]*RunState, error) {
	entries, err := os.ReadDir(m.stateDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read state directory: %w", err)
	}

	var runs []*RunState
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(m.stateDir, entry.Name()))
		if err != nil {
			continue
		}
		var rs RunState
		if err := json.Unmarshal(data, &rs); err != nil || rs.RunID == "" {
			// Skip unreadable or incomplete state files rather than
			// failing discovery
			continue
		}
		runs = append(runs, &rs)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].StartedAt.Before(runs[j].StartedAt)
	})
	return runs, nil
}
