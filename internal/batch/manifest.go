package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// ManifestEntry represents one processed file in the output manifest.
type ManifestEntry struct {
	Input      string `json:"input"`
	Output     string `json:"output"`
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
	DurationMS int64  `json:"duration_ms"`
}

// Manifest is the summary written at the end of a bulk run.
type Manifest struct {
	RunID   string          `json:"run_id"`
	Started time.Time       `json:"started"`
	Total   int             `json:"total"`
	Failed  int             `json:"failed"`
	Files   []ManifestEntry `json:"files"`
}

// NewManifest summarizes results under runID.
func NewManifest(runID string, started time.Time, results []Result) Manifest {
	m := Manifest{
		RunID:   runID,
		Started: started.UTC(),
		Total:   len(results),
		Failed:  Failed(results),
		Files:   make([]ManifestEntry, len(results)),
	}
	for i, r := range results {
		m.Files[i] = ManifestEntry{
			Input:      r.Input,
			Output:     r.Output,
			Success:    r.Success,
			Error:      r.Error,
			DurationMS: r.Duration.Milliseconds(),
		}
	}
	return m
}

// WriteManifest writes m as indented JSON to path.
func WriteManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("batch: encode manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("batch: write manifest: %w", err)
	}
	return nil
}
