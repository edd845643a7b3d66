package scan

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/diazvaldiviav/Xentauri-Robots/pkg/detect"
)

// GraspPlan is the persisted pickup order produced from a scan, consumed
// by the manipulation routines.
type GraspPlan struct {
	ScanID    string          `json:"scan_id"`
	CreatedAt time.Time       `json:"created_at"`
	Objects   []detect.Object `json:"objects"`
}

// GraspPlan builds the pickup plan from a result. Objects keep the
// order the scan ranked them in.
func (r *Result) GraspPlan() GraspPlan {
	return GraspPlan{
		ScanID:    r.ID,
		CreatedAt: time.Now(),
		Objects:   r.Objects,
	}
}

// SaveGraspPlan writes a plan to disk as indented JSON.
func SaveGraspPlan(path string, plan GraspPlan) error {
	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return fmt.Errorf("scan: marshal grasp plan: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("scan: write grasp plan: %w", err)
	}
	return nil
}

// LoadGraspPlan reads a plan back from disk.
func LoadGraspPlan(path string) (GraspPlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return GraspPlan{}, fmt.Errorf("scan: read grasp plan: %w", err)
	}

	var plan GraspPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return GraspPlan{}, fmt.Errorf("scan: parse grasp plan: %w", err)
	}
	return plan, nil
}
