// Package results defines the analysis report produced by the engine and
// persists it as JSON files or rows in a SQLite run archive.
package results

import (
	"time"

	"github.com/google/uuid"
)

// Report is the full outcome of one analysis run over a net.
type Report struct {
	RunID     string    `json:"run_id"`
	Net       NetInfo   `json:"net"`
	StartedAt time.Time `json:"started_at"`
	Duration  string    `json:"duration,omitempty"`

	Reachability *ReachabilityReport `json:"reachability,omitempty"`
	Deadlock     *DeadlockReport     `json:"deadlock,omitempty"`
	Optimum      *OptimumReport      `json:"optimum,omitempty"`
}

// NetInfo summarizes the analyzed net.
type NetInfo struct {
	Name        string `json:"name"`
	Places      int    `json:"places"`
	Transitions int    `json:"transitions"`
	Arcs        int    `json:"arcs"`
}

// ReachabilityReport carries the state counts from both representations.
// SymbolicCount is kept as a string because the symbolic engine reports
// arbitrary-precision counts.
type ReachabilityReport struct {
	ExplicitCount int      `json:"explicit_count"`
	SymbolicCount string   `json:"symbolic_count,omitempty"`
	CountsAgree   bool     `json:"counts_agree"`
	Markings      []string `json:"markings,omitempty"`
}

// DeadlockReport records whether a reachable dead marking exists.
type DeadlockReport struct {
	Method  string `json:"method"`
	Found   bool   `json:"found"`
	Marking string `json:"marking,omitempty"`
}

// OptimumReport records the best reachable marking under a weight vector.
type OptimumReport struct {
	Method  string             `json:"method"`
	Found   bool               `json:"found"`
	Marking string             `json:"marking,omitempty"`
	Value   float64            `json:"value"`
	Weights map[string]float64 `json:"weights,omitempty"`
}

// NewReport starts a report with a fresh run identifier.
func NewReport(net NetInfo) *Report {
	return &Report{
		RunID:     uuid.NewString(),
		Net:       net,
		StartedAt: time.Now().UTC(),
	}
}
