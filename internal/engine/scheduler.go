package engine

import (
	"github.com/limaJavier/sectioning/internal/catalog"
	"go.uber.org/zap"
)

// Policy carries the solve tunables. Only the relative order of the weights
// matters for correctness; the numeric values are policy.
type Policy struct {
	// Weights maps each priority tier to its objective weight
	Weights map[catalog.Priority]int
	// RequestCap bounds the number of committed placements; 0 means unbounded.
	// Requests past the cap are still classified, never committed.
	RequestCap int
}

// DefaultPolicy returns the weights of the original deployment
func DefaultPolicy() Policy {
	return Policy{
		Weights: map[catalog.Priority]int{
			catalog.PriorityCore:        100,
			catalog.PriorityRequired:    90,
			catalog.PriorityRequested:   50,
			catalog.PriorityRecommended: 25,
		},
	}
}

type Scheduler interface {
	// Build runs one solve over the catalog and returns the terminal
	// schedule: every request either assigned or recorded with a reason
	// code. It fails only on structural errors, never on per-request
	// infeasibility.
	Build(cat *catalog.Catalog) (*Schedule, error)

	// Verify audits a finished schedule against the catalog's invariants
	Verify(schedule *Schedule, cat *catalog.Catalog) bool
}

func NewScheduler(policy Policy, logger *zap.Logger) Scheduler {
	return newGreedyScheduler(policy, logger)
}
