package syncer

import "time"

// Action is a sync decision for one matched pair. Decisions are transient:
// computed per run, reported, never persisted by the engine itself.
type Action string

const (
	ActionMarkWatchedLocal  Action = "mark-watched-local"
	ActionMarkWatchedRemote Action = "mark-watched-remote"
	ActionUpdateAddedAt     Action = "update-added-timestamp"
)

// Decision records one intended (and possibly applied) mutation.
type Decision struct {
	Action Action
	// Title names the movie, or the episode's show for episode decisions.
	Title   string
	Season  int
	Episode int
	// ItemID is the identifier the mutation targets, in its owning catalog.
	ItemID string
	// AddedAt carries the new timestamp for ActionUpdateAddedAt.
	AddedAt time.Time
	// Applied is false under dry-run or when the write call failed.
	Applied bool
}

// Report summarizes one sync pass.
type Report struct {
	Direction Direction
	Library   string
	DryRun    bool
	// Checked counts local items considered.
	Checked int
	// Unmatched lists local titles with no counterpart in the remote catalog.
	Unmatched []string
	// Decisions lists every non-trivial decision in processing order.
	Decisions []Decision
	// Skipped counts items abandoned because of per-item failures.
	Skipped int
}

// Applied counts decisions whose write call actually ran.
func (r *Report) Applied() int {
	applied := 0
	for _, decision := range r.Decisions {
		if decision.Applied {
			applied++
		}
	}
	return applied
}
