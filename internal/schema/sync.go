package schema

import (
	"fmt"

	"github.com/google/uuid"
)

// MaxSyncBatch caps the number of ids one confirmation may carry.
const MaxSyncBatch = 1000

// SyncConfirm is the body of POST /trips/sync/confirm.
type SyncConfirm struct {
	TripIDs []uuid.UUID `json:"trip_ids"`
}

func (s SyncConfirm) Validate() error {
	var p problems
	switch {
	case len(s.TripIDs) == 0:
		p.add("trip_ids", "must contain at least one id")
	case len(s.TripIDs) > MaxSyncBatch:
		p.add("trip_ids", fmt.Sprintf("must contain at most %d ids", MaxSyncBatch))
	}
	return p.err()
}

// IDs returns the trip ids with duplicates removed, first occurrence wins.
func (s SyncConfirm) IDs() []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(s.TripIDs))
	out := make([]uuid.UUID, 0, len(s.TripIDs))
	for _, id := range s.TripIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
