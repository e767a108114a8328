package domain

import "time"

// Listing is a cached flattening of a flake's output graph. It is keyed by
// the fingerprint of the lock file so the expensive evaluation can be
// skipped while the flake's inputs are unchanged.
type Listing struct {
	LockHash   string    `json:"lock_hash,omitzero"`
	Targets    []Target  `json:"targets,omitzero"`
	ResolvedAt time.Time `json:"resolved_at,omitzero"`
}
