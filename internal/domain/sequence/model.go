package sequence

import "time"

// Sequence is a durable named counter. One row exists per key, e.g.
// ATTESTATION_2026. Value only ever increases.
type Sequence struct {
	Key       string    `db:"key"`
	Value     int64     `db:"value"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
