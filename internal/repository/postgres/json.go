package postgres

import (
	"database/sql/driver"
	"encoding/json"

	ierr "github.com/assurly/assurly/internal/errors"
)

// jsonb marshals an arbitrary value into a jsonb column and back.
// Nested document structures (pricing snapshots, claim history,
// incident blocks) are stored as json rather than normalized tables;
// they are read and written as a whole with their owning record.
type jsonb[T any] struct {
	V T
}

func (j jsonb[T]) Value() (driver.Value, error) {
	return json.Marshal(j.V)
}

func (j *jsonb[T]) Scan(src interface{}) error {
	if src == nil {
		var zero T
		j.V = zero
		return nil
	}

	var data []byte
	switch s := src.(type) {
	case []byte:
		data = s
	case string:
		data = []byte(s)
	default:
		return ierr.NewError("unsupported jsonb source type").Mark(ierr.ErrDatabase)
	}

	return json.Unmarshal(data, &j.V)
}
