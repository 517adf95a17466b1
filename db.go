package lifted

import "time"

// ExistingRecord carries the bookkeeping columns of a persisted row.
type ExistingRecord[T ~string] struct {
	ID        T
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewExistingRecord[T ~string](id string, at time.Time) ExistingRecord[T] {
	at = at.Truncate(time.Second)
	return ExistingRecord[T]{
		ID:        T(id),
		CreatedAt: at,
		UpdatedAt: at,
	}
}

// Touch returns a copy with UpdatedAt moved to at.
func (r ExistingRecord[T]) Touch(at time.Time) ExistingRecord[T] {
	r.UpdatedAt = at.Truncate(time.Second)
	return r
}
