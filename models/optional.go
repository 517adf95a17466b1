package models

// Optional holds a value that may be absent, e.g. the remaining seconds of a
// rest countdown that is not running.
type Optional[T any] struct {
	val     T
	present bool
}

func Of[T any](val T) Optional[T] {
	return Optional[T]{
		val:     val,
		present: true,
	}
}

func Empty[T any]() Optional[T] {
	return Optional[T]{}
}

func (o Optional[T]) IsEmpty() bool {
	return !o.present
}

func (o Optional[T]) Get() T {
	return o.val
}

// GetOr returns def when o is empty.
func (o Optional[T]) GetOr(def T) T {
	if !o.present {
		return def
	}
	return o.val
}
