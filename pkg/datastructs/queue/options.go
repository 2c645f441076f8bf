package queue

import "go.uber.org/zap"

// Option configures a Ring at construction time.
type Option[T any] func(*Ring[T])

// WithEvictFunc registers fn to be called with the value that Put
// overwrites when the ring is full.
func WithEvictFunc[T any](fn func(T)) Option[T] {
	return func(r *Ring[T]) {
		r.onEvict = fn
	}
}

// WithLogger sets the logger used for eviction debug output.
// A nil logger is ignored.
func WithLogger[T any](l *zap.Logger) Option[T] {
	return func(r *Ring[T]) {
		if l != nil {
			r.log = l
		}
	}
}
