package queue

import "github.com/pkg/errors"

var (
	// ErrInvalidCapacity is returned by New when capacity is not positive.
	ErrInvalidCapacity = errors.New("queue: capacity must be greater than 0")

	// ErrEmpty is returned when reading from an empty queue.
	ErrEmpty = errors.New("queue: buffer is empty")
)
