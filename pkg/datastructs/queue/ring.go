package queue

import (
	"iter"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/huynhanx03/go-ringqueue/pkg/utils"
)

var _ Queue[int] = (*Ring[int])(nil)

// Ring is a fixed-capacity FIFO queue backed by a circular buffer.
// When the ring is full, Put overwrites the oldest unread element instead of
// growing or rejecting the write.
//
// It is NOT thread-safe.
type Ring[T any] struct {
	buf  []T
	head int // next slot to write
	tail int // next slot to read
	size int // live elements

	// mask is capacity-1 when pow2 is set; cursors then wrap with a bitwise AND.
	mask int
	pow2 bool

	evictions uint64
	onEvict   func(T)
	log       *zap.Logger
}

// New creates a Ring holding at most capacity elements.
// Returns ErrInvalidCapacity if capacity <= 0.
func New[T any](capacity int, opts ...Option[T]) (*Ring[T], error) {
	if capacity <= 0 {
		return nil, errors.Wrapf(ErrInvalidCapacity, "capacity %d", capacity)
	}

	r := &Ring[T]{
		buf:  make([]T, capacity),
		pow2: utils.IsPowerOfTwo(capacity),
		log:  zap.NewNop(),
	}
	if r.pow2 {
		r.mask = capacity - 1
	}

	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// next returns the slot following i, wrapping to 0 after the last slot.
func (r *Ring[T]) next(i int) int {
	if r.pow2 {
		return (i + 1) & r.mask
	}
	i++
	if i == len(r.buf) {
		return 0
	}
	return i
}

// Put adds v to the ring. If the ring is already full, the oldest element
// is overwritten and lost; Size stays at Capacity.
func (r *Ring[T]) Put(v T) {
	full := r.size == len(r.buf)

	// When full, head and tail point at the same slot: the oldest element.
	var evicted T
	if full {
		evicted = r.buf[r.head]
	}

	r.buf[r.head] = v
	r.head = r.next(r.head)

	if !full {
		r.size++
		return
	}

	r.tail = r.next(r.tail)
	r.evictions++
	r.evict(evicted)
}

func (r *Ring[T]) evict(v T) {
	if ce := r.log.Check(zap.DebugLevel, "ring: overwrote oldest element"); ce != nil {
		ce.Write(
			zap.Int("capacity", len(r.buf)),
			zap.Uint64("evictions", r.evictions),
		)
	}
	if r.onEvict != nil {
		r.onEvict(v)
	}
}

// Get removes and returns the oldest element.
// Returns ErrEmpty if the ring holds no elements; the ring is left unchanged.
func (r *Ring[T]) Get() (T, error) {
	var zero T
	if r.size == 0 {
		return zero, ErrEmpty
	}

	v := r.buf[r.tail]

	// Avoid memory leaks if T is pointer or contains pointers.
	r.buf[r.tail] = zero

	r.tail = r.next(r.tail)
	r.size--
	return v, nil
}

// Peek returns the oldest element without removing it.
func (r *Ring[T]) Peek() (T, error) {
	if r.size == 0 {
		var zero T
		return zero, ErrEmpty
	}
	return r.buf[r.tail], nil
}

// Size returns the number of unread elements.
func (r *Ring[T]) Size() int { return r.size }

// Capacity returns the fixed capacity set by New.
func (r *Ring[T]) Capacity() int { return len(r.buf) }

// IsEmpty reports whether the ring holds no elements.
func (r *Ring[T]) IsEmpty() bool { return r.size == 0 }

// IsFull reports whether the next Put will overwrite.
func (r *Ring[T]) IsFull() bool { return r.size == len(r.buf) }

// Evictions returns how many elements have been lost to overwrites.
// The counter is not reset by Clear.
func (r *Ring[T]) Evictions() uint64 { return r.evictions }

// Clear drops all elements. Capacity is unchanged.
func (r *Ring[T]) Clear() {
	clear(r.buf)
	r.head = 0
	r.tail = 0
	r.size = 0
}

// All returns an iterator over the live elements, oldest first.
// The ring must not be modified during iteration.
func (r *Ring[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		idx := r.tail
		for i := 0; i < r.size; i++ {
			if !yield(r.buf[idx]) {
				return
			}
			idx = r.next(idx)
		}
	}
}

// Values returns a copy of the live elements, oldest first.
func (r *Ring[T]) Values() []T {
	if r.size == 0 {
		return nil
	}

	out := make([]T, 0, r.size)
	for v := range r.All() {
		out = append(out, v)
	}
	return out
}

// Enqueue implements Queue. It always succeeds.
func (r *Ring[T]) Enqueue(item T) bool {
	r.Put(item)
	return true
}

// Dequeue implements Queue.
func (r *Ring[T]) Dequeue() (T, bool) {
	v, err := r.Get()
	return v, err == nil
}
