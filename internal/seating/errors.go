// Package seating assigns students to examination hall seats.  Rooms are
// filled half at a time so two sections share a room without sitting next
// to each other, and the room pool rotates once a half or full mark is hit.
package seating

import "errors"

// ErrZeroCapacity is returned when a room with no seats is offered to the
// pool.  It is a precondition failure, not a skip.
var ErrZeroCapacity = errors.New("room has zero capacity")

// ErrEmptyPool is returned when a session with students has no rooms.
var ErrEmptyPool = errors.New("no rooms available for session")

// ErrInsufficientCapacity is returned by the capacity precheck when a
// session has more students than seats.
var ErrInsufficientCapacity = errors.New("insufficient seats for session")

// ErrCapacityExhausted is returned when the allocator completes a full
// rotation of the pool without finding a free seat.
var ErrCapacityExhausted = errors.New("room pool exhausted")

// ErrRoomOverflow is returned when a consume would fill a room past its
// remaining capacity.
var ErrRoomOverflow = errors.New("room overflow")

// ErrReplaceUnsupported is returned by Regenerate when the store cannot
// replace sessions atomically.
var ErrReplaceUnsupported = errors.New("attendance store cannot replace sessions")
