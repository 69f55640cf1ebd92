package seating

import (
	"fmt"

	"github.com/iliyamo/exam-hall-seating/internal/model"
)

// RoomPool is a rotating cursor over the rooms of one session.  It owns a
// private copy of the rooms, so fill state never leaks across sessions.
// A RoomPool is not safe for concurrent use.
type RoomPool struct {
	rooms []model.Room
	idx   int
}

// NewRoomPool builds a pool positioned at start (taken modulo the room
// count).  Every room must have a positive capacity.
func NewRoomPool(rooms []model.Room, start int) (*RoomPool, error) {
	if len(rooms) == 0 {
		return nil, ErrEmptyPool
	}
	own := make([]model.Room, len(rooms))
	for i, r := range rooms {
		if r.Capacity <= 0 {
			return nil, fmt.Errorf("room %d: %w", r.RoomNo, ErrZeroCapacity)
		}
		r.Seat = 0
		r.Remaining = r.Capacity
		own[i] = r
	}
	start %= len(own)
	if start < 0 {
		start += len(own)
	}
	return &RoomPool{rooms: own, idx: start}, nil
}

// RoomsForSession selects the rooms eligible for s.  Rows scoped to a
// session match only that session; unscoped rows match every session.  A
// room is taken once per session: a row scoped to s replaces an unscoped
// row for the same RoomID, otherwise the first row wins.
func RoomsForSession(rows []model.RoomRow, s model.Session) []model.Room {
	var out []model.Room
	at := make(map[uint32]int)
	scoped := make(map[uint32]bool)
	for _, r := range rows {
		if r.Session != nil && model.NewSession(r.Session.Date, r.Session.SlotNo) != s {
			continue
		}
		room := model.Room{
			RoomID:    r.RoomID,
			RoomNo:    r.RoomNo,
			Capacity:  r.Capacity,
			Remaining: r.Capacity,
		}
		if i, seen := at[r.RoomID]; seen {
			if r.Session != nil && !scoped[r.RoomID] {
				out[i] = room
				scoped[r.RoomID] = true
			}
			continue
		}
		at[r.RoomID] = len(out)
		scoped[r.RoomID] = r.Session != nil
		out = append(out, room)
	}
	return out
}

// Len is the number of rooms in the pool.
func (p *RoomPool) Len() int { return len(p.rooms) }

// Index is the current rotation index.
func (p *RoomPool) Index() int { return p.idx }

// Current returns a snapshot of the room under the cursor.
func (p *RoomPool) Current() model.Room { return p.rooms[p.idx] }

// Advance moves the cursor to the next room, wrapping around.
func (p *RoomPool) Advance() { p.idx = (p.idx + 1) % len(p.rooms) }

// Consume records n seats filled in the current room and returns its new
// state.  It is the only way room state changes.
func (p *RoomPool) Consume(n int) (model.Room, error) {
	r := &p.rooms[p.idx]
	if n < 0 || n > r.Remaining {
		return *r, fmt.Errorf("room %d: fill %d with %d free: %w", r.RoomNo, n, r.Remaining, ErrRoomOverflow)
	}
	r.Seat += n
	r.Remaining -= n
	return *r, nil
}

// Rooms returns a snapshot of every room's state.
func (p *RoomPool) Rooms() []model.Room {
	out := make([]model.Room, len(p.rooms))
	copy(out, p.rooms)
	return out
}

// Capacity is the total number of seats in the pool.
func (p *RoomPool) Capacity() int {
	n := 0
	for _, r := range p.rooms {
		n += r.Capacity
	}
	return n
}
