package seating

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/exam-hall-seating/internal/model"
)

// AttendanceStore persists a plan's attendance rows as one batch.  The
// batch must be all-or-nothing.
type AttendanceStore interface {
	SaveBatch(ctx context.Context, records []model.AttendanceRecord) error
}

// SessionStats summarises one session of a plan.
type SessionStats struct {
	Session  model.Session `json:"session"`
	Students int           `json:"students"`
	Rooms    int           `json:"rooms"`
	Seats    int           `json:"seats"`
	Start    int           `json:"start_index"`
}

// Plan is the assembled seating plan.  Assignments are ordered by session,
// then cohort discovery order, then section order, then seat order.
type Plan struct {
	ID          uuid.UUID          `json:"id"`
	GeneratedAt time.Time          `json:"generated_at"`
	Sessions    []SessionStats     `json:"sessions"`
	Assignments []model.Assignment `json:"assignments"`
}

// Records returns the plan's rows in attendance form, preserving order.
func (p *Plan) Records() []model.AttendanceRecord {
	out := make([]model.AttendanceRecord, len(p.Assignments))
	for i, a := range p.Assignments {
		out[i] = a.Record()
	}
	return out
}

// Planner drives the allocator across sessions and hands the result to
// the attendance store.
type Planner struct {
	Store AttendanceStore // nil skips persistence
	// StartIndex picks the initial rotation index for a pool of n rooms.
	// Defaults to a uniform random index.
	StartIndex func(n int) int
	Now        func() time.Time
}

// NewPlanner returns a Planner persisting through store.
func NewPlanner(store AttendanceStore) *Planner {
	return &Planner{Store: store}
}

// SessionReplacer is implemented by stores that can swap the rows of whole
// sessions for new ones in a single transaction.
type SessionReplacer interface {
	ReplaceBatch(ctx context.Context, sessions []model.Session, records []model.AttendanceRecord) error
}

// Generate builds the seating plan for every session in schedule.  Sessions
// are allocated one at a time, each against a fresh pool.  When the store
// fails the plan is still returned together with the error.
func (p *Planner) Generate(ctx context.Context, schedule []model.ScheduleRow, rooms []model.RoomRow) (*Plan, error) {
	plan, _, err := p.assemble(ctx, schedule, rooms)
	if err != nil {
		return nil, err
	}
	if p.Store == nil || len(plan.Assignments) == 0 {
		return plan, nil
	}
	if err := p.Store.SaveBatch(ctx, plan.Records()); err != nil {
		log.Printf("hallplan: persist plan %s failed: %v", plan.ID, err)
		return plan, fmt.Errorf("persist plan: %w", err)
	}
	return plan, nil
}

// Regenerate is Generate for sessions that may already hold a plan.  The
// new plan is built first; only then are the stored rows of every session
// named in schedule swapped for it, atomically.  Any failure leaves the
// previous rows in place.
func (p *Planner) Regenerate(ctx context.Context, schedule []model.ScheduleRow, rooms []model.RoomRow) (*Plan, error) {
	var replacer SessionReplacer
	if p.Store != nil {
		r, ok := p.Store.(SessionReplacer)
		if !ok {
			return nil, ErrReplaceUnsupported
		}
		replacer = r
	}
	plan, sessions, err := p.assemble(ctx, schedule, rooms)
	if err != nil {
		return nil, err
	}
	if replacer == nil || len(sessions) == 0 {
		return plan, nil
	}
	if err := replacer.ReplaceBatch(ctx, sessions, plan.Records()); err != nil {
		log.Printf("hallplan: replace plan %s failed: %v", plan.ID, err)
		return plan, fmt.Errorf("persist plan: %w", err)
	}
	return plan, nil
}

// assemble allocates every session without touching the store.  It also
// returns every session named in schedule, including ones with no students.
func (p *Planner) assemble(ctx context.Context, schedule []model.ScheduleRow, rooms []model.RoomRow) (*Plan, []model.Session, error) {
	start := p.StartIndex
	if start == nil {
		start = func(n int) int { return rand.Intn(n) }
	}
	now := p.Now
	if now == nil {
		now = time.Now
	}

	plan := &Plan{ID: uuid.New(), GeneratedAt: now().UTC()}
	groups := GroupSessions(schedule)
	sessions := make([]model.Session, 0, len(groups))
	for _, group := range groups {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		sessions = append(sessions, group.Session)
		students := group.StudentCount()
		if students == 0 {
			continue
		}
		sessionRooms := RoomsForSession(rooms, group.Session)
		if len(sessionRooms) == 0 {
			return nil, nil, fmt.Errorf("session %s slot %d: %w", group.Session.DateString(), group.Session.SlotNo, ErrEmptyPool)
		}
		pool, err := NewRoomPool(sessionRooms, start(len(sessionRooms)))
		if err != nil {
			return nil, nil, fmt.Errorf("session %s slot %d: %w", group.Session.DateString(), group.Session.SlotNo, err)
		}
		first := pool.Index()
		if seats := pool.Capacity(); seats < students {
			return nil, nil, fmt.Errorf("session %s slot %d: %d students, %d seats: %w",
				group.Session.DateString(), group.Session.SlotNo, students, seats, ErrInsufficientCapacity)
		}

		assigned, err := Allocate(group.Session, group.Cohorts, pool)
		if err != nil {
			return nil, nil, err
		}
		plan.Assignments = append(plan.Assignments, assigned...)
		plan.Sessions = append(plan.Sessions, SessionStats{
			Session:  group.Session,
			Students: students,
			Rooms:    pool.Len(),
			Seats:    pool.Capacity(),
			Start:    first,
		})
	}
	return plan, sessions, nil
}
