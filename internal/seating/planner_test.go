package seating

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/exam-hall-seating/internal/model"
)

type fakeStore struct {
	saved [][]model.AttendanceRecord
	err   error
}

func (f *fakeStore) SaveBatch(_ context.Context, records []model.AttendanceRecord) error {
	f.saved = append(f.saved, records)
	return f.err
}

func fixedStart(i int) func(int) int { return func(int) int { return i } }

func sampleSchedule() ([]model.ScheduleRow, []model.RoomRow) {
	s1 := model.NewSession(day, 1)
	s2 := model.NewSession(day, 2)
	schedule := []model.ScheduleRow{
		row(s2, "B.Sc", nil, 1, "PH101", "A", students("PH", 4, 100)),
		row(s1, "B.Tech", nil, 2, "CC102", "A", students("CB", 2, 10)),
		row(s1, "B.Tech", nil, 2, "CC101", "A", students("CA", 3, 1)),
		row(s1, "B.A", nil, 1, "AA100", "B", students("AA", 4, 50)),
	}
	roomRows := []model.RoomRow{
		{RoomID: 11, RoomNo: 101, Capacity: 10},
		{RoomID: 12, RoomNo: 102, Capacity: 6},
		{RoomID: 13, RoomNo: 103, Capacity: 4, Session: &s2},
	}
	return schedule, roomRows
}

func TestPlanner_Generate(t *testing.T) {
	schedule, roomRows := sampleSchedule()
	store := &fakeStore{}
	p := &Planner{Store: store, StartIndex: fixedStart(0), Now: func() time.Time { return day }}

	plan, err := p.Generate(context.Background(), schedule, roomRows)
	require.NoError(t, err)
	require.Len(t, plan.Assignments, 13)
	require.Len(t, plan.Sessions, 2)
	assert.Equal(t, 9, plan.Sessions[0].Students)
	assert.Equal(t, 2, plan.Sessions[0].Rooms)
	assert.Equal(t, 3, plan.Sessions[1].Rooms)

	// AA100 sorts first, so its cohort is seated before B.Tech.
	first := plan.Assignments[0]
	assert.Equal(t, "AA100", first.CourseCode)
	assert.Equal(t, uint16(101), first.RoomNo)
	assert.Equal(t, 1, first.Seat)

	// Slot 1 rows come before slot 2 rows.
	for i, a := range plan.Assignments {
		if i < 9 {
			assert.Equal(t, uint8(1), a.Session.SlotNo)
		} else {
			assert.Equal(t, uint8(2), a.Session.SlotNo)
		}
		assert.True(t, a.IsPresent)
	}

	require.Len(t, store.saved, 1)
	assert.Equal(t, plan.Records(), store.saved[0])
}

func TestPlanner_Deterministic(t *testing.T) {
	schedule, roomRows := sampleSchedule()
	p := &Planner{StartIndex: fixedStart(1)}

	a, err := p.Generate(context.Background(), schedule, roomRows)
	require.NoError(t, err)
	b, err := p.Generate(context.Background(), schedule, roomRows)
	require.NoError(t, err)
	assert.Equal(t, a.Assignments, b.Assignments)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestPlanner_NoLeakBetweenSessions(t *testing.T) {
	s1 := model.NewSession(day, 1)
	s2 := model.NewSession(day, 2)
	schedule := []model.ScheduleRow{
		row(s1, "B.Tech", nil, 2, "CC101", "A", students("A", 4, 1)),
		row(s2, "B.Tech", nil, 2, "CC201", "A", students("B", 4, 10)),
	}
	p := &Planner{StartIndex: fixedStart(0)}
	plan, err := p.Generate(context.Background(), schedule, []model.RoomRow{{RoomID: 1, RoomNo: 1, Capacity: 4}})
	require.NoError(t, err)
	for i, a := range plan.Assignments {
		assert.Equal(t, i%4+1, a.Seat)
	}
}

func TestPlanner_Failures(t *testing.T) {
	s1 := model.NewSession(day, 1)
	big := []model.ScheduleRow{row(s1, "B.Tech", nil, 2, "CC101", "A", students("A", 12, 1))}

	tests := []struct {
		name    string
		rooms   []model.RoomRow
		wantErr error
	}{
		{name: "insufficient capacity", rooms: []model.RoomRow{{RoomID: 1, RoomNo: 1, Capacity: 10}}, wantErr: ErrInsufficientCapacity},
		{name: "zero capacity room", rooms: []model.RoomRow{{RoomID: 1, RoomNo: 1, Capacity: 20}, {RoomID: 2, RoomNo: 2}}, wantErr: ErrZeroCapacity},
		{name: "no rooms for session", rooms: nil, wantErr: ErrEmptyPool},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			p := &Planner{Store: store, StartIndex: fixedStart(0)}
			plan, err := p.Generate(context.Background(), big, tt.rooms)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, plan)
			assert.Empty(t, store.saved)
		})
	}
}

func TestPlanner_StoreFailureKeepsPlan(t *testing.T) {
	schedule, roomRows := sampleSchedule()
	storeErr := errors.New("duplicate entry")
	p := &Planner{Store: &fakeStore{err: storeErr}, StartIndex: fixedStart(0)}

	plan, err := p.Generate(context.Background(), schedule, roomRows)
	assert.ErrorIs(t, err, storeErr)
	require.NotNil(t, plan)
	assert.Len(t, plan.Assignments, 13)
}

func TestPlanner_Cancelled(t *testing.T) {
	schedule, roomRows := sampleSchedule()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewPlanner(nil).Generate(ctx, schedule, roomRows)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPlanner_RepeatedRoomSeatsOnce(t *testing.T) {
	s1 := model.NewSession(day, 1)
	rooms := []model.RoomRow{
		{RoomID: 11, RoomNo: 101, Capacity: 4},
		{RoomID: 11, RoomNo: 101, Capacity: 4, Session: &s1},
	}

	p := &Planner{StartIndex: fixedStart(0)}
	plan, err := p.Generate(context.Background(),
		[]model.ScheduleRow{row(s1, "B.Tech", nil, 2, "CC101", "A", students("A", 4, 1))}, rooms)
	require.NoError(t, err)
	require.Len(t, plan.Sessions, 1)
	assert.Equal(t, 1, plan.Sessions[0].Rooms)
	assert.Equal(t, 4, plan.Sessions[0].Seats)

	seen := map[int]bool{}
	for _, a := range plan.Assignments {
		assert.False(t, seen[a.Seat], "seat %d assigned twice", a.Seat)
		seen[a.Seat] = true
	}
	assert.Len(t, seen, 4)

	_, err = p.Generate(context.Background(),
		[]model.ScheduleRow{row(s1, "B.Tech", nil, 2, "CC101", "A", students("A", 5, 1))}, rooms)
	assert.ErrorIs(t, err, ErrInsufficientCapacity)
}

// replacingStore keeps rows per session and swaps them like a transaction.
type replacingStore struct {
	rows map[model.Session][]model.AttendanceRecord
	err  error
}

func (r *replacingStore) SaveBatch(_ context.Context, records []model.AttendanceRecord) error {
	return errors.New("SaveBatch must not be used when regenerating")
}

func (r *replacingStore) ReplaceBatch(_ context.Context, sessions []model.Session, records []model.AttendanceRecord) error {
	if r.err != nil {
		return r.err
	}
	for _, s := range sessions {
		delete(r.rows, s)
	}
	for _, rec := range records {
		r.rows[rec.Session] = append(r.rows[rec.Session], rec)
	}
	return nil
}

func TestPlanner_Regenerate(t *testing.T) {
	schedule, roomRows := sampleSchedule()
	s1 := model.NewSession(day, 1)
	s3 := model.NewSession(day, 3)
	old := []model.AttendanceRecord{{StudentID: 999, Session: s1, SeatNo: 1}}
	other := []model.AttendanceRecord{{StudentID: 998, Session: s3, SeatNo: 1}}

	t.Run("swaps named sessions", func(t *testing.T) {
		store := &replacingStore{rows: map[model.Session][]model.AttendanceRecord{s1: old, s3: other}}
		p := &Planner{Store: store, StartIndex: fixedStart(0)}
		plan, err := p.Regenerate(context.Background(), schedule, roomRows)
		require.NoError(t, err)
		assert.Len(t, plan.Assignments, 13)
		assert.Len(t, store.rows[s1], 9)
		for _, rec := range store.rows[s1] {
			assert.NotEqual(t, uint32(999), rec.StudentID)
		}
		assert.Equal(t, other, store.rows[s3])
	})

	t.Run("planning failure keeps old rows", func(t *testing.T) {
		store := &replacingStore{rows: map[model.Session][]model.AttendanceRecord{s1: old}}
		p := &Planner{Store: store, StartIndex: fixedStart(0)}
		small := []model.RoomRow{{RoomID: 11, RoomNo: 101, Capacity: 2}}
		plan, err := p.Regenerate(context.Background(), schedule, small)
		assert.ErrorIs(t, err, ErrInsufficientCapacity)
		assert.Nil(t, plan)
		assert.Equal(t, old, store.rows[s1])
	})

	t.Run("store failure keeps plan", func(t *testing.T) {
		storeErr := errors.New("deadlock")
		store := &replacingStore{rows: map[model.Session][]model.AttendanceRecord{s1: old}, err: storeErr}
		p := &Planner{Store: store, StartIndex: fixedStart(0)}
		plan, err := p.Regenerate(context.Background(), schedule, roomRows)
		assert.ErrorIs(t, err, storeErr)
		require.NotNil(t, plan)
		assert.Equal(t, old, store.rows[s1])
	})

	t.Run("store without replace", func(t *testing.T) {
		p := &Planner{Store: &fakeStore{}, StartIndex: fixedStart(0)}
		_, err := p.Regenerate(context.Background(), schedule, roomRows)
		assert.ErrorIs(t, err, ErrReplaceUnsupported)
	})
}
