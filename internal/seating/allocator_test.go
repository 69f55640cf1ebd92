package seating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/exam-hall-seating/internal/model"
)

type seatAt struct {
	Room uint16
	Seat int
}

func seatsOf(as []model.Assignment) []seatAt {
	out := make([]seatAt, len(as))
	for i, a := range as {
		out[i] = seatAt{Room: a.RoomNo, Seat: a.Seat}
	}
	return out
}

func cohort(sections ...model.Section) model.Cohort {
	return model.Cohort{Key: model.CohortKey{Degree: "B.Tech", Stream: model.NoStream, Year: 2}, Sections: sections}
}

func section(course string, sts []model.Student) model.Section {
	return model.Section{Name: "A", CourseCode: course, Students: sts}
}

func TestAllocate_HalfSplitSingleRoom(t *testing.T) {
	pool, err := NewRoomPool(rooms(10), 0)
	require.NoError(t, err)

	got, err := Allocate(model.NewSession(day, 1), []model.Cohort{cohort(
		section("CC101", students("A", 5, 1)),
		section("CC102", students("B", 5, 10)),
	)}, pool)
	require.NoError(t, err)
	require.Len(t, got, 10)
	for i, a := range got {
		assert.Equal(t, i+1, a.Seat)
		if i < 5 {
			assert.Equal(t, "CC101", a.CourseCode)
		} else {
			assert.Equal(t, "CC102", a.CourseCode)
		}
	}
}

func TestAllocate_RotationBoundary(t *testing.T) {
	pool, err := NewRoomPool(rooms(4, 4), 0)
	require.NoError(t, err)

	got, err := Allocate(model.NewSession(day, 1), []model.Cohort{cohort(section("CC101", students("S", 3, 1)))}, pool)
	require.NoError(t, err)
	assert.Equal(t, []seatAt{{1, 1}, {1, 2}, {2, 1}}, seatsOf(got))

	state := pool.Rooms()
	assert.Equal(t, 2, state[0].Seat)
	assert.Equal(t, 1, state[1].Seat)
	assert.Equal(t, 3, state[1].Remaining)
	assert.Equal(t, 1, pool.Index())
}

func TestAllocate_InterleavesAcrossRooms(t *testing.T) {
	pool, err := NewRoomPool(rooms(10, 10), 0)
	require.NoError(t, err)

	got, err := Allocate(model.NewSession(day, 1), []model.Cohort{
		cohort(section("CC101", students("A", 5, 1)), section("CC102", students("B", 5, 10))),
		cohort(section("CC201", students("C", 5, 20)), section("CC202", students("D", 5, 30))),
	}, pool)
	require.NoError(t, err)

	byCourse := map[string][]seatAt{}
	for _, a := range got {
		byCourse[a.CourseCode] = append(byCourse[a.CourseCode], seatAt{a.RoomNo, a.Seat})
	}
	assert.Equal(t, []seatAt{{1, 1}, {1, 2}, {1, 3}, {1, 4}, {1, 5}}, byCourse["CC101"])
	assert.Equal(t, []seatAt{{2, 1}, {2, 2}, {2, 3}, {2, 4}, {2, 5}}, byCourse["CC102"])
	assert.Equal(t, []seatAt{{1, 6}, {1, 7}, {1, 8}, {1, 9}, {1, 10}}, byCourse["CC201"])
	assert.Equal(t, []seatAt{{2, 6}, {2, 7}, {2, 8}, {2, 9}, {2, 10}}, byCourse["CC202"])
}

func TestAllocate_SectionSpillsIntoNextRoom(t *testing.T) {
	pool, err := NewRoomPool(rooms(10, 10), 0)
	require.NoError(t, err)

	got, err := Allocate(model.NewSession(day, 1), []model.Cohort{cohort(section("CC101", students("S", 7, 1)))}, pool)
	require.NoError(t, err)
	assert.Equal(t, []seatAt{{1, 1}, {1, 2}, {1, 3}, {1, 4}, {1, 5}, {2, 1}, {2, 2}}, seatsOf(got))
}

func TestAllocate_NeverCrossesHalfInOneStep(t *testing.T) {
	pool, err := NewRoomPool(rooms(10, 10), 0)
	require.NoError(t, err)

	// 3 then 4: the second section stops at the half mark instead of
	// running on to seat 7 of the first room.
	got, err := Allocate(model.NewSession(day, 1), []model.Cohort{cohort(
		section("CC101", students("A", 3, 1)),
		section("CC102", students("B", 4, 10)),
	)}, pool)
	require.NoError(t, err)
	assert.Equal(t, []seatAt{{1, 1}, {1, 2}, {1, 3}, {1, 4}, {1, 5}, {2, 1}, {2, 2}}, seatsOf(got))
}

func TestAllocate_OddCapacity(t *testing.T) {
	pool, err := NewRoomPool(rooms(5), 0)
	require.NoError(t, err)

	got, err := Allocate(model.NewSession(day, 1), []model.Cohort{cohort(
		section("CC101", students("A", 3, 1)),
		section("CC102", students("B", 2, 10)),
	)}, pool)
	require.NoError(t, err)
	assert.Equal(t, []seatAt{{1, 1}, {1, 2}, {1, 3}, {1, 4}, {1, 5}}, seatsOf(got))
	assert.Equal(t, 0, pool.Current().Remaining)
}

func TestAllocate_CapacityOne(t *testing.T) {
	pool, err := NewRoomPool(rooms(1, 1), 0)
	require.NoError(t, err)

	got, err := Allocate(model.NewSession(day, 1), []model.Cohort{cohort(section("CC101", students("S", 2, 1)))}, pool)
	require.NoError(t, err)
	assert.Equal(t, []seatAt{{1, 1}, {2, 1}}, seatsOf(got))
}

func TestAllocate_Exhausted(t *testing.T) {
	pool, err := NewRoomPool(rooms(2), 0)
	require.NoError(t, err)

	got, err := Allocate(model.NewSession(day, 1), []model.Cohort{cohort(section("CC101", students("S", 3, 1)))}, pool)
	assert.ErrorIs(t, err, ErrCapacityExhausted)
	assert.Len(t, got, 2)
}

func TestAllocate_EndToEndSingleRoomWrap(t *testing.T) {
	pool, err := NewRoomPool([]model.Room{{RoomID: 7, RoomNo: 1, Capacity: 10}}, 0)
	require.NoError(t, err)
	session := model.NewSession(day, 1)

	cc101 := []model.Student{{RegNo: "S1", StudentID: 1}, {RegNo: "S2", StudentID: 2}, {RegNo: "S3", StudentID: 3}}
	cc102 := []model.Student{{RegNo: "S4", StudentID: 4}, {RegNo: "S5", StudentID: 5}}
	got, err := Allocate(session, []model.Cohort{cohort(section("CC101", cc101), section("CC102", cc102))}, pool)
	require.NoError(t, err)
	require.Len(t, got, 5)

	for i, a := range got {
		assert.Equal(t, i+1, a.Seat)
		assert.Equal(t, uint32(7), a.ClassID)
		assert.Equal(t, session, a.Session)
		assert.True(t, a.IsPresent)
	}
	assert.Equal(t, "CC101", got[2].CourseCode)
	assert.Equal(t, "CC102", got[3].CourseCode)

	// Half reached: the cursor wraps onto the same room, which keeps
	// filling its second half.
	assert.Equal(t, 0, pool.Index())
	assert.Equal(t, 5, pool.Current().Seat)
	more, err := Allocate(session, []model.Cohort{cohort(section("CC103", students("T", 5, 50)))}, pool)
	require.NoError(t, err)
	assert.Equal(t, []seatAt{{1, 6}, {1, 7}, {1, 8}, {1, 9}, {1, 10}}, seatsOf(more))
}

func TestAllocate_CoverageAndContiguity(t *testing.T) {
	caps := []int{7, 12, 9, 30, 5}
	pool, err := NewRoomPool(rooms(caps...), 3)
	require.NoError(t, err)

	var cohorts []model.Cohort
	total := 0
	id := uint32(1)
	for c, sizes := range [][]int{{11, 4}, {9}, {6, 6, 3}, {13}} {
		var secs []model.Section
		for s, n := range sizes {
			secs = append(secs, section(string(rune('A'+c))+string(rune('0'+s)), students("R", n, id)))
			id += uint32(n)
			total += n
		}
		cohorts = append(cohorts, model.Cohort{Key: model.CohortKey{Degree: "B.Sc", Stream: model.NoStream, Year: uint16(c + 1)}, Sections: secs})
	}

	got, err := Allocate(model.NewSession(day, 2), cohorts, pool)
	require.NoError(t, err)
	require.Len(t, got, total)

	seen := map[uint32]bool{}
	perRoom := map[uint16][]int{}
	for _, a := range got {
		assert.False(t, seen[a.StudentID], "student %d seated twice", a.StudentID)
		seen[a.StudentID] = true
		perRoom[a.RoomNo] = append(perRoom[a.RoomNo], a.Seat)
	}
	assert.Len(t, seen, total)

	for i, c := range caps {
		seats := perRoom[uint16(i+1)]
		assert.LessOrEqual(t, len(seats), c)
		used := map[int]bool{}
		for _, s := range seats {
			assert.False(t, used[s], "room %d seat %d reused", i+1, s)
			used[s] = true
		}
		for s := 1; s <= len(seats); s++ {
			assert.True(t, used[s], "room %d seat %d missing", i+1, s)
		}
	}
}
