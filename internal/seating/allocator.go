package seating

import (
	"fmt"

	"github.com/iliyamo/exam-hall-seating/internal/model"
)

// gap is the number of seats left before the room's next boundary: the
// half mark while the first half is filling, full capacity afterwards.
func gap(r model.Room) int {
	if half := r.Half(); r.Seat < half {
		return half - r.Seat
	}
	return r.Capacity - r.Seat
}

// Allocate seats every student of the session's cohorts, in order, using
// the pool.  Each section fills the current room up to its next boundary;
// reaching the half or full mark rotates the pool, so the next section to
// touch a room takes its other half.  A section larger than the gap spills
// into the following rooms.
func Allocate(session model.Session, cohorts []model.Cohort, pool *RoomPool) ([]model.Assignment, error) {
	var out []model.Assignment
	for _, cohort := range cohorts {
		for _, section := range cohort.Sections {
			students := section.Students
			skipped := 0
			for len(students) > 0 {
				room := pool.Current()
				if room.Capacity <= 0 {
					return out, fmt.Errorf("room %d: %w", room.RoomNo, ErrZeroCapacity)
				}
				free := gap(room)
				if free == 0 {
					skipped++
					if skipped >= pool.Len() {
						return out, fmt.Errorf("session %s slot %d: %w", session.DateString(), session.SlotNo, ErrCapacityExhausted)
					}
					pool.Advance()
					continue
				}
				skipped = 0

				occupy := min(len(students), free)
				for i := 0; i < occupy; i++ {
					out = append(out, model.Assignment{
						Session:    session,
						Cohort:     cohort.Key,
						Section:    section.Name,
						ClassID:    room.RoomID,
						RoomNo:     room.RoomNo,
						CourseCode: section.CourseCode,
						Seat:       room.Seat + i + 1,
						RegNo:      students[i].RegNo,
						StudentID:  students[i].StudentID,
						IsPresent:  true,
					})
				}
				students = students[occupy:]

				after, err := pool.Consume(occupy)
				if err != nil {
					return out, err
				}
				if after.Seat == after.Half() || after.Seat == after.Capacity {
					pool.Advance()
				}
			}
		}
	}
	return out, nil
}
