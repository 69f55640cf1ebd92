package seating

import (
	"fmt"
	"time"

	"github.com/iliyamo/exam-hall-seating/internal/model"
)

var day = time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

func students(prefix string, n int, firstID uint32) []model.Student {
	out := make([]model.Student, n)
	for i := range out {
		out[i] = model.Student{RegNo: fmt.Sprintf("%s%03d", prefix, i+1), StudentID: firstID + uint32(i)}
	}
	return out
}

func row(session model.Session, degree string, stream *string, year uint16, course, section string, sts []model.Student) model.ScheduleRow {
	return model.ScheduleRow{
		Year:       year,
		Degree:     degree,
		Stream:     stream,
		CourseCode: course,
		Session:    session,
		Section:    section,
		Students:   sts,
	}
}

func rooms(caps ...int) []model.Room {
	out := make([]model.Room, len(caps))
	for i, c := range caps {
		out[i] = model.Room{RoomID: uint32(100 + i), RoomNo: uint16(i + 1), Capacity: c}
	}
	return out
}

func strPtr(s string) *string { return &s }
