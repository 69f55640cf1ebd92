package repository

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateKey(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "plain", err: errors.New("boom"), want: false},
		{name: "duplicate", err: &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}, want: true},
		{name: "wrapped duplicate", err: fmt.Errorf("insert: %w", &mysql.MySQLError{Number: 1062}), want: true},
		{name: "foreign key", err: &mysql.MySQLError{Number: 1452}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isDuplicateKey(tt.err))
		})
	}
}

func TestInsertAttendanceQuery(t *testing.T) {
	q := insertAttendanceQuery(3)
	assert.True(t, strings.HasPrefix(q, "INSERT INTO attendance (student_id, date, slot_no, course_code, class_id, seat_no, is_present) VALUES "))
	assert.Equal(t, 3, strings.Count(q, "(?, ?, ?, ?, ?, ?, ?)"))
	assert.Equal(t, 21, strings.Count(q, "?"))
	assert.False(t, strings.HasSuffix(q, ","))
}

func TestClassifyAttendanceError(t *testing.T) {
	plain := errors.New("connection reset")
	tests := []struct {
		name    string
		err     error
		wantIs  error
		wantRaw bool
	}{
		{
			name:   "student twice in session",
			err:    &mysql.MySQLError{Number: 1062, Message: "Duplicate entry '2025-01-10-1-7' for key 'attendance.PRIMARY'"},
			wantIs: ErrDuplicateAssignment,
		},
		{
			name:   "seat taken, mysql 8 key name",
			err:    &mysql.MySQLError{Number: 1062, Message: "Duplicate entry '2025-01-10-1-11-3' for key 'attendance.uq_attendance_seat'"},
			wantIs: ErrConflict,
		},
		{
			name:   "seat taken, mysql 5.7 key name",
			err:    &mysql.MySQLError{Number: 1062, Message: "Duplicate entry '2025-01-10-1-11-3' for key 'uq_attendance_seat'"},
			wantIs: ErrConflict,
		},
		{
			name:   "unnamed key",
			err:    &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"},
			wantIs: ErrDuplicateAssignment,
		},
		{name: "other error", err: plain, wantRaw: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyAttendanceError(tt.err)
			if tt.wantRaw {
				assert.Same(t, tt.err, got)
				return
			}
			assert.ErrorIs(t, got, tt.wantIs)
			if tt.wantIs == ErrConflict {
				assert.NotErrorIs(t, got, ErrDuplicateAssignment)
			} else {
				assert.NotErrorIs(t, got, ErrConflict)
			}
		})
	}
}

func TestDuplicateKeyName(t *testing.T) {
	key, ok := duplicateKeyName(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'x' for key 'invigilators.uq_invigilator_room'"})
	assert.True(t, ok)
	assert.Equal(t, "uq_invigilator_room", key)

	_, ok = duplicateKeyName(&mysql.MySQLError{Number: 1452, Message: "for key 'x'"})
	assert.False(t, ok)
}
