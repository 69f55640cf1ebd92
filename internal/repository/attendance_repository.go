package repository // repository defines data access for exam attendance

import (
	"context"      // context allows query cancellation and timeouts
	"database/sql" // sql provides DB primitives
	"fmt"
	"strings"

	"github.com/iliyamo/exam-hall-seating/internal/model"
)

// attendanceChunk bounds the rows per INSERT statement so a large plan
// stays well under MySQL's placeholder limit.
const attendanceChunk = 500

// AttendanceRepo stores per-session seat assignments and presence marks.
// Rows are keyed by (date, slot_no, student_id).
type AttendanceRepo struct {
	db *sql.DB
}

// NewAttendanceRepo constructs an AttendanceRepo with the given DB handle.
func NewAttendanceRepo(db *sql.DB) *AttendanceRepo {
	return &AttendanceRepo{db: db}
}

// insertAttendanceQuery builds a multi-row INSERT for n records.
func insertAttendanceQuery(n int) string {
	var b strings.Builder
	b.WriteString(`INSERT INTO attendance (student_id, date, slot_no, course_code, class_id, seat_no, is_present) VALUES `)
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString("(?, ?, ?, ?, ?, ?, ?)")
	}
	return b.String()
}

// SaveBatch inserts all records in a single transaction. Either every row
// is stored or none is. A student seated twice in a session is reported as
// ErrDuplicateAssignment, two students on one seat as ErrConflict.
func (r *AttendanceRepo) SaveBatch(ctx context.Context, records []model.AttendanceRecord) error {
	if len(records) == 0 {
		return nil
	}
	return r.inTx(ctx, func(tx *sql.Tx) error {
		return insertAttendance(ctx, tx, records)
	})
}

// ReplaceBatch deletes every row of sessions and inserts records in the
// same transaction, so a failure leaves the previous plan untouched.
func (r *AttendanceRepo) ReplaceBatch(ctx context.Context, sessions []model.Session, records []model.AttendanceRecord) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		const q = `DELETE FROM attendance WHERE date = ? AND slot_no = ?`
		for _, s := range sessions {
			if _, err := tx.ExecContext(ctx, q, s.Date, s.SlotNo); err != nil {
				return err
			}
		}
		return insertAttendance(ctx, tx, records)
	})
}

func (r *AttendanceRepo) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

func insertAttendance(ctx context.Context, tx *sql.Tx, records []model.AttendanceRecord) error {
	for start := 0; start < len(records); start += attendanceChunk {
		end := min(start+attendanceChunk, len(records))
		chunk := records[start:end]
		args := make([]interface{}, 0, len(chunk)*7)
		for _, a := range chunk {
			args = append(args, a.StudentID, a.Session.Date, a.Session.SlotNo, a.CourseCode, a.ClassID, a.SeatNo, a.IsPresent)
		}
		if _, err := tx.ExecContext(ctx, insertAttendanceQuery(len(chunk)), args...); err != nil {
			return classifyAttendanceError(err)
		}
	}
	return nil
}

// classifyAttendanceError maps unique key violations on the attendance
// table to the repository sentinels.
func classifyAttendanceError(err error) error {
	key, ok := duplicateKeyName(err)
	switch {
	case !ok:
		return err
	case key == attendanceSeatKey:
		return fmt.Errorf("%w: seat already taken: %v", ErrConflict, err)
	default:
		return fmt.Errorf("%w: %v", ErrDuplicateAssignment, err)
	}
}

func scanAttendance(rows *sql.Rows) ([]model.AttendanceRecord, error) {
	defer rows.Close()
	var out []model.AttendanceRecord
	for rows.Next() {
		var a model.AttendanceRecord
		if err := rows.Scan(&a.StudentID, &a.Session.Date, &a.Session.SlotNo, &a.CourseCode, &a.ClassID, &a.SeatNo, &a.IsPresent); err != nil {
			return nil, err
		}
		a.Session = model.NewSession(a.Session.Date, a.Session.SlotNo)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListRoster returns the students seated in one room for a session,
// ordered by seat number.
func (r *AttendanceRepo) ListRoster(ctx context.Context, s model.Session, classID uint32) ([]model.AttendanceRecord, error) {
	const q = `SELECT student_id, date, slot_no, course_code, class_id, seat_no, is_present
	           FROM attendance
	           WHERE date = ? AND slot_no = ? AND class_id = ?
	           ORDER BY seat_no`
	rows, err := r.db.QueryContext(ctx, q, s.Date, s.SlotNo, classID)
	if err != nil {
		return nil, err
	}
	return scanAttendance(rows)
}

// ListBySession returns every row for a session ordered by room and seat.
func (r *AttendanceRepo) ListBySession(ctx context.Context, s model.Session) ([]model.AttendanceRecord, error) {
	const q = `SELECT student_id, date, slot_no, course_code, class_id, seat_no, is_present
	           FROM attendance
	           WHERE date = ? AND slot_no = ?
	           ORDER BY class_id, seat_no`
	rows, err := r.db.QueryContext(ctx, q, s.Date, s.SlotNo)
	if err != nil {
		return nil, err
	}
	return scanAttendance(rows)
}

// UpdatePresence marks presentees present and absentees absent for a
// session in one transaction and returns the number of rows changed.
func (r *AttendanceRepo) UpdatePresence(ctx context.Context, s model.Session, presentees, absentees []uint32) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const q = `UPDATE attendance SET is_present = ?
	           WHERE date = ? AND slot_no = ? AND student_id = ?`
	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	var total int64
	mark := func(ids []uint32, present bool) error {
		for _, id := range ids {
			res, err := stmt.ExecContext(ctx, present, s.Date, s.SlotNo, id)
			if err != nil {
				return err
			}
			n, _ := res.RowsAffected()
			total += n
		}
		return nil
	}
	if err := mark(presentees, true); err != nil {
		return 0, err
	}
	if err := mark(absentees, false); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	committed = true
	return total, nil
}
