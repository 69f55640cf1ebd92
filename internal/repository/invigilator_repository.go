package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/exam-hall-seating/internal/model"
)

// InvigilatorRepo records which faculty member supervises which room in
// a session.
type InvigilatorRepo struct {
	db *sql.DB
}

// NewInvigilatorRepo constructs an InvigilatorRepo with the given DB handle.
func NewInvigilatorRepo(db *sql.DB) *InvigilatorRepo {
	return &InvigilatorRepo{db: db}
}

// Assign inserts an invigilator duty. A faculty member can hold one room
// per slot; a second booking returns ErrConflict.
func (r *InvigilatorRepo) Assign(ctx context.Context, inv model.Invigilator) error {
	const q = `INSERT INTO invigilators (faculty_id, date, slot_no, class_id) VALUES (?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q, inv.FacultyID, inv.Session.Date, inv.Session.SlotNo, inv.ClassID); err != nil {
		if isDuplicateKey(err) {
			return ErrConflict
		}
		return err
	}
	return nil
}

// ListBySession returns the duties for a session ordered by room.
func (r *InvigilatorRepo) ListBySession(ctx context.Context, s model.Session) ([]model.Invigilator, error) {
	const q = `SELECT faculty_id, date, slot_no, class_id
	           FROM invigilators
	           WHERE date = ? AND slot_no = ?
	           ORDER BY class_id`
	rows, err := r.db.QueryContext(ctx, q, s.Date, s.SlotNo)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Invigilator
	for rows.Next() {
		var inv model.Invigilator
		if err := rows.Scan(&inv.FacultyID, &inv.Session.Date, &inv.Session.SlotNo, &inv.ClassID); err != nil {
			return nil, err
		}
		inv.Session = model.NewSession(inv.Session.Date, inv.Session.SlotNo)
		out = append(out, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
