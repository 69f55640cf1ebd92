package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/exam-hall-seating/internal/model"
)

// SlotRepo provides access to examination slots.
type SlotRepo struct {
	db *sql.DB
}

// NewSlotRepo constructs a SlotRepo with the given DB handle.
func NewSlotRepo(db *sql.DB) *SlotRepo {
	return &SlotRepo{db: db}
}

// Upsert stores slots in one statement. Existing slot numbers keep their
// number and take the new times.
func (r *SlotRepo) Upsert(ctx context.Context, slots []model.Slot) error {
	if len(slots) == 0 {
		return nil
	}
	query := `INSERT INTO slots (slot_no, start_time, end_time) VALUES `
	args := make([]interface{}, 0, len(slots)*3)
	for i, s := range slots {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?)"
		args = append(args, s.No, s.StartTime, s.EndTime)
	}
	query += ` ON DUPLICATE KEY UPDATE start_time = VALUES(start_time), end_time = VALUES(end_time)`
	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

// List returns all slots ordered by number.
func (r *SlotRepo) List(ctx context.Context) ([]model.Slot, error) {
	const q = `SELECT slot_no, TIME_FORMAT(start_time, '%H:%i'), TIME_FORMAT(end_time, '%H:%i')
	           FROM slots ORDER BY slot_no`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Slot
	for rows.Next() {
		var s model.Slot
		if err := rows.Scan(&s.No, &s.StartTime, &s.EndTime); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
