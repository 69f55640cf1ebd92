package repository // repository holds data access logic for domain entities

import (
	"context"      // context is used to manage deadlines and cancellation
	"database/sql" // sql provides DB primitives
	"errors"       // errors package allows sentinel error definitions

	"github.com/iliyamo/exam-hall-seating/internal/model"
)

// ErrClassNotFound is returned when a room lookup fails.
var ErrClassNotFound = errors.New("class not found")

// ClassRepo reads exam rooms from the classes table.  The table is owned
// by the timetable system; this service never writes to it.
type ClassRepo struct {
	db *sql.DB // db is the underlying database connection
}

// NewClassRepo constructs a ClassRepo with the given DB handle.
func NewClassRepo(db *sql.DB) *ClassRepo {
	return &ClassRepo{db: db}
}

// GetByRoomNo resolves a room number within a building to its class row.
// It returns ErrClassNotFound when no row matches.
func (r *ClassRepo) GetByRoomNo(ctx context.Context, buildingID uint32, roomNo uint16) (*model.Class, error) {
	const q = `SELECT id, building_id, room_no, capacity FROM classes WHERE building_id = ? AND room_no = ?`
	var c model.Class
	err := r.db.QueryRowContext(ctx, q, buildingID, roomNo).Scan(&c.ID, &c.BuildingID, &c.RoomNo, &c.Capacity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}
	return &c, nil
}

// ListByBuilding returns all rooms of a building ordered by room number.
func (r *ClassRepo) ListByBuilding(ctx context.Context, buildingID uint32) ([]model.Class, error) {
	const q = `SELECT id, building_id, room_no, capacity
	           FROM classes
	           WHERE building_id = ?
	           ORDER BY room_no`
	rows, err := r.db.QueryContext(ctx, q, buildingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Class
	for rows.Next() {
		var c model.Class
		if err := rows.Scan(&c.ID, &c.BuildingID, &c.RoomNo, &c.Capacity); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
