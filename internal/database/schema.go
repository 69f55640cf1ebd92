package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema lists the tables this service owns.  students and classes belong
// to the timetable system and are only read.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS slots (
		slot_no    TINYINT UNSIGNED NOT NULL,
		start_time TIME NOT NULL,
		end_time   TIME NOT NULL,
		PRIMARY KEY (slot_no)
	)`,
	`CREATE TABLE IF NOT EXISTS attendance (
		student_id  INT UNSIGNED NOT NULL,
		date        DATE NOT NULL,
		slot_no     TINYINT UNSIGNED NOT NULL,
		course_code VARCHAR(10) NOT NULL,
		class_id    MEDIUMINT UNSIGNED NOT NULL,
		seat_no     SMALLINT UNSIGNED NOT NULL,
		is_present  BOOLEAN NOT NULL,
		PRIMARY KEY (date, slot_no, student_id),
		UNIQUE KEY uq_attendance_seat (date, slot_no, class_id, seat_no)
	)`,
	`CREATE TABLE IF NOT EXISTS invigilators (
		faculty_id MEDIUMINT UNSIGNED NOT NULL,
		date       DATE NOT NULL,
		slot_no    TINYINT UNSIGNED NOT NULL,
		class_id   MEDIUMINT UNSIGNED NOT NULL,
		PRIMARY KEY (date, slot_no, faculty_id),
		UNIQUE KEY uq_invigilator_room (date, class_id, faculty_id)
	)`,
}

// EnsureSchema creates the service's tables when they do not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i, err)
		}
	}
	return nil
}
