// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrDuplicateAssignment indicates that a student already holds
// a seat for the session, while ErrConflict signals any other
// uniqueness violation (e.g. an invigilator booked twice in a slot).
package repository

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// ErrConflict is returned when an insert or update cannot be
// performed because of conflicting state. Handlers should
// translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrDuplicateAssignment is returned by the attendance store when a
// student already has a row for the same date and slot. Re-running a
// plan requires clearing the session first.
var ErrDuplicateAssignment = errors.New("student already seated for this session")

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

// attendanceSeatKey is the unique key over (date, slot_no, class_id, seat_no).
const attendanceSeatKey = "uq_attendance_seat"

// isDuplicateKey reports whether err is a MySQL unique/primary key violation.
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}

// duplicateKeyName returns the index named in an ER_DUP_ENTRY message,
// e.g. "PRIMARY" or "uq_attendance_seat".  MySQL 8 prefixes it with the
// table name, which is stripped.
func duplicateKeyName(err error) (string, bool) {
	var me *mysql.MySQLError
	if !errors.As(err, &me) || me.Number != mysqlDuplicateEntry {
		return "", false
	}
	i := strings.LastIndex(me.Message, "for key '")
	if i < 0 {
		return "", true
	}
	key := strings.TrimSuffix(me.Message[i+len("for key '"):], "'")
	if j := strings.LastIndexByte(key, '.'); j >= 0 {
		key = key[j+1:]
	}
	return key, true
}
