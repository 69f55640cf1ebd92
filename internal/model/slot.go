package model

import "time"

// DateLayout is the calendar date format used on the wire and in session keys.
const DateLayout = "2006-01-02"

// Slot is a numbered examination period within a day.  Slots are created
// once from the slot sheet and referenced by number afterwards.
//
// Fields:
//  No        – slot number (primary key).
//  StartTime – start time of day, formatted HH:MM.
//  EndTime   – end time of day, formatted HH:MM.
type Slot struct {
    No        uint8  `json:"no"`         // slots.slot_no
    StartTime string `json:"start_time"` // slots.start_time
    EndTime   string `json:"end_time"`   // slots.end_time
}

// Session is one (date, slot) examination period.  All seating decisions are
// scoped to a single session.
type Session struct {
    Date   time.Time `json:"date"`
    SlotNo uint8     `json:"slot_no"`
}

// NewSession truncates the date to midnight UTC so sessions compare by value.
func NewSession(date time.Time, slotNo uint8) Session {
    y, m, d := date.Date()
    return Session{Date: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), SlotNo: slotNo}
}

// ParseSession parses a YYYY-MM-DD date and combines it with the slot number.
func ParseSession(date string, slotNo uint8) (Session, error) {
    t, err := time.Parse(DateLayout, date)
    if err != nil {
        return Session{}, err
    }
    return NewSession(t, slotNo), nil
}

// Before orders sessions by date, then slot number.
func (s Session) Before(o Session) bool {
    if !s.Date.Equal(o.Date) {
        return s.Date.Before(o.Date)
    }
    return s.SlotNo < o.SlotNo
}

// DateString returns the session date as YYYY-MM-DD.
func (s Session) DateString() string { return s.Date.Format(DateLayout) }
