package model

// RoomRow is one row from the room source.  Date and SlotNo are optional;
// when both are nil the room is available to every session.
//
// Fields:
//  RoomID   – classes.id of the room (stored as attendance.class_id).
//  RoomNo   – room number within the building.
//  Capacity – total seats in the room.
//  Session  – session the row is scoped to (nil for all sessions).
type RoomRow struct {
    RoomID   uint32
    RoomNo   uint16
    Capacity int
    Session  *Session
}

// Room is a room taking part in one session's allocation.  Seat is the
// current fill level and Remaining the seats still free; both start from the
// static capacity for every session.
type Room struct {
    RoomID    uint32 `json:"room_id"`
    RoomNo    uint16 `json:"room_no"`
    Capacity  int    `json:"capacity"`
    Seat      int    `json:"seat"`
    Remaining int    `json:"remaining"`
}

// Half is the half-capacity mark (floor division).
func (r Room) Half() int { return r.Capacity / 2 }

// Class is a room row from the classes table owned by the timetable system.
type Class struct {
    ID         uint32 // classes.id
    BuildingID uint32 // classes.building_id
    RoomNo     uint16 // classes.room_no
    Capacity   int    // classes.capacity
}
