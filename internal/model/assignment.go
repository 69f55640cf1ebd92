package model

// Assignment seats one student in one room for one session.  Seat numbers
// are 1-based and unique within the room for that session.  Assignments are
// written once and never mutated.
type Assignment struct {
    Session    Session   `json:"session"`
    Cohort     CohortKey `json:"cohort"`
    Section    string    `json:"section"`
    ClassID    uint32    `json:"class_id"`
    RoomNo     uint16    `json:"room_no"`
    CourseCode string    `json:"course_code"`
    Seat       int       `json:"seat"`
    RegNo      string    `json:"reg_no"`
    StudentID  uint32    `json:"student_id"`
    IsPresent  bool      `json:"is_present"`
}

// AttendanceRecord mirrors a row of the attendance table.
//
// Fields:
//  StudentID  – student sitting the exam.
//  Session    – date and slot of the exam.
//  CourseCode – course being examined.
//  ClassID    – room the student is seated in.
//  SeatNo     – seat number within the room.
//  IsPresent  – attendance mark, true on creation.
type AttendanceRecord struct {
    StudentID  uint32  `json:"student_id"`  // attendance.student_id
    Session    Session `json:"session"`     // attendance.date, attendance.slot_no
    CourseCode string  `json:"course_code"` // attendance.course_code
    ClassID    uint32  `json:"class_id"`    // attendance.class_id
    SeatNo     int     `json:"seat_no"`     // attendance.seat_no
    IsPresent  bool    `json:"is_present"`  // attendance.is_present
}

// Record converts the assignment into its persisted attendance form.
func (a Assignment) Record() AttendanceRecord {
    return AttendanceRecord{
        StudentID:  a.StudentID,
        Session:    a.Session,
        CourseCode: a.CourseCode,
        ClassID:    a.ClassID,
        SeatNo:     a.Seat,
        IsPresent:  a.IsPresent,
    }
}

// Invigilator assigns a faculty member to a room for a session.
type Invigilator struct {
    FacultyID uint32  `json:"faculty_id"` // invigilators.faculty_id
    Session   Session `json:"session"`    // invigilators.date, invigilators.slot_no
    ClassID   uint32  `json:"class_id"`   // invigilators.class_id
}
