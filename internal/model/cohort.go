package model

// NoStream marks a cohort whose programme has no stream.  It is distinct
// from an empty stream name, which is kept as-is.
const NoStream = "NULL"

// CohortKey identifies a (degree, stream, year) group within a session.
type CohortKey struct {
    Degree string `json:"degree"`
    Stream string `json:"stream"` // NoStream when the programme has none
    Year   uint16 `json:"year"`
}

// StreamOrNone converts an optional stream into its key form.
func StreamOrNone(stream *string) string {
    if stream == nil {
        return NoStream
    }
    return *stream
}

// Student is an enrolled student as seen by the seating engine.
type Student struct {
    RegNo     string `json:"reg_no"`
    StudentID uint32 `json:"student_id"`
}

// Section is one course's enrolled students within a cohort.  Students are
// seated in slice order.
type Section struct {
    SectionID  uint32    `json:"section_id"`
    Name       string    `json:"section"`
    CourseCode string    `json:"course_code"`
    Students   []Student `json:"students"`
}

// Cohort groups the sections of one (degree, stream, year) within a session.
type Cohort struct {
    Key      CohortKey
    Sections []Section
}

// StudentCount is the number of students across all sections.
func (c Cohort) StudentCount() int {
    n := 0
    for _, s := range c.Sections {
        n += len(s.Students)
    }
    return n
}

// ScheduleRow is one pre-joined row from the schedule source: a section of a
// cohort sitting a course in a session, with its enrolled students.
type ScheduleRow struct {
    Year       uint16
    Degree     string
    Stream     *string // nil when the programme has no stream
    CourseCode string
    Session    Session
    SectionID  uint32
    Section    string
    Students   []Student
}
