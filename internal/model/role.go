package model

// Staff roles carried in the "role" claim of access tokens.
const (
    RoleExamCell    = "EXAM_CELL"
    RoleInvigilator = "INVIGILATOR"
    RoleAdmin       = "ADMIN"
)
