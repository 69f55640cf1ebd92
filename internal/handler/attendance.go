package handler

import (
    "context"
    "errors"
    "fmt"
    "log"
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/exam-hall-seating/internal/model"
    "github.com/iliyamo/exam-hall-seating/internal/repository"
    "github.com/iliyamo/exam-hall-seating/internal/seating"
)

// AttendanceStore imports plans, reads rosters and records presence.
type AttendanceStore interface {
    SaveBatch(ctx context.Context, records []model.AttendanceRecord) error
    ListRoster(ctx context.Context, s model.Session, classID uint32) ([]model.AttendanceRecord, error)
    UpdatePresence(ctx context.Context, s model.Session, presentees, absentees []uint32) (int64, error)
}

// AttendanceHandler serves the invigilator's room roster and takes the
// attendance marks back.
type AttendanceHandler struct {
    Repo AttendanceStore
}

// Roster handles GET /v1/attendance/roster?date=&slot=&class_id= and
// returns the room's students split into two print columns by seat.
func (h *AttendanceHandler) Roster(c echo.Context) error {
    s, err := sessionQuery(c)
    if err != nil {
        return badRequest(c, err.Error())
    }
    classID, err := strconv.ParseUint(c.QueryParam("class_id"), 10, 32)
    if err != nil || classID == 0 {
        return badRequest(c, "class_id must be a positive integer")
    }
    records, err := h.Repo.ListRoster(c.Request().Context(), s, uint32(classID))
    if err != nil {
        log.Printf("attendance: roster %s/%d class %d failed: %v", s.DateString(), s.SlotNo, classID, err)
        return serverError(c, "db error")
    }
    left, right := seating.SplitColumns(records)
    return c.JSON(http.StatusOK, map[string]any{
        "date":     s.DateString(),
        "slot_no":  s.SlotNo,
        "class_id": classID,
        "total":    len(records),
        "left":     left,
        "right":    right,
    })
}

type presenceReq struct {
    Date       string   `json:"date" validate:"required,datetime=2006-01-02"`
    SlotNo     uint8    `json:"slot_no" validate:"required"`
    Presentees []uint32 `json:"presentees" validate:"required_without=Absentees"`
    Absentees  []uint32 `json:"absentees" validate:"required_without=Presentees"`
}

// Presence handles POST /v1/attendance/presence.  A student listed in both
// lists ends up absent.
func (h *AttendanceHandler) Presence(c echo.Context) error {
    var req presenceReq
    if resp := bindAndValidate(c, &req); resp != nil {
        return c.JSON(http.StatusBadRequest, resp)
    }
    s, err := model.ParseSession(req.Date, req.SlotNo)
    if err != nil {
        return badRequest(c, "date must be YYYY-MM-DD")
    }
    n, err := h.Repo.UpdatePresence(c.Request().Context(), s, req.Presentees, req.Absentees)
    if err != nil {
        log.Printf("attendance: presence %s/%d failed: %v", s.DateString(), s.SlotNo, err)
        return serverError(c, "could not update attendance")
    }
    return c.JSON(http.StatusOK, map[string]any{"updated": n})
}

type importRecordReq struct {
    StudentID  uint32 `json:"student_id" validate:"required"`
    Date       string `json:"date" validate:"required,datetime=2006-01-02"`
    SlotNo     uint8  `json:"slot_no" validate:"required"`
    CourseCode string `json:"course_code" validate:"required,max=10"`
    ClassID    uint32 `json:"class_id" validate:"required"`
    SeatNo     int    `json:"seat_no" validate:"required,min=1"`
    IsPresent  *bool  `json:"is_present"`
}

type seatKey struct {
    session model.Session
    classID uint32
    seat    int
}

// Import handles POST /v1/attendance with {"records": [...]}: a plan built
// elsewhere is stored as-is in one batch.  is_present defaults to true.
func (h *AttendanceHandler) Import(c echo.Context) error {
    var body struct {
        Records []importRecordReq `json:"records" validate:"required,min=1,dive"`
    }
    if resp := bindAndValidate(c, &body); resp != nil {
        return c.JSON(http.StatusBadRequest, resp)
    }

    records := make([]model.AttendanceRecord, 0, len(body.Records))
    students := map[model.Session]map[uint32]bool{}
    seats := map[seatKey]bool{}
    for i, r := range body.Records {
        s, err := model.ParseSession(r.Date, r.SlotNo)
        if err != nil {
            return badRequest(c, fmt.Sprintf("records[%d]: date must be YYYY-MM-DD", i))
        }
        if students[s] == nil {
            students[s] = map[uint32]bool{}
        }
        if students[s][r.StudentID] {
            return badRequest(c, fmt.Sprintf("records[%d]: student %d listed twice for the session", i, r.StudentID))
        }
        students[s][r.StudentID] = true
        k := seatKey{session: s, classID: r.ClassID, seat: r.SeatNo}
        if seats[k] {
            return badRequest(c, fmt.Sprintf("records[%d]: seat %d in class %d listed twice", i, r.SeatNo, r.ClassID))
        }
        seats[k] = true

        present := true
        if r.IsPresent != nil {
            present = *r.IsPresent
        }
        records = append(records, model.AttendanceRecord{
            StudentID:  r.StudentID,
            Session:    s,
            CourseCode: r.CourseCode,
            ClassID:    r.ClassID,
            SeatNo:     r.SeatNo,
            IsPresent:  present,
        })
    }

    if err := h.Repo.SaveBatch(c.Request().Context(), records); err != nil {
        if errors.Is(err, repository.ErrDuplicateAssignment) || errors.Is(err, repository.ErrConflict) {
            return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
        }
        log.Printf("attendance: import of %d rows failed: %v", len(records), err)
        return serverError(c, "could not import attendance")
    }
    return c.JSON(http.StatusCreated, map[string]any{"imported": len(records)})
}
