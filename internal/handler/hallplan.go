package handler

import (
    "context"
    "errors"
    "log"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/exam-hall-seating/internal/model"
    q "github.com/iliyamo/exam-hall-seating/internal/queue"
    "github.com/iliyamo/exam-hall-seating/internal/repository"
    "github.com/iliyamo/exam-hall-seating/internal/seating"
)

// ClassLookup resolves a room number to its classes row.
type ClassLookup interface {
    GetByRoomNo(ctx context.Context, buildingID uint32, roomNo uint16) (*model.Class, error)
}

// ListingCache stores hall listings per session.
type ListingCache interface {
    Put(ctx context.Context, entries []seating.ListingEntry) error
    Get(ctx context.Context, date string, slotNo uint8) ([]seating.ListingEntry, bool, error)
    Invalidate(ctx context.Context, date string, slotNo uint8) error
}

// EventPublisher announces generated plans.
type EventPublisher interface {
    PublishHallplanGenerated(ctx context.Context, ev q.HallplanGeneratedEvent) error
}

// HallplanHandler generates seating plans and serves their hall listings.
// Cache and Events are optional.
type HallplanHandler struct {
    Planner           *seating.Planner
    Classes           ClassLookup
    Cache             ListingCache
    Events            EventPublisher
    DefaultBuildingID uint32
}

type studentReq struct {
    RegNo     string `json:"reg_no" validate:"required"`
    StudentID uint32 `json:"student_id" validate:"required"`
}

type scheduleReq struct {
    Year       uint16       `json:"year" validate:"required"`
    Degree     string       `json:"degree" validate:"required"`
    Stream     *string      `json:"stream"`
    CourseCode string       `json:"course_code" validate:"required"`
    Date       string       `json:"date" validate:"required,datetime=2006-01-02"`
    SlotNo     uint8        `json:"slot_no" validate:"required"`
    SectionID  uint32       `json:"section_id"`
    Section    string       `json:"section" validate:"required"`
    Students   []studentReq `json:"students" validate:"dive"`
}

// roomReq names a room of the building.  Capacity overrides classes.capacity
// and Date/SlotNo scope the room to one session.
type roomReq struct {
    RoomNo   uint16 `json:"room_no" validate:"required"`
    Capacity *int   `json:"capacity"`
    Date     string `json:"date" validate:"omitempty,datetime=2006-01-02"`
    SlotNo   uint8  `json:"slot_no"`
}

type generateReq struct {
    BuildingID uint32        `json:"building_id"`
    Replace    bool          `json:"replace"`
    Schedules  []scheduleReq `json:"schedules" validate:"required,min=1,dive"`
    Rooms      []roomReq     `json:"rooms" validate:"required,min=1,dive"`
}

func (r scheduleReq) row() (model.ScheduleRow, error) {
    s, err := model.ParseSession(r.Date, r.SlotNo)
    if err != nil {
        return model.ScheduleRow{}, err
    }
    students := make([]model.Student, len(r.Students))
    for i, st := range r.Students {
        students[i] = model.Student{RegNo: st.RegNo, StudentID: st.StudentID}
    }
    return model.ScheduleRow{
        Year:       r.Year,
        Degree:     r.Degree,
        Stream:     r.Stream,
        CourseCode: r.CourseCode,
        Session:    s,
        SectionID:  r.SectionID,
        Section:    r.Section,
        Students:   students,
    }, nil
}

// Generate handles POST /v1/hallplans.  It seats every scheduled student,
// persists the attendance rows once and returns the plan with its listing.
// With replace the previous rows of the named sessions are swapped out in
// the same transaction.  When persistence fails the plan is still returned
// alongside the error.
func (h *HallplanHandler) Generate(c echo.Context) error {
    var req generateReq
    if body := bindAndValidate(c, &req); body != nil {
        return c.JSON(http.StatusBadRequest, body)
    }
    buildingID := req.BuildingID
    if buildingID == 0 {
        buildingID = h.DefaultBuildingID
    }
    if buildingID == 0 {
        return badRequest(c, "building_id is required")
    }
    ctx := c.Request().Context()

    schedule := make([]model.ScheduleRow, 0, len(req.Schedules))
    sessions := map[model.Session]bool{}
    for _, s := range req.Schedules {
        row, err := s.row()
        if err != nil {
            return badRequest(c, "invalid schedule date")
        }
        schedule = append(schedule, row)
        sessions[row.Session] = true
    }

    rooms, status, msg := h.resolveRooms(ctx, buildingID, req.Rooms)
    if status != 0 {
        return c.JSON(status, map[string]string{"error": msg})
    }

    generate := h.Planner.Generate
    if req.Replace {
        generate = h.Planner.Regenerate
    }
    plan, err := generate(ctx, schedule, rooms)
    if plan == nil {
        return c.JSON(generateStatus(err), map[string]string{"error": err.Error()})
    }
    listing := seating.BuildListing(plan.Assignments)
    h.publish(ctx, buildingID, plan, err)

    resp := map[string]any{"plan": plan, "listing": listing}
    if err != nil {
        resp["error"] = err.Error()
        status := http.StatusInternalServerError
        if errors.Is(err, repository.ErrDuplicateAssignment) || errors.Is(err, repository.ErrConflict) {
            status = http.StatusConflict
        }
        return c.JSON(status, resp)
    }

    if h.Cache != nil {
        if req.Replace {
            for s := range sessions {
                if err := h.Cache.Invalidate(ctx, s.DateString(), s.SlotNo); err != nil {
                    log.Printf("hallplan: invalidate %s/%d failed: %v", s.DateString(), s.SlotNo, err)
                }
            }
        }
        if err := h.Cache.Put(ctx, listing); err != nil {
            log.Printf("hallplan: cache listing for plan %s failed: %v", plan.ID, err)
        }
    }
    return c.JSON(http.StatusCreated, resp)
}

// resolveRooms maps room numbers to class ids.  A non-zero status means the
// request must be rejected with msg.
func (h *HallplanHandler) resolveRooms(ctx context.Context, buildingID uint32, reqs []roomReq) ([]model.RoomRow, int, string) {
    known := map[uint16]*model.Class{}
    rooms := make([]model.RoomRow, 0, len(reqs))
    for _, r := range reqs {
        cls, ok := known[r.RoomNo]
        if !ok {
            var err error
            cls, err = h.Classes.GetByRoomNo(ctx, buildingID, r.RoomNo)
            if errors.Is(err, repository.ErrClassNotFound) {
                return nil, http.StatusUnprocessableEntity, "room " + strconv.Itoa(int(r.RoomNo)) + " not found in building"
            }
            if err != nil {
                log.Printf("hallplan: room lookup %d failed: %v", r.RoomNo, err)
                return nil, http.StatusInternalServerError, "failed to resolve rooms"
            }
            known[r.RoomNo] = cls
        }
        row := model.RoomRow{RoomID: cls.ID, RoomNo: r.RoomNo, Capacity: cls.Capacity}
        if r.Capacity != nil {
            row.Capacity = *r.Capacity
        }
        if (r.Date == "") != (r.SlotNo == 0) {
            return nil, http.StatusBadRequest, "room date and slot_no must be given together"
        }
        if r.Date != "" {
            s, err := model.ParseSession(r.Date, r.SlotNo)
            if err != nil {
                return nil, http.StatusBadRequest, "invalid room date"
            }
            row.Session = &s
        }
        rooms = append(rooms, row)
    }
    return rooms, 0, ""
}

// generateStatus maps planner failures that produced no plan.
func generateStatus(err error) int {
    switch {
    case errors.Is(err, seating.ErrInsufficientCapacity),
        errors.Is(err, seating.ErrCapacityExhausted),
        errors.Is(err, seating.ErrZeroCapacity),
        errors.Is(err, seating.ErrEmptyPool):
        return http.StatusUnprocessableEntity
    case errors.Is(err, seating.ErrReplaceUnsupported):
        return http.StatusNotImplemented
    case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
        return http.StatusServiceUnavailable
    }
    return http.StatusInternalServerError
}

func (h *HallplanHandler) publish(ctx context.Context, buildingID uint32, plan *seating.Plan, storeErr error) {
    if h.Events == nil {
        return
    }
    ev := q.HallplanGeneratedEvent{
        PlanID:      plan.ID.String(),
        BuildingID:  buildingID,
        Assignments: len(plan.Assignments),
        Persisted:   storeErr == nil,
        GeneratedAt: plan.GeneratedAt.Format(time.RFC3339),
    }
    if storeErr != nil {
        ev.StoreError = storeErr.Error()
    }
    for _, s := range plan.Sessions {
        ev.Sessions = append(ev.Sessions, q.SessionSummary{
            Date:     s.Session.DateString(),
            SlotNo:   s.Session.SlotNo,
            Students: s.Students,
            Rooms:    s.Rooms,
            Seats:    s.Seats,
        })
    }
    if err := h.Events.PublishHallplanGenerated(ctx, ev); err != nil {
        log.Printf("hallplan: publish event for plan %s failed: %v", plan.ID, err)
    }
}

// List handles GET /v1/hallplans?date=&slot=.  Both filters are optional;
// listings are served from the cache filled at generation time.
func (h *HallplanHandler) List(c echo.Context) error {
    date := c.QueryParam("date")
    if date != "" {
        if _, err := model.ParseSession(date, 1); err != nil {
            return badRequest(c, "date must be YYYY-MM-DD")
        }
    }
    var slot uint8
    if raw := c.QueryParam("slot"); raw != "" {
        n, err := strconv.ParseUint(raw, 10, 8)
        if err != nil || n == 0 {
            return badRequest(c, "slot must be a positive integer")
        }
        slot = uint8(n)
    }
    if h.Cache == nil {
        return c.JSON(http.StatusNotFound, map[string]string{"error": "hall plan not found"})
    }
    entries, found, err := h.Cache.Get(c.Request().Context(), date, slot)
    if err != nil {
        log.Printf("hallplan: cache read failed: %v", err)
        return serverError(c, "failed to load hall plan")
    }
    if !found {
        return c.JSON(http.StatusNotFound, map[string]string{"error": "hall plan not found"})
    }
    return c.JSON(http.StatusOK, seating.FilterListing(entries, date, slot))
}
