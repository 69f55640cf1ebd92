package handler

import (
    "context"
    "errors"
    "log"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/exam-hall-seating/internal/model"
    "github.com/iliyamo/exam-hall-seating/internal/repository"
)

// InvigilatorStore records invigilation duties.
type InvigilatorStore interface {
    Assign(ctx context.Context, inv model.Invigilator) error
    ListBySession(ctx context.Context, s model.Session) ([]model.Invigilator, error)
}

type InvigilatorHandler struct {
    Repo InvigilatorStore
}

type invigilatorReq struct {
    FacultyID uint32 `json:"faculty_id" validate:"required"`
    Date      string `json:"date" validate:"required,datetime=2006-01-02"`
    SlotNo    uint8  `json:"slot_no" validate:"required"`
    ClassID   uint32 `json:"class_id" validate:"required"`
}

// Assign handles POST /v1/invigilators.
func (h *InvigilatorHandler) Assign(c echo.Context) error {
    var req invigilatorReq
    if resp := bindAndValidate(c, &req); resp != nil {
        return c.JSON(http.StatusBadRequest, resp)
    }
    s, err := model.ParseSession(req.Date, req.SlotNo)
    if err != nil {
        return badRequest(c, "date must be YYYY-MM-DD")
    }
    inv := model.Invigilator{FacultyID: req.FacultyID, Session: s, ClassID: req.ClassID}
    if err := h.Repo.Assign(c.Request().Context(), inv); err != nil {
        if errors.Is(err, repository.ErrConflict) {
            return c.JSON(http.StatusConflict, map[string]string{"error": "faculty already assigned for this slot"})
        }
        log.Printf("invigilators: assign failed: %v", err)
        return serverError(c, "could not assign invigilator")
    }
    return c.JSON(http.StatusCreated, inv)
}

// List handles GET /v1/invigilators?date=&slot=.
func (h *InvigilatorHandler) List(c echo.Context) error {
    s, err := sessionQuery(c)
    if err != nil {
        return badRequest(c, err.Error())
    }
    out, err := h.Repo.ListBySession(c.Request().Context(), s)
    if err != nil {
        log.Printf("invigilators: list failed: %v", err)
        return serverError(c, "db error")
    }
    if out == nil {
        out = []model.Invigilator{}
    }
    return c.JSON(http.StatusOK, out)
}
