package handler

import (
    "context"
    "log"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/exam-hall-seating/internal/model"
)

// SlotStore persists exam slots.
type SlotStore interface {
    Upsert(ctx context.Context, slots []model.Slot) error
    List(ctx context.Context) ([]model.Slot, error)
}

// SlotHandler loads the slot sheet.
type SlotHandler struct {
    Repo SlotStore
}

type slotReq struct {
    No        uint8  `json:"no" validate:"required"`
    StartTime string `json:"start_time" validate:"required,datetime=15:04"`
    EndTime   string `json:"end_time" validate:"required,datetime=15:04"`
}

// Upsert handles POST /v1/slots with {"slots": [...]}.  Existing slot
// numbers get their times replaced.
func (h *SlotHandler) Upsert(c echo.Context) error {
    var body struct {
        Slots []slotReq `json:"slots" validate:"required,min=1,dive"`
    }
    if resp := bindAndValidate(c, &body); resp != nil {
        return c.JSON(http.StatusBadRequest, resp)
    }
    slots := make([]model.Slot, len(body.Slots))
    for i, s := range body.Slots {
        if s.EndTime <= s.StartTime {
            return badRequest(c, "end_time must be after start_time")
        }
        slots[i] = model.Slot{No: s.No, StartTime: s.StartTime, EndTime: s.EndTime}
    }
    if err := h.Repo.Upsert(c.Request().Context(), slots); err != nil {
        log.Printf("slots: upsert failed: %v", err)
        return serverError(c, "could not save slots")
    }
    return c.JSON(http.StatusCreated, slots)
}

// List handles GET /v1/slots.
func (h *SlotHandler) List(c echo.Context) error {
    slots, err := h.Repo.List(c.Request().Context())
    if err != nil {
        log.Printf("slots: list failed: %v", err)
        return serverError(c, "db error")
    }
    if slots == nil {
        slots = []model.Slot{}
    }
    return c.JSON(http.StatusOK, slots)
}
