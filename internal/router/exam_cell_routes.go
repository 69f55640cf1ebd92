package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/exam-hall-seating/internal/handler"
	"github.com/iliyamo/exam-hall-seating/internal/middleware"
	"github.com/iliyamo/exam-hall-seating/internal/model"
)

// ExamCellHandlers are the handlers behind the exam cell's write routes.
type ExamCellHandlers struct {
	Hallplan     *handler.HallplanHandler
	Slots        *handler.SlotHandler
	Invigilators *handler.InvigilatorHandler
	Attendance   *handler.AttendanceHandler
}

// RegisterExamCell mounts the routes that load slots, generate or import
// hall plans and book invigilators.  All require a JWT with the EXAM_CELL role; plan
// generation additionally passes through limiter.
func RegisterExamCell(e *echo.Echo, h ExamCellHandlers, jwtSecret string, limiter echo.MiddlewareFunc) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleExamCell),
	)
	g.POST("/slots", h.Slots.Upsert)
	g.GET("/slots", h.Slots.List)
	g.POST("/hallplans", h.Hallplan.Generate, limiter)
	g.POST("/attendance", h.Attendance.Import)
	g.POST("/invigilators", h.Invigilators.Assign)
}
