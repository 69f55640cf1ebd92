package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/exam-hall-seating/internal/handler"
	"github.com/iliyamo/exam-hall-seating/internal/middleware"
	"github.com/iliyamo/exam-hall-seating/internal/model"
)

// RegisterStaff mounts the read and attendance routes shared by the exam
// cell and invigilators.
func RegisterStaff(e *echo.Echo, hp *handler.HallplanHandler, att *handler.AttendanceHandler, inv *handler.InvigilatorHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleExamCell, model.RoleInvigilator),
	)
	g.GET("/hallplans", hp.List)
	g.GET("/attendance/roster", att.Roster)
	g.POST("/attendance/presence", att.Presence)
	g.GET("/invigilators", inv.List)
}
