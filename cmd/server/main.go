package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/exam-hall-seating/internal/cache"
	"github.com/iliyamo/exam-hall-seating/internal/config"
	"github.com/iliyamo/exam-hall-seating/internal/database"
	"github.com/iliyamo/exam-hall-seating/internal/handler"
	"github.com/iliyamo/exam-hall-seating/internal/middleware"
	"github.com/iliyamo/exam-hall-seating/internal/queue"
	"github.com/iliyamo/exam-hall-seating/internal/repository"
	"github.com/iliyamo/exam-hall-seating/internal/router"
	"github.com/iliyamo/exam-hall-seating/internal/seating"
	"github.com/iliyamo/exam-hall-seating/internal/service"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.Database())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	if cfg.AutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := database.EnsureSchema(ctx, db)
		cancel()
		if err != nil {
			log.Fatalf("database: ensure schema: %v", err)
		}
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis: unreachable, listing cache and rate limit disabled")
	} else {
		defer rdb.Close()
	}

	attendance := repository.NewAttendanceRepo(db)
	attendanceHandler := &handler.AttendanceHandler{Repo: attendance}
	invigilators := &handler.InvigilatorHandler{Repo: repository.NewInvigilatorRepo(db)}
	hallplans := &handler.HallplanHandler{
		Planner:           seating.NewPlanner(attendance),
		Classes:           repository.NewClassRepo(db),
		DefaultBuildingID: cfg.BuildingID,
	}
	if c := cache.NewHallplanCache(config.LoadHallplanCacheConfig(), rdb); c != nil {
		hallplans.Cache = c
	}
	if cfg.Events {
		hallplans.Events = service.NewPublisher(cfg.AMQPURL)
		go queue.StartHallplanConsumer(cfg.AMQPURL)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	router.RegisterRoutes(e)
	router.RegisterExamCell(e, router.ExamCellHandlers{
		Hallplan:     hallplans,
		Slots:        &handler.SlotHandler{Repo: repository.NewSlotRepo(db)},
		Invigilators: invigilators,
		Attendance:   attendanceHandler,
	}, cfg.JWTSecret, middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	router.RegisterStaff(e, hallplans, attendanceHandler, invigilators, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
