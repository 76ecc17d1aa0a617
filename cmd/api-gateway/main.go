package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/meetwise/meetwise-api/api/swagger"
	"github.com/meetwise/meetwise-api/internal/handler"
	"github.com/meetwise/meetwise-api/internal/middleware"
	"github.com/meetwise/meetwise-api/internal/models"
	"github.com/meetwise/meetwise-api/internal/provider"
	"github.com/meetwise/meetwise-api/internal/repository"
	"github.com/meetwise/meetwise-api/internal/service"
	"github.com/meetwise/meetwise-api/pkg/cache"
	"github.com/meetwise/meetwise-api/pkg/config"
	"github.com/meetwise/meetwise-api/pkg/database"
	"github.com/meetwise/meetwise-api/pkg/logger"
	corsmiddleware "github.com/meetwise/meetwise-api/pkg/middleware/cors"
	reqidmiddleware "github.com/meetwise/meetwise-api/pkg/middleware/requestid"
)

// @title MeetWise API
// @version 0.1.0
// @description Group meeting slot search and booking
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, availability cache disabled", "error", err)
		redisClient = nil
	}
	availabilityCache := repository.NewAvailabilityCacheRepository(redisClient, 2*cfg.Availability.FreshnessTTL, logr)

	calendarProvider := provider.NewGoogleCalendarProvider(cfg.Google, logr)

	availabilitySvc := service.NewAvailabilityService(calendarProvider, availabilityCache, metricsSvc, logr, service.AvailabilityServiceConfig{
		FreshnessTTL:   cfg.Availability.FreshnessTTL,
		FetchTimeout:   cfg.Availability.FetchTimeout,
		RefreshWorkers: cfg.Availability.RefreshWorkers,
		RefreshEnabled: cfg.Availability.RefreshEnabled,
	})
	availabilitySvc.Start(context.Background())
	defer availabilitySvc.Stop()

	slotSvc := service.NewSlotService(availabilitySvc, service.SlotServiceConfig{
		WorkingHoursStart:  parseTimeOfDay(cfg.Scheduler.WorkingHoursStart, 9*60),
		WorkingHoursEnd:    parseTimeOfDay(cfg.Scheduler.WorkingHoursEnd, 17*60),
		PreferredTimeOfDay: parseTimeOfDay(cfg.Scheduler.PreferredTimeOfDay, 10*60),
		MaxResults:         cfg.Scheduler.MaxResults,
	}, metricsSvc, validate, logr)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	slotHandler := handler.NewSlotHandler(slotSvc)
	api.POST("/slots/find", slotHandler.Find)

	availabilityHandler := handler.NewAvailabilityHandler(availabilitySvc)
	api.GET("/participants/:id/availability", availabilityHandler.Get)

	if cfg.Exports.Enabled {
		exportHandler := handler.NewExportHandler(slotSvc, service.NewExportService(logr))
		api.POST("/slots/export", exportHandler.Export)
	}

	if cfg.Meetings.Enabled {
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
		}
		defer db.Close() //nolint:errcheck

		meetingSvc := service.NewMeetingService(repository.NewMeetingRepository(db), slotSvc, validate, logr)
		meetingHandler := handler.NewMeetingHandler(meetingSvc)
		api.POST("/meetings", meetingHandler.Create)
		api.GET("/meetings", meetingHandler.List)
		api.GET("/meetings/:id", meetingHandler.Get)
		api.POST("/meetings/:id/confirm", meetingHandler.Confirm)
		api.DELETE("/meetings/:id", meetingHandler.Cancel)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

func parseTimeOfDay(raw string, fallback models.TimeOfDay) models.TimeOfDay {
	if raw == "" {
		return fallback
	}
	tod, err := models.ParseTimeOfDay(raw)
	if err != nil {
		return fallback
	}
	return tod
}
