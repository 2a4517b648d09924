package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/coursegrid/scheduler/internal/model"
	"github.com/coursegrid/scheduler/pkg/config"
)

const sampleTimeLimit = 5 * time.Second

// Handler serves the scheduling API.
type Handler struct {
	scheduler model.Scheduler
	encoding  string
	limits    config.SolverConfig
	metrics   *Metrics
	log       *zap.Logger
}

func NewHandler(scheduler model.Scheduler, cfg *config.Config, metrics *Metrics, log *zap.Logger) *Handler {
	return &Handler{
		scheduler: scheduler,
		encoding:  cfg.Solver.Encoding,
		limits:    cfg.Solver,
		metrics:   metrics,
		log:       log,
	}
}

// Generate solves the submitted scheduling request and returns the calendar.
func (h *Handler) Generate(c *gin.Context) {
	var payload GenerateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		message := "Courses data is required"
		if len(payload.Courses) > 0 {
			message = err.Error()
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: message})
		return
	}

	request, err := payload.BuildRequest()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	h.respond(c, request, h.timeLimit(payload.TimeLimitSeconds))
}

// Sample solves a fixed demonstration request with a short time budget.
func (h *Handler) Sample(c *gin.Context) {
	request, err := model.NewRequestBuilder().
		AddCourse(model.Course{Code: "CS101", Name: "Intro to Computer Science", Teacher: "Dr. Smith", Pattern: model.PatternMWF, Priority: 5}).
		AddCourse(model.Course{Code: "MATH101", Name: "Calculus I", Teacher: "Dr. Johnson", Pattern: model.PatternMWF, Priority: 5}).
		AddCourse(model.Course{Code: "PHYS101", Name: "Physics I", Teacher: "Dr. Brown", Pattern: model.PatternTTh, Priority: 5}).
		AddCourse(model.Course{Code: "CHEM101", Name: "Chemistry I", Teacher: "Dr. Wilson", Pattern: model.PatternTTh, Priority: 4}).
		AddCourse(model.Course{Code: "BIO101", Name: "Biology I", Teacher: "Dr. Lee", Pattern: model.PatternAny, Priority: 4}).
		AddRoom(model.Room{ID: "Room A", Capacity: 40}).
		AddRoom(model.Room{ID: "Room B", Capacity: 30}).
		Build()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: err.Error()})
		return
	}

	h.respond(c, request, sampleTimeLimit)
}

// Health reports service liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "message": "Schedule API is running"})
}

func (h *Handler) respond(c *gin.Context, request *model.Request, limit time.Duration) {
	outcome, err := h.scheduler.Schedule(request, limit)
	if err != nil {
		if errors.Is(err, model.ErrConfiguration) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
			return
		}
		h.log.Error("schedule generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: fmt.Sprintf("Error generating schedule: %v", err),
		})
		return
	}

	h.metrics.ObserveSolve(h.encoding, outcome.Status,
		time.Duration(outcome.SolveTime*float64(time.Second)), len(outcome.Unscheduled))
	h.log.Info("schedule generated",
		zap.String("status", outcome.Status),
		zap.Int("scheduled", outcome.ScheduledCount),
		zap.Int("total", outcome.TotalCount),
		zap.Float64("solve_time", outcome.SolveTime))

	c.JSON(http.StatusOK, outcome)
}

// timeLimit clamps the caller's budget to the configured ceiling, falling
// back to the default when omitted.
func (h *Handler) timeLimit(seconds int) time.Duration {
	if seconds <= 0 {
		return h.limits.DefaultTimeLimit
	}
	limit := time.Duration(seconds) * time.Second
	if limit > h.limits.MaxTimeLimit {
		return h.limits.MaxTimeLimit
	}
	return limit
}
