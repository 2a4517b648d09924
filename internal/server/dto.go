package server

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/coursegrid/scheduler/internal/model"
)

// Wire shapes for the schedule generation endpoint. Validation rejects
// malformed payloads before the model layer sees them; defaulting of omitted
// fields stays with the request builder.

type CourseRequest struct {
	Code            string `json:"code" binding:"required"`
	Name            string `json:"name"`
	Teacher         string `json:"teacher"`
	Department      string `json:"department"`
	Duration        int    `json:"duration" binding:"omitempty,min=1,max=20"`
	DayPattern      string `json:"day_pattern" binding:"omitempty,day_pattern"`
	Priority        int    `json:"priority" binding:"omitempty,min=1"`
	MinRoomCapacity int    `json:"min_room_capacity" binding:"omitempty,min=0"`
}

type RoomRequest struct {
	ID       string `json:"id" binding:"required"`
	Capacity int    `json:"capacity" binding:"omitempty,min=1"`
}

type GenerateRequest struct {
	Courses          []CourseRequest `json:"courses" binding:"required,min=1,dive"`
	Rooms            []RoomRequest   `json:"rooms" binding:"omitempty,dive"`
	TimeLimitSeconds int             `json:"time_limit_seconds" binding:"omitempty,min=1"`
}

// ErrorResponse is the failure envelope of every endpoint.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// RegisterValidators installs the custom payload validations on gin's
// binding engine. Call once before serving.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("day_pattern", func(fl validator.FieldLevel) bool {
			_, err := model.ParsePattern(fl.Field().String())
			return err == nil
		})
	}
}

// BuildRequest turns the validated payload into an immutable model request.
func (r GenerateRequest) BuildRequest() (*model.Request, error) {
	builder := model.NewRequestBuilder()
	for _, course := range r.Courses {
		builder.AddCourse(model.Course{
			Code:        course.Code,
			Name:        course.Name,
			Teacher:     course.Teacher,
			Department:  course.Department,
			Duration:    course.Duration,
			Pattern:     model.Pattern(course.DayPattern),
			MinCapacity: course.MinRoomCapacity,
			Priority:    course.Priority,
		})
	}
	for _, room := range r.Rooms {
		builder.AddRoom(model.Room{ID: room.ID, Capacity: room.Capacity})
	}
	return builder.Build()
}
