package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

// Institutional defaults applied when optional fields are omitted.
const (
	DefaultRoomCapacity = 30
	DefaultPriority     = 3
	DefaultDuration     = 3
	DefaultTimeLimit    = 30

	// DefaultRoomID names the room synthesized when a request carries no
	// room inventory at all. The model stays solvable with degraded
	// fidelity instead of rejecting the request.
	DefaultRoomID = "default-room"
)

// ErrConfiguration marks requests rejected before model construction.
var ErrConfiguration = errors.New("invalid scheduling request")

// Course is one course to place. Immutable once added to a request.
type Course struct {
	Code        string
	Name        string
	Teacher     string
	Department  string
	Duration    int // weekly duration in half-hour units
	Pattern     Pattern
	MinCapacity int
	Priority    int
}

// Room is one schedulable room. Immutable per request.
type Room struct {
	ID       string
	Capacity int
}

// Request is the immutable domain catalog for exactly one solve call.
// Nothing in it survives the call; a caller wanting a second attempt builds
// a new request.
type Request struct {
	courses []Course
	rooms   []Room
}

// Courses returns the course list in insertion order. Callers must not
// mutate it.
func (r *Request) Courses() []Course {
	return r.courses
}

// Rooms returns the room inventory. Callers must not mutate it.
func (r *Request) Rooms() []Room {
	return r.rooms
}

// Teachers returns the distinct teacher identifiers referenced by courses,
// sorted for determinism.
func (r *Request) Teachers() []string {
	teachers := lo.Uniq(lo.Map(r.courses, func(c Course, _ int) string { return c.Teacher }))
	sort.Strings(teachers)
	return teachers
}

// Departments groups course indexes by department tag. Courses without a tag
// do not participate.
func (r *Request) Departments() map[string][]int {
	departments := make(map[string][]int)
	for i, course := range r.courses {
		if course.Department != "" {
			departments[course.Department] = append(departments[course.Department], i)
		}
	}
	return departments
}

// RequestBuilder accumulates courses and rooms and produces an immutable
// Request. It replaces mutable catalog state: all defaulting and validation
// happens once, in Build.
type RequestBuilder struct {
	courses []Course
	rooms   []Room
}

func NewRequestBuilder() *RequestBuilder {
	return &RequestBuilder{}
}

func (b *RequestBuilder) AddCourse(course Course) *RequestBuilder {
	b.courses = append(b.courses, course)
	return b
}

func (b *RequestBuilder) AddRoom(room Room) *RequestBuilder {
	b.rooms = append(b.rooms, room)
	return b
}

// Build validates the catalog, fills institutional defaults and synthesizes
// the default room when the inventory is empty.
func (b *RequestBuilder) Build() (*Request, error) {
	request := &Request{
		courses: make([]Course, len(b.courses)),
		rooms:   make([]Room, len(b.rooms)),
	}
	copy(request.courses, b.courses)
	copy(request.rooms, b.rooms)

	seen := make(map[string]bool, len(request.courses))
	for i := range request.courses {
		course := &request.courses[i]
		if course.Code == "" {
			return nil, fmt.Errorf("%w: course %d has no code", ErrConfiguration, i)
		}
		if seen[course.Code] {
			return nil, fmt.Errorf("%w: duplicate course code %q", ErrConfiguration, course.Code)
		}
		seen[course.Code] = true

		if course.Duration == 0 {
			course.Duration = DefaultDuration
		}
		if course.Duration < 0 {
			return nil, fmt.Errorf("%w: course %q: duration must be positive", ErrConfiguration, course.Code)
		}
		if course.Priority == 0 {
			course.Priority = DefaultPriority
		}
		if course.Priority < 0 {
			return nil, fmt.Errorf("%w: course %q: priority must be positive", ErrConfiguration, course.Code)
		}
		if course.MinCapacity < 0 {
			return nil, fmt.Errorf("%w: course %q: minimum capacity cannot be negative", ErrConfiguration, course.Code)
		}
		pattern, err := ParsePattern(string(course.Pattern))
		if err != nil {
			return nil, fmt.Errorf("%w: course %q: %v", ErrConfiguration, course.Code, err)
		}
		course.Pattern = pattern
	}

	seenRooms := make(map[string]bool, len(request.rooms))
	for i := range request.rooms {
		room := &request.rooms[i]
		if room.ID == "" {
			return nil, fmt.Errorf("%w: room %d has no id", ErrConfiguration, i)
		}
		if seenRooms[room.ID] {
			return nil, fmt.Errorf("%w: duplicate room id %q", ErrConfiguration, room.ID)
		}
		seenRooms[room.ID] = true
		if room.Capacity == 0 {
			room.Capacity = DefaultRoomCapacity
		}
		if room.Capacity < 0 {
			return nil, fmt.Errorf("%w: room %q: capacity must be positive", ErrConfiguration, room.ID)
		}
	}

	if len(request.rooms) == 0 {
		request.rooms = append(request.rooms, Room{ID: DefaultRoomID, Capacity: DefaultRoomCapacity})
	}

	return request, nil
}

// Wire-shaped request input, decoded from JSON the way the boundary sends it.

type CourseInput struct {
	Code            string
	Name            string
	Teacher         string
	Department      string
	Duration        int
	DayPattern      string `mapstructure:"day_pattern"`
	Priority        int
	MinRoomCapacity int `mapstructure:"min_room_capacity"`
}

type RoomInput struct {
	ID       string `mapstructure:"id"`
	Capacity int
}

type RequestInput struct {
	Courses          []CourseInput
	Rooms            []RoomInput
	TimeLimitSeconds int `mapstructure:"time_limit_seconds"`
}

// InputFromJSON reads a request file for offline use.
func InputFromJSON(file string) (RequestInput, error) {
	raw, err := os.ReadFile(file)
	if err != nil {
		return RequestInput{}, err
	}

	var inputJSON map[string]any
	if err := json.Unmarshal(raw, &inputJSON); err != nil {
		return RequestInput{}, err
	}

	var input RequestInput
	if err := mapstructure.Decode(inputJSON, &input); err != nil {
		return RequestInput{}, err
	}
	return input, nil
}

// BuildRequest turns the wire shape into an immutable Request.
func (input RequestInput) BuildRequest() (*Request, error) {
	builder := NewRequestBuilder()
	for _, c := range input.Courses {
		builder.AddCourse(Course{
			Code:        c.Code,
			Name:        c.Name,
			Teacher:     c.Teacher,
			Department:  c.Department,
			Duration:    c.Duration,
			Pattern:     Pattern(c.DayPattern),
			MinCapacity: c.MinRoomCapacity,
			Priority:    c.Priority,
		})
	}
	for _, r := range input.Rooms {
		builder.AddRoom(Room{ID: r.ID, Capacity: r.Capacity})
	}
	return builder.Build()
}
