package model

import (
	"fmt"
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/coursegrid/scheduler/internal/solve"
)

// Scheduler turns one scheduling request into a calendar.
type Scheduler interface {
	Schedule(request *Request, timeLimit time.Duration) (*Outcome, error)
}

type satScheduler struct {
	solver solve.Solver
	cfg    Config
}

// NewScheduler wires a solver backend to one model-build configuration.
func NewScheduler(solver solve.Solver, cfg Config) Scheduler {
	return &satScheduler{solver: solver, cfg: cfg}
}

// Schedule runs the full pipeline: enumerate candidates, build the MaxSAT
// model, solve within the time limit and decode the assignment.
func (s *satScheduler) Schedule(request *Request, timeLimit time.Duration) (*Outcome, error) {
	if len(request.Courses()) == 0 {
		return &Outcome{
			Success:     true,
			Status:      solve.StatusOptimal.String(),
			Schedule:    make(Calendar),
			Scheduled:   []string{},
			Unscheduled: []UnscheduledCourse{},
		}, nil
	}

	space := SpaceFor(s.cfg.Encoding)
	vs := GenerateVariables(request, space, s.cfg.Encoding)

	// Under the strict quota one structurally impossible course sinks the
	// whole request; report it without burning solver time.
	if s.cfg.RequireAll && len(vs.Infeasible()) > 0 {
		return decode(vs, solve.Result{Status: solve.StatusInfeasible}), nil
	}
	if vs.CandidateCount() == 0 {
		return decode(vs, solve.Result{Status: solve.StatusOptimal}), nil
	}

	m := newEncoder(s.cfg).Encode(vs)
	result, err := s.solver.Solve(m, timeLimit)
	if err != nil {
		return nil, fmt.Errorf("solving schedule model: %w", err)
	}

	return decode(vs, result), nil
}

// Verify checks a decoded outcome against the scheduling rules independently
// of the solver. It returns the first violation found, nil when the calendar
// is consistent.
func Verify(request *Request, cfg Config, outcome *Outcome) error {
	courses := lo.SliceToMap(request.Courses(), func(c Course) (string, Course) {
		return c.Code, c
	})
	rooms := lo.SliceToMap(request.Rooms(), func(r Room) (string, Room) {
		return r.ID, r
	})
	dayByKey := lo.SliceToMap(allDays, func(d Day) (Day, string) { return d, d.Key() })

	type placement struct {
		days  map[string]bool
		cells int
	}
	placements := make(map[string]*placement)

	for dayKey, cells := range outcome.Schedule {
		for label, occupancies := range cells {
			seenRooms := make(map[string]string)
			seenTeachers := make(map[string]string)
			seenDepartments := make(map[string]string)

			for _, occupancy := range occupancies {
				course, ok := courses[occupancy.Code]
				if !ok {
					return fmt.Errorf("calendar names unknown course %q", occupancy.Code)
				}
				room, ok := rooms[occupancy.Room]
				if !ok {
					return fmt.Errorf("course %q placed in unknown room %q", occupancy.Code, occupancy.Room)
				}

				if room.Capacity < course.MinCapacity {
					return fmt.Errorf("course %q needs capacity %d but room %q holds %d",
						course.Code, course.MinCapacity, room.ID, room.Capacity)
				}
				if !lo.Contains(lo.Map(course.Pattern.Days(), func(d Day, _ int) string {
					return dayByKey[d]
				}), dayKey) {
					return fmt.Errorf("course %q scheduled on %s outside its %s pattern",
						course.Code, dayKey, course.Pattern)
				}

				if other, taken := seenRooms[occupancy.Room]; taken && other != occupancy.Code {
					return fmt.Errorf("room %q double-booked at %s %s by %q and %q",
						occupancy.Room, dayKey, label, other, occupancy.Code)
				}
				seenRooms[occupancy.Room] = occupancy.Code

				if course.Teacher != "" {
					if other, taken := seenTeachers[course.Teacher]; taken && other != occupancy.Code {
						return fmt.Errorf("teacher %q double-booked at %s %s by %q and %q",
							course.Teacher, dayKey, label, other, occupancy.Code)
					}
					seenTeachers[course.Teacher] = occupancy.Code
				}

				if cfg.Spread == SpreadHard && course.Department != "" {
					if other, taken := seenDepartments[course.Department]; taken && other != occupancy.Code {
						return fmt.Errorf("department %q stacked at %s %s by %q and %q",
							course.Department, dayKey, label, other, occupancy.Code)
					}
					seenDepartments[course.Department] = occupancy.Code
				}

				p, ok := placements[occupancy.Code]
				if !ok {
					p = &placement{days: make(map[string]bool)}
					placements[occupancy.Code] = p
				}
				p.days[dayKey] = true
				p.cells++
			}
		}
	}

	for _, code := range outcome.Scheduled {
		p, ok := placements[code]
		if !ok {
			return fmt.Errorf("course %q reported scheduled but absent from calendar", code)
		}
		if len(p.days) != 1 {
			return fmt.Errorf("course %q spans %d days, expected one placement", code, len(p.days))
		}
		if cfg.Encoding == EncodingFine && p.cells != courses[code].Duration {
			return fmt.Errorf("course %q occupies %d ticks, expected %d", code, p.cells, courses[code].Duration)
		}
		if cfg.Encoding == EncodingPeriod && p.cells != 1 {
			return fmt.Errorf("course %q occupies %d periods, expected one", code, p.cells)
		}
	}

	unscheduled := lo.Map(outcome.Unscheduled, func(u UnscheduledCourse, _ int) string { return u.Code })
	accounted := append(append([]string{}, outcome.Scheduled...), unscheduled...)
	sort.Strings(accounted)
	expected := lo.Map(request.Courses(), func(c Course, _ int) string { return c.Code })
	sort.Strings(expected)
	if len(accounted) != len(expected) {
		return fmt.Errorf("outcome accounts for %d courses, request has %d", len(accounted), len(expected))
	}
	for i := range expected {
		if accounted[i] != expected[i] {
			return fmt.Errorf("course %q missing from outcome", expected[i])
		}
	}

	return nil
}
