package model

import (
	"fmt"

	"github.com/samber/lo"
)

// Candidate is one admissible assignment option for a course: a (day, slot,
// room) triple under the period grid, or a (day, start tick, room) triple
// under the fine grid. Each candidate owns exactly one decision variable.
type Candidate struct {
	Course int // index into Request.Courses
	Day    Day
	Slot   int // slot index, or start tick under the fine grid
	Room   int // index into Request.Rooms
	Var    string
}

// VariableSpace is the full enumerated assignment space for one request.
// It is created immediately before constraint construction and discarded
// with the response; no variable outlives one solve call.
type VariableSpace struct {
	Space     Space
	Request   *Request
	PerCourse [][]Candidate
	Flags     []string // per-course is-scheduled variable, fine encoding only
}

// GenerateVariables enumerates, for every course, the full cross-product of
// admissible days, slots and rooms under the course's own filters. Nothing
// passing the filters may be omitted: a missing combination is
// indistinguishable from an unmodeled hard constraint.
func GenerateVariables(request *Request, space Space, encoding Encoding) *VariableSpace {
	courses := request.Courses()
	rooms := request.Rooms()

	vs := &VariableSpace{
		Space:     space,
		Request:   request,
		PerCourse: make([][]Candidate, len(courses)),
		Flags:     make([]string, len(courses)),
	}

	for c, course := range courses {
		admissibleRooms := lo.Filter(lo.Range(len(rooms)), func(r int, _ int) bool {
			return rooms[r].Capacity >= course.MinCapacity
		})
		if len(admissibleRooms) == 0 {
			continue // structurally infeasible, reported by the decoder
		}

		candidates := make([]Candidate, 0, len(admissibleRooms)*len(course.Pattern.Days()))
		for _, day := range course.Pattern.Days() {
			limit := space.DayLength(day)
			if encoding == EncodingFine {
				// Duration-fit filter: the course must end inside the
				// operating window.
				limit = space.DayLength(day) - course.Duration + 1
			}
			for slot := 0; slot < limit; slot++ {
				for _, room := range admissibleRooms {
					candidates = append(candidates, Candidate{
						Course: c,
						Day:    day,
						Slot:   slot,
						Room:   room,
						Var:    fmt.Sprintf("x_%d_%d_%d_%d", c, day, slot, room),
					})
				}
			}
		}

		vs.PerCourse[c] = candidates
		if encoding == EncodingFine && len(candidates) > 0 {
			vs.Flags[c] = fmt.Sprintf("sched_%d", c)
		}
	}

	return vs
}

// Infeasible returns the indexes of structurally infeasible courses: no
// room meets their capacity requirement or no day/slot fits their pattern
// and duration. They never reach the solver.
func (vs *VariableSpace) Infeasible() []int {
	return lo.Filter(lo.Range(len(vs.PerCourse)), func(c int, _ int) bool {
		return len(vs.PerCourse[c]) == 0
	})
}

// CandidateCount is the total number of decision variables, excluding
// is-scheduled flags.
func (vs *VariableSpace) CandidateCount() int {
	count := 0
	for _, candidates := range vs.PerCourse {
		count += len(candidates)
	}
	return count
}
