package model

import (
	"github.com/samber/lo"

	"github.com/coursegrid/scheduler/internal/solve"
)

// Occupancy is one scheduled course in one calendar cell.
type Occupancy struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Teacher string `json:"teacher"`
	Room    string `json:"room"`
}

// Calendar maps day key to slot label to the occupancies of that cell. Under
// the fine grid a course appears in every tick it occupies.
type Calendar map[string]map[string][]Occupancy

func (cal Calendar) add(day Day, label string, occupancy Occupancy) {
	cells, ok := cal[day.Key()]
	if !ok {
		cells = make(map[string][]Occupancy)
		cal[day.Key()] = cells
	}
	cells[label] = append(cells[label], occupancy)
}

// Unscheduled course reasons.
const (
	// ReasonStructural marks courses that never reached the solver: no
	// room, day or slot combination passed their admissibility filters.
	ReasonStructural = "structurally_infeasible"
	// ReasonNotSelected marks courses the solver chose to drop.
	ReasonNotSelected = "not_selected"
)

type UnscheduledCourse struct {
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

// Outcome is the decoded result of one solve call. Its JSON form is the
// response boundary contract.
type Outcome struct {
	Success        bool                `json:"success"`
	Status         string              `json:"status"`
	Schedule       Calendar            `json:"schedule"`
	ScheduledCount int                 `json:"scheduled_count"`
	TotalCount     int                 `json:"total_count"`
	Scheduled      []string            `json:"scheduled_courses"`
	Unscheduled    []UnscheduledCourse `json:"unscheduled_courses"`
	Objective      int64               `json:"objective_value"`
	SolveTime      float64             `json:"solve_time"`
	Branches       int64               `json:"branches"`
	Conflicts      int64               `json:"conflicts"`
}

// decode maps a solver assignment back onto the domain. It is a pure
// function of the variable space and the result: decoding the same result
// twice yields identical outcomes.
func decode(vs *VariableSpace, res solve.Result) *Outcome {
	courses := vs.Request.Courses()
	rooms := vs.Request.Rooms()

	outcome := &Outcome{
		Success:     res.Status.HasSolution(),
		Status:      res.Status.String(),
		Schedule:    make(Calendar),
		TotalCount:  len(courses),
		Scheduled:   []string{},
		Unscheduled: []UnscheduledCourse{},
		Objective:   res.Objective,
		SolveTime:   res.WallTime.Seconds(),
		Branches:    res.Branches,
		Conflicts:   res.Conflicts,
	}

	for c, course := range courses {
		candidates := vs.PerCourse[c]
		if len(candidates) == 0 {
			outcome.Unscheduled = append(outcome.Unscheduled, UnscheduledCourse{
				Code:   course.Code,
				Reason: ReasonStructural,
			})
			continue
		}
		if !res.Status.HasSolution() {
			outcome.Unscheduled = append(outcome.Unscheduled, UnscheduledCourse{
				Code:   course.Code,
				Reason: ReasonNotSelected,
			})
			continue
		}

		chosen, ok := lo.Find(candidates, func(candidate Candidate) bool {
			return res.Values[candidate.Var]
		})
		if !ok {
			outcome.Unscheduled = append(outcome.Unscheduled, UnscheduledCourse{
				Code:   course.Code,
				Reason: ReasonNotSelected,
			})
			continue
		}

		occupancy := Occupancy{
			Code:    course.Code,
			Name:    course.Name,
			Teacher: course.Teacher,
			Room:    rooms[chosen.Room].ID,
		}
		slots := vs.Space.SlotsFor(chosen.Day)
		if vs.Space.Kind() == GridFine {
			for tick := chosen.Slot; tick < chosen.Slot+course.Duration && tick < len(slots); tick++ {
				outcome.Schedule.add(chosen.Day, slots[tick].Label, occupancy)
			}
		} else {
			outcome.Schedule.add(chosen.Day, slots[chosen.Slot].Label, occupancy)
		}
		outcome.Scheduled = append(outcome.Scheduled, course.Code)
	}
	outcome.ScheduledCount = len(outcome.Scheduled)

	return outcome
}
