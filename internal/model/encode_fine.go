package model

import (
	"github.com/coursegrid/scheduler/internal/solve"
)

// fineEncoder builds the MaxSAT model over the uniform 30-minute grid. A
// candidate marks a start tick and the course occupies Duration consecutive
// ticks from it, so exclusivity is interval non-overlap instead of cell
// equality. A per-course is-scheduled flag carries the objective weight and
// gates the start choice.
type fineEncoder struct {
	cfg Config
}

func (e *fineEncoder) Encode(vs *VariableSpace) solve.Model {
	var m solve.Model
	courses := vs.Request.Courses()

	for c, candidates := range vs.PerCourse {
		if len(candidates) == 0 {
			continue
		}
		flag := vs.Flags[c]

		// Scheduled implies exactly one start; any start implies scheduled.
		m.AddHard(append([]solve.Lit{solve.Neg(flag)}, candidateLits(candidates)...)...)
		for _, candidate := range candidates {
			m.AddHard(solve.Neg(candidate.Var), solve.Pos(flag))
		}
		atMostOne(&m, candidates)

		if e.cfg.RequireAll {
			m.AddHard(solve.Pos(flag))
		}
		m.AddSoft(courses[c].Priority*priorityScale, solve.Pos(flag))
	}

	e.encodeRoomOverlap(&m, vs, courses)
	e.encodeTeacherOverlap(&m, vs, courses)
	e.encodeDepartmentOverlap(&m, vs, courses)

	return m
}

// overlaps reports whether two same-day occupations share a tick.
func overlaps(a Candidate, durA int, b Candidate, durB int) bool {
	return a.Slot < b.Slot+durB && b.Slot < a.Slot+durA
}

// overlapExclusion emits one binary clause per overlapping candidate pair
// from distinct courses within one group.
func overlapExclusion(m *solve.Model, group []Candidate, courses []Course, weight int) {
	for i := 0; i < len(group)-1; i++ {
		for j := i + 1; j < len(group); j++ {
			a, b := group[i], group[j]
			if a.Course == b.Course {
				continue
			}
			if !overlaps(a, courses[a.Course].Duration, b, courses[b.Course].Duration) {
				continue
			}
			if weight == 0 {
				m.AddHard(solve.Neg(a.Var), solve.Neg(b.Var))
			} else {
				m.AddSoft(weight, solve.Neg(a.Var), solve.Neg(b.Var))
			}
		}
	}
}

// encodeRoomOverlap forbids two courses from occupying one room in
// overlapping tick ranges.
func (e *fineEncoder) encodeRoomOverlap(m *solve.Model, vs *VariableSpace, courses []Course) {
	type lane struct {
		day  Day
		room int
	}
	groups := make(map[lane][]Candidate)
	for _, candidates := range vs.PerCourse {
		for _, candidate := range candidates {
			key := lane{candidate.Day, candidate.Room}
			groups[key] = append(groups[key], candidate)
		}
	}
	for _, group := range groups {
		overlapExclusion(m, group, courses, 0)
	}
}

// encodeTeacherOverlap forbids one teacher from teaching two overlapping
// occupations, regardless of room.
func (e *fineEncoder) encodeTeacherOverlap(m *solve.Model, vs *VariableSpace, courses []Course) {
	type lane struct {
		teacher string
		day     Day
	}
	groups := make(map[lane][]Candidate)
	for c, candidates := range vs.PerCourse {
		if courses[c].Teacher == "" {
			continue
		}
		for _, candidate := range candidates {
			key := lane{courses[c].Teacher, candidate.Day}
			groups[key] = append(groups[key], candidate)
		}
	}
	for _, group := range groups {
		overlapExclusion(m, group, courses, 0)
	}
}

// encodeDepartmentOverlap keeps two courses of one department from
// overlapping on one day, either as a hard rule or as unit penalties.
func (e *fineEncoder) encodeDepartmentOverlap(m *solve.Model, vs *VariableSpace, courses []Course) {
	weight := 0
	if e.cfg.Spread == SpreadSoft {
		weight = spreadPenalty
	}

	for _, members := range vs.Request.Departments() {
		groups := make(map[Day][]Candidate)
		for _, c := range members {
			for _, candidate := range vs.PerCourse[c] {
				groups[candidate.Day] = append(groups[candidate.Day], candidate)
			}
		}
		for _, group := range groups {
			overlapExclusion(m, group, courses, weight)
		}
	}
}
