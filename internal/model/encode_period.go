package model

import (
	"github.com/coursegrid/scheduler/internal/solve"
)

// periodEncoder builds the MaxSAT model over the class-period grids. Every
// course occupies exactly one period, so exclusivity reduces to "no two
// conflicting courses pick the same (day, slot)" cell groups.
type periodEncoder struct {
	cfg Config
}

func (e *periodEncoder) Encode(vs *VariableSpace) solve.Model {
	var m solve.Model
	courses := vs.Request.Courses()

	// Placement quota and priority objective, per course.
	for c, candidates := range vs.PerCourse {
		if len(candidates) == 0 {
			continue
		}
		atMostOne(&m, candidates)
		lits := candidateLits(candidates)
		if e.cfg.RequireAll {
			m.AddHard(lits...)
		}
		m.AddSoft(courses[c].Priority*priorityScale, lits...)
	}

	e.encodeRoomExclusivity(&m, vs)
	e.encodeTeacherExclusivity(&m, vs, courses)
	e.encodeDepartmentSpread(&m, vs)

	return m
}

// encodeRoomExclusivity forbids two courses from occupying one room in the
// same (day, slot) cell.
func (e *periodEncoder) encodeRoomExclusivity(m *solve.Model, vs *VariableSpace) {
	type cell struct {
		day  Day
		slot int
		room int
	}
	groups := make(map[cell][]Candidate)
	for _, candidates := range vs.PerCourse {
		for _, candidate := range candidates {
			key := cell{candidate.Day, candidate.Slot, candidate.Room}
			groups[key] = append(groups[key], candidate)
		}
	}
	for _, group := range groups {
		mutualExclusion(m, group, 0)
	}
}

// encodeTeacherExclusivity forbids one teacher from appearing in two rooms in
// the same (day, slot) cell.
func (e *periodEncoder) encodeTeacherExclusivity(m *solve.Model, vs *VariableSpace, courses []Course) {
	type cell struct {
		teacher string
		day     Day
		slot    int
	}
	groups := make(map[cell][]Candidate)
	for c, candidates := range vs.PerCourse {
		if courses[c].Teacher == "" {
			continue
		}
		for _, candidate := range candidates {
			key := cell{courses[c].Teacher, candidate.Day, candidate.Slot}
			groups[key] = append(groups[key], candidate)
		}
	}
	for _, group := range groups {
		mutualExclusion(m, group, 0)
	}
}

// encodeDepartmentSpread keeps two courses of one department out of the same
// (day, slot) cell, either as a hard rule or as unit penalties.
func (e *periodEncoder) encodeDepartmentSpread(m *solve.Model, vs *VariableSpace) {
	weight := 0
	if e.cfg.Spread == SpreadSoft {
		weight = spreadPenalty
	}

	type cell struct {
		day  Day
		slot int
	}
	for _, members := range vs.Request.Departments() {
		groups := make(map[cell][]Candidate)
		for _, c := range members {
			for _, candidate := range vs.PerCourse[c] {
				key := cell{candidate.Day, candidate.Slot}
				groups[key] = append(groups[key], candidate)
			}
		}
		for _, group := range groups {
			mutualExclusion(m, group, weight)
		}
	}
}
