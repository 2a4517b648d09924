package model

import (
	"fmt"

	"github.com/coursegrid/scheduler/internal/solve"
)

// Encoding selects the variable representation for one solve request. It is
// a global model-build choice, never a per-course one: constraint generation
// differs structurally between the two.
type Encoding int

const (
	// EncodingPeriod assigns one boolean per admissible (day, slot, room)
	// triple on the class-period grids. Used when every course occupies
	// exactly one canonical period.
	EncodingPeriod Encoding = iota
	// EncodingFine assigns one candidate per (day, start tick, room)
	// triple plus a per-course is-scheduled flag on the uniform 30-minute
	// grid. Used when course durations span multiple ticks.
	EncodingFine
)

func ParseEncoding(s string) (Encoding, error) {
	switch s {
	case "period", "":
		return EncodingPeriod, nil
	case "fine":
		return EncodingFine, nil
	default:
		return 0, fmt.Errorf("unknown encoding %q", s)
	}
}

func (e Encoding) String() string {
	if e == EncodingFine {
		return "fine"
	}
	return "period"
}

// SpreadMode controls how the department spread constraint is enforced.
type SpreadMode int

const (
	// SpreadHard forbids two courses of one department in the same
	// (day, slot), the reference behavior.
	SpreadHard SpreadMode = iota
	// SpreadSoft turns each violation into a unit objective penalty.
	SpreadSoft
)

func ParseSpreadMode(s string) (SpreadMode, error) {
	switch s {
	case "hard", "":
		return SpreadHard, nil
	case "soft":
		return SpreadSoft, nil
	default:
		return 0, fmt.Errorf("unknown spread mode %q", s)
	}
}

// Config fixes the model-build strategy for one request.
type Config struct {
	Encoding   Encoding
	Spread     SpreadMode
	RequireAll bool // restore the strict exactly-once quota of the legacy behavior
}

// Priority weights are scaled so that unit spread penalties can never
// outweigh any single scheduled/unscheduled decision.
const (
	priorityScale = 10
	spreadPenalty = 1
)

type encoder interface {
	Encode(vs *VariableSpace) solve.Model
}

func newEncoder(cfg Config) encoder {
	if cfg.Encoding == EncodingFine {
		return &fineEncoder{cfg: cfg}
	}
	return &periodEncoder{cfg: cfg}
}

// candidateLits collects the positive literals of a candidate list.
func candidateLits(candidates []Candidate) []solve.Lit {
	lits := make([]solve.Lit, len(candidates))
	for i, candidate := range candidates {
		lits[i] = solve.Pos(candidate.Var)
	}
	return lits
}

// atMostOne forbids selecting two candidates of one course at once, as
// pairwise binary clauses.
func atMostOne(m *solve.Model, candidates []Candidate) {
	for i := 0; i < len(candidates)-1; i++ {
		for j := i + 1; j < len(candidates); j++ {
			m.AddHard(solve.Neg(candidates[i].Var), solve.Neg(candidates[j].Var))
		}
	}
}

// mutualExclusion emits one binary clause per conflicting candidate pair
// from distinct courses. Same-course pairs are already excluded by the
// course's own quota constraint.
func mutualExclusion(m *solve.Model, candidates []Candidate, weight int) {
	for i := 0; i < len(candidates)-1; i++ {
		for j := i + 1; j < len(candidates); j++ {
			if candidates[i].Course == candidates[j].Course {
				continue
			}
			if weight == 0 {
				m.AddHard(solve.Neg(candidates[i].Var), solve.Neg(candidates[j].Var))
			} else {
				m.AddSoft(weight, solve.Neg(candidates[i].Var), solve.Neg(candidates[j].Var))
			}
		}
	}
}
