package solve

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Lit is a potentially-negated boolean decision variable, identified by name.
// The core owns the naming scheme; backends must not attach meaning to it.
type Lit struct {
	Var string
	Neg bool
}

func Pos(name string) Lit {
	return Lit{Var: name}
}

func Neg(name string) Lit {
	return Lit{Var: name, Neg: true}
}

func (l Lit) Negation() Lit {
	return Lit{Var: l.Var, Neg: !l.Neg}
}

func (l Lit) String() string {
	if l.Neg {
		return "-" + l.Var
	}
	return l.Var
}

// Clause is a disjunction of literals. Weight 0 marks a hard clause; a
// positive weight marks a soft clause contributing its weight to the
// objective when satisfied.
type Clause struct {
	Lits   []Lit
	Weight int
}

func Hard(lits ...Lit) Clause {
	return Clause{Lits: lits}
}

func Soft(weight int, lits ...Lit) Clause {
	return Clause{Lits: lits, Weight: weight}
}

func (c Clause) IsHard() bool {
	return c.Weight == 0
}

// Model is a weighted partial MaxSAT instance: every hard clause must hold,
// and the solver maximizes the total weight of satisfied soft clauses.
type Model struct {
	Clauses []Clause
}

func (m *Model) AddHard(lits ...Lit) {
	m.Clauses = append(m.Clauses, Hard(lits...))
}

func (m *Model) AddSoft(weight int, lits ...Lit) {
	m.Clauses = append(m.Clauses, Soft(weight, lits...))
}

// Vars returns the distinct variable names referenced by the model, sorted
// for deterministic serialization.
func (m Model) Vars() []string {
	seen := make(map[string]bool)
	for _, clause := range m.Clauses {
		for _, lit := range clause.Lits {
			seen[lit.Var] = true
		}
	}

	vars := make([]string, 0, len(seen))
	for name := range seen {
		vars = append(vars, name)
	}
	sort.Strings(vars)
	return vars
}

// TotalSoftWeight is the objective value of a solution satisfying every soft
// clause, i.e. the upper bound on Result.Objective.
func (m Model) TotalSoftWeight() int64 {
	var total int64
	for _, clause := range m.Clauses {
		total += int64(clause.Weight)
	}
	return total
}

// ToWDIMACS serializes the model into the weighted DIMACS format consumed by
// external MaxSAT solvers. Hard clauses carry the top weight. The returned
// slice maps 1-based DIMACS variables back to variable names.
func (m Model) ToWDIMACS() (string, []string) {
	vars := m.Vars()
	indices := make(map[string]int, len(vars))
	for i, name := range vars {
		indices[name] = i + 1
	}

	top := m.TotalSoftWeight() + 1

	var builder strings.Builder
	fmt.Fprintf(&builder, "p wcnf %d %d %d\n", len(vars), len(m.Clauses), top)
	for _, clause := range m.Clauses {
		weight := int64(clause.Weight)
		if clause.IsHard() {
			weight = top
		}
		fmt.Fprintf(&builder, "%d ", weight)
		for _, lit := range clause.Lits {
			index := indices[lit.Var]
			if lit.Neg {
				index = -index
			}
			fmt.Fprintf(&builder, "%d ", index)
		}
		builder.WriteString("0\n")
	}
	return builder.String(), vars
}

// Status is the terminal state reported by a solver run.
type Status int

const (
	// StatusOptimal means a provably optimal assignment was found.
	StatusOptimal Status = iota
	// StatusFeasible means an assignment satisfying all hard clauses was
	// found, but optimality was not proven within the time budget.
	StatusFeasible
	// StatusInfeasible means the hard clauses admit no assignment at all.
	StatusInfeasible
	// StatusTimeLimit means the budget expired before any assignment
	// satisfying the hard clauses was found.
	StatusTimeLimit
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "OPTIMAL"
	case StatusFeasible:
		return "FEASIBLE"
	case StatusInfeasible:
		return "INFEASIBLE"
	case StatusTimeLimit:
		return "TIME_LIMIT_NO_SOLUTION"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int(s))
	}
}

// HasSolution reports whether the status carries a variable assignment.
func (s Status) HasSolution() bool {
	return s == StatusOptimal || s == StatusFeasible
}

// Result is the verbatim outcome of one solver invocation. Values holds a
// binding for every model variable when HasSolution reports true. Branches
// and Conflicts are zero for backends that do not expose search statistics.
type Result struct {
	Status    Status
	Values    map[string]bool
	Objective int64
	Branches  int64
	Conflicts int64
	WallTime  time.Duration
}

// Solver is the capability interface the scheduling core hands a fully built
// model to. Implementations must return within (roughly) the given budget
// with a best-effort status; the core never retries a solve.
type Solver interface {
	Solve(model Model, timeLimit time.Duration) (Result, error)
}
