package solve

import (
	"fmt"
	"time"

	"github.com/crillab/gophersat/maxsat"
)

type gophersatSolver struct{}

// NewGophersatSolver returns the in-process backend built on gophersat's
// weighted MaxSAT solver. It needs no external binaries, which makes it the
// default for tests and the service.
func NewGophersatSolver() Solver {
	return &gophersatSolver{}
}

func (solver *gophersatSolver) Solve(model Model, timeLimit time.Duration) (Result, error) {
	constrs := make([]maxsat.Constr, 0, len(model.Clauses))
	for _, clause := range model.Clauses {
		lits := make([]maxsat.Lit, 0, len(clause.Lits))
		for _, lit := range clause.Lits {
			if lit.Neg {
				lits = append(lits, maxsat.Not(lit.Var))
			} else {
				lits = append(lits, maxsat.Var(lit.Var))
			}
		}
		if clause.IsHard() {
			constrs = append(constrs, maxsat.HardClause(lits...))
		} else {
			constrs = append(constrs, maxsat.WeightedClause(lits, clause.Weight))
		}
	}

	start := time.Now()
	problem := maxsat.New(constrs...)

	type outcome struct {
		solution maxsat.Model
		cost     int
	}

	// The solver offers no cancellation hook, so the budget is enforced by
	// abandoning the goroutine once the deadline passes. One abandoned solve
	// per request at most; the goroutine exits when Solve returns.
	done := make(chan outcome, 1)
	go func() {
		solution, cost := problem.Solve()
		done <- outcome{solution: solution, cost: cost}
	}()

	timer := time.NewTimer(timeLimit)
	defer timer.Stop()

	select {
	case out := <-done:
		elapsed := time.Since(start)
		if out.solution == nil {
			return Result{Status: StatusInfeasible, WallTime: elapsed}, nil
		}
		values := make(map[string]bool, len(out.solution))
		for name, value := range out.solution {
			values[name] = value
		}
		return Result{
			Status:    StatusOptimal,
			Values:    values,
			Objective: model.TotalSoftWeight() - int64(out.cost),
			WallTime:  elapsed,
		}, nil
	case <-timer.C:
		return Result{Status: StatusTimeLimit, WallTime: time.Since(start)}, nil
	}
}

// evaluateObjective recomputes the satisfied soft weight of values against
// model. Used by backends whose output reports costs unreliably.
func evaluateObjective(model Model, values map[string]bool) (int64, error) {
	var objective int64
	for _, clause := range model.Clauses {
		satisfied := false
		for _, lit := range clause.Lits {
			value, ok := values[lit.Var]
			if !ok {
				return 0, fmt.Errorf("no binding for variable %q", lit.Var)
			}
			if value != lit.Neg {
				satisfied = true
				break
			}
		}
		if satisfied {
			objective += int64(clause.Weight)
		}
	}
	return objective, nil
}
