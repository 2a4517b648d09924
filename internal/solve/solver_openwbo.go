package solve

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

const openwboPath = "open-wbo"

// Grace period added on top of the solver's own budget before the process is
// killed outright.
const execGrace = 5 * time.Second

type execSolver struct {
	path string
	args func(timeLimit time.Duration) []string
}

// NewOpenWBOSolver returns a backend that feeds the model in WDIMACS format
// to an open-wbo compatible MaxSAT solver on its standard input.
func NewOpenWBOSolver() Solver {
	return NewOpenWBOSolverAt(openwboPath)
}

// NewOpenWBOSolverAt is NewOpenWBOSolver with an explicit binary location.
func NewOpenWBOSolverAt(path string) Solver {
	return NewExecSolver(path, func(timeLimit time.Duration) []string {
		seconds := int(timeLimit / time.Second)
		if seconds < 1 {
			seconds = 1
		}
		return []string{fmt.Sprintf("-cpu-lim=%d", seconds)}
	})
}

// NewExecSolver returns a backend invoking an arbitrary MaxSAT solver binary
// that follows the MaxSAT Evaluation output conventions (s/o/v lines).
func NewExecSolver(path string, args func(timeLimit time.Duration) []string) Solver {
	return &execSolver{path: path, args: args}
}

func (solver *execSolver) Solve(model Model, timeLimit time.Duration) (Result, error) {
	wdimacs, vars := model.ToWDIMACS()

	ctx, cancel := context.WithTimeout(context.Background(), timeLimit+execGrace)
	defer cancel()

	var args []string
	if solver.args != nil {
		args = solver.args(timeLimit)
	}

	cmd := exec.CommandContext(ctx, solver.path, args...)
	cmd.Stdin = strings.NewReader(wdimacs)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	// MaxSAT solvers signal their verdict through the exit code as well as
	// the s-line; any of 0/10/20/30 means the output is parseable.
	if err != nil && !parseableExit(cmd.ProcessState.ExitCode()) {
		return Result{}, fmt.Errorf("an error occurred during %v execution: %v : %v", solver.path, err, stderr.String())
	}

	result, err := parseExecOutput(stdout.String(), vars, model)
	if err != nil {
		return Result{}, err
	}
	result.WallTime = elapsed
	return result, nil
}

func parseableExit(code int) bool {
	return code == 0 || code == 10 || code == 20 || code == 30
}
