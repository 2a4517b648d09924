package solve

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// parseExecOutput interprets MaxSAT Evaluation style solver output: an
// "s" status line, optional "o" cost lines (the last one wins) and one or
// more "v" lines carrying the assignment as signed DIMACS literals.
func parseExecOutput(output string, vars []string, model Model) (Result, error) {
	lines := strings.Split(output, "\n")

	statusLine, ok := lo.Find(lines, func(line string) bool {
		return strings.HasPrefix(line, "s ")
	})
	if !ok {
		return Result{}, fmt.Errorf("no status line in solver output")
	}

	var result Result
	switch strings.TrimSpace(statusLine[2:]) {
	case "OPTIMUM FOUND":
		result.Status = StatusOptimal
	case "SATISFIABLE":
		result.Status = StatusFeasible
	case "UNSATISFIABLE":
		result.Status = StatusInfeasible
	case "UNKNOWN":
		result.Status = StatusTimeLimit
	default:
		return Result{}, fmt.Errorf("unrecognized solver status line: %q", statusLine)
	}

	result.Conflicts = parseStatLine(lines, "conflicts")
	result.Branches = parseStatLine(lines, "decisions")

	if !result.Status.HasSolution() {
		return result, nil
	}

	literals := parseValueLines(lines)
	if len(literals) == 0 {
		return Result{}, fmt.Errorf("solver reported %v but no v line", result.Status)
	}

	result.Values = make(map[string]bool, len(vars))
	for _, name := range vars {
		result.Values[name] = false
	}
	for _, literal := range literals {
		index := literal
		if index < 0 {
			index = -index
		}
		if index < 1 || int(index) > len(vars) {
			return Result{}, fmt.Errorf("literal %d out of range in solver output", literal)
		}
		result.Values[vars[index-1]] = literal > 0
	}

	objective, err := evaluateObjective(model, result.Values)
	if err != nil {
		return Result{}, err
	}
	result.Objective = objective

	return result, nil
}

func parseValueLines(lines []string) []int64 {
	return lo.FilterMap(
		lo.Reduce(
			lo.Filter(lines, func(line string, _ int) bool {
				return strings.HasPrefix(line, "v ")
			}),
			func(fields []string, line string, _ int) []string {
				return append(fields, strings.Fields(line[2:])...)
			},
			[]string{},
		),
		func(field string, _ int) (int64, bool) {
			value, err := strconv.ParseInt(field, 10, 64)
			if err != nil || value == 0 {
				return 0, false
			}
			return value, true
		},
	)
}

// parseStatLine pulls a search statistic out of the solver's comment lines,
// e.g. "c |  Conflicts: 1234 ...". Returns 0 when the solver does not print
// the statistic; the caller passes it through verbatim either way.
func parseStatLine(lines []string, name string) int64 {
	for _, line := range lines {
		if !strings.HasPrefix(line, "c") {
			continue
		}
		lowered := strings.ToLower(line)
		pos := strings.Index(lowered, name)
		if pos < 0 {
			continue
		}
		for _, field := range strings.Fields(line[pos+len(name):]) {
			trimmed := strings.Trim(field, ":|,")
			if trimmed == "" {
				continue
			}
			value, err := strconv.ParseInt(trimmed, 10, 64)
			if err == nil {
				return value
			}
			break
		}
	}
	return 0
}
