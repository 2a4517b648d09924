package solve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToWDIMACS(t *testing.T) {
	t.Run("serializes hard and soft clauses with top weight", func(t *testing.T) {
		// Arrange
		var m Model
		m.AddHard(Pos("a"), Neg("b"))
		m.AddSoft(3, Pos("b"))
		m.AddSoft(2, Neg("a"), Pos("c"))

		// Act
		wcnf, vars := m.ToWDIMACS()

		// Assert
		assert.Equal(t, []string{"a", "b", "c"}, vars)
		assert.Equal(t, "p wcnf 3 3 6\n6 1 -2 0\n3 2 0\n2 -1 3 0\n", wcnf)
	})

	t.Run("empty model yields a bare header", func(t *testing.T) {
		var m Model

		wcnf, vars := m.ToWDIMACS()

		assert.Empty(t, vars)
		assert.Equal(t, "p wcnf 0 0 1\n", wcnf)
	})
}

func TestModelVars(t *testing.T) {
	var m Model
	m.AddHard(Pos("z"), Neg("a"))
	m.AddSoft(1, Pos("a"), Pos("m"))

	assert.Equal(t, []string{"a", "m", "z"}, m.Vars())
}

func TestTotalSoftWeight(t *testing.T) {
	var m Model
	m.AddHard(Pos("a"))
	m.AddSoft(30, Pos("a"))
	m.AddSoft(1, Neg("a"))

	assert.Equal(t, int64(31), m.TotalSoftWeight())
}

func TestLitNegation(t *testing.T) {
	lit := Pos("x")

	assert.Equal(t, Neg("x"), lit.Negation())
	assert.Equal(t, lit, lit.Negation().Negation())
	assert.Equal(t, "-x", Neg("x").String())
}

func TestStatus(t *testing.T) {
	assert.Equal(t, "OPTIMAL", StatusOptimal.String())
	assert.Equal(t, "FEASIBLE", StatusFeasible.String())
	assert.Equal(t, "INFEASIBLE", StatusInfeasible.String())
	assert.Equal(t, "TIME_LIMIT_NO_SOLUTION", StatusTimeLimit.String())

	assert.True(t, StatusOptimal.HasSolution())
	assert.True(t, StatusFeasible.HasSolution())
	assert.False(t, StatusInfeasible.HasSolution())
	assert.False(t, StatusTimeLimit.HasSolution())
}

func TestParseExecOutput(t *testing.T) {
	var m Model
	m.AddHard(Pos("a"), Pos("b"))
	m.AddSoft(5, Neg("a"))
	vars := m.Vars()

	t.Run("optimum with split v lines", func(t *testing.T) {
		// Arrange
		output := "c comment\ns OPTIMUM FOUND\nv -1\nv 2 0\n"

		// Act
		result, err := parseExecOutput(output, vars, m)

		// Assert
		assert.Nil(t, err)
		assert.Equal(t, StatusOptimal, result.Status)
		assert.Equal(t, map[string]bool{"a": false, "b": true}, result.Values)
		assert.Equal(t, int64(5), result.Objective)
	})

	t.Run("unsatisfiable carries no assignment", func(t *testing.T) {
		result, err := parseExecOutput("s UNSATISFIABLE\n", vars, m)

		assert.Nil(t, err)
		assert.Equal(t, StatusInfeasible, result.Status)
		assert.Nil(t, result.Values)
	})

	t.Run("unknown maps to time limit", func(t *testing.T) {
		result, err := parseExecOutput("s UNKNOWN\n", vars, m)

		assert.Nil(t, err)
		assert.Equal(t, StatusTimeLimit, result.Status)
	})

	t.Run("search statistics from comment lines", func(t *testing.T) {
		output := "c |  conflicts: 42 |\nc |  decisions: 120 |\ns OPTIMUM FOUND\nv -1 2\n"

		result, err := parseExecOutput(output, vars, m)

		assert.Nil(t, err)
		assert.Equal(t, int64(42), result.Conflicts)
		assert.Equal(t, int64(120), result.Branches)
	})

	t.Run("missing status line is an error", func(t *testing.T) {
		_, err := parseExecOutput("c nothing here\n", vars, m)

		assert.NotNil(t, err)
	})

	t.Run("literal out of range is an error", func(t *testing.T) {
		_, err := parseExecOutput("s OPTIMUM FOUND\nv 1 2 7\n", vars, m)

		assert.NotNil(t, err)
	})
}

func TestEvaluateObjective(t *testing.T) {
	var m Model
	m.AddSoft(5, Pos("a"))
	m.AddSoft(2, Neg("a"), Pos("b"))
	m.AddSoft(9, Pos("c"))

	objective, err := evaluateObjective(m, map[string]bool{"a": true, "b": true, "c": false})

	assert.Nil(t, err)
	assert.Equal(t, int64(7), objective)
}
