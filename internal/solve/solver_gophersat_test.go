package solve

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGophersatSolve(t *testing.T) {
	solver := NewGophersatSolver()

	t.Run("prefers the heavier soft clause", func(t *testing.T) {
		// Arrange: a and b exclude each other, b is worth more.
		var m Model
		m.AddHard(Neg("a"), Neg("b"))
		m.AddSoft(10, Pos("a"))
		m.AddSoft(30, Pos("b"))

		// Act
		result, err := solver.Solve(m, 10*time.Second)

		// Assert
		assert.Nil(t, err)
		assert.Equal(t, StatusOptimal, result.Status)
		assert.False(t, result.Values["a"])
		assert.True(t, result.Values["b"])
		assert.Equal(t, int64(30), result.Objective)
	})

	t.Run("contradictory hard clauses are infeasible", func(t *testing.T) {
		var m Model
		m.AddHard(Pos("a"))
		m.AddHard(Neg("a"))

		result, err := solver.Solve(m, 10*time.Second)

		assert.Nil(t, err)
		assert.Equal(t, StatusInfeasible, result.Status)
		assert.Nil(t, result.Values)
	})

	t.Run("satisfies every compatible soft clause", func(t *testing.T) {
		var m Model
		m.AddHard(Pos("a"), Pos("b"))
		m.AddSoft(10, Pos("a"))
		m.AddSoft(10, Pos("b"))

		result, err := solver.Solve(m, 10*time.Second)

		assert.Nil(t, err)
		assert.Equal(t, StatusOptimal, result.Status)
		assert.Equal(t, int64(20), result.Objective)
		assert.True(t, result.Values["a"])
		assert.True(t, result.Values["b"])
	})
}
