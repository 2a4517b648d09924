package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/coursegrid/scheduler/internal/solve"
)

// tinySpace builds a Monday-only period grid with the given number of slots,
// small enough to force the conflicts under test.
func tinySpace(slots int) Space {
	labels := make([]string, slots)
	for i := range labels {
		labels[i] = NewPeriodSpace().SlotsFor(Monday)[i].Label
	}
	return Space{kind: GridPeriod, perDay: map[Day][]TimeSlot{Monday: makeSlots(labels)}}
}

func solvePeriod(t *testing.T, request *Request, space Space, cfg Config) *Outcome {
	t.Helper()
	vs := GenerateVariables(request, space, EncodingPeriod)
	m := newEncoder(cfg).Encode(vs)
	result, err := solve.NewGophersatSolver().Solve(m, 10*time.Second)
	assert.Nil(t, err)
	return decode(vs, result)
}

func TestPeriodEncodingRoomExclusivity(t *testing.T) {
	// Arrange: two courses, one slot, one room. Only the higher priority
	// course can be placed.
	request, err := NewRequestBuilder().
		AddCourse(Course{Code: "CS101", Teacher: "turing", Priority: 5}).
		AddCourse(Course{Code: "CS102", Teacher: "hopper", Priority: 1}).
		AddRoom(Room{ID: "A"}).
		Build()
	assert.Nil(t, err)

	// Act
	outcome := solvePeriod(t, request, tinySpace(1), Config{})

	// Assert
	assert.Equal(t, []string{"CS101"}, outcome.Scheduled)
	assert.Equal(t, []UnscheduledCourse{{Code: "CS102", Reason: ReasonNotSelected}}, outcome.Unscheduled)
	assert.Equal(t, int64(5*priorityScale), outcome.Objective)
}

func TestPeriodEncodingTeacherExclusivity(t *testing.T) {
	// Two rooms are free, but one teacher cannot be in both; the higher
	// priority course wins the only slot.
	request, err := NewRequestBuilder().
		AddCourse(Course{Code: "CS101", Teacher: "turing", Priority: 5}).
		AddCourse(Course{Code: "CS102", Teacher: "turing", Priority: 1}).
		AddRoom(Room{ID: "A"}).
		AddRoom(Room{ID: "B"}).
		Build()
	assert.Nil(t, err)

	outcome := solvePeriod(t, request, tinySpace(1), Config{})

	assert.Equal(t, []string{"CS101"}, outcome.Scheduled)
	assert.Equal(t, []UnscheduledCourse{{Code: "CS102", Reason: ReasonNotSelected}}, outcome.Unscheduled)
}

func TestPeriodEncodingSharedRoomAcrossSlots(t *testing.T) {
	// One room, two slots: both courses land at different times.
	request, err := NewRequestBuilder().
		AddCourse(Course{Code: "CS101", Teacher: "turing"}).
		AddCourse(Course{Code: "CS102", Teacher: "hopper"}).
		AddRoom(Room{ID: "A"}).
		Build()
	assert.Nil(t, err)

	outcome := solvePeriod(t, request, tinySpace(2), Config{})

	assert.Len(t, outcome.Scheduled, 2)
	for _, occupancies := range outcome.Schedule["mon"] {
		assert.Len(t, occupancies, 1)
	}
}

func TestPeriodEncodingDepartmentSpread(t *testing.T) {
	request, err := NewRequestBuilder().
		AddCourse(Course{Code: "CS101", Teacher: "turing", Department: "cs"}).
		AddCourse(Course{Code: "CS102", Teacher: "hopper", Department: "cs"}).
		AddRoom(Room{ID: "A"}).
		AddRoom(Room{ID: "B"}).
		Build()
	assert.Nil(t, err)

	t.Run("hard spread drops one course in a single slot", func(t *testing.T) {
		outcome := solvePeriod(t, request, tinySpace(1), Config{Spread: SpreadHard})

		assert.Len(t, outcome.Scheduled, 1)
	})

	t.Run("soft spread schedules both and pays the penalty", func(t *testing.T) {
		outcome := solvePeriod(t, request, tinySpace(1), Config{Spread: SpreadSoft})

		assert.Len(t, outcome.Scheduled, 2)
		// Both priorities land; the unit penalty cannot outweigh them.
		assert.GreaterOrEqual(t, outcome.Objective, int64(2*DefaultPriority*priorityScale))
	})

	t.Run("a second slot satisfies hard spread", func(t *testing.T) {
		outcome := solvePeriod(t, request, tinySpace(2), Config{Spread: SpreadHard})

		assert.Len(t, outcome.Scheduled, 2)
		assert.Nil(t, Verify(request, Config{Spread: SpreadHard}, outcome))
	})
}

func TestPeriodEncodingRequireAll(t *testing.T) {
	request, err := NewRequestBuilder().
		AddCourse(Course{Code: "CS101", Teacher: "turing"}).
		AddCourse(Course{Code: "CS102", Teacher: "hopper"}).
		AddRoom(Room{ID: "A"}).
		Build()
	assert.Nil(t, err)

	t.Run("strict quota with too few slots is infeasible", func(t *testing.T) {
		outcome := solvePeriod(t, request, tinySpace(1), Config{RequireAll: true})

		assert.False(t, outcome.Success)
		assert.Equal(t, "INFEASIBLE", outcome.Status)
		assert.Empty(t, outcome.Scheduled)
		assert.Len(t, outcome.Unscheduled, 2)
	})

	t.Run("strict quota with enough slots places everything", func(t *testing.T) {
		outcome := solvePeriod(t, request, tinySpace(2), Config{RequireAll: true})

		assert.True(t, outcome.Success)
		assert.Len(t, outcome.Scheduled, 2)
	})
}
