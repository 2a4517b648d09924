package model

import "fmt"

// Day is a weekday of the scheduling week.
type Day int

const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
)

var dayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}
var dayKeys = [...]string{"mon", "tue", "wed", "thu", "fri"}

func (d Day) String() string {
	return dayNames[d]
}

// Key is the short day identifier used in calendars and wire responses.
func (d Day) Key() string {
	return dayKeys[d]
}

// Pattern restricts which days a course may occupy.
type Pattern string

const (
	PatternMWF Pattern = "MWF"
	PatternTTh Pattern = "TTh"
	PatternAny Pattern = "any"
)

var mwfDays = []Day{Monday, Wednesday, Friday}
var tthDays = []Day{Tuesday, Thursday}
var allDays = []Day{Monday, Tuesday, Wednesday, Thursday, Friday}

// Days returns the subset of the week the pattern admits.
func (p Pattern) Days() []Day {
	switch p {
	case PatternMWF:
		return mwfDays
	case PatternTTh:
		return tthDays
	default:
		return allDays
	}
}

// ParsePattern normalizes user-facing pattern strings. The empty string maps
// to PatternAny, matching the request defaulting rules.
func ParsePattern(s string) (Pattern, error) {
	switch s {
	case "MWF", "mwf":
		return PatternMWF, nil
	case "TTh", "TTH", "tth":
		return PatternTTh, nil
	case "any", "ANY", "Any", "":
		return PatternAny, nil
	default:
		return "", fmt.Errorf("unknown day pattern %q", s)
	}
}

// TimeSlot is one position in a day's grid.
type TimeSlot struct {
	Index int
	Label string
}

// GridKind selects between the two canonical slot grids.
type GridKind int

const (
	// GridPeriod uses the institutional class periods: 50-minute slots on
	// MWF days and 75-minute slots on TTh days.
	GridPeriod GridKind = iota
	// GridFine uses uniform 30-minute ticks across one operating window on
	// every weekday, for courses with heterogeneous durations.
	GridFine
)

// The canonical class-period tables.
var mwfPeriods = []string{
	"08:00-08:50", "09:00-09:50", "10:00-10:50", "11:00-11:50",
	"12:00-12:50", "13:00-13:50", "14:00-14:50", "15:00-15:50",
	"16:00-16:50", "17:00-17:50",
}

var tthPeriods = []string{
	"08:00-09:15", "09:30-10:45", "11:00-12:15", "12:30-13:45",
	"14:00-15:15", "15:30-16:45", "17:00-18:15",
}

// Fine grid operating window: 08:00 to 18:00 in 30-minute ticks.
const (
	fineOpeningHour = 8
	fineTicksPerDay = 20
)

// Space is the fixed universe of (day, time slot) pairs for one solve
// request. It must not change for the lifetime of the request.
type Space struct {
	kind   GridKind
	perDay map[Day][]TimeSlot
}

// NewPeriodSpace builds the class-period slot space: MWF days carry the MWF
// period table, TTh days the TTh table.
func NewPeriodSpace() Space {
	perDay := make(map[Day][]TimeSlot, len(allDays))
	for _, day := range mwfDays {
		perDay[day] = makeSlots(mwfPeriods)
	}
	for _, day := range tthDays {
		perDay[day] = makeSlots(tthPeriods)
	}
	return Space{kind: GridPeriod, perDay: perDay}
}

// NewFineSpace builds the uniform fine-grained slot space over the operating
// window on every weekday.
func NewFineSpace() Space {
	labels := make([]string, fineTicksPerDay)
	for i := range labels {
		labels[i] = fmt.Sprintf("%02d:%02d", fineOpeningHour+i/2, (i%2)*30)
	}

	perDay := make(map[Day][]TimeSlot, len(allDays))
	for _, day := range allDays {
		perDay[day] = makeSlots(labels)
	}
	return Space{kind: GridFine, perDay: perDay}
}

func makeSlots(labels []string) []TimeSlot {
	slots := make([]TimeSlot, len(labels))
	for i, label := range labels {
		slots[i] = TimeSlot{Index: i, Label: label}
	}
	return slots
}

func (s Space) Kind() GridKind {
	return s.kind
}

// SlotsFor returns the day's grid. Days outside the space yield nil.
func (s Space) SlotsFor(day Day) []TimeSlot {
	return s.perDay[day]
}

// DayLength returns the number of slots in the day's grid.
func (s Space) DayLength(day Day) int {
	return len(s.perDay[day])
}

// SpaceFor returns the canonical space backing an encoding.
func SpaceFor(encoding Encoding) Space {
	if encoding == EncodingFine {
		return NewFineSpace()
	}
	return NewPeriodSpace()
}
