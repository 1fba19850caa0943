package calendar

import "time"

type pickerState int

const (
	stateClosed pickerState = iota
	stateOpen
)

// MonthPicker is the month/year navigation control of the calendar screen.
// It owns the visible window and a two-state picker dialog: while open, month
// and year selections accumulate in a pending pair; Go applies them to the
// visible window and closes, Cancel closes and leaves the window untouched.
type MonthPicker struct {
	state pickerState

	visibleYear  int
	visibleMonth time.Month

	pendingYear  int
	pendingMonth time.Month
}

// NewMonthPicker starts closed on the given window.
func NewMonthPicker(year int, month time.Month) *MonthPicker {
	return &MonthPicker{visibleYear: year, visibleMonth: month}
}

// Visible returns the window the calendar currently shows.
func (p *MonthPicker) Visible() (int, time.Month) {
	return p.visibleYear, p.visibleMonth
}

func (p *MonthPicker) IsOpen() bool {
	return p.state == stateOpen
}

// Open shows the dialog, seeding the pending selection from the visible
// window. Opening an already open picker keeps the pending selection.
func (p *MonthPicker) Open() {
	if p.state == stateOpen {
		return
	}
	p.pendingYear = p.visibleYear
	p.pendingMonth = p.visibleMonth
	p.state = stateOpen
}

// Pending returns the selection accumulated while the dialog is open.
func (p *MonthPicker) Pending() (int, time.Month) {
	return p.pendingYear, p.pendingMonth
}

// SelectMonth records a month choice; no effect while closed.
func (p *MonthPicker) SelectMonth(month time.Month) {
	if p.state != stateOpen || month < time.January || month > time.December {
		return
	}
	p.pendingMonth = month
}

// SelectYear records a year choice; no effect while closed.
func (p *MonthPicker) SelectYear(year int) {
	if p.state != stateOpen {
		return
	}
	p.pendingYear = year
}

// Go applies the pending selection to the visible window and closes.
func (p *MonthPicker) Go() {
	if p.state != stateOpen {
		return
	}
	p.visibleYear = p.pendingYear
	p.visibleMonth = p.pendingMonth
	p.state = stateClosed
}

// Cancel discards the pending selection and closes; the visible window is
// unchanged from before Open.
func (p *MonthPicker) Cancel() {
	p.state = stateClosed
}

// Next moves the visible window one month forward.
func (p *MonthPicker) Next() {
	p.visibleYear, p.visibleMonth = shift(p.visibleYear, p.visibleMonth, 1)
}

// Prev moves the visible window one month back.
func (p *MonthPicker) Prev() {
	p.visibleYear, p.visibleMonth = shift(p.visibleYear, p.visibleMonth, -1)
}

func shift(year int, month time.Month, months int) (int, time.Month) {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, months, 0)
	return t.Year(), t.Month()
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
