package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"habit-tracker/internal/calendar"
)

func TestMonthPickerDialog(t *testing.T) {
	t.Run("cancel leaves the window untouched", func(t *testing.T) {
		p := calendar.NewMonthPicker(2024, time.June)

		p.Open()
		p.SelectMonth(time.December)
		p.SelectYear(2025)
		p.Cancel()

		year, month := p.Visible()
		assert.Equal(t, 2024, year)
		assert.Equal(t, time.June, month)
		assert.False(t, p.IsOpen())
	})

	t.Run("go applies the pending selection", func(t *testing.T) {
		p := calendar.NewMonthPicker(2024, time.June)

		p.Open()
		p.SelectMonth(time.December)
		p.SelectYear(2025)
		p.Go()

		year, month := p.Visible()
		assert.Equal(t, 2025, year)
		assert.Equal(t, time.December, month)
		assert.False(t, p.IsOpen())
	})

	t.Run("open seeds pending from the visible window", func(t *testing.T) {
		p := calendar.NewMonthPicker(2024, time.June)

		p.Open()
		year, month := p.Pending()
		assert.Equal(t, 2024, year)
		assert.Equal(t, time.June, month)

		// Reopening keeps an in-flight selection.
		p.SelectMonth(time.March)
		p.Open()
		_, month = p.Pending()
		assert.Equal(t, time.March, month)
	})

	t.Run("selections are ignored while closed", func(t *testing.T) {
		p := calendar.NewMonthPicker(2024, time.June)

		p.SelectMonth(time.December)
		p.SelectYear(2030)
		p.Go()

		year, month := p.Visible()
		assert.Equal(t, 2024, year)
		assert.Equal(t, time.June, month)
	})
}

func TestMonthPickerNavigation(t *testing.T) {
	p := calendar.NewMonthPicker(2024, time.December)

	p.Next()
	year, month := p.Visible()
	assert.Equal(t, 2025, year)
	assert.Equal(t, time.January, month)

	p.Prev()
	p.Prev()
	year, month = p.Visible()
	assert.Equal(t, 2024, year)
	assert.Equal(t, time.November, month)
}

func TestDaysIn(t *testing.T) {
	assert.Equal(t, 29, calendar.DaysIn(2024, time.February))
	assert.Equal(t, 28, calendar.DaysIn(2023, time.February))
	assert.Equal(t, 31, calendar.DaysIn(2024, time.January))
	assert.Equal(t, 30, calendar.DaysIn(2024, time.June))
}
