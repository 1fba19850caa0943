package calendar_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habit-tracker/internal/calendar"
	"habit-tracker/internal/model"
)

func strPtr(s string) *string { return &s }

func TestProjectEvent(t *testing.T) {
	tests := []struct {
		name      string
		task      model.Task
		wantStart string
		wantEnd   string
	}{
		{
			name:      "no time at all gets the default hour window",
			task:      model.Task{StartDate: "2024-06-01"},
			wantStart: "2024-06-01 09:00",
			wantEnd:   "2024-06-01 10:00",
		},
		{
			name:      "start time only collapses to a zero-duration event",
			task:      model.Task{StartDate: "2024-06-01", StartTime: strPtr("14:30:00")},
			wantStart: "2024-06-01 14:30",
			wantEnd:   "2024-06-01 14:30",
		},
		{
			name:      "start and end times both honored",
			task:      model.Task{StartDate: "2024-06-01", StartTime: strPtr("08:00:00"), EndTime: strPtr("09:15:00")},
			wantStart: "2024-06-01 08:00",
			wantEnd:   "2024-06-01 09:15",
		},
		{
			name:      "end time only keeps the default start",
			task:      model.Task{StartDate: "2024-06-01", EndTime: strPtr("11:00:00")},
			wantStart: "2024-06-01 09:00",
			wantEnd:   "2024-06-01 11:00",
		},
		{
			name:      "all-day ignores stored times",
			task:      model.Task{StartDate: "2024-06-01", AllDay: true, StartTime: strPtr("14:30:00")},
			wantStart: "2024-06-01 09:00",
			wantEnd:   "2024-06-01 10:00",
		},
		{
			name:      "short clock format accepted",
			task:      model.Task{StartDate: "2024-06-01", StartTime: strPtr("07:45")},
			wantStart: "2024-06-01 07:45",
			wantEnd:   "2024-06-01 07:45",
		},
		{
			name:      "unparseable date still projects",
			task:      model.Task{StartDate: "not-a-date", StartTime: strPtr("14:30:00")},
			wantStart: "0001-01-01 14:30",
			wantEnd:   "0001-01-01 14:30",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := calendar.ProjectEvent(tt.task)

			const layout = "2006-01-02 15:04"
			assert.Equal(t, tt.wantStart, ev.Start.Format(layout))
			assert.Equal(t, tt.wantEnd, ev.End.Format(layout))
			assert.Equal(t, tt.task.AllDay, ev.AllDay)
		})
	}
}

type fakeLister struct {
	tasks []model.Task
	err   error
}

func (f *fakeLister) ListTasks(ctx context.Context) ([]model.Task, error) {
	return f.tasks, f.err
}

func TestProjectorRefresh(t *testing.T) {
	lister := &fakeLister{tasks: []model.Task{
		{ID: 1, Title: "Evening walk", StartDate: "2024-06-02", StartTime: strPtr("19:00:00")},
		{ID: 2, Title: "Morning run", StartDate: "2024-06-01", StartTime: strPtr("07:00:00")},
		{ID: 3, Title: "Read", StartDate: "2024-06-01"},
	}}
	p := calendar.NewProjector(lister)

	require.NoError(t, p.Refresh(context.Background()))

	events := p.Events()
	require.Len(t, events, 3)
	assert.Equal(t, "Morning run", events[0].Title)
	assert.Equal(t, "Read", events[1].Title)
	assert.Equal(t, "Evening walk", events[2].Title)

	// A failed refresh keeps the previous projection intact.
	lister.err = errors.New("backend down")
	require.Error(t, p.Refresh(context.Background()))
	assert.Len(t, p.Events(), 3)
}

func TestProjectorDayQueries(t *testing.T) {
	lister := &fakeLister{tasks: []model.Task{
		{ID: 1, Title: "Run", StartDate: "2024-06-01", StartTime: strPtr("07:00:00")},
		{ID: 2, Title: "Read", StartDate: "2024-06-01"},
		{ID: 3, Title: "Call mom", StartDate: "2024-06-15"},
		{ID: 4, Title: "Next month", StartDate: "2024-07-01"},
	}}
	p := calendar.NewProjector(lister)
	require.NoError(t, p.Refresh(context.Background()))

	onFirst := p.EventsOn(2024, time.June, 1)
	require.Len(t, onFirst, 2)
	assert.Equal(t, "Run", onFirst[0].Title)

	assert.Empty(t, p.EventsOn(2024, time.June, 2))

	counts := p.EventCounts(2024, time.June)
	assert.Equal(t, map[int]int{1: 2, 15: 1}, counts)
}
