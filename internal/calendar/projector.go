package calendar

import (
	"context"
	"sort"
	"sync"
	"time"

	"habit-tracker/internal/model"
)

// Default time-of-day sentinels for tasks that carry no clock time at all.
const (
	defaultStartHour = 9
	defaultEndHour   = 10
)

// Event is a calendar-displayable projection of a task. It exists for
// rendering only and is never sent back to the backend.
type Event struct {
	TaskID int
	Title  string
	AllDay bool
	Start  time.Time
	End    time.Time
}

// ProjectEvent maps a task onto a displayable event. The mapping is total:
// however sparse the task, the event gets well-defined instants.
//
//   - Start combines start_date with start_time, falling back to 09:00.
//   - End combines start_date with end_time; when end_time is absent it falls
//     back to the start time (a zero-duration event), and only a task with no
//     clock time at all gets the 09:00-10:00 sentinel pair.
//
// Tasks whose times violate the form's ordering rule (created outside
// validation) project to zero-or-negative-duration events and are rendered
// as-is.
func ProjectEvent(t model.Task) Event {
	day := parseDay(t.StartDate)

	start := day.Add(time.Duration(defaultStartHour) * time.Hour)
	end := day.Add(time.Duration(defaultEndHour) * time.Hour)

	if !t.AllDay {
		if d, ok := clockOffset(t.StartTime); ok {
			start = day.Add(d)
			end = start
		}
		if d, ok := clockOffset(t.EndTime); ok {
			end = day.Add(d)
		}
	}

	return Event{
		TaskID: t.ID,
		Title:  t.Title,
		AllDay: t.AllDay,
		Start:  start,
		End:    end,
	}
}

// parseDay turns a YYYY-MM-DD string into midnight of that day. Unparseable
// dates (possible only for data created outside the form) collapse onto the
// zero date so the projection stays total and deterministic.
func parseDay(raw string) time.Time {
	d, err := time.ParseInLocation(model.DateLayout, raw, time.Local)
	if err != nil {
		return time.Date(1, time.January, 1, 0, 0, 0, 0, time.Local)
	}
	return d
}

func clockOffset(raw *string) (time.Duration, bool) {
	if raw == nil || *raw == "" {
		return 0, false
	}
	t, err := time.Parse(model.TimeLayout, *raw)
	if err != nil {
		t, err = time.Parse(model.TimeLayoutHHMM, *raw)
		if err != nil {
			return 0, false
		}
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, true
}

// TaskLister is the read slice of the backend client the projector needs.
type TaskLister interface {
	ListTasks(ctx context.Context) ([]model.Task, error)
}

// Projector keeps the projected event set for the calendar screen. Refresh
// replaces the whole set atomically; readers never observe a partial update.
type Projector struct {
	lister TaskLister

	mu     sync.RWMutex
	events []Event
}

func NewProjector(lister TaskLister) *Projector {
	return &Projector{lister: lister}
}

// Refresh refetches the task list and re-projects every task. On error the
// previous event set stays in place.
func (p *Projector) Refresh(ctx context.Context) error {
	tasks, err := p.lister.ListTasks(ctx)
	if err != nil {
		return err
	}

	events := make([]Event, 0, len(tasks))
	for _, t := range tasks {
		events = append(events, ProjectEvent(t))
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Start.Before(events[j].Start)
	})

	p.mu.Lock()
	p.events = events
	p.mu.Unlock()
	return nil
}

// Events returns a copy of the current projection, sorted by start.
func (p *Projector) Events() []Event {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]Event, len(p.events))
	copy(out, p.events)
	return out
}

// EventsOn returns the events starting on the given calendar day.
func (p *Projector) EventsOn(year int, month time.Month, day int) []Event {
	p.mu.RLock()
	defer p.mu.RUnlock()
	var out []Event
	for _, ev := range p.events {
		y, m, d := ev.Start.Date()
		if y == year && m == month && d == day {
			out = append(out, ev)
		}
	}
	return out
}

// EventCounts returns, for the given month, how many events start on each day.
func (p *Projector) EventCounts(year int, month time.Month) map[int]int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	counts := make(map[int]int)
	for _, ev := range p.events {
		y, m, d := ev.Start.Date()
		if y == year && m == month {
			counts[d]++
		}
	}
	return counts
}
