package form

import (
	"strconv"
	"strings"
	"time"

	"habit-tracker/internal/model"
)

// FieldErrors maps a form field name to a human-readable problem. An empty
// map means the draft is submittable.
type FieldErrors map[string]string

// Messages shown next to the offending field.
const (
	msgTitleRequired = "Title is required"
	msgBadTime       = "Time must be 24-hour HH:MM"
	msgBadDate       = "Start date must be YYYY-MM-DD"
	msgBadUnitValue  = "Unit value must be a non-negative whole number"
	msgBadCategoryID = "Category ID must be a whole number"
	msgTimeOrder     = "End time must be after start time"
)

// Validate checks a draft against the form rules. All rules are evaluated
// independently so every violation is reported in one pass; nothing
// short-circuits.
func Validate(d Draft) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(d.Title) == "" {
		errs[FieldTitle] = msgTitleRequired
	}

	if strings.TrimSpace(d.StartDate) != "" {
		if _, err := time.Parse(model.DateLayout, strings.TrimSpace(d.StartDate)); err != nil {
			errs[FieldStartDate] = msgBadDate
		}
	}

	startOK := true
	if strings.TrimSpace(d.StartTime) != "" {
		if _, err := parseClock(d.StartTime); err != nil {
			errs[FieldStartTime] = msgBadTime
			startOK = false
		}
	}
	endOK := true
	if strings.TrimSpace(d.EndTime) != "" {
		if _, err := parseClock(d.EndTime); err != nil {
			errs[FieldEndTime] = msgBadTime
			endOK = false
		}
	}

	if raw := strings.TrimSpace(d.UnitValue); raw != "" {
		if n, err := strconv.Atoi(raw); err != nil || n < 0 {
			errs[FieldUnitValue] = msgBadUnitValue
		}
	}

	if raw := strings.TrimSpace(d.CategoryID); raw != "" {
		if _, err := strconv.Atoi(raw); err != nil {
			errs[FieldCategoryID] = msgBadCategoryID
		}
	}

	// Ordering only applies to timed tasks with both ends present and parseable.
	if !d.AllDay && startOK && endOK &&
		strings.TrimSpace(d.StartTime) != "" && strings.TrimSpace(d.EndTime) != "" {
		start, _ := parseClock(d.StartTime)
		end, _ := parseClock(d.EndTime)
		if end <= start {
			errs[FieldEndTime] = msgTimeOrder
		}
	}

	return errs
}

// Serialize renders a draft into the exact wire shape the backend expects:
// YYYY-MM-DD dates, zero-padded HH:MM:SS times (null when all-day), and
// unit_value/category_id as integers or null. It assumes the draft already
// passed Validate; parse failures past that point are programmer error and
// the offending field degrades to its empty form rather than panicking.
func Serialize(d Draft) model.Task {
	task := model.Task{
		ID:           d.TaskID,
		Title:        strings.TrimSpace(d.Title),
		Description:  strings.TrimSpace(d.Description),
		ScheduleType: strings.TrimSpace(d.ScheduleType),
		Unit:         strings.TrimSpace(d.Unit),
		StartDate:    strings.TrimSpace(d.StartDate),
		AllDay:       d.AllDay,
		HabitType:    strings.TrimSpace(d.HabitType),
		Notes:        strings.TrimSpace(d.Notes),
		Completed:    d.Completed,
	}

	if !d.AllDay {
		task.StartTime = wireTime(d.StartTime)
		task.EndTime = wireTime(d.EndTime)
	}

	if raw := strings.TrimSpace(d.UnitValue); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			task.UnitValue = &n
		}
	}
	if raw := strings.TrimSpace(d.CategoryID); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			task.CategoryID = &n
		}
	}

	return task
}

// parseClock parses a 24-hour HH:MM string into minutes since midnight.
// HH:MM:SS is accepted too so persisted values round-trip through edits.
func parseClock(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	t, err := time.Parse(model.TimeLayoutHHMM, raw)
	if err != nil {
		t, err = time.Parse(model.TimeLayout, raw)
		if err != nil {
			return 0, err
		}
	}
	return t.Hour()*60 + t.Minute(), nil
}

func wireTime(raw string) *string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	minutes, err := parseClock(raw)
	if err != nil {
		return nil
	}
	v := time.Date(0, 1, 1, minutes/60, minutes%60, 0, 0, time.UTC).Format(model.TimeLayout)
	return &v
}
