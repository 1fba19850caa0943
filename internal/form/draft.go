package form

import (
	"strconv"
	"strings"

	"habit-tracker/internal/model"
)

// Field names of the habit form. Validation errors are keyed by these.
const (
	FieldTitle        = "title"
	FieldDescription  = "description"
	FieldScheduleType = "schedule_type"
	FieldUnit         = "unit"
	FieldUnitValue    = "unit_value"
	FieldStartDate    = "start_date"
	FieldStartTime    = "start_time"
	FieldEndTime      = "end_time"
	FieldAllDay       = "all_day"
	FieldHabitType    = "habit_type"
	FieldNotes        = "notes"
	FieldCategoryID   = "category_id"
)

// Draft is the in-memory, not-yet-submitted copy of a task being created or
// edited. Every field mirrors a text input, so values stay strings until
// Serialize turns them into the wire shape. Times are entered as 24-hour
// HH:MM; a combined "time" input from older screens lands in StartTime.
type Draft struct {
	TaskID       int // 0 until the draft edits an existing task
	Title        string
	Description  string
	ScheduleType string
	Unit         string
	UnitValue    string
	StartDate    string // YYYY-MM-DD
	StartTime    string // HH:MM
	EndTime      string // HH:MM
	AllDay       bool
	HabitType    string
	Notes        string
	CategoryID   string
	Completed    bool
}

// DraftFromTask builds an editable draft from a persisted task, trimming wire
// times (HH:MM:SS) down to the HH:MM the form works with.
func DraftFromTask(t model.Task) Draft {
	d := Draft{
		TaskID:       t.ID,
		Title:        t.Title,
		Description:  t.Description,
		ScheduleType: t.ScheduleType,
		Unit:         t.Unit,
		StartDate:    t.StartDate,
		AllDay:       t.AllDay,
		HabitType:    t.HabitType,
		Notes:        t.Notes,
		Completed:    t.Completed,
	}
	if t.UnitValue != nil {
		d.UnitValue = strconv.Itoa(*t.UnitValue)
	}
	if t.CategoryID != nil {
		d.CategoryID = strconv.Itoa(*t.CategoryID)
	}
	if t.StartTime != nil {
		d.StartTime = shortTime(*t.StartTime)
	}
	if t.EndTime != nil {
		d.EndTime = shortTime(*t.EndTime)
	}
	return d
}

func shortTime(v string) string {
	if len(v) >= 5 {
		return v[:5]
	}
	return strings.TrimSpace(v)
}
