package model

// Wire formats used by the habit backend. Dates and times travel as plain
// strings without a timezone suffix; the client and backend share the local
// timezone.
const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04:05"
	TimeLayoutHHMM = "15:04"
)

// Task is the single persisted entity of the habit backend. ID is assigned
// server-side and stays zero until the task is persisted. StartTime and
// EndTime are HH:MM:SS strings, or null when the task is all-day.
type Task struct {
	ID           int     `json:"id,omitempty"`
	Title        string  `json:"title"`
	Description  string  `json:"description,omitempty"`
	ScheduleType string  `json:"schedule_type,omitempty"`
	Unit         string  `json:"unit,omitempty"`
	UnitValue    *int    `json:"unit_value"`
	StartDate    string  `json:"start_date"`
	StartTime    *string `json:"start_time"`
	EndTime      *string `json:"end_time"`
	AllDay       bool    `json:"all_day"`
	HabitType    string  `json:"habit_type,omitempty"`
	Notes        string  `json:"notes,omitempty"`
	CategoryID   *int    `json:"category_id"`
	Completed    bool    `json:"completed"`
}

// Schedule labels the backend understands. The client treats them as opaque;
// no recurrence expansion happens on this side.
const (
	ScheduleDaily         = "daily"
	ScheduleEveryOtherDay = "every_other_day"
	ScheduleWeekly        = "weekly"
	ScheduleMonthly       = "monthly"
	ScheduleYearly        = "yearly"
	ScheduleCustom        = "custom"
)

// ScheduleTypes lists the schedule labels offered by the form, in menu order.
func ScheduleTypes() []string {
	return []string{
		ScheduleDaily,
		ScheduleEveryOtherDay,
		ScheduleWeekly,
		ScheduleMonthly,
		ScheduleYearly,
		ScheduleCustom,
	}
}

// HabitTypes lists the habit categories offered by the form. Free text is
// still accepted when none of these fit.
func HabitTypes() []string {
	return []string{"health", "work", "study", "productivity", "learning", "social", "personal"}
}

// Units lists the measurement units offered by the form.
func Units() []string {
	return []string{"minutes", "hours", "days", "weeks", "months"}
}
