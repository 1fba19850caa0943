package form

import (
	"context"
	"strings"

	"habit-tracker/internal/model"
)

// TaskWriter is the slice of the backend client Submit needs.
type TaskWriter interface {
	CreateTask(ctx context.Context, task model.Task) (*model.Task, error)
	UpdateTask(ctx context.Context, id int, task model.Task) (*model.Task, error)
}

// Controller owns one mutable draft and its recorded validation errors. It is
// the single writer of both; callers read them through Draft and Errors.
type Controller struct {
	draft  Draft
	errors FieldErrors
}

// NewController starts an empty create draft.
func NewController() *Controller {
	return &Controller{errors: FieldErrors{}}
}

// NewControllerForDate starts a create draft pre-filled with a start date,
// the way a calendar day press opens the form.
func NewControllerForDate(date string) *Controller {
	c := NewController()
	c.draft.StartDate = date
	return c
}

// NewControllerFromTask starts an edit draft from a persisted task.
func NewControllerFromTask(t model.Task) *Controller {
	return &Controller{draft: DraftFromTask(t), errors: FieldErrors{}}
}

func (c *Controller) Draft() Draft {
	return c.draft
}

func (c *Controller) Errors() FieldErrors {
	out := make(FieldErrors, len(c.errors))
	for k, v := range c.errors {
		out[k] = v
	}
	return out
}

// Set updates one draft field and clears any error previously recorded for
// it, so the error set only narrows as the user corrects input.
func (c *Controller) Set(field, value string) {
	value = strings.TrimSpace(value)
	switch field {
	case FieldTitle:
		c.draft.Title = value
	case FieldDescription:
		c.draft.Description = value
	case FieldScheduleType:
		c.draft.ScheduleType = value
	case FieldUnit:
		c.draft.Unit = value
	case FieldUnitValue:
		c.draft.UnitValue = value
	case FieldStartDate:
		c.draft.StartDate = value
	case FieldStartTime:
		c.draft.StartTime = value
	case FieldEndTime:
		c.draft.EndTime = value
	case FieldHabitType:
		c.draft.HabitType = value
	case FieldNotes:
		c.draft.Notes = value
	case FieldCategoryID:
		c.draft.CategoryID = value
	default:
		return
	}
	delete(c.errors, field)
}

// SetAllDay flips the all-day flag. Turning it on suppresses the time fields,
// so their recorded errors are cleared along with the flag's own.
func (c *Controller) SetAllDay(allDay bool) {
	c.draft.AllDay = allDay
	delete(c.errors, FieldAllDay)
	if allDay {
		delete(c.errors, FieldStartTime)
		delete(c.errors, FieldEndTime)
	}
}

// SetCompleted toggles the completed flag on an edit draft.
func (c *Controller) SetCompleted(done bool) {
	c.draft.Completed = done
}

// Submit validates the draft and, only when it is clean, performs exactly one
// create or update call. Field errors are recorded on the controller and
// returned without any network traffic. Backend or transport failures come
// back as err with the draft left intact for correction and resubmission.
func (c *Controller) Submit(ctx context.Context, w TaskWriter) (*model.Task, FieldErrors, error) {
	if errs := Validate(c.draft); len(errs) > 0 {
		c.errors = errs
		return nil, c.Errors(), nil
	}
	c.errors = FieldErrors{}

	payload := Serialize(c.draft)
	if c.draft.TaskID > 0 {
		task, err := w.UpdateTask(ctx, c.draft.TaskID, payload)
		return task, nil, err
	}
	task, err := w.CreateTask(ctx, payload)
	return task, nil, err
}
