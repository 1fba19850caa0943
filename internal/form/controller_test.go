package form_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"habit-tracker/internal/form"
	"habit-tracker/internal/model"
)

type mockWriter struct {
	mock.Mock
}

func (m *mockWriter) CreateTask(ctx context.Context, task model.Task) (*model.Task, error) {
	args := m.Called(ctx, task)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *mockWriter) UpdateTask(ctx context.Context, id int, task model.Task) (*model.Task, error) {
	args := m.Called(ctx, id, task)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

var _ form.TaskWriter = (*mockWriter)(nil)

func TestControllerSetClearsFieldError(t *testing.T) {
	c := form.NewController()
	c.Set(form.FieldUnitValue, "nope")

	_, errs, err := c.Submit(context.Background(), new(mockWriter))
	require.NoError(t, err)
	require.Contains(t, errs, form.FieldUnitValue)
	require.Contains(t, errs, form.FieldTitle)

	// Correcting one field narrows the recorded errors; the rest stay.
	c.Set(form.FieldUnitValue, "15")
	assert.NotContains(t, c.Errors(), form.FieldUnitValue)
	assert.Contains(t, c.Errors(), form.FieldTitle)

	c.Set(form.FieldTitle, "Read")
	assert.Empty(t, c.Errors())
}

func TestControllerSetAllDayClearsTimeErrors(t *testing.T) {
	c := form.NewController()
	c.Set(form.FieldTitle, "Read")
	c.Set(form.FieldStartTime, "10:00")
	c.Set(form.FieldEndTime, "09:00")

	_, errs, err := c.Submit(context.Background(), new(mockWriter))
	require.NoError(t, err)
	require.Contains(t, errs, form.FieldEndTime)

	c.SetAllDay(true)
	assert.Empty(t, c.Errors())
}

func TestControllerSubmit(t *testing.T) {
	t.Run("invalid draft makes no network call", func(t *testing.T) {
		w := new(mockWriter)
		c := form.NewController()
		c.Set(form.FieldTitle, "   ")

		task, errs, err := c.Submit(context.Background(), w)

		require.NoError(t, err)
		assert.Nil(t, task)
		assert.Contains(t, errs, form.FieldTitle)
		w.AssertNotCalled(t, "CreateTask", mock.Anything, mock.Anything)
		w.AssertNotCalled(t, "UpdateTask", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("clean create draft posts exactly once", func(t *testing.T) {
		w := new(mockWriter)
		created := &model.Task{ID: 7, Title: "Read"}
		w.On("CreateTask", mock.Anything, mock.Anything).Return(created, nil).Once()

		c := form.NewController()
		c.Set(form.FieldTitle, "Read")
		c.Set(form.FieldStartDate, "2024-06-01")
		c.SetAllDay(true)

		task, errs, err := c.Submit(context.Background(), w)

		require.NoError(t, err)
		assert.Empty(t, errs)
		require.NotNil(t, task)
		assert.Equal(t, 7, task.ID)
		w.AssertExpectations(t)
	})

	t.Run("edit draft routes to update", func(t *testing.T) {
		w := new(mockWriter)
		updated := &model.Task{ID: 3, Title: "Run"}
		w.On("UpdateTask", mock.Anything, 3, mock.Anything).Return(updated, nil).Once()

		c := form.NewControllerFromTask(model.Task{ID: 3, Title: "Jog", StartDate: "2024-06-01", AllDay: true})
		c.Set(form.FieldTitle, "Run")

		task, errs, err := c.Submit(context.Background(), w)

		require.NoError(t, err)
		assert.Empty(t, errs)
		require.NotNil(t, task)
		assert.Equal(t, "Run", task.Title)
		w.AssertExpectations(t)
	})

	t.Run("backend failure leaves the draft intact", func(t *testing.T) {
		w := new(mockWriter)
		w.On("CreateTask", mock.Anything, mock.Anything).Return(nil, assert.AnError)

		c := form.NewController()
		c.Set(form.FieldTitle, "Read")
		c.SetAllDay(true)

		task, errs, err := c.Submit(context.Background(), w)

		require.Error(t, err)
		assert.Nil(t, task)
		assert.Empty(t, errs)
		assert.Equal(t, "Read", c.Draft().Title)
	})
}

func TestDraftFromTask(t *testing.T) {
	start := "07:30:00"
	end := "08:00:00"
	unitValue := 20
	categoryID := 4

	d := form.DraftFromTask(model.Task{
		ID:           11,
		Title:        "Stretch",
		ScheduleType: model.ScheduleDaily,
		Unit:         "minutes",
		UnitValue:    &unitValue,
		StartDate:    "2024-06-01",
		StartTime:    &start,
		EndTime:      &end,
		HabitType:    "health",
		CategoryID:   &categoryID,
		Completed:    true,
	})

	assert.Equal(t, 11, d.TaskID)
	assert.Equal(t, "07:30", d.StartTime)
	assert.Equal(t, "08:00", d.EndTime)
	assert.Equal(t, "20", d.UnitValue)
	assert.Equal(t, "4", d.CategoryID)
	assert.True(t, d.Completed)

	// A round trip through the form keeps the wire shape.
	task := form.Serialize(d)
	require.NotNil(t, task.StartTime)
	assert.Equal(t, "07:30:00", *task.StartTime)
	assert.Equal(t, 11, task.ID)
}
