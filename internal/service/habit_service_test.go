package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"habit-tracker/internal/form"
	"habit-tracker/internal/model"
	"habit-tracker/internal/service"
)

type mockHabitAPI struct {
	mock.Mock
}

func (m *mockHabitAPI) ListTasks(ctx context.Context) ([]model.Task, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *mockHabitAPI) GetTask(ctx context.Context, id int) (*model.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *mockHabitAPI) CreateTask(ctx context.Context, task model.Task) (*model.Task, error) {
	args := m.Called(ctx, task)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *mockHabitAPI) UpdateTask(ctx context.Context, id int, task model.Task) (*model.Task, error) {
	args := m.Called(ctx, id, task)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *mockHabitAPI) DeleteTask(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockHabitAPI) ListCategories(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *mockHabitAPI) CreateCategory(ctx context.Context, name string) (*model.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

var _ service.HabitAPI = (*mockHabitAPI)(nil)

func TestHabitServiceSubmitStopsOnFieldErrors(t *testing.T) {
	api := new(mockHabitAPI)
	svc := service.NewHabitService(api)

	c := form.NewController()
	c.Set(form.FieldStartDate, "yesterday")

	task, fieldErrs, err := svc.Submit(context.Background(), c)

	require.NoError(t, err)
	assert.Nil(t, task)
	assert.Contains(t, fieldErrs, form.FieldTitle)
	assert.Contains(t, fieldErrs, form.FieldStartDate)
	api.AssertNotCalled(t, "CreateTask", mock.Anything, mock.Anything)
}

func TestHabitServiceListOrdering(t *testing.T) {
	api := new(mockHabitAPI)
	api.On("ListTasks", mock.Anything).Return([]model.Task{
		{ID: 5, Title: "Later", StartDate: "2024-06-10"},
		{ID: 2, Title: "Same day, higher id", StartDate: "2024-06-01"},
		{ID: 1, Title: "Same day, lower id", StartDate: "2024-06-01"},
	}, nil)
	svc := service.NewHabitService(api)

	tasks, err := svc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, 1, tasks[0].ID)
	assert.Equal(t, 2, tasks[1].ID)
	assert.Equal(t, 5, tasks[2].ID)
}

func TestHabitServiceListError(t *testing.T) {
	api := new(mockHabitAPI)
	api.On("ListTasks", mock.Anything).Return(nil, assert.AnError)
	svc := service.NewHabitService(api)

	_, err := svc.List(context.Background())

	require.Error(t, err)
}

func TestHabitServiceCategoryNames(t *testing.T) {
	t.Run("maps and trims", func(t *testing.T) {
		api := new(mockHabitAPI)
		api.On("ListCategories", mock.Anything).Return([]model.Category{
			{ID: 1, Name: " Health "},
			{ID: 2, Name: "Work"},
			{ID: 3, Name: "   "},
		}, nil)
		svc := service.NewHabitService(api)

		names := svc.CategoryNames(context.Background())

		assert.Equal(t, map[int]string{1: "Health", 2: "Work"}, names)
	})

	t.Run("backend failure yields an empty map", func(t *testing.T) {
		api := new(mockHabitAPI)
		api.On("ListCategories", mock.Anything).Return(nil, assert.AnError)
		svc := service.NewHabitService(api)

		names := svc.CategoryNames(context.Background())

		assert.NotNil(t, names)
		assert.Empty(t, names)
	})
}

func TestHabitServiceCreateCategory(t *testing.T) {
	api := new(mockHabitAPI)
	api.On("CreateCategory", mock.Anything, "Health").Return(&model.Category{ID: 3, Name: "Health"}, nil).Once()
	svc := service.NewHabitService(api)

	created, err := svc.CreateCategory(context.Background(), "  Health  ")
	require.NoError(t, err)
	assert.Equal(t, 3, created.ID)

	// Blank names never reach the backend.
	_, err = svc.CreateCategory(context.Background(), "   ")
	require.Error(t, err)
	api.AssertExpectations(t)
}

func TestHabitServiceDelete(t *testing.T) {
	api := new(mockHabitAPI)
	api.On("DeleteTask", mock.Anything, 9).Return(nil).Once()
	svc := service.NewHabitService(api)

	require.NoError(t, svc.Delete(context.Background(), 9))
	api.AssertExpectations(t)
}
