package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"habit-tracker/internal/form"
	"habit-tracker/internal/model"
)

// HabitAPI is the backend surface the habit service depends on.
type HabitAPI interface {
	ListTasks(ctx context.Context) ([]model.Task, error)
	GetTask(ctx context.Context, id int) (*model.Task, error)
	CreateTask(ctx context.Context, task model.Task) (*model.Task, error)
	UpdateTask(ctx context.Context, id int, task model.Task) (*model.Task, error)
	DeleteTask(ctx context.Context, id int) error
	ListCategories(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, name string) (*model.Category, error)
}

// HabitService drives habit CRUD through the backend. It keeps no task state
// of its own: after any mutation the caller re-fetches the authoritative list.
type HabitService struct {
	api HabitAPI
}

func NewHabitService(api HabitAPI) *HabitService {
	return &HabitService{api: api}
}

// Submit runs the form controller's validate-then-send flow against the
// backend. Field errors come back without any network call having happened.
func (s *HabitService) Submit(ctx context.Context, c *form.Controller) (*model.Task, form.FieldErrors, error) {
	return c.Submit(ctx, s.api)
}

// List returns all habits, ordered by start date then ID for stable display.
func (s *HabitService) List(ctx context.Context) ([]model.Task, error) {
	tasks, err := s.api.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].StartDate != tasks[j].StartDate {
			return tasks[i].StartDate < tasks[j].StartDate
		}
		return tasks[i].ID < tasks[j].ID
	})
	return tasks, nil
}

// Get loads one habit for editing.
func (s *HabitService) Get(ctx context.Context, id int) (*model.Task, error) {
	return s.api.GetTask(ctx, id)
}

// Delete removes a habit. The backend is the sole authority; the caller
// refreshes its view afterwards.
func (s *HabitService) Delete(ctx context.Context, id int) error {
	return s.api.DeleteTask(ctx, id)
}

// CreateCategory registers a new category on the backend.
func (s *HabitService) CreateCategory(ctx context.Context, name string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("category name is required")
	}
	return s.api.CreateCategory(ctx, name)
}

// CategoryNames maps category IDs to display names for list rendering.
// A backend without the categories resource just yields an empty map.
func (s *HabitService) CategoryNames(ctx context.Context) map[int]string {
	categories, err := s.api.ListCategories(ctx)
	if err != nil {
		return map[int]string{}
	}
	names := make(map[int]string, len(categories))
	for _, cat := range categories {
		if trimmed := strings.TrimSpace(cat.Name); trimmed != "" {
			names[cat.ID] = trimmed
		}
	}
	return names
}
