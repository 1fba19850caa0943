package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habit-tracker/internal/api"
	"habit-tracker/internal/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *api.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return api.New(srv.URL, 5*time.Second)
}

func TestClientListTasks(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/tasks/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": 1, "title": "Read", "start_date": "2024-06-01", "all_day": true, "start_time": null, "end_time": null},
			{"id": 2, "title": "Run", "start_date": "2024-06-02", "start_time": "07:00:00", "end_time": "07:30:00"}
		]`))
	})

	tasks, err := client.ListTasks(context.Background())

	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Read", tasks[0].Title)
	assert.True(t, tasks[0].AllDay)
	assert.Nil(t, tasks[0].StartTime)
	require.NotNil(t, tasks[1].StartTime)
	assert.Equal(t, "07:00:00", *tasks[1].StartTime)
}

func TestClientCreateTask(t *testing.T) {
	start := "08:00:00"
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/tasks/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var got map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, "Read", got["title"])
		assert.Equal(t, "08:00:00", got["start_time"])
		// Nullable fields go over the wire as explicit nulls.
		assert.Contains(t, got, "end_time")
		assert.Nil(t, got["end_time"])
		assert.Contains(t, got, "unit_value")
		assert.Nil(t, got["unit_value"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 42, "title": "Read", "start_date": "2024-06-01", "start_time": "08:00:00"}`))
	})

	created, err := client.CreateTask(context.Background(), model.Task{
		Title:     "Read",
		StartDate: "2024-06-01",
		StartTime: &start,
	})

	require.NoError(t, err)
	assert.Equal(t, 42, created.ID)
}

func TestClientUpdateAndDeletePaths(t *testing.T) {
	var gotMethod, gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 7, "title": "Run"}`))
	})

	_, err := client.UpdateTask(context.Background(), 7, model.Task{Title: "Run"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/tasks/7", gotPath)

	require.NoError(t, client.DeleteTask(context.Background(), 7))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/tasks/7", gotPath)
}

func TestClientErrorDetail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail": "Task not found"}`))
	})

	_, err := client.GetTask(context.Background(), 99)

	require.Error(t, err)
	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Task not found", apiErr.Detail)
	assert.True(t, api.IsNotFound(err))
	assert.Contains(t, apiErr.Error(), "Task not found")
}

func TestClientErrorWithoutDetail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("oops, not json"))
	})

	_, err := client.ListTasks(context.Background())

	require.Error(t, err)
	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Empty(t, apiErr.Detail)
	assert.False(t, api.IsNotFound(err))
}

func TestClientNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := api.New(srv.URL, time.Second)

	_, err := client.ListTasks(context.Background())

	require.Error(t, err)
	var apiErr *api.APIError
	assert.False(t, errors.As(err, &apiErr), "transport failures are not APIErrors")
}

func TestClientListCategories(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/categories/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id": 1, "name": "Health"}, {"id": 2, "name": "Work"}]`))
	})

	categories, err := client.ListCategories(context.Background())

	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Health", categories[0].Name)
}
