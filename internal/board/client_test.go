package board

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwalczyk/taskboard/internal/models"
)

func TestClientSendsBearerToken(t *testing.T) {
	task := newTask(models.StatusTodo, 1000, time.Now().UTC())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		assert.Equal(t, "/api/tasks", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		json.NewEncoder(w).Encode([]models.Task{task})
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/api", "tok-123")
	tasks, err := c.List(context.Background())

	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, task.ID, tasks[0].ID)
}

func TestClientUpdateSendsPartialPatch(t *testing.T) {
	task := newTask(models.StatusDone, 1500, time.Now().UTC())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/tasks/"+task.ID.Hex(), r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		// Only the fields present in the patch go over the wire.
		assert.Equal(t, "done", body["status"])
		assert.Equal(t, 1500.0, body["order"])
		assert.NotContains(t, body, "title")
		assert.NotContains(t, body, "dueDate")

		json.NewEncoder(w).Encode(task)
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/api", "tok")
	status := models.StatusDone
	order := 1500.0
	got, err := c.Update(context.Background(), task.ID.Hex(), models.TaskPatch{Status: &status, Order: &order})

	require.NoError(t, err)
	assert.Equal(t, task.ID, got.ID)
}

func TestClientDecodesErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"message":"Task not found","statusCode":404}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/api", "tok")
	_, err := c.Update(context.Background(), "deadbeefdeadbeefdeadbeef", models.TaskPatch{})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Task not found", apiErr.Message)
}

func TestClientDeleteSucceeds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		json.NewEncoder(w).Encode(map[string]string{"message": "Task deleted successfully"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/api", "tok")
	assert.NoError(t, c.Delete(context.Background(), "deadbeefdeadbeefdeadbeef"))
}
