package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskplanner/core/internal/domain/entities"
	"github.com/taskplanner/core/internal/infrastructure/logger"
	"github.com/taskplanner/core/internal/ports"
)

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}
	return e
}

// stubTaskService returns canned results for handler tests.
type stubTaskService struct {
	tasks   []*entities.Task
	task    *entities.Task
	err     error
	deleted []int
}

func (s *stubTaskService) CreateTask(ctx context.Context, req ports.CreateTaskRequest) (*entities.Task, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.task, nil
}

func (s *stubTaskService) GetTask(ctx context.Context, id int) (*entities.Task, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.task, nil
}

func (s *stubTaskService) UpdateTask(ctx context.Context, id int, req ports.UpdateTaskRequest) (*entities.Task, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.task, nil
}

func (s *stubTaskService) DeleteTask(ctx context.Context, id int) error {
	if s.err != nil {
		return s.err
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubTaskService) ListTasks(ctx context.Context) ([]*entities.Task, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.tasks, nil
}

func TestTaskHandler_ListTasks(t *testing.T) {
	due := entities.NewDate(2024, 2, 1)
	svc := &stubTaskService{tasks: []*entities.Task{
		{ID: 1, Title: "a", Status: entities.TaskStatusTodo, DueDate: &due},
		{ID: 2, Title: "b", Status: entities.TaskStatusDone},
	}}
	h := NewTaskHandler(svc, logger.NewNop())

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.ListTasks(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var tasks []entities.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tasks))
	require.Len(t, tasks, 2)
	assert.Equal(t, "a", tasks[0].Title)
	require.NotNil(t, tasks[0].DueDate)
	assert.Equal(t, "2024-02-01", tasks[0].DueDate.String())
	assert.Nil(t, tasks[1].DueDate)
}

func TestTaskHandler_CreateTask(t *testing.T) {
	due := entities.NewDate(2024, 2, 1)
	svc := &stubTaskService{task: &entities.Task{ID: 5, Title: "new", Status: entities.TaskStatusTodo, DueDate: &due}}
	h := NewTaskHandler(svc, logger.NewNop())

	body := `{"title":"new","status":"To Do","dueDate":"2024-02-01"}`
	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.CreateTask(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":5`)
}

func TestTaskHandler_CreateTaskValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing title", `{"status":"To Do"}`},
		{"bad due date", `{"title":"x","status":"To Do","dueDate":"tomorrow"}`},
		{"malformed json", `{"title":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewTaskHandler(&stubTaskService{}, logger.NewNop())

			e := newTestEcho()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			err := h.CreateTask(c)
			require.Error(t, err)
			httpErr, ok := err.(*echo.HTTPError)
			require.True(t, ok)
			assert.Equal(t, http.StatusBadRequest, httpErr.Code)
		})
	}
}

func TestTaskHandler_GetTaskNotFound(t *testing.T) {
	h := NewTaskHandler(&stubTaskService{err: entities.ErrTaskNotFound}, logger.NewNop())

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks/99", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("99")

	err := h.GetTask(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}

func TestTaskHandler_GetTaskBadID(t *testing.T) {
	h := NewTaskHandler(&stubTaskService{}, logger.NewNop())

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks/abc", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	err := h.GetTask(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestTaskHandler_DeleteTask(t *testing.T) {
	svc := &stubTaskService{}
	h := NewTaskHandler(svc, logger.NewNop())

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/tasks/3", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("3")

	require.NoError(t, h.DeleteTask(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []int{3}, svc.deleted)
}
