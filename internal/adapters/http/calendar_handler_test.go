package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskplanner/core/internal/domain/entities"
	"github.com/taskplanner/core/internal/infrastructure/logger"
)

func TestCalendarHandler_GetMonth(t *testing.T) {
	due := entities.NewDate(2024, time.February, 1)
	outside := entities.NewDate(2024, time.March, 1)
	svc := &stubTaskService{tasks: []*entities.Task{
		{ID: 1, Title: "pay rent", Status: entities.TaskStatusTodo, DueDate: &due},
		{ID: 2, Title: "next month", Status: entities.TaskStatusTodo, DueDate: &outside},
		{ID: 3, Title: "unscheduled", Status: entities.TaskStatusTodo},
	}}
	h := NewCalendarHandler(svc, logger.NewNop())

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/calendar?month=2024-02", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.GetMonth(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp CalendarResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "February 2024", resp.MonthLabel)
	require.Len(t, resp.Days, 29)
	assert.Equal(t, "February 1, 2024", resp.Days[0].DateLabel)
	require.Len(t, resp.Days[0].Tasks, 1)
	assert.Equal(t, "pay rent", resp.Days[0].Tasks[0].Title)

	total := 0
	for _, day := range resp.Days {
		total += len(day.Tasks)
	}
	assert.Equal(t, 1, total)
}

func TestCalendarHandler_GetMonthDefaultsToCurrent(t *testing.T) {
	h := NewCalendarHandler(&stubTaskService{}, logger.NewNop())
	h.now = func() time.Time {
		return time.Date(2023, time.December, 25, 0, 0, 0, 0, time.UTC)
	}

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/calendar", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.GetMonth(c))

	var resp CalendarResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "December 2023", resp.MonthLabel)
	assert.Len(t, resp.Days, 31)
}

func TestCalendarHandler_GetMonthInvalidParam(t *testing.T) {
	h := NewCalendarHandler(&stubTaskService{}, logger.NewNop())

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/calendar?month=Feb-2024", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.GetMonth(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestCalendarHandler_GetMonthListFailureStillRendersGrid(t *testing.T) {
	h := NewCalendarHandler(&stubTaskService{err: errors.New("db down")}, logger.NewNop())

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/calendar?month=2024-02", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.GetMonth(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp CalendarResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Days, 29)
	for _, day := range resp.Days {
		assert.Empty(t, day.Tasks)
	}
}
