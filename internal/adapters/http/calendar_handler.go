package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskplanner/core/internal/application/calendar"
	"github.com/taskplanner/core/internal/domain/entities"
	"github.com/taskplanner/core/internal/infrastructure/logger"
	"github.com/taskplanner/core/internal/ports"
)

// monthParamLayout parses the optional ?month=YYYY-MM query parameter.
const monthParamLayout = "2006-01"

// CalendarHandler renders the month calendar grid server-side
type CalendarHandler struct {
	taskService ports.TaskService
	logger      *logger.Logger
	now         func() time.Time
}

// NewCalendarHandler creates a new calendar handler
func NewCalendarHandler(taskService ports.TaskService, logger *logger.Logger) *CalendarHandler {
	return &CalendarHandler{
		taskService: taskService,
		logger:      logger,
		now:         time.Now,
	}
}

// CalendarResponse is the rendered month grid
type CalendarResponse struct {
	MonthLabel string         `json:"month_label"`
	Days       []calendar.Day `json:"days"`
}

// GetMonth handles rendering the calendar for the requested month.
// Without a month parameter the current month is rendered. A task fetch
// failure still yields a complete grid with empty day cells.
func (h *CalendarHandler) GetMonth(c echo.Context) error {
	ref := h.now()
	if month := c.QueryParam("month"); month != "" {
		parsed, err := time.Parse(monthParamLayout, month)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid month, expected YYYY-MM")
		}
		ref = parsed
	}

	state := calendar.NewMonthState(ref)
	days := calendar.GenerateDays(state.Reference)

	tasks, err := h.taskService.ListTasks(c.Request().Context())
	if err != nil {
		h.logger.Errorw("Calendar task listing failed", "error", err, "month", state.Label())
		return c.JSON(http.StatusOK, CalendarResponse{
			MonthLabel: state.Label(),
			Days:       days,
		})
	}

	calendar.BindTasks(days, toCalendarTasks(tasks))

	return c.JSON(http.StatusOK, CalendarResponse{
		MonthLabel: state.Label(),
		Days:       days,
	})
}

// toCalendarTasks converts stored tasks into the snapshot records the
// calendar binder consumes, serializing due dates to their wire form.
func toCalendarTasks(tasks []*entities.Task) []calendar.Task {
	out := make([]calendar.Task, 0, len(tasks))
	for _, t := range tasks {
		ct := calendar.Task{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Status:      string(t.Status),
		}
		if t.DueDate != nil {
			due := t.DueDate.String()
			ct.DueDate = &due
		}
		out = append(out, ct)
	}
	return out
}
