package calendar

import (
	"context"
	"time"
)

// LoadErrorMessage is the single user-facing message for any failed task
// fetch. The underlying cause is logged by the caller, not surfaced here.
const LoadErrorMessage = "Something went wrong while fetching tasks"

// TaskSource lists all tasks from the external task repository. The view
// issues exactly one call per lifetime; month filtering is done client-side
// by the binder.
type TaskSource interface {
	ListTasks(ctx context.Context) ([]Task, error)
}

// View is the calendar view model. It owns the navigation cursor, the task
// snapshot fetched once via Load, the derived day grid, and the loading/error
// state the rendering layer observes. A View is not safe for concurrent use;
// it models a single-threaded, per-mount component state.
type View struct {
	source TaskSource

	state        MonthState
	tasks        []Task
	days         []Day
	isLoading    bool
	errorMessage string
	loaded       bool
}

// NewView creates a view positioned at the month containing now. The view
// starts in the loading state with a structurally complete, empty day grid,
// mirroring a component that begins fetching immediately on mount.
func NewView(source TaskSource, now time.Time) *View {
	v := &View{
		source:    source,
		state:     NewMonthState(now),
		isLoading: true,
	}
	v.rebuild()
	return v
}

// Load performs the one-shot task fetch. On success the snapshot is stored
// and the grid rebound; on failure the generic error message is set and the
// grid is regenerated empty so the month still renders. Repeat calls after
// the first load are no-ops: a fresh fetch requires a fresh view.
func (v *View) Load(ctx context.Context) {
	if v.loaded {
		return
	}
	v.loaded = true
	v.isLoading = true
	v.errorMessage = ""

	tasks, err := v.source.ListTasks(ctx)
	v.isLoading = false
	if err != nil {
		v.errorMessage = LoadErrorMessage
		v.tasks = nil
		v.rebuild()
		return
	}

	v.tasks = tasks
	v.rebuild()
}

// NextMonth advances the displayed month by one. No refetch happens; the grid
// is recomputed from the held snapshot.
func (v *View) NextMonth() {
	v.state.Advance(1)
	v.rebuild()
}

// PrevMonth moves the displayed month back by one.
func (v *View) PrevMonth() {
	v.state.Advance(-1)
	v.rebuild()
}

// Days returns the current day grid.
func (v *View) Days() []Day {
	return v.days
}

// MonthLabel returns the "Month Year" heading for the displayed month.
func (v *View) MonthLabel() string {
	return v.state.Label()
}

// Reference returns the first day of the displayed month.
func (v *View) Reference() time.Time {
	return v.state.Reference
}

// IsLoading reports whether the one-shot fetch is still in flight.
func (v *View) IsLoading() bool {
	return v.isLoading
}

// ErrorMessage returns the fixed fetch failure message, or "" when the last
// fetch succeeded or none has completed.
func (v *View) ErrorMessage() string {
	return v.errorMessage
}

func (v *View) rebuild() {
	v.days = GenerateDays(v.state.Reference)
	BindTasks(v.days, v.tasks)
}
