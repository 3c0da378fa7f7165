// Package calendar implements the month calendar view model: day generation
// for a reference month, binding of tasks to days by due date, month
// navigation, and the one-shot task fetch lifecycle.
package calendar

import "time"

const (
	// dateLabelLayout renders a day in the long form used both for display
	// and as the join key between days and task due dates.
	dateLabelLayout = "January 2, 2006"

	// dueDateLayout is the wire format of task due dates.
	dueDateLayout = "2006-01-02"

	// monthLabelLayout renders the "Month Year" heading.
	monthLabelLayout = "January 2006"
)

// Task is the read-only snapshot of a task record as served by the task API.
// DueDate is kept as the raw wire string; parsing happens at bind time so a
// malformed date degrades to "task not shown" instead of a failed load.
type Task struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	DueDate     *string `json:"dueDate"`
}

// Day is one cell of the rendered month.
type Day struct {
	DateLabel string `json:"date_label"`
	Tasks     []Task `json:"tasks"`
}

// FormatDateLabel renders a date as a day label. Both the generator and the
// binder must go through this one function: the label is the join key, and
// any drift between the two sides silently breaks grouping.
func FormatDateLabel(t time.Time) string {
	return t.Format(dateLabelLayout)
}

// ParseDueDate parses a YYYY-MM-DD due date string.
func ParseDueDate(s string) (time.Time, error) {
	return time.Parse(dueDateLayout, s)
}

// MonthStart normalizes a date to the first day of its month.
func MonthStart(ref time.Time) time.Time {
	return time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// GenerateDays produces one Day per calendar day of the month containing ref,
// in ascending order. Only the year and month of ref are significant. Every
// Day starts with an empty task list.
func GenerateDays(ref time.Time) []Day {
	start := MonthStart(ref)
	// Day zero of the next month is the last day of this one.
	daysInMonth := start.AddDate(0, 1, -1).Day()

	days := make([]Day, 0, daysInMonth)
	for n := 0; n < daysInMonth; n++ {
		days = append(days, Day{
			DateLabel: FormatDateLabel(start.AddDate(0, 0, n)),
			Tasks:     []Task{},
		})
	}
	return days
}

// BindTasks distributes tasks over the given days by matching each task's due
// date label against the day labels. Tasks with a missing or unparseable due
// date, or one outside the displayed month, are skipped. Binding preserves
// input order and never modifies the task records themselves.
func BindTasks(days []Day, tasks []Task) {
	index := make(map[string]int, len(days))
	for i, day := range days {
		index[day.DateLabel] = i
	}

	for _, task := range tasks {
		if task.DueDate == nil {
			continue
		}
		due, err := ParseDueDate(*task.DueDate)
		if err != nil {
			continue
		}
		i, ok := index[FormatDateLabel(due)]
		if !ok {
			continue
		}
		days[i].Tasks = append(days[i].Tasks, task)
	}
}

// MonthState is the navigation cursor. Reference is always the first day of
// the displayed month.
type MonthState struct {
	Reference time.Time
}

// NewMonthState creates a cursor positioned at the month containing now.
func NewMonthState(now time.Time) MonthState {
	return MonthState{Reference: MonthStart(now)}
}

// Advance moves the cursor by exactly one month. direction must be +1 or -1;
// any other value is clamped to its sign. Year boundaries roll over, and
// advancing +1 then -1 restores the original reference.
func (s *MonthState) Advance(direction int) {
	if direction >= 0 {
		direction = 1
	} else {
		direction = -1
	}
	// AddDate on a first-of-month date never skips months.
	s.Reference = s.Reference.AddDate(0, direction, 0)
}

// Label returns the human-readable "Month Year" heading for the cursor.
func (s *MonthState) Label() string {
	return s.Reference.Format(monthLabelLayout)
}
