package entities

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_JSONRoundTrip(t *testing.T) {
	d := NewDate(2024, time.February, 1)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-02-01"`, string(data))

	var decoded Date
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, d.Equal(decoded.Time))
}

func TestDate_UnmarshalRejectsGarbage(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not a date", `"yesterday"`},
		{"wrong format", `"01/02/2024"`},
		{"number", `20240201`},
		{"impossible day", `"2023-02-29"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			assert.Error(t, json.Unmarshal([]byte(tt.input), &d))
		})
	}
}

func TestDate_UnmarshalNullLeavesZero(t *testing.T) {
	var task Task
	require.NoError(t, json.Unmarshal([]byte(`{"title":"x","dueDate":null}`), &task))
	assert.Nil(t, task.DueDate)
}

func TestTask_JSONUsesWireFieldNames(t *testing.T) {
	due := NewDate(2024, time.March, 15)
	task := Task{
		ID:      7,
		Title:   "Review draft",
		Status:  TaskStatusInReview,
		DueDate: &due,
	}

	data, err := json.Marshal(task)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"dueDate":"2024-03-15"`)
	assert.Contains(t, string(data), `"status":"In Review"`)
	assert.Contains(t, string(data), `"createdDate"`)
}

func TestDate_ScanFromTime(t *testing.T) {
	var d Date
	src := time.Date(2024, time.February, 1, 23, 59, 0, 0, time.FixedZone("X", 3600))

	require.NoError(t, d.Scan(src))
	assert.Equal(t, "2024-02-01", d.String())
}

func TestTaskStatus_IsValid(t *testing.T) {
	for _, status := range []TaskStatus{TaskStatusTodo, TaskStatusInProgress, TaskStatusInReview, TaskStatusDone} {
		assert.True(t, status.IsValid(), "%s should be valid", status)
	}

	assert.False(t, TaskStatus("pending").IsValid())
	assert.False(t, TaskStatus("").IsValid())
}

func TestTask_IsOverdue(t *testing.T) {
	now := time.Date(2024, time.February, 10, 12, 0, 0, 0, time.UTC)
	past := NewDate(2024, time.February, 1)
	future := NewDate(2024, time.February, 20)

	tests := []struct {
		name string
		task Task
		want bool
	}{
		{"past due and open", Task{DueDate: &past, Status: TaskStatusTodo}, true},
		{"past due but done", Task{DueDate: &past, Status: TaskStatusDone}, false},
		{"future due", Task{DueDate: &future, Status: TaskStatusTodo}, false},
		{"no due date", Task{Status: TaskStatusTodo}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.task.IsOverdue(now))
		})
	}
}
