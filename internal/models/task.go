package models

import "fmt"

// TaskStatus is the completion state of a task. Internally it is a plain
// enum; the display strings "Pending"/"Completed" appear only at the
// persistence and UI boundaries.
type TaskStatus int

const (
	StatusPending TaskStatus = iota
	StatusCompleted
)

// Label returns the display string for the status, which is also the exact
// value stored in data.json.
func (s TaskStatus) Label() string {
	switch s {
	case StatusCompleted:
		return "Completed"
	default:
		return "Pending"
	}
}

// ParseTaskStatus maps a stored display string back to a TaskStatus.
func ParseTaskStatus(label string) (TaskStatus, error) {
	switch label {
	case "Pending":
		return StatusPending, nil
	case "Completed":
		return StatusCompleted, nil
	default:
		return StatusPending, fmt.Errorf("unknown task status %q", label)
	}
}

// Task is a single to-do item owned by exactly one account. IDs are unique
// within the owning account and are never reused once assigned.
type Task struct {
	ID          int
	Description string
	Status      TaskStatus
}
