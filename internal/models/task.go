package models

import "time"

// TaskStatus enumerates the workflow states a task can be in.
type TaskStatus string

const (
	StatusToDo       TaskStatus = "to do"
	StatusInProgress TaskStatus = "in progress"
	StatusTest       TaskStatus = "test"
	StatusDone       TaskStatus = "done"
	StatusFailed     TaskStatus = "failed"
	StatusRejected   TaskStatus = "rejected"
)

// Valid reports whether s is one of the six known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusTest, StatusDone, StatusFailed, StatusRejected:
		return true
	}
	return false
}

// Open reports whether the task still counts as unfinished work.
func (s TaskStatus) Open() bool {
	return s == StatusToDo || s == StatusInProgress || s == StatusTest
}

// TaskInput carries the client-settable task fields. The owner is never
// taken from the client; it always comes from the resolved token.
type TaskInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     time.Time  `json:"dueDate"`
	Status      TaskStatus `json:"status"`
}

// Task represents a single to-do item owned by exactly one user.
type Task struct {
	ID          string     `json:"id"`
	UserID      string     `json:"-"` // enforced by owner-scoped queries, not exposed
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     time.Time  `json:"dueDate"`
	Status      TaskStatus `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
