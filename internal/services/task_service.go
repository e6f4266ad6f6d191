package services

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/reyhanturkkal/Task-Management/internal/errs"
	"github.com/reyhanturkkal/Task-Management/internal/models"
)

// TaskServiceProvider defines the interface for task services. Every
// operation takes the owner's ID and scopes its query by it; a task ID
// belonging to someone else behaves exactly like a missing one.
type TaskServiceProvider interface {
	CreateTask(ownerID string, input models.TaskInput) (models.Task, error)
	GetTasks(ownerID string) ([]models.Task, error)
	GetTask(ownerID, taskID string) (models.Task, error)
	UpdateTask(ownerID, taskID string, input models.TaskInput) (models.Task, error)
	DeleteTask(ownerID, taskID string) error
	CountByStatus() (map[models.TaskStatus]int, error)
	GetOverdueTasks(now time.Time) ([]models.Task, error)
}

// TaskService provides business logic for task management.
type TaskService struct {
	db *sql.DB
}

// NewTaskService creates a new TaskService.
func NewTaskService(db *sql.DB) *TaskService {
	return &TaskService{db: db}
}

func validateTaskInput(input models.TaskInput) error {
	if input.Title == "" {
		return errs.Validation("title is required")
	}
	if input.DueDate.IsZero() {
		return errs.Validation("dueDate is required")
	}
	if !input.Status.Valid() {
		return errs.Validation("status must be one of: to do, in progress, test, done, failed, rejected")
	}
	return nil
}

// CreateTask inserts a new task owned by ownerID.
func (s *TaskService) CreateTask(ownerID string, input models.TaskInput) (models.Task, error) {
	if err := validateTaskInput(input); err != nil {
		return models.Task{}, err
	}

	task := models.Task{
		ID:          uuid.New().String(),
		UserID:      ownerID,
		Title:       input.Title,
		Description: input.Description,
		// Timestamps are stored as text; normalizing to UTC keeps their
		// lexical order equal to their chronological order.
		DueDate: input.DueDate.UTC(),
		Status:  input.Status,
	}

	stmt, err := s.db.Prepare("INSERT INTO tasks(id, user_id, title, description, due_date, status) VALUES(?, ?, ?, ?, ?, ?)")
	if err != nil {
		return models.Task{}, err
	}
	defer stmt.Close()

	if _, err := stmt.Exec(task.ID, task.UserID, task.Title, task.Description, task.DueDate, task.Status); err != nil {
		return models.Task{}, err
	}

	return s.GetTask(ownerID, task.ID)
}

// GetTasks retrieves every task owned by ownerID, newest first.
func (s *TaskService) GetTasks(ownerID string) ([]models.Task, error) {
	rows, err := s.db.Query(
		"SELECT id, user_id, title, description, due_date, status, created_at, updated_at FROM tasks WHERE user_id = ? ORDER BY created_at DESC",
		ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTasks(rows)
}

// GetTask retrieves a single task by {taskID, ownerID}.
func (s *TaskService) GetTask(ownerID, taskID string) (models.Task, error) {
	var task models.Task
	row := s.db.QueryRow(
		"SELECT id, user_id, title, description, due_date, status, created_at, updated_at FROM tasks WHERE id = ? AND user_id = ?",
		taskID, ownerID)
	err := row.Scan(&task.ID, &task.UserID, &task.Title, &task.Description, &task.DueDate, &task.Status, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Task{}, errs.ErrNotFound
		}
		return models.Task{}, err
	}
	return task, nil
}

// UpdateTask replaces a task's fields. The write itself is keyed by
// {taskID, ownerID}, so cross-user updates cannot happen at the query level.
func (s *TaskService) UpdateTask(ownerID, taskID string, input models.TaskInput) (models.Task, error) {
	if err := validateTaskInput(input); err != nil {
		return models.Task{}, err
	}

	res, err := s.db.Exec(
		"UPDATE tasks SET title = ?, description = ?, due_date = ?, status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND user_id = ?",
		input.Title, input.Description, input.DueDate.UTC(), input.Status, taskID, ownerID)
	if err != nil {
		return models.Task{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.Task{}, err
	}
	if affected == 0 {
		return models.Task{}, errs.ErrNotFound
	}

	return s.GetTask(ownerID, taskID)
}

// DeleteTask removes a task keyed by {taskID, ownerID}.
func (s *TaskService) DeleteTask(ownerID, taskID string) error {
	res, err := s.db.Exec("DELETE FROM tasks WHERE id = ? AND user_id = ?", taskID, ownerID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// CountByStatus returns the number of tasks per status across all users.
func (s *TaskService) CountByStatus() (map[models.TaskStatus]int, error) {
	rows, err := s.db.Query("SELECT status, COUNT(1) FROM tasks GROUP BY status")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[models.TaskStatus]int)
	for rows.Next() {
		var status models.TaskStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

// GetOverdueTasks returns open tasks whose due date lies before now. The
// cutoff is normalized to UTC to match how due dates are stored; the text
// comparison would otherwise mix zone offsets.
func (s *TaskService) GetOverdueTasks(now time.Time) ([]models.Task, error) {
	rows, err := s.db.Query(
		"SELECT id, user_id, title, description, due_date, status, created_at, updated_at FROM tasks WHERE due_date < ? AND status IN (?, ?, ?)",
		now.UTC(), models.StatusToDo, models.StatusInProgress, models.StatusTest)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTasks(rows)
}

func scanTasks(rows *sql.Rows) ([]models.Task, error) {
	var tasks []models.Task
	for rows.Next() {
		var task models.Task
		if err := rows.Scan(&task.ID, &task.UserID, &task.Title, &task.Description, &task.DueDate, &task.Status, &task.CreatedAt, &task.UpdatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}
