package services

import (
	"errors"
	"testing"
	"time"

	"github.com/reyhanturkkal/Task-Management/internal/errs"
	"github.com/reyhanturkkal/Task-Management/internal/models"
)

func createTestUser(t *testing.T, users *UserService, username, email string) models.User {
	t.Helper()
	user, err := users.CreateUser(username, email, "secret1")
	if err != nil {
		t.Fatalf("CreateUser(%s): %v", username, err)
	}
	return user
}

func validInput() models.TaskInput {
	return models.TaskInput{
		Title:       "write report",
		Description: "quarterly numbers",
		DueDate:     time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second),
		Status:      models.StatusToDo,
	}
}

func TestTaskCRUD(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	tasks := NewTaskService(db)
	alice := createTestUser(t, users, "alice", "a@x.com")

	task, err := tasks.CreateTask(alice.ID, validInput())
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if task.ID == "" || task.UserID != alice.ID {
		t.Fatalf("CreateTask returned %+v", task)
	}

	list, err := tasks.GetTasks(alice.ID)
	if err != nil {
		t.Fatalf("GetTasks: %v", err)
	}
	if len(list) != 1 || list[0].ID != task.ID {
		t.Fatalf("GetTasks = %+v, want the one created task", list)
	}

	update := validInput()
	update.Title = "write report v2"
	update.Status = models.StatusInProgress
	updated, err := tasks.UpdateTask(alice.ID, task.ID, update)
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if updated.Title != "write report v2" || updated.Status != models.StatusInProgress {
		t.Errorf("UpdateTask returned %+v", updated)
	}

	if err := tasks.DeleteTask(alice.ID, task.ID); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	if _, err := tasks.GetTask(alice.ID, task.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("GetTask after delete = %v, want ErrNotFound", err)
	}
}

func TestTaskStatusValidation(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	tasks := NewTaskService(db)
	alice := createTestUser(t, users, "alice", "a@x.com")

	input := validInput()
	input.Status = "archived"
	if _, err := tasks.CreateTask(alice.ID, input); !errors.Is(err, errs.ErrValidation) {
		t.Errorf("CreateTask(bad status) = %v, want ErrValidation", err)
	}

	task, err := tasks.CreateTask(alice.ID, validInput())
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	update := validInput()
	update.Status = "paused"
	if _, err := tasks.UpdateTask(alice.ID, task.ID, update); !errors.Is(err, errs.ErrValidation) {
		t.Errorf("UpdateTask(bad status) = %v, want ErrValidation", err)
	}
}

func TestTaskOwnerScoping(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	tasks := NewTaskService(db)
	alice := createTestUser(t, users, "alice", "a@x.com")
	bob := createTestUser(t, users, "bob", "b@x.com")

	task, err := tasks.CreateTask(alice.ID, validInput())
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	// Bob supplies Alice's real task ID; every operation must behave as if
	// the task did not exist.
	if _, err := tasks.GetTask(bob.ID, task.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("cross-user GetTask = %v, want ErrNotFound", err)
	}
	if _, err := tasks.UpdateTask(bob.ID, task.ID, validInput()); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("cross-user UpdateTask = %v, want ErrNotFound", err)
	}
	if err := tasks.DeleteTask(bob.ID, task.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("cross-user DeleteTask = %v, want ErrNotFound", err)
	}

	// And Alice's task is untouched.
	got, err := tasks.GetTask(alice.ID, task.ID)
	if err != nil {
		t.Fatalf("GetTask by owner: %v", err)
	}
	if got.Title != task.Title {
		t.Errorf("task mutated by cross-user attempts: %+v", got)
	}

	list, err := tasks.GetTasks(bob.ID)
	if err != nil {
		t.Fatalf("GetTasks(bob): %v", err)
	}
	if len(list) != 0 {
		t.Errorf("bob sees %d tasks, want 0", len(list))
	}
}

func TestGetOverdueTasks(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	tasks := NewTaskService(db)
	alice := createTestUser(t, users, "alice", "a@x.com")

	overdue := validInput()
	overdue.Title = "late"
	overdue.DueDate = time.Now().Add(-time.Hour).UTC()
	if _, err := tasks.CreateTask(alice.ID, overdue); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	doneLate := validInput()
	doneLate.Title = "finished late"
	doneLate.DueDate = time.Now().Add(-time.Hour).UTC()
	doneLate.Status = models.StatusDone
	if _, err := tasks.CreateTask(alice.ID, doneLate); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	future := validInput()
	future.Title = "on time"
	if _, err := tasks.CreateTask(alice.ID, future); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	got, err := tasks.GetOverdueTasks(time.Now())
	if err != nil {
		t.Fatalf("GetOverdueTasks: %v", err)
	}
	if len(got) != 1 || got[0].Title != "late" {
		t.Errorf("GetOverdueTasks = %+v, want only the open late task", got)
	}
}

func TestGetOverdueTasksNonUTCZones(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	tasks := NewTaskService(db)
	alice := createTestUser(t, users, "alice", "a@x.com")

	// Due one hour ago, supplied with a non-UTC offset.
	pacific := time.FixedZone("UTC-7", -7*60*60)
	late := validInput()
	late.Title = "late"
	late.DueDate = time.Now().Add(-time.Hour).In(pacific)
	if _, err := tasks.CreateTask(alice.ID, late); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	future := validInput()
	future.Title = "on time"
	future.DueDate = time.Now().Add(24 * time.Hour).In(pacific)
	if _, err := tasks.CreateTask(alice.ID, future); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	// A server clock in a non-UTC zone must still find the overdue task.
	got, err := tasks.GetOverdueTasks(time.Now().In(pacific))
	if err != nil {
		t.Fatalf("GetOverdueTasks: %v", err)
	}
	if len(got) != 1 || got[0].Title != "late" {
		t.Errorf("GetOverdueTasks with local-zone now = %+v, want only the late task", got)
	}
}

func TestCountByStatus(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	tasks := NewTaskService(db)
	alice := createTestUser(t, users, "alice", "a@x.com")

	for _, status := range []models.TaskStatus{models.StatusToDo, models.StatusToDo, models.StatusDone} {
		input := validInput()
		input.Status = status
		if _, err := tasks.CreateTask(alice.ID, input); err != nil {
			t.Fatalf("CreateTask: %v", err)
		}
	}

	counts, err := tasks.CountByStatus()
	if err != nil {
		t.Fatalf("CountByStatus: %v", err)
	}
	if counts[models.StatusToDo] != 2 || counts[models.StatusDone] != 1 {
		t.Errorf("CountByStatus = %v", counts)
	}
}
