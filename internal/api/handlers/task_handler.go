package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/reyhanturkkal/Task-Management/internal/auth"
	"github.com/reyhanturkkal/Task-Management/internal/models"
	"github.com/reyhanturkkal/Task-Management/internal/services"
	ws "github.com/reyhanturkkal/Task-Management/internal/websocket"
	"github.com/rs/zerolog/log"
)

// TaskHandler handles HTTP requests for task management. The owner always
// comes from the resolved token; a client-supplied owner field is ignored
// by construction since TaskInput has none.
type TaskHandler struct {
	service services.TaskServiceProvider
	events  services.EventServiceProvider
	hub     *ws.Hub
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(service services.TaskServiceProvider, events services.EventServiceProvider, hub *ws.Hub) *TaskHandler {
	return &TaskHandler{service: service, events: events, hub: hub}
}

// GetAll lists the authenticated user's tasks.
func (h *TaskHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}

	tasks, err := h.service.GetTasks(user.ID)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to list tasks")
		writeError(w, err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"tasks": tasks})
}

// Create adds a new task owned by the authenticated user.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}

	var input models.TaskInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	task, err := h.service.CreateTask(user.ID, input)
	if err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("Failed to create task")
		writeError(w, err)
		return
	}

	if err := h.events.CreateEvent("task.created", "info", "task created: "+task.Title, &user.ID); err != nil {
		log.Error().Err(err).Str("task_id", task.ID).Msg("Failed to record task event")
	}
	h.hub.NotifyUser(user.ID, ws.NewTaskMessage("task.created", task))

	writeJSON(w, http.StatusCreated, map[string]interface{}{"task": task})
}

// Get retrieves one of the authenticated user's tasks. A task belonging to
// someone else is indistinguishable from a missing one.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}

	task, err := h.service.GetTask(user.ID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"task": task})
}

// Update replaces a task's fields, scoped to the authenticated owner.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}

	var input models.TaskInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	taskID := chi.URLParam(r, "id")
	task, err := h.service.UpdateTask(user.ID, taskID, input)
	if err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Str("task_id", taskID).Msg("Failed to update task")
		writeError(w, err)
		return
	}

	h.hub.NotifyUser(user.ID, ws.NewTaskMessage("task.updated", task))

	writeJSON(w, http.StatusOK, map[string]interface{}{"task": task})
}

// Delete removes a task, scoped to the authenticated owner.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}

	taskID := chi.URLParam(r, "id")
	if err := h.service.DeleteTask(user.ID, taskID); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Str("task_id", taskID).Msg("Failed to delete task")
		writeError(w, err)
		return
	}

	h.hub.NotifyUser(user.ID, ws.NewTaskMessage("task.deleted", map[string]string{"id": taskID}))

	writeMessage(w, http.StatusOK, "task deleted")
}
