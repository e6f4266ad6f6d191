package monitoring

import (
	"fmt"
	"time"

	"github.com/reyhanturkkal/Task-Management/internal/metrics"
	"github.com/reyhanturkkal/Task-Management/internal/services"
	ws "github.com/reyhanturkkal/Task-Management/internal/websocket"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Sweeper walks open tasks on a cron schedule and flags the ones whose due
// date has passed: an activity event and a websocket notice per task, plus
// the overdue gauge. It never mutates task rows.
type Sweeper struct {
	taskSvc  services.TaskServiceProvider
	eventSvc services.EventServiceProvider
	hub      *ws.Hub
	schedule cron.Schedule
	done     chan bool

	// notified remembers tasks already reported so a task only produces one
	// overdue event, not one per sweep. Rebuilt every pass, so a task that
	// leaves the overdue set (done, deleted, due date pushed out) drops off
	// and can be reported again if it becomes overdue later.
	notified map[string]bool
}

// NewSweeper creates a sweeper from a standard cron expression.
func NewSweeper(taskSvc services.TaskServiceProvider, eventSvc services.EventServiceProvider, hub *ws.Hub, cronExpr string) (*Sweeper, error) {
	schedule, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, fmt.Errorf("invalid sweep schedule %q: %w", cronExpr, err)
	}
	return &Sweeper{
		taskSvc:  taskSvc,
		eventSvc: eventSvc,
		hub:      hub,
		schedule: schedule,
		done:     make(chan bool),
		notified: make(map[string]bool),
	}, nil
}

// Run starts the sweep loop. Each pass computes the next run from the cron
// schedule and sleeps until then.
func (s *Sweeper) Run() {
	log.Info().Msg("Starting background overdue sweeper...")

	// Run once immediately on start
	s.sweep()

	for {
		next := s.schedule.Next(time.Now())
		timer := time.NewTimer(time.Until(next))
		select {
		case <-s.done:
			timer.Stop()
			log.Info().Msg("Stopping background overdue sweeper.")
			return
		case <-timer.C:
			s.sweep()
		}
	}
}

// Stop halts the sweeper.
func (s *Sweeper) Stop() {
	s.done <- true
}

func (s *Sweeper) sweep() {
	now := time.Now()
	overdue, err := s.taskSvc.GetOverdueTasks(now)
	if err != nil {
		log.Error().Err(err).Msg("Sweeper: failed to query overdue tasks")
		return
	}

	metrics.OverdueTasks.Set(float64(len(overdue)))

	seen := make(map[string]bool, len(overdue))
	for _, task := range overdue {
		seen[task.ID] = true
		if s.notified[task.ID] {
			continue
		}

		userID := task.UserID
		msg := fmt.Sprintf("Task %q passed its due date (%s)", task.Title, task.DueDate.Format(time.RFC3339))
		if err := s.eventSvc.CreateEvent("task.overdue", "warn", msg, &userID); err != nil {
			log.Error().Err(err).Str("task_id", task.ID).Msg("Sweeper: failed to record overdue event")
		}
		s.hub.NotifyUser(task.UserID, ws.NewTaskMessage("task.overdue", task))
	}
	s.notified = seen

	if len(overdue) > 0 {
		log.Info().Int("overdue", len(overdue)).Msg("Sweep finished")
	}
}
