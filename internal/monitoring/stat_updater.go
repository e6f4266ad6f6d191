package monitoring

import (
	"time"

	"github.com/reyhanturkkal/Task-Management/internal/metrics"
	"github.com/reyhanturkkal/Task-Management/internal/models"
	"github.com/reyhanturkkal/Task-Management/internal/services"
	"github.com/rs/zerolog/log"
)

// allStatuses makes sure gauges for empty statuses drop back to zero.
var allStatuses = []models.TaskStatus{
	models.StatusToDo,
	models.StatusInProgress,
	models.StatusTest,
	models.StatusDone,
	models.StatusFailed,
	models.StatusRejected,
}

// StatUpdater periodically refreshes the tasks-by-status Prometheus gauges.
type StatUpdater struct {
	taskSvc services.TaskServiceProvider
	ticker  *time.Ticker
	done    chan bool
}

// NewStatUpdater creates a new StatUpdater.
func NewStatUpdater(taskSvc services.TaskServiceProvider) *StatUpdater {
	return &StatUpdater{
		taskSvc: taskSvc,
		done:    make(chan bool),
	}
}

// Run starts the periodic updates.
func (su *StatUpdater) Run() {
	log.Info().Msg("Starting background stat updater...")
	su.ticker = time.NewTicker(15 * time.Second)
	defer su.ticker.Stop()

	// Run once immediately on start
	su.updateTaskStats()

	for {
		select {
		case <-su.done:
			log.Info().Msg("Stopping background stat updater.")
			return
		case <-su.ticker.C:
			su.updateTaskStats()
		}
	}
}

// Stop halts the updater.
func (su *StatUpdater) Stop() {
	su.done <- true
}

func (su *StatUpdater) updateTaskStats() {
	counts, err := su.taskSvc.CountByStatus()
	if err != nil {
		log.Error().Err(err).Msg("Failed to count tasks by status")
		return
	}

	for _, status := range allStatuses {
		metrics.TasksByStatus.WithLabelValues(string(status)).Set(float64(counts[status]))
	}
}
