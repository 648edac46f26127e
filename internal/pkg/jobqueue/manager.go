package jobqueue

import (
	"sync"

	"github.com/gofiber/fiber/v2/log"
	"github.com/robfig/cron/v3"

	"github.com/AndesHost/ServiPanel/app/repository"
	"github.com/AndesHost/ServiPanel/internal/pkg/env"
)

// DefaultAlertScanSchedule runs the expiration scan once per day. Date
// arithmetic only moves at midnight, so more frequent scans change nothing.
const DefaultAlertScanSchedule = "0 8 * * *"

// Manager manages the global job queue and scheduled background tasks
type Manager struct {
	queue *Queue
	cron  *cron.Cron
	mu    sync.Mutex

	running bool
}

var (
	globalManager *Manager
	managerOnce   sync.Once
)

// GetManager returns the global job queue manager (singleton)
func GetManager() *Manager {
	managerOnce.Do(func() {
		workerCount := env.GetEnvInt("JOB_WORKERS", 2)

		globalManager = &Manager{
			queue: NewQueue(workerCount),
			cron:  cron.New(),
		}
	})
	return globalManager
}

// GetQueue returns the managed job queue
func (m *Manager) GetQueue() *Queue {
	return m.queue
}

// Start starts the job queue workers and the daily alert scan schedule
func (m *Manager) Start(repos *repository.Repositories) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return nil
	}
	m.running = true

	log.Info("[JobQueue Manager] Starting job queue and scheduled tasks")

	m.queue.SetAlertProcessor(NewAlertProcessor(repos, m.queue))
	m.queue.Start()

	schedule := env.GetEnv("ALERT_SCAN_SCHEDULE", DefaultAlertScanSchedule)
	_, err := m.cron.AddFunc(schedule, func() {
		payload := AlertScanJobPayload{}
		if _, err := m.queue.EnqueueJob(JobTypeAlertScan, payload.ToMap()); err != nil {
			log.Errorf("[JobQueue Manager] Failed to enqueue alert scan: %v", err)
		}
	})
	if err != nil {
		return err
	}
	m.cron.Start()

	log.Infof("[JobQueue Manager] Started successfully (alert scan schedule: %s)", schedule)
	return nil
}

// Stop stops the schedule and the job queue workers
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}

	log.Info("[JobQueue Manager] Stopping job queue and scheduled tasks...")

	ctx := m.cron.Stop()
	<-ctx.Done()
	m.queue.Stop()
	m.running = false

	log.Info("[JobQueue Manager] Stopped successfully")
}

// IsRunning returns whether the manager is currently running
func (m *Manager) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// TriggerAlertScan enqueues an immediate alert scan. A zero serviceID scans
// all billable services.
func (m *Manager) TriggerAlertScan(serviceID uint) (*Job, error) {
	payload := AlertScanJobPayload{ServiceID: serviceID}
	return m.queue.EnqueueJob(JobTypeAlertScan, payload.ToMap())
}
