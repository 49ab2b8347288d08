package tasks

import (
	"log"
	"time"

	"github.com/familychef/familychef/internal/services"
)

// Manager handles the execution of scheduled tasks
type Manager struct {
	alerts   services.AlertService
	shopping services.ShoppingService
	tasks    []Task
}

// Task represents a scheduled task that needs to be executed
type Task interface {
	Start()
	Stop()
}

// NewManager creates a new task manager
func NewManager(alerts services.AlertService, shopping services.ShoppingService) *Manager {
	return &Manager{
		alerts:   alerts,
		shopping: shopping,
		tasks:    make([]Task, 0),
	}
}

// RegisterTask registers a task with the manager
func (m *Manager) RegisterTask(task Task) {
	m.tasks = append(m.tasks, task)
}

// StartScheduledTasks starts all registered tasks
func (m *Manager) StartScheduledTasks() {
	// Register the daily pantry sweep
	sweepTask := NewDailySweepTask(m.alerts, m.shopping)
	m.RegisterTask(sweepTask)

	// Start all registered tasks
	for _, task := range m.tasks {
		go task.Start()
	}

	log.Println("Started all scheduled tasks")
}

// StopAllTasks stops all running tasks
func (m *Manager) StopAllTasks() {
	for _, task := range m.tasks {
		task.Stop()
	}
	log.Println("Stopped all scheduled tasks")
}

// DailySweepTask runs alert detection and shopping list generation on
// a daily schedule. Shopping list generation always runs after the
// alert sweeps so it observes the alerts created in the same cycle.
type DailySweepTask struct {
	alerts    services.AlertService
	shopping  services.ShoppingService
	stopChan  chan struct{}
	isRunning bool
}

// NewDailySweepTask creates a new daily sweep task
func NewDailySweepTask(alerts services.AlertService, shopping services.ShoppingService) *DailySweepTask {
	return &DailySweepTask{
		alerts:    alerts,
		shopping:  shopping,
		stopChan:  make(chan struct{}),
		isRunning: false,
	}
}

// Start begins the daily sweep task
func (t *DailySweepTask) Start() {
	if t.isRunning {
		return
	}

	t.isRunning = true
	ticker := time.NewTicker(24 * time.Hour) // Run once per day

	// Run immediately on start
	go t.runSweep()

	go func() {
		for {
			select {
			case <-ticker.C:
				t.runSweep()
			case <-t.stopChan:
				ticker.Stop()
				t.isRunning = false
				return
			}
		}
	}()

	log.Println("Daily sweep task started")
}

// Stop terminates the daily sweep task
func (t *DailySweepTask) Stop() {
	if !t.isRunning {
		return
	}

	close(t.stopChan)
	log.Println("Daily sweep task stopped")
}

// runSweep executes the alert sweeps and then derives shopping list
// entries from whatever alerts are now active
func (t *DailySweepTask) runSweep() {
	log.Println("Running daily pantry sweep")

	result, err := t.alerts.RunDailySweep()
	if err != nil {
		log.Printf("Alert sweep failed: %v", err)
		return
	}
	log.Println(result.Summary())

	items, err := t.shopping.GenerateFromAlerts()
	if err != nil {
		log.Printf("Shopping list generation failed: %v", err)
		return
	}
	log.Printf("Created %d shopping list items", items)
}
