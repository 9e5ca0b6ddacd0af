package services

import (
	"context"

	"github.com/tabdeck/backend/internal/infrastructure/database"
	"github.com/tabdeck/backend/internal/registry"
)

// ServiceManager wires the facade and the feature services. The facade is
// handed to each feature explicitly; nothing reads it from ambient
// globals.
type ServiceManager struct {
	Data      *DataService
	Reminders *ReminderService
	Tasks     *TaskService
	Notes     *NoteService
	Scheduler *TriggerScheduler

	registry *registry.Registry
}

// NewServiceManager creates all services against the given connection and
// entity catalog
func NewServiceManager(db *database.Connection, reg *registry.Registry) *ServiceManager {
	data := NewDataService(db, reg)
	reminders := NewReminderService(data)

	return &ServiceManager{
		Data:      data,
		Reminders: reminders,
		Tasks:     NewTaskService(data),
		Notes:     NewNoteService(data),
		Scheduler: NewTriggerScheduler(reminders),
		registry:  reg,
	}
}

// Registry exposes the loaded entity catalog to the meta handlers
func (sm *ServiceManager) Registry() *registry.Registry {
	return sm.registry
}

// Init runs the per-feature initialization that needs storage access
func (sm *ServiceManager) Init(ctx context.Context) error {
	return sm.Reminders.Init(ctx)
}
