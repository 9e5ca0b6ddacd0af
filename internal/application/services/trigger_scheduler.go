package services

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// TriggerScheduler drives the reminder feature's periodic trigger check.
// The rule is evaluated once per second; SkipIfStillRunning guarantees a
// tick is dropped rather than overlapped when the previous evaluation has
// not returned.
type TriggerScheduler struct {
	cron      *cron.Cron
	reminders *ReminderService
}

// NewTriggerScheduler creates a new TriggerScheduler
func NewTriggerScheduler(reminders *ReminderService) *TriggerScheduler {
	return &TriggerScheduler{
		cron:      cron.New(),
		reminders: reminders,
	}
}

// Start begins the once-per-second evaluation loop
func (ts *TriggerScheduler) Start() error {
	job := cron.NewChain(cron.SkipIfStillRunning(cron.DiscardLogger)).
		Then(cron.FuncJob(ts.tick))

	if _, err := ts.cron.AddJob("@every 1s", job); err != nil {
		return err
	}
	ts.cron.Start()
	return nil
}

// Stop halts the loop and waits for an in-flight tick to finish
func (ts *TriggerScheduler) Stop() {
	<-ts.cron.Stop().Done()
}

func (ts *TriggerScheduler) tick() {
	now := time.Now()
	if ts.reminders.CheckTrigger(now) {
		log.Printf("🔔 Reminder fired at %s", now.Format("15:04:05"))
	}
}
