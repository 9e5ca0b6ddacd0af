package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(min, sec int) time.Time {
	return time.Date(2026, 8, 23, 14, min, sec, 0, time.UTC)
}

func TestNewTimeRule_ClampsInputs(t *testing.T) {
	rule := NewTimeRule(0, -3, 75)
	assert.Equal(t, 1, rule.MinuteCycle)
	assert.Equal(t, 0, rule.MinuteRemainder)
	assert.Equal(t, 59, rule.Second)

	// Remainder is reduced modulo the cycle
	rule = NewTimeRule(5, 12, 30)
	assert.Equal(t, 2, rule.MinuteRemainder)

	rule = NewTimeRule(90, 0, 0)
	assert.Equal(t, 60, rule.MinuteCycle)
}

func TestTimeRule_Matches(t *testing.T) {
	rule := NewTimeRule(5, 2, 30) // minute % 5 == 2, second == 30

	assert.True(t, rule.Matches(at(7, 30)))
	assert.True(t, rule.Matches(at(52, 30)))
	assert.False(t, rule.Matches(at(7, 31)))
	assert.False(t, rule.Matches(at(8, 30)))
}

func TestTimeRule_NextTrigger(t *testing.T) {
	rule := NewTimeRule(5, 2, 30)

	next := rule.NextTrigger(at(0, 0))
	assert.Equal(t, at(2, 30), next)

	// Strictly after: standing exactly on a trigger yields the next one
	next = rule.NextTrigger(at(2, 30))
	assert.Equal(t, at(7, 30), next)

	// Same minute but the second hand already passed
	next = rule.NextTrigger(at(2, 45))
	assert.Equal(t, at(7, 30), next)

	// Same minute, second hand not yet reached
	next = rule.NextTrigger(at(2, 10))
	assert.Equal(t, at(2, 30), next)
}

func TestTimeRule_NextTrigger_EveryMinute(t *testing.T) {
	rule := NewTimeRule(1, 0, 0)

	next := rule.NextTrigger(at(13, 20))
	assert.Equal(t, at(14, 0), next)
}

func TestReminderService_InitCreatesStateRecord(t *testing.T) {
	mgr := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, mgr.Reminders.Init(ctx))

	count, err := mgr.Data.Count(ctx, ReminderEntityName, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	status := mgr.Reminders.Status()
	assert.False(t, status.IsRunning)
	assert.False(t, status.HasActiveRule)
	assert.Equal(t, "no trigger rule configured", status.NextTriggerText)
}

func TestReminderService_RuleLifecycle(t *testing.T) {
	mgr := newTestManager(t)
	ctx := context.Background()
	require.NoError(t, mgr.Reminders.Init(ctx))

	// A staged rule has no effect until confirmed
	mgr.Reminders.SetPendingRule(NewTimeRule(5, 2, 30))
	status := mgr.Reminders.Status()
	assert.True(t, status.HasPendingRule)
	assert.False(t, status.HasActiveRule)

	started, err := mgr.Reminders.Start(ctx)
	require.NoError(t, err)
	assert.False(t, started, "start must refuse without an active rule")

	// Confirm promotes pending to active
	confirmed, err := mgr.Reminders.ConfirmRule(ctx)
	require.NoError(t, err)
	assert.True(t, confirmed)

	status = mgr.Reminders.Status()
	assert.False(t, status.HasPendingRule)
	assert.True(t, status.HasActiveRule)
	require.NotNil(t, status.ActiveRule)
	assert.Equal(t, 5, status.ActiveRule.MinuteCycle)

	// Confirming again with nothing pending reports false
	confirmed, err = mgr.Reminders.ConfirmRule(ctx)
	require.NoError(t, err)
	assert.False(t, confirmed)

	started, err = mgr.Reminders.Start(ctx)
	require.NoError(t, err)
	assert.True(t, started)
	assert.True(t, mgr.Reminders.Status().IsRunning)
}

func TestReminderService_CancelPendingRule(t *testing.T) {
	mgr := newTestManager(t)
	ctx := context.Background()
	require.NoError(t, mgr.Reminders.Init(ctx))

	mgr.Reminders.SetPendingRule(NewTimeRule(10, 0, 0))
	mgr.Reminders.CancelPendingRule()

	confirmed, err := mgr.Reminders.ConfirmRule(ctx)
	require.NoError(t, err)
	assert.False(t, confirmed)
}

func TestReminderService_CheckTrigger(t *testing.T) {
	mgr := newTestManager(t)
	ctx := context.Background()
	require.NoError(t, mgr.Reminders.Init(ctx))

	mgr.Reminders.SetPendingRule(NewTimeRule(5, 2, 30))
	_, err := mgr.Reminders.ConfirmRule(ctx)
	require.NoError(t, err)

	// Not running yet: no trigger even at a matching instant
	assert.False(t, mgr.Reminders.CheckTrigger(at(7, 30)))

	_, err = mgr.Reminders.Start(ctx)
	require.NoError(t, err)

	assert.False(t, mgr.Reminders.CheckTrigger(at(7, 29)))
	assert.True(t, mgr.Reminders.CheckTrigger(at(7, 30)))
	// Re-evaluation within the same second must not fire twice
	assert.False(t, mgr.Reminders.CheckTrigger(at(7, 30)))
	// The next matching instant fires again
	assert.True(t, mgr.Reminders.CheckTrigger(at(12, 30)))

	events := mgr.Reminders.Events()
	require.Len(t, events, 2)
	assert.Equal(t, at(7, 30), events[0].FiredAt)
	assert.Equal(t, at(12, 30), events[1].FiredAt)
}

func TestReminderService_EventHistoryBounded(t *testing.T) {
	mgr := newTestManager(t)
	ctx := context.Background()
	require.NoError(t, mgr.Reminders.Init(ctx))

	mgr.Reminders.SetPendingRule(NewTimeRule(1, 0, 0))
	_, err := mgr.Reminders.ConfirmRule(ctx)
	require.NoError(t, err)
	_, err = mgr.Reminders.Start(ctx)
	require.NoError(t, err)

	base := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
	for i := 0; i < maxReminderEvents+10; i++ {
		mgr.Reminders.CheckTrigger(base.Add(time.Duration(i) * time.Minute))
	}

	events := mgr.Reminders.Events()
	assert.Len(t, events, maxReminderEvents)
	// Oldest entries are evicted first
	assert.Equal(t, base.Add(10*time.Minute), events[0].FiredAt)
}

func TestReminderService_StatePersistsAcrossRestart(t *testing.T) {
	mgr := newTestManager(t)
	ctx := context.Background()
	require.NoError(t, mgr.Reminders.Init(ctx))

	mgr.Reminders.SetPendingRule(NewTimeRule(15, 3, 45))
	_, err := mgr.Reminders.ConfirmRule(ctx)
	require.NoError(t, err)
	_, err = mgr.Reminders.Start(ctx)
	require.NoError(t, err)

	// A fresh service over the same store restores rule and running flag
	restarted := NewReminderService(mgr.Data)
	require.NoError(t, restarted.Init(ctx))

	status := restarted.Status()
	assert.True(t, status.IsRunning)
	require.NotNil(t, status.ActiveRule)
	assert.Equal(t, 15, status.ActiveRule.MinuteCycle)
	assert.Equal(t, 3, status.ActiveRule.MinuteRemainder)
	assert.Equal(t, 45, status.ActiveRule.Second)
}

func TestReminderService_Toggle(t *testing.T) {
	mgr := newTestManager(t)
	ctx := context.Background()
	require.NoError(t, mgr.Reminders.Init(ctx))

	mgr.Reminders.SetPendingRule(NewTimeRule(5, 0, 0))
	_, err := mgr.Reminders.ConfirmRule(ctx)
	require.NoError(t, err)

	running, err := mgr.Reminders.Toggle(ctx)
	require.NoError(t, err)
	assert.True(t, running)

	running, err = mgr.Reminders.Toggle(ctx)
	require.NoError(t, err)
	assert.False(t, running)
}

func TestFormatCountdown(t *testing.T) {
	now := at(0, 28)
	assert.Equal(t, "in 4m 32s (14:05:00)", formatCountdown(now, at(5, 0)))
	assert.Equal(t, "in 15s (14:00:43)", formatCountdown(now, at(0, 43)))
	assert.Equal(t, "in 1h 0m 2s (15:00:30)", formatCountdown(now, now.Add(time.Hour+2*time.Second)))
	assert.Equal(t, "about to trigger", formatCountdown(now, now))
}
