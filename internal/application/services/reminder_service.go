package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tabdeck/backend/internal/domain/models"
	"github.com/tabdeck/backend/internal/domain/ports"
	"github.com/tabdeck/backend/pkg/errors"
)

// ReminderEntityName is the registry entity backing the reminder feature
const ReminderEntityName = "TimerReminderEntity"

// maxReminderEvents bounds the in-memory fired-reminder history
const maxReminderEvents = 50

// TimeRule is a cyclic trigger condition: it fires when the calendar
// minute modulo MinuteCycle equals MinuteRemainder and the second hand
// equals Second.
type TimeRule struct {
	MinuteCycle     int `json:"minute_cycle"`
	MinuteRemainder int `json:"minute_remainder"`
	Second          int `json:"second"`
}

// NewTimeRule builds a rule with the inputs clamped into range
func NewTimeRule(cycle, remainder, second int) TimeRule {
	if cycle < 1 {
		cycle = 1
	}
	if cycle > 60 {
		cycle = 60
	}
	if remainder < 0 {
		remainder = 0
	}
	remainder = remainder % cycle
	if second < 0 {
		second = 0
	}
	if second > 59 {
		second = 59
	}
	return TimeRule{MinuteCycle: cycle, MinuteRemainder: remainder, Second: second}
}

// Matches reports whether the rule fires at the given instant
func (r TimeRule) Matches(now time.Time) bool {
	return now.Minute()%r.MinuteCycle == r.MinuteRemainder && now.Second() == r.Second
}

// NextTrigger returns the first instant strictly after the reference time
// at which the rule fires
func (r TimeRule) NextTrigger(after time.Time) time.Time {
	t := after.Truncate(time.Minute).Add(time.Duration(r.Second) * time.Second)
	// A matching minute always occurs within any 60-minute window
	for i := 0; i <= 61; i++ {
		if t.After(after) && t.Minute()%r.MinuteCycle == r.MinuteRemainder {
			return t
		}
		t = t.Add(time.Minute)
	}
	return t
}

// ReminderEvent records one fired reminder
type ReminderEvent struct {
	FiredAt time.Time `json:"fired_at"`
	Rule    TimeRule  `json:"rule"`
}

// ReminderStatus is the status snapshot handed to the presentation layer
type ReminderStatus struct {
	IsRunning       bool       `json:"is_running"`
	HasActiveRule   bool       `json:"has_active_rule"`
	HasPendingRule  bool       `json:"has_pending_rule"`
	ActiveRule      *TimeRule  `json:"active_rule,omitempty"`
	PendingRule     *TimeRule  `json:"pending_rule,omitempty"`
	NextTriggerTime *time.Time `json:"next_trigger_time,omitempty"`
	NextTriggerText string     `json:"next_trigger_text"`
}

// ReminderService owns the timer-reminder feature: the pending/active
// rule lifecycle, the running flag, trigger detection, and persistence of
// its single state record through the data facade. A rule set via
// SetPendingRule has no effect until ConfirmRule promotes it.
type ReminderService struct {
	data ports.DataAPI

	mu          sync.Mutex
	recordID    int64
	running     bool
	pendingRule *TimeRule
	activeRule  *TimeRule
	lastTrigger time.Time
	events      []ReminderEvent
}

// NewReminderService creates the service. Init must run before first use.
func NewReminderService(data ports.DataAPI) *ReminderService {
	return &ReminderService{data: data}
}

// Init loads the persisted state record, creating the default one on
// first run. Restores the active rule and running flag.
func (rs *ReminderService) Init(ctx context.Context) error {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	records, err := rs.data.Query(ctx, ReminderEntityName, ports.QueryOptions{Limit: 1})
	if err != nil {
		return err
	}

	var record models.Record
	if len(records) > 0 {
		record = records[0]
	} else {
		id, err := rs.data.Create(ctx, ReminderEntityName, models.Record{
			"minute_cycle":     1,
			"minute_remainder": 0,
			"second":           0,
			"is_active":        false,
			"is_running":       false,
		})
		if err != nil {
			return err
		}
		record, err = rs.data.Get(ctx, ReminderEntityName, id)
		if err != nil {
			return err
		}
	}

	rs.recordID = record.ID()
	if record.GetBool("is_active") {
		rule := NewTimeRule(
			int(record.GetInt64("minute_cycle")),
			int(record.GetInt64("minute_remainder")),
			int(record.GetInt64("second")),
		)
		rs.activeRule = &rule
	}
	// The running flag is restored but the feature does not auto-start
	// without an active rule
	rs.running = record.GetBool("is_running") && rs.activeRule != nil
	return nil
}

// save persists the active rule and running flag. Callers hold the lock.
func (rs *ReminderService) save(ctx context.Context) error {
	fields := models.Record{
		"minute_cycle":     1,
		"minute_remainder": 0,
		"second":           0,
		"is_active":        rs.activeRule != nil,
		"is_running":       rs.running,
	}
	if rs.activeRule != nil {
		fields["minute_cycle"] = rs.activeRule.MinuteCycle
		fields["minute_remainder"] = rs.activeRule.MinuteRemainder
		fields["second"] = rs.activeRule.Second
	}

	ok, err := rs.data.Update(ctx, ReminderEntityName, rs.recordID, fields)
	if err != nil {
		return err
	}
	if !ok {
		return errors.NewSystemError("reminder state record disappeared", nil)
	}
	return nil
}

// SetPendingRule stages a rule. It takes effect only after ConfirmRule.
func (rs *ReminderService) SetPendingRule(rule TimeRule) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.pendingRule = &rule
}

// ConfirmRule promotes the pending rule to active and persists it.
// Returns false when nothing is pending.
func (rs *ReminderService) ConfirmRule(ctx context.Context) (bool, error) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if rs.pendingRule == nil {
		return false, nil
	}
	rs.activeRule = rs.pendingRule
	rs.pendingRule = nil
	// Reset trigger memory so a rule switch cannot fire immediately
	rs.lastTrigger = time.Time{}
	return true, rs.save(ctx)
}

// CancelPendingRule discards the staged rule
func (rs *ReminderService) CancelPendingRule() {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.pendingRule = nil
}

// Start enables trigger evaluation. Returns false without an active rule.
func (rs *ReminderService) Start(ctx context.Context) (bool, error) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if rs.activeRule == nil {
		return false, nil
	}
	rs.running = true
	return true, rs.save(ctx)
}

// Stop disables trigger evaluation
func (rs *ReminderService) Stop(ctx context.Context) error {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	rs.running = false
	return rs.save(ctx)
}

// Toggle flips the running state and returns the state after the flip
func (rs *ReminderService) Toggle(ctx context.Context) (bool, error) {
	rs.mu.Lock()
	running := rs.running
	rs.mu.Unlock()

	if running {
		return false, rs.Stop(ctx)
	}
	ok, err := rs.Start(ctx)
	return ok, err
}

// CheckTrigger evaluates the active rule at the given instant. At most
// one firing per matching second: repeated calls within the same second
// report false after the first.
func (rs *ReminderService) CheckTrigger(now time.Time) bool {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if !rs.running || rs.activeRule == nil {
		return false
	}
	if !rs.activeRule.Matches(now) {
		return false
	}
	if !rs.lastTrigger.IsZero() && rs.lastTrigger.Unix() == now.Unix() {
		return false
	}

	rs.lastTrigger = now
	rs.events = append(rs.events, ReminderEvent{FiredAt: now, Rule: *rs.activeRule})
	if len(rs.events) > maxReminderEvents {
		rs.events = rs.events[len(rs.events)-maxReminderEvents:]
	}
	return true
}

// Events returns the fired reminders, most recent last
func (rs *ReminderService) Events() []ReminderEvent {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	out := make([]ReminderEvent, len(rs.events))
	copy(out, rs.events)
	return out
}

// Status returns a snapshot for rendering
func (rs *ReminderService) Status() ReminderStatus {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	status := ReminderStatus{
		IsRunning:      rs.running,
		HasActiveRule:  rs.activeRule != nil,
		HasPendingRule: rs.pendingRule != nil,
		ActiveRule:     rs.activeRule,
		PendingRule:    rs.pendingRule,
	}

	if rs.activeRule == nil {
		status.NextTriggerText = "no trigger rule configured"
		return status
	}

	next := rs.activeRule.NextTrigger(time.Now())
	status.NextTriggerTime = &next
	status.NextTriggerText = formatCountdown(time.Now(), next)
	return status
}

// formatCountdown renders "in 4m 32s (14:05:00)" style text
func formatCountdown(now, next time.Time) string {
	remaining := next.Sub(now)
	if remaining <= 0 {
		return "about to trigger"
	}

	total := int(remaining.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	clock := next.Format("15:04:05")

	switch {
	case hours > 0:
		return fmt.Sprintf("in %dh %dm %ds (%s)", hours, minutes, seconds, clock)
	case minutes > 0:
		return fmt.Sprintf("in %dm %ds (%s)", minutes, seconds, clock)
	default:
		return fmt.Sprintf("in %ds (%s)", seconds, clock)
	}
}
