package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tabdeck/backend/internal/application/services"
	"github.com/tabdeck/backend/pkg/constants"
	"github.com/tabdeck/backend/pkg/errors"
)

// ReminderHandler is the presentation surface of the timer-reminder
// feature: it collects rule input, drives the confirm/start lifecycle and
// renders status, delegating every decision to the ReminderService.
type ReminderHandler struct {
	svc *services.ServiceManager
}

// NewReminderHandler creates a new ReminderHandler
func NewReminderHandler(svc *services.ServiceManager) *ReminderHandler {
	return &ReminderHandler{svc: svc}
}

// RuleRequest carries a trigger rule from the client
type RuleRequest struct {
	MinuteCycle     int `json:"minute_cycle"`
	MinuteRemainder int `json:"minute_remainder"`
	Second          int `json:"second"`
}

// Status handles GET /api/reminder/status
func (h *ReminderHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": h.svc.Reminders.Status()})
}

// StageRule handles POST /api/reminder/rule
// The rule is staged only; a separate confirm makes it active.
func (h *ReminderHandler) StageRule(c *gin.Context) {
	var req RuleRequest
	if !BindJSON(c, &req) {
		return
	}

	rule := services.NewTimeRule(req.MinuteCycle, req.MinuteRemainder, req.Second)
	h.svc.Reminders.SetPendingRule(rule)
	c.JSON(http.StatusOK, gin.H{
		constants.FieldMessage: "rule staged, confirm to apply",
		"pending_rule":         rule,
	})
}

// ConfirmRule handles POST /api/reminder/rule/confirm
func (h *ReminderHandler) ConfirmRule(c *gin.Context) {
	confirmed, err := h.svc.Reminders.ConfirmRule(c.Request.Context())
	if err != nil {
		RespondAppError(c, err)
		return
	}
	if !confirmed {
		RespondAppError(c, errors.NewValidationError("rule", "no pending rule to confirm"))
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.FieldMessage: "rule confirmed"})
}

// CancelRule handles POST /api/reminder/rule/cancel
func (h *ReminderHandler) CancelRule(c *gin.Context) {
	h.svc.Reminders.CancelPendingRule()
	c.JSON(http.StatusOK, gin.H{constants.FieldMessage: "pending rule discarded"})
}

// Start handles POST /api/reminder/start
func (h *ReminderHandler) Start(c *gin.Context) {
	started, err := h.svc.Reminders.Start(c.Request.Context())
	if err != nil {
		RespondAppError(c, err)
		return
	}
	if !started {
		RespondAppError(c, errors.NewValidationError("rule", "confirm a rule before starting"))
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.FieldMessage: "reminder started"})
}

// Stop handles POST /api/reminder/stop
func (h *ReminderHandler) Stop(c *gin.Context) {
	if err := h.svc.Reminders.Stop(c.Request.Context()); err != nil {
		RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.FieldMessage: "reminder stopped"})
}

// Toggle handles POST /api/reminder/toggle
func (h *ReminderHandler) Toggle(c *gin.Context) {
	running, err := h.svc.Reminders.Toggle(c.Request.Context())
	if err != nil {
		RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_running": running})
}

// Events handles GET /api/reminder/events
func (h *ReminderHandler) Events(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"events": h.svc.Reminders.Events()})
}
