package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tabdeck/backend/internal/application/services"
	"github.com/tabdeck/backend/pkg/constants"
	"github.com/tabdeck/backend/pkg/errors"
)

// NoteHandler is the presentation surface of the note feature
type NoteHandler struct {
	svc *services.ServiceManager
}

// NewNoteHandler creates a new NoteHandler
func NewNoteHandler(svc *services.ServiceManager) *NoteHandler {
	return &NoteHandler{svc: svc}
}

// NoteRequest carries note input from the client
type NoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Create handles POST /api/notes
func (h *NoteHandler) Create(c *gin.Context) {
	var req NoteRequest
	if !BindJSON(c, &req) {
		return
	}

	id, err := h.svc.Notes.Add(c.Request.Context(), req.Title, req.Content)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		constants.FieldMessage: "note created",
		constants.FieldID:      id,
	})
}

// List handles GET /api/notes?limit=50
func (h *NoteHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	notes, err := h.svc.Notes.List(c.Request.Context(), limit)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	total, err := h.svc.Notes.Count(c.Request.Context())
	if err != nil {
		RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notes": notes, "total": total})
}

// Get handles GET /api/notes/:id
func (h *NoteHandler) Get(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}

	note, err := h.svc.Notes.Get(c.Request.Context(), id)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	if note == nil {
		RespondAppError(c, errors.NewNotFoundError("note", c.Param("id")))
		return
	}
	c.JSON(http.StatusOK, gin.H{"note": note})
}

// Update handles PATCH /api/notes/:id
func (h *NoteHandler) Update(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}

	var req NoteRequest
	if !BindJSON(c, &req) {
		return
	}

	updated, err := h.svc.Notes.Edit(c.Request.Context(), id, req.Title, req.Content)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	if !updated {
		RespondAppError(c, errors.NewNotFoundError("note", c.Param("id")))
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.FieldMessage: "note updated"})
}

// Delete handles DELETE /api/notes/:id
func (h *NoteHandler) Delete(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}

	deleted, err := h.svc.Notes.Remove(c.Request.Context(), id)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	if !deleted {
		RespondAppError(c, errors.NewNotFoundError("note", c.Param("id")))
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.FieldMessage: "note deleted"})
}
