package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tabdeck/backend/internal/application/services"
	"github.com/tabdeck/backend/internal/domain/models"
	"github.com/tabdeck/backend/internal/domain/ports"
	"github.com/tabdeck/backend/pkg/constants"
	"github.com/tabdeck/backend/pkg/errors"
)

// DataHandler exposes the generic facade over REST. It is deliberately
// thin: entity resolution, field filtering and validation all live in the
// DataService.
type DataHandler struct {
	svc *services.ServiceManager
}

// NewDataHandler creates a new DataHandler
func NewDataHandler(svc *services.ServiceManager) *DataHandler {
	return &DataHandler{svc: svc}
}

// QueryRequest represents a query request
type QueryRequest struct {
	Filters        map[string]interface{} `json:"filters"`
	OrderBy        string                 `json:"order_by"`
	OrderDirection string                 `json:"order_direction"`
	Limit          int                    `json:"limit"`
	Offset         int                    `json:"offset"`
}

// Query handles POST /api/data/:entityName/query
func (h *DataHandler) Query(c *gin.Context) {
	entityName := c.Param("entityName")
	var req QueryRequest
	if !BindJSON(c, &req) {
		return
	}

	HandleGetEnvelope(c, "records", func() (interface{}, error) {
		return h.svc.Data.Query(c.Request.Context(), entityName, ports.QueryOptions{
			Filters:        req.Filters,
			OrderBy:        req.OrderBy,
			OrderDirection: req.OrderDirection,
			Limit:          req.Limit,
			Offset:         req.Offset,
		})
	})
}

// Count handles POST /api/data/:entityName/count
func (h *DataHandler) Count(c *gin.Context) {
	entityName := c.Param("entityName")
	var req struct {
		Filters map[string]interface{} `json:"filters"`
	}
	if !BindJSON(c, &req) {
		return
	}

	HandleGetEnvelope(c, "count", func() (interface{}, error) {
		return h.svc.Data.Count(c.Request.Context(), entityName, req.Filters)
	})
}

// Get handles GET /api/data/:entityName/:id
func (h *DataHandler) Get(c *gin.Context) {
	entityName := c.Param("entityName")
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}

	record, err := h.svc.Data.Get(c.Request.Context(), entityName, id)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	if record == nil {
		RespondAppError(c, errors.NewNotFoundError(entityName, c.Param("id")))
		return
	}
	c.JSON(http.StatusOK, gin.H{"record": record})
}

// Create handles POST /api/data/:entityName
func (h *DataHandler) Create(c *gin.Context) {
	entityName := c.Param("entityName")
	var fields models.Record
	if !BindJSON(c, &fields) {
		return
	}

	id, err := h.svc.Data.Create(c.Request.Context(), entityName, fields)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		constants.FieldMessage: "record created",
		constants.FieldID:      id,
	})
}

// Update handles PATCH /api/data/:entityName/:id
func (h *DataHandler) Update(c *gin.Context) {
	entityName := c.Param("entityName")
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}

	var fields models.Record
	if !BindJSON(c, &fields) {
		return
	}

	updated, err := h.svc.Data.Update(c.Request.Context(), entityName, id, fields)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	if !updated {
		RespondAppError(c, errors.NewNotFoundError(entityName, c.Param("id")))
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.FieldMessage: "record updated"})
}

// Delete handles DELETE /api/data/:entityName/:id
func (h *DataHandler) Delete(c *gin.Context) {
	entityName := c.Param("entityName")
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}

	deleted, err := h.svc.Data.Delete(c.Request.Context(), entityName, id)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	if !deleted {
		RespondAppError(c, errors.NewNotFoundError(entityName, c.Param("id")))
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.FieldMessage: "record deleted"})
}
