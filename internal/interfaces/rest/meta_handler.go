package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tabdeck/backend/internal/application/services"
)

// MetaHandler exposes the read-only entity catalog
type MetaHandler struct {
	svc *services.ServiceManager
}

// NewMetaHandler creates a new MetaHandler
func NewMetaHandler(svc *services.ServiceManager) *MetaHandler {
	return &MetaHandler{svc: svc}
}

// entitySummary is the list-view projection of an entity definition
type entitySummary struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	TableName   string   `json:"table_name"`
	Operations  []string `json:"operations"`
}

// ListEntities handles GET /api/meta/entities
func (h *MetaHandler) ListEntities(c *gin.Context) {
	defs := h.svc.Registry().All()
	entities := make([]entitySummary, 0, len(defs))
	for _, def := range defs {
		entities = append(entities, entitySummary{
			Name:        def.Name,
			Description: def.Description,
			TableName:   def.TableName,
			Operations:  def.Operations,
		})
	}
	c.JSON(http.StatusOK, gin.H{"entities": entities})
}

// GetEntity handles GET /api/meta/entities/:name
func (h *MetaHandler) GetEntity(c *gin.Context) {
	def, err := h.svc.Registry().Resolve(c.Param("name"))
	if err != nil {
		RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entity": def})
}
