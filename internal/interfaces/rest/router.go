package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tabdeck/backend/internal/application/services"
	"github.com/tabdeck/backend/internal/interfaces/middleware"
)

// NewRouter builds the gin engine with all routes and middleware attached
func NewRouter(svc *services.ServiceManager) *gin.Engine {
	router := gin.Default()
	router.Use(middleware.Cors())
	router.Use(middleware.RequestID())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	RegisterRoutes(router, svc)
	return router
}

// RegisterRoutes attaches all API handlers to the router
func RegisterRoutes(router *gin.Engine, svc *services.ServiceManager) {
	dataHandler := NewDataHandler(svc)
	metaHandler := NewMetaHandler(svc)
	reminderHandler := NewReminderHandler(svc)
	taskHandler := NewTaskHandler(svc)
	noteHandler := NewNoteHandler(svc)

	api := router.Group("/api")

	// Generic data facade. Query and count are POST so filter payloads
	// travel in the body and the routes never collide with /:id.
	data := api.Group("/data")
	{
		data.POST("/:entityName/query", dataHandler.Query)
		data.POST("/:entityName/count", dataHandler.Count)
		data.POST("/:entityName", dataHandler.Create)
		data.GET("/:entityName/:id", dataHandler.Get)
		data.PATCH("/:entityName/:id", dataHandler.Update)
		data.DELETE("/:entityName/:id", dataHandler.Delete)
	}

	// Entity catalog
	meta := api.Group("/meta")
	{
		meta.GET("/entities", metaHandler.ListEntities)
		meta.GET("/entities/:name", metaHandler.GetEntity)
	}

	// Timer reminder lifecycle
	reminder := api.Group("/reminder")
	{
		reminder.GET("/status", reminderHandler.Status)
		reminder.GET("/events", reminderHandler.Events)
		reminder.POST("/rule", reminderHandler.StageRule)
		reminder.POST("/rule/confirm", reminderHandler.ConfirmRule)
		reminder.POST("/rule/cancel", reminderHandler.CancelRule)
		reminder.POST("/start", reminderHandler.Start)
		reminder.POST("/stop", reminderHandler.Stop)
		reminder.POST("/toggle", reminderHandler.Toggle)
	}

	// Tasks
	tasks := api.Group("/tasks")
	{
		tasks.POST("", taskHandler.Create)
		tasks.GET("", taskHandler.List)
		tasks.GET("/:id", taskHandler.Get)
		tasks.POST("/:id/complete", taskHandler.Complete)
		tasks.POST("/:id/reopen", taskHandler.Reopen)
		tasks.DELETE("/:id", taskHandler.Delete)
	}

	// Notes
	notes := api.Group("/notes")
	{
		notes.POST("", noteHandler.Create)
		notes.GET("", noteHandler.List)
		notes.GET("/:id", noteHandler.Get)
		notes.PATCH("/:id", noteHandler.Update)
		notes.DELETE("/:id", noteHandler.Delete)
	}
}
