package services

import (
	"context"
	"strings"

	"github.com/tabdeck/backend/internal/domain/models"
	"github.com/tabdeck/backend/internal/domain/ports"
	"github.com/tabdeck/backend/pkg/constants"
	"github.com/tabdeck/backend/pkg/errors"
)

// NoteEntityName is the registry entity backing the note feature
const NoteEntityName = "NoteEntity"

// NoteService exposes the note feature's named operations
type NoteService struct {
	data ports.DataAPI
}

// NewNoteService creates a new NoteService
func NewNoteService(data ports.DataAPI) *NoteService {
	return &NoteService{data: data}
}

// Add creates a note. The title must be non-empty after trimming.
func (ns *NoteService) Add(ctx context.Context, title, content string) (int64, error) {
	if strings.TrimSpace(title) == "" {
		return 0, errors.NewValidationError("title", "title cannot be empty")
	}

	return ns.data.Create(ctx, NoteEntityName, models.Record{
		"title":   title,
		"content": content,
	})
}

// Edit replaces a note's title and content. Returns false when the id is
// unknown.
func (ns *NoteService) Edit(ctx context.Context, id int64, title, content string) (bool, error) {
	if strings.TrimSpace(title) == "" {
		return false, errors.NewValidationError("title", "title cannot be empty")
	}

	return ns.data.Update(ctx, NoteEntityName, id, models.Record{
		"title":   title,
		"content": content,
	})
}

// Remove deletes a note. Returns false when the id is unknown.
func (ns *NoteService) Remove(ctx context.Context, id int64) (bool, error) {
	return ns.data.Delete(ctx, NoteEntityName, id)
}

// Get returns one note, or nil when absent
func (ns *NoteService) Get(ctx context.Context, id int64) (models.Record, error) {
	return ns.data.Get(ctx, NoteEntityName, id)
}

// List returns notes, newest first
func (ns *NoteService) List(ctx context.Context, limit int) ([]models.Record, error) {
	return ns.data.Query(ctx, NoteEntityName, ports.QueryOptions{
		OrderBy:        constants.FieldCreatedAt,
		OrderDirection: constants.SortDESC,
		Limit:          limit,
	})
}

// Count returns the total number of notes
func (ns *NoteService) Count(ctx context.Context) (int64, error) {
	return ns.data.Count(ctx, NoteEntityName, nil)
}
