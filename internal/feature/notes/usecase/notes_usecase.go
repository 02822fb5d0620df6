// Package usecase implements the business logic for the notes feature.
package usecase

import (
	"context"
	"errors"

	"markpad_backend/internal/feature/notes/domain/entity"
)

// ErrNoteNotFound is returned when a note does not exist or belongs to a
// different user. The two cases are indistinguishable on purpose.
var ErrNoteNotFound = errors.New("note not found")

// NoteRepository abstracts the persistence layer for notes. All lookups
// are scoped to the owning user.
type NoteRepository interface {
	Create(ctx context.Context, note *entity.Note) error
	FindByID(ctx context.Context, userID, id uint) (*entity.Note, error)
	FindByUserID(ctx context.Context, userID uint) ([]*entity.Note, error)
	Update(ctx context.Context, note *entity.Note) error
	Delete(ctx context.Context, userID, id uint) error
}

// notesUsecase implements owner-scoped note management.
type notesUsecase struct {
	notes NoteRepository
}

// NewNotesUsecase creates a new instance of notesUsecase.
func NewNotesUsecase(notes NoteRepository) *notesUsecase {
	return &notesUsecase{notes: notes}
}

// List returns all notes owned by the user, newest first.
func (u *notesUsecase) List(ctx context.Context, userID uint) ([]*entity.Note, error) {
	return u.notes.FindByUserID(ctx, userID)
}

// Get returns one note owned by the user.
func (u *notesUsecase) Get(ctx context.Context, userID, id uint) (*entity.Note, error) {
	return u.notes.FindByID(ctx, userID, id)
}

// Create stores a new note for the user.
func (u *notesUsecase) Create(ctx context.Context, userID uint, title, content string) (*entity.Note, error) {
	note := &entity.Note{UserID: userID, Title: title, Content: content}
	if err := u.notes.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// Update replaces the title and content of a note owned by the user.
func (u *notesUsecase) Update(ctx context.Context, userID, id uint, title, content string) (*entity.Note, error) {
	note, err := u.notes.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	note.Title = title
	note.Content = content
	if err := u.notes.Update(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// Delete removes a note owned by the user.
func (u *notesUsecase) Delete(ctx context.Context, userID, id uint) error {
	return u.notes.Delete(ctx, userID, id)
}
