// Package adapters provides repository implementations for the notes
// feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"markpad_backend/internal/feature/notes/domain/entity"
	"markpad_backend/internal/feature/notes/usecase"
)

// noteGorm is a GORM implementation of the NoteRepository interface.
type noteGorm struct {
	db *gorm.DB
}

// Compile-time check that noteGorm implements NoteRepository.
var _ usecase.NoteRepository = (*noteGorm)(nil)

// NewNoteGorm creates a new instance of noteGorm on the given connection.
func NewNoteGorm(db *gorm.DB) *noteGorm {
	return &noteGorm{db: db}
}

// Create persists a new note.
func (r *noteGorm) Create(ctx context.Context, note *entity.Note) error {
	return r.db.WithContext(ctx).Create(note).Error
}

// FindByID retrieves one note scoped to its owner.
func (r *noteGorm) FindByID(ctx context.Context, userID, id uint) (*entity.Note, error) {
	var note entity.Note
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&note).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrNoteNotFound
		}
		return nil, err
	}
	return &note, nil
}

// FindByUserID retrieves all notes owned by a user, newest first.
func (r *noteGorm) FindByUserID(ctx context.Context, userID uint) ([]*entity.Note, error) {
	var notes []*entity.Note
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

// Update persists changes to an existing note.
func (r *noteGorm) Update(ctx context.Context, note *entity.Note) error {
	return r.db.WithContext(ctx).Save(note).Error
}

// Delete removes a note scoped to its owner.
func (r *noteGorm) Delete(ctx context.Context, userID, id uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&entity.Note{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrNoteNotFound
	}
	return nil
}
