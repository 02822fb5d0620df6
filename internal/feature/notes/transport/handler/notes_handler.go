// Package handler provides the HTTP handlers for the notes feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"markpad_backend/internal/api"
	"markpad_backend/internal/feature/notes/domain/entity"
	"markpad_backend/internal/feature/notes/transport/http/dto"
	"markpad_backend/internal/feature/notes/usecase"
	jwtmw "markpad_backend/internal/platform/jwt"
)

// NotesUsecase defines the note operations consumed by this handler.
type NotesUsecase interface {
	List(ctx context.Context, userID uint) ([]*entity.Note, error)
	Get(ctx context.Context, userID, id uint) (*entity.Note, error)
	Create(ctx context.Context, userID uint, title, content string) (*entity.Note, error)
	Update(ctx context.Context, userID, id uint, title, content string) (*entity.Note, error)
	Delete(ctx context.Context, userID, id uint) error
}

// NotesHandler handles HTTP requests for the markdown notes resource.
type NotesHandler struct {
	notes NotesUsecase
}

// NewNotesHandler creates a new instance of NotesHandler.
func NewNotesHandler(notes NotesUsecase) *NotesHandler {
	return &NotesHandler{notes: notes}
}

// noteID parses the :id route parameter.
func noteID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: usecase.ErrNoteNotFound.Error()})
		return 0, false
	}
	return uint(id), true
}

// List returns all notes of the authenticated user.
func (h *NotesHandler) List(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)

	notes, err := h.notes.List(c.Request.Context(), userID)
	if err != nil {
		slog.Error("list notes failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "an internal error occurred"})
		return
	}
	c.JSON(http.StatusOK, notes)
}

// Get returns one note of the authenticated user.
func (h *NotesHandler) Get(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)
	id, ok := noteID(c)
	if !ok {
		return
	}

	note, err := h.notes.Get(c.Request.Context(), userID, id)
	if err != nil {
		h.respondNoteError(c, userID, err)
		return
	}
	c.JSON(http.StatusOK, note)
}

// Create stores a new note for the authenticated user.
func (h *NotesHandler) Create(c *gin.Context) {
	var req dto.NoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	userID := c.GetUint(jwtmw.ContextUserID)
	note, err := h.notes.Create(c.Request.Context(), userID, req.Title, req.Content)
	if err != nil {
		slog.Error("create note failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "an internal error occurred"})
		return
	}
	c.JSON(http.StatusCreated, note)
}

// Update replaces the title and content of one note.
func (h *NotesHandler) Update(c *gin.Context) {
	var req dto.NoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	userID := c.GetUint(jwtmw.ContextUserID)
	id, ok := noteID(c)
	if !ok {
		return
	}

	note, err := h.notes.Update(c.Request.Context(), userID, id, req.Title, req.Content)
	if err != nil {
		h.respondNoteError(c, userID, err)
		return
	}
	c.JSON(http.StatusOK, note)
}

// Delete removes one note of the authenticated user.
func (h *NotesHandler) Delete(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)
	id, ok := noteID(c)
	if !ok {
		return
	}

	if err := h.notes.Delete(c.Request.Context(), userID, id); err != nil {
		h.respondNoteError(c, userID, err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "note deleted"})
}

func (h *NotesHandler) respondNoteError(c *gin.Context, userID uint, err error) {
	if errors.Is(err, usecase.ErrNoteNotFound) {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: usecase.ErrNoteNotFound.Error()})
		return
	}
	slog.Error("note operation failed", "error", err, "user_id", userID)
	c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "an internal error occurred"})
}
