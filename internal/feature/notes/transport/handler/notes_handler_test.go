package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"markpad_backend/internal/feature/notes/domain/entity"
	"markpad_backend/internal/feature/notes/usecase"
	jwtmw "markpad_backend/internal/platform/jwt"
)

// mockNotesUsecase is a mock implementation of the NotesUsecase interface.
type mockNotesUsecase struct {
	ListFunc   func(ctx context.Context, userID uint) ([]*entity.Note, error)
	GetFunc    func(ctx context.Context, userID, id uint) (*entity.Note, error)
	CreateFunc func(ctx context.Context, userID uint, title, content string) (*entity.Note, error)
	UpdateFunc func(ctx context.Context, userID, id uint, title, content string) (*entity.Note, error)
	DeleteFunc func(ctx context.Context, userID, id uint) error
}

func (m *mockNotesUsecase) List(ctx context.Context, userID uint) ([]*entity.Note, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockNotesUsecase) Get(ctx context.Context, userID, id uint) (*entity.Note, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, userID, id)
	}
	return nil, usecase.ErrNoteNotFound
}

func (m *mockNotesUsecase) Create(ctx context.Context, userID uint, title, content string) (*entity.Note, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, title, content)
	}
	return &entity.Note{ID: 1, UserID: userID, Title: title, Content: content}, nil
}

func (m *mockNotesUsecase) Update(ctx context.Context, userID, id uint, title, content string) (*entity.Note, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, userID, id, title, content)
	}
	return nil, usecase.ErrNoteNotFound
}

func (m *mockNotesUsecase) Delete(ctx context.Context, userID, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, id)
	}
	return usecase.ErrNoteNotFound
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

// newNotesRouter wires the handler behind a middleware stand-in that
// injects the authenticated user, the way AuthRequired would.
func newNotesRouter(uc NotesUsecase, userID uint) *gin.Engine {
	h := NewNotesHandler(uc)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(jwtmw.ContextUserID, userID)
		c.Next()
	})
	r.GET("/notes", h.List)
	r.POST("/notes", h.Create)
	r.GET("/notes/:id", h.Get)
	r.PUT("/notes/:id", h.Update)
	r.DELETE("/notes/:id", h.Delete)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body gin.H) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestNotesHandler_List(t *testing.T) {
	t.Run("returns the user's notes", func(t *testing.T) {
		uc := &mockNotesUsecase{
			ListFunc: func(ctx context.Context, userID uint) ([]*entity.Note, error) {
				assert.Equal(t, uint(42), userID)
				return []*entity.Note{
					{ID: 2, UserID: 42, Title: "newer"},
					{ID: 1, UserID: 42, Title: "older"},
				}, nil
			},
		}

		w := doJSON(t, newNotesRouter(uc, 42), http.MethodGet, "/notes", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var notes []entity.Note
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &notes))
		require.Len(t, notes, 2)
		assert.Equal(t, "newer", notes[0].Title)
	})

	t.Run("storage failure", func(t *testing.T) {
		uc := &mockNotesUsecase{
			ListFunc: func(ctx context.Context, userID uint) ([]*entity.Note, error) {
				return nil, errors.New("db down")
			},
		}

		w := doJSON(t, newNotesRouter(uc, 42), http.MethodGet, "/notes", nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "db down", "internal detail must not leak")
	})
}

func TestNotesHandler_Get(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		getFunc        func(ctx context.Context, userID, id uint) (*entity.Note, error)
		expectedStatus int
	}{
		{
			name: "success",
			path: "/notes/7",
			getFunc: func(ctx context.Context, userID, id uint) (*entity.Note, error) {
				return &entity.Note{ID: id, UserID: userID, Title: "draft"}, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unknown note",
			path:           "/notes/999",
			getFunc:        nil, // default returns ErrNoteNotFound
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "non-numeric id never reaches the usecase",
			path:           "/notes/abc",
			getFunc:        nil,
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "storage failure",
			path: "/notes/7",
			getFunc: func(ctx context.Context, userID, id uint) (*entity.Note, error) {
				return nil, errors.New("db down")
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockNotesUsecase{GetFunc: tt.getFunc}
			w := doJSON(t, newNotesRouter(uc, 42), http.MethodGet, tt.path, nil)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestNotesHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		uc := &mockNotesUsecase{
			CreateFunc: func(ctx context.Context, userID uint, title, content string) (*entity.Note, error) {
				assert.Equal(t, uint(42), userID)
				return &entity.Note{ID: 7, UserID: userID, Title: title, Content: content}, nil
			},
		}

		w := doJSON(t, newNotesRouter(uc, 42), http.MethodPost, "/notes", gin.H{
			"title":   "draft",
			"content": "# Draft",
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"id":7`)
	})

	t.Run("missing title", func(t *testing.T) {
		w := doJSON(t, newNotesRouter(&mockNotesUsecase{}, 42), http.MethodPost, "/notes", gin.H{
			"content": "# Draft",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("storage failure", func(t *testing.T) {
		uc := &mockNotesUsecase{
			CreateFunc: func(ctx context.Context, userID uint, title, content string) (*entity.Note, error) {
				return nil, errors.New("db down")
			},
		}

		w := doJSON(t, newNotesRouter(uc, 42), http.MethodPost, "/notes", gin.H{"title": "draft"})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestNotesHandler_Update(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		uc := &mockNotesUsecase{
			UpdateFunc: func(ctx context.Context, userID, id uint, title, content string) (*entity.Note, error) {
				assert.Equal(t, uint(7), id)
				return &entity.Note{ID: id, UserID: userID, Title: title, Content: content}, nil
			},
		}

		w := doJSON(t, newNotesRouter(uc, 42), http.MethodPut, "/notes/7", gin.H{
			"title":   "final",
			"content": "# Final",
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"title":"final"`)
	})

	t.Run("not owned", func(t *testing.T) {
		w := doJSON(t, newNotesRouter(&mockNotesUsecase{}, 42), http.MethodPut, "/notes/7", gin.H{
			"title": "final",
		})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("missing title", func(t *testing.T) {
		w := doJSON(t, newNotesRouter(&mockNotesUsecase{}, 42), http.MethodPut, "/notes/7", gin.H{
			"content": "# Final",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestNotesHandler_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		uc := &mockNotesUsecase{
			DeleteFunc: func(ctx context.Context, userID, id uint) error {
				assert.Equal(t, uint(42), userID)
				assert.Equal(t, uint(7), id)
				return nil
			},
		}

		w := doJSON(t, newNotesRouter(uc, 42), http.MethodDelete, "/notes/7", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "note deleted")
	})

	t.Run("unknown note", func(t *testing.T) {
		w := doJSON(t, newNotesRouter(&mockNotesUsecase{}, 42), http.MethodDelete, "/notes/999", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
