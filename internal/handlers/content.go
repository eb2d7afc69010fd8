package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ghinaaj20-lang/luna-project/internal/auth"
	"github.com/ghinaaj20-lang/luna-project/internal/database"
	"github.com/ghinaaj20-lang/luna-project/internal/utils"
	"github.com/ghinaaj20-lang/luna-project/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const (
	defaultPageSize  = 10
	maxPageSize      = 50
	maxContentPhoto  = 10 << 20 // 10 MiB
	multipartFormMem = 32 << 20
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// CreateContentRequest represents a request to publish a photo or
// article. Photo uploads arrive as multipart form data with the same
// field names plus an "image" file part.
type CreateContentRequest struct {
	ContentType string `json:"content_type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	ImageURL    string `json:"image_url"`
	Location    string `json:"location"`
	Category    string `json:"category"`
}

// CreateContent publishes a new item owned by the caller. Photos run
// through the verification stub; its verdict is stored but creation
// never waits on or fails because of it.
func (s *Server) CreateContent(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	var req CreateContentRequest
	var imageURL string

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(multipartFormMem); err != nil {
			utils.RespondError(w, utils.NewValidationError("Invalid form data"))
			return
		}
		req = CreateContentRequest{
			ContentType: r.FormValue("content_type"),
			Title:       r.FormValue("title"),
			Description: r.FormValue("description"),
			Content:     r.FormValue("content"),
			ImageURL:    r.FormValue("image_url"),
			Location:    r.FormValue("location"),
			Category:    r.FormValue("category"),
		}

		if file, header, err := r.FormFile("image"); err == nil {
			defer file.Close()
			if header.Size > maxContentPhoto {
				utils.RespondError(w, utils.NewAppError(utils.ErrPayloadTooLarge, "File too large. Max 10MB", nil))
				return
			}
			contentType := header.Header.Get("Content-Type")
			if !allowedImageTypes[contentType] {
				utils.RespondError(w, utils.NewAppError(utils.ErrUnsupportedMediaType, "Invalid file type. Use JPEG, PNG, GIF, or WebP", nil))
				return
			}
			key := fmt.Sprintf("astrophotos/%s/%s_%s", userID, uuid.New(), header.Filename)
			url, err := s.Blobs.Put(r.Context(), key, contentType, file)
			if err != nil {
				utils.RespondError(w, err)
				return
			}
			imageURL = url
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, utils.NewValidationError("Invalid JSON"))
			return
		}
	}

	contentType := models.ContentType(req.ContentType)
	if !contentType.Valid() {
		utils.RespondError(w, utils.NewValidationError("content_type must be photo or article"))
		return
	}
	if req.Title == "" {
		utils.RespondError(w, utils.NewValidationError("Title is required"))
		return
	}
	category := models.Category(req.Category)
	if !category.Valid() {
		utils.RespondError(w, utils.NewValidationError("Invalid category"))
		return
	}

	content := &models.Content{
		AuthorID:    userID,
		ContentType: contentType,
		Title:       req.Title,
		Description: req.Description,
		Body:        req.Content,
		Image:       imageURL,
		ImageURL:    req.ImageURL,
		Location:    req.Location,
		Category:    category,
	}

	if contentType == models.ContentTypePhoto {
		verdict := s.Verifier.VerifyAstroPhoto(category, req.Location, time.Now())
		content.AIVerified = verdict.Verified
		content.AIConfidence = verdict.Confidence
		content.AIReason = verdict.Reason
	}

	if err := s.DB.CreateContent(r.Context(), content); err != nil {
		utils.RespondError(w, err)
		return
	}

	created, err := s.DB.GetContent(r.Context(), content.ID)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, NewContentView(created, &userID))
}

// ListContent returns content newest-first, optionally filtered by
// author, in a paginated envelope.
func (s *Server) ListContent(w http.ResponseWriter, r *http.Request) {
	var authorID *uuid.UUID
	if raw := r.URL.Query().Get("author"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			utils.RespondError(w, utils.NewValidationError("Invalid author id"))
			return
		}
		authorID = &id
	}
	s.respondContentPage(w, r, authorID)
}

// Feed is the distinguished newest-first read endpoint.
func (s *Server) Feed(w http.ResponseWriter, r *http.Request) {
	s.respondContentPage(w, r, nil)
}

func (s *Server) respondContentPage(w http.ResponseWriter, r *http.Request, authorID *uuid.UUID) {
	page, pageSize := parsePagination(r)
	contents, total, err := s.DB.ListContent(r.Context(), authorID, page, pageSize)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	viewer := viewerID(r)
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"count":   total,
		"results": NewContentViews(contents, viewer),
	})
}

// GetContent returns one item with its full comment tree and likes.
func (s *Server) GetContent(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondError(w, utils.NewNotFoundError("Content not found"))
		return
	}

	content, err := s.DB.GetContent(r.Context(), id)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, NewContentView(content, viewerID(r)))
}

// UpdateContent merges changes into the caller's own content.
func (s *Server) UpdateContent(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondError(w, utils.NewNotFoundError("Content not found"))
		return
	}

	content, err := s.DB.GetContent(r.Context(), id)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	if content.AuthorID != userID {
		utils.RespondError(w, utils.NewForbiddenError("You can only edit your own content"))
		return
	}

	var update database.ContentUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		utils.RespondError(w, utils.NewValidationError("Invalid JSON"))
		return
	}

	updated, err := s.DB.UpdateContent(r.Context(), id, update)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, NewContentView(updated, &userID))
}

// DeleteContent removes the caller's own content and everything hanging
// off it.
func (s *Server) DeleteContent(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondError(w, utils.NewNotFoundError("Content not found"))
		return
	}

	content, err := s.DB.GetContent(r.Context(), id)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	if content.AuthorID != userID {
		utils.RespondError(w, utils.NewForbiddenError("You can only delete your own content"))
		return
	}

	if err := s.DB.DeleteContent(r.Context(), id); err != nil {
		utils.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// LikeContent is idempotent: the first call creates the like (201),
// repeats report "already liked" (200).
func (s *Server) LikeContent(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	content, ok := s.fetchContent(w, r)
	if !ok {
		return
	}

	created, err := s.DB.Like(r.Context(), userID, content.ID)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	if created {
		utils.RespondJSON(w, http.StatusCreated, map[string]string{"status": "liked"})
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "already liked"})
}

// UnlikeContent removes the caller's like; succeeds even when none
// existed.
func (s *Server) UnlikeContent(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	content, ok := s.fetchContent(w, r)
	if !ok {
		return
	}

	if err := s.DB.Unlike(r.Context(), userID, content.ID); err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "unliked"})
}

// AddCommentRequest represents a request to comment on content,
// optionally as a reply to another comment.
type AddCommentRequest struct {
	Text     string `json:"text"`
	ParentID string `json:"parent_id"`
}

// AddComment attaches a comment. A parent_id that is malformed or
// belongs to another content's thread is treated as absent.
func (s *Server) AddComment(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	content, ok := s.fetchContent(w, r)
	if !ok {
		return
	}

	var req AddCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, utils.NewValidationError("Invalid JSON"))
		return
	}
	if req.Text == "" {
		utils.RespondError(w, utils.NewValidationError("Text is required"))
		return
	}

	var parentID *uuid.UUID
	if req.ParentID != "" {
		if id, err := uuid.Parse(req.ParentID); err == nil {
			parentID = &id
		}
	}

	comment, err := s.DB.AddComment(r.Context(), userID, content.ID, req.Text, parentID)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, NewCommentView(comment))
}

func (s *Server) fetchContent(w http.ResponseWriter, r *http.Request) (*models.Content, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondError(w, utils.NewNotFoundError("Content not found"))
		return nil, false
	}
	content, err := s.DB.GetContent(r.Context(), id)
	if err != nil {
		utils.RespondError(w, err)
		return nil, false
	}
	return content, true
}

func viewerID(r *http.Request) *uuid.UUID {
	if id, ok := auth.UserID(r.Context()); ok {
		return &id
	}
	return nil
}

func parsePagination(r *http.Request) (page, pageSize int) {
	page, pageSize = 1, defaultPageSize
	if raw := r.URL.Query().Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			page = n
		}
	}
	if raw := r.URL.Query().Get("page_size"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			pageSize = n
		}
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}
