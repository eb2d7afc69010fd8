package handlers

import (
	"net/http"

	"github.com/ghinaaj20-lang/luna-project/internal/auth"
	"github.com/ghinaaj20-lang/luna-project/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// DeleteComment removes the caller's own comment and its replies.
func (s *Server) DeleteComment(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondError(w, utils.NewNotFoundError("Comment not found"))
		return
	}

	comment, err := s.DB.GetComment(r.Context(), id)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	if comment.UserID != userID {
		utils.RespondError(w, utils.NewForbiddenError("You can only delete your own comments"))
		return
	}

	if err := s.DB.DeleteComment(r.Context(), id); err != nil {
		utils.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
