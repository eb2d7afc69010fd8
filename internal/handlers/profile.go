package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ghinaaj20-lang/luna-project/internal/auth"
	"github.com/ghinaaj20-lang/luna-project/internal/database"
	"github.com/ghinaaj20-lang/luna-project/internal/utils"
	"github.com/google/uuid"
)

const maxAvatarSize = 2 << 20 // 2 MiB

// GetProfile returns the caller's account, profile, and aggregate
// activity stats.
func (s *Server) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	user, err := s.DB.GetUser(r.Context(), userID)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	profile, err := s.DB.GetOrCreateProfile(r.Context(), userID)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	stats, err := s.DB.GetProfileStats(r.Context(), userID)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"user":           NewUserView(user),
		"profile":        profile,
		"contents_count": stats.ContentsCount,
		"total_likes":    stats.TotalLikes,
		"total_comments": stats.TotalComments,
	})
}

// UpdateProfile merges the provided account and profile fields; omitted
// fields stay as they are.
func (s *Server) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	var update database.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		utils.RespondError(w, utils.NewValidationError("Invalid JSON"))
		return
	}

	user, profile, err := s.DB.UpdateProfile(r.Context(), userID, update)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"message": "Profile updated successfully",
		"user":    NewUserView(user),
		"profile": profile,
	})
}

// UploadAvatar replaces the caller's avatar. The file is buffered in
// full, then validated: at most 2 MiB and one of the allowed image
// types.
func (s *Server) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	file, header, err := r.FormFile("profile_picture")
	if err != nil {
		utils.RespondError(w, utils.NewValidationError("No file provided"))
		return
	}
	defer file.Close()

	if header.Size > maxAvatarSize {
		utils.RespondError(w, utils.NewAppError(utils.ErrPayloadTooLarge, "File too large. Max 2MB", nil))
		return
	}
	contentType := header.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		utils.RespondError(w, utils.NewAppError(utils.ErrUnsupportedMediaType, "Invalid file type. Use JPEG, PNG, GIF, or WebP", nil))
		return
	}

	key := fmt.Sprintf("profile_pics/%s/%s_%s", userID, uuid.New(), header.Filename)
	url, err := s.Blobs.Put(r.Context(), key, contentType, file)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	if _, err := s.DB.SetAvatar(r.Context(), userID, url); err != nil {
		utils.RespondError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"message":         "Avatar updated successfully",
		"profile_picture": url,
	})
}

// ChangePasswordRequest represents a password change for the logged-in
// account.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// ChangePassword validates and persists a new password, then re-keys
// the session so the caller stays logged in.
func (s *Server) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, utils.NewValidationError("Invalid JSON"))
		return
	}

	if req.CurrentPassword == "" || req.NewPassword == "" || req.ConfirmPassword == "" {
		utils.RespondError(w, utils.NewValidationError("All fields are required"))
		return
	}
	if req.NewPassword != req.ConfirmPassword {
		utils.RespondError(w, utils.NewValidationError("New passwords do not match"))
		return
	}
	if len(req.NewPassword) < 8 {
		utils.RespondError(w, utils.NewValidationError("Password must be at least 8 characters"))
		return
	}

	if err := s.DB.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		utils.RespondError(w, err)
		return
	}

	if err := auth.SignIn(w, r, s.Sessions, userID); err != nil {
		utils.RespondError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Password changed successfully"})
}
