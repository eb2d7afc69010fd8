package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ghinaaj20-lang/luna-project/internal/auth"
	"github.com/ghinaaj20-lang/luna-project/internal/utils"
)

// RegisterRequest represents a request to register a new account.
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
}

// LoginRequest represents a request to log in.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register creates an account plus its profile and logs the caller in.
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, utils.NewValidationError("Invalid JSON"))
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		utils.RespondError(w, utils.NewValidationError("Username, email and password are required"))
		return
	}
	if len(req.Password) < 6 {
		utils.RespondError(w, utils.NewValidationError("Password must be at least 6 characters"))
		return
	}

	user, err := s.DB.CreateUser(r.Context(), req.Username, req.Email, req.Password, req.FirstName)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	if err := auth.SignIn(w, r, s.Sessions, user.ID); err != nil {
		utils.RespondError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusCreated, map[string]any{
		"user":    NewUserView(user),
		"message": "Registration successful",
	})
}

// Login authenticates a username/password pair and starts a session.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, utils.NewValidationError("Invalid JSON"))
		return
	}

	user, err := s.DB.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if utils.IsErrorCode(err, utils.ErrInvalidCredentials) {
			utils.RespondJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
			return
		}
		utils.RespondError(w, err)
		return
	}

	if err := auth.SignIn(w, r, s.Sessions, user.ID); err != nil {
		utils.RespondError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"user":    NewUserView(user),
		"message": "Login successful",
	})
}

// Logout drops the caller's session. Safe to call anonymously.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if err := auth.SignOut(w, r, s.Sessions); err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}

// CurrentUser returns the authenticated account and its profile.
func (s *Server) CurrentUser(w http.ResponseWriter, r *http.Request) {
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

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"user":    NewUserView(user),
		"profile": profile,
	})
}
