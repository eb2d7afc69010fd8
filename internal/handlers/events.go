package handlers

import (
	"net/http"
	"time"

	"github.com/ghinaaj20-lang/luna-project/internal/utils"
)

const upcomingEventsLimit = 10

// ListEvents returns the full calendar ordered by event date.
func (s *Server) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := s.DB.ListEvents(r.Context())
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, events)
}

// UpcomingEvents returns the next events from now on, at most ten.
func (s *Server) UpcomingEvents(w http.ResponseWriter, r *http.Request) {
	events, err := s.DB.UpcomingEvents(r.Context(), time.Now(), upcomingEventsLimit)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, events)
}

// TodayEvents returns events happening today.
func (s *Server) TodayEvents(w http.ResponseWriter, r *http.Request) {
	events, err := s.DB.TodayEvents(r.Context(), time.Now())
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, events)
}
