package api

import (
	"log"
	"net/http"

	"securevault-api/internal/models"
)

type UserResponse struct {
	User *models.SafeUser `json:"user"`
}

// @Summary      Get current user
// @Description  Returns the stored profile of the authenticated user, without the password hash.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  UserResponse
// @Failure      401  {string}  string "Unauthorized"
// @Failure      404  {string}  string "User not found"
// @Router       /me [get]
func (s *Server) GetCurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())

	user, err := s.store.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		log.Printf("ERROR: Failed to fetch user %s: %v", claims.UserID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if user == nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, UserResponse{User: user.SafeObject()})
}
