package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"securevault-api/internal/auth"
	"securevault-api/internal/database"
	"securevault-api/internal/models"
)

type RegisterRequest struct {
	Email    string `json:"email" example:"alice@example.com"`
	Username string `json:"username,omitempty" example:"alice"`
	Password string `json:"password" example:"correct-horse-battery"`
}

type LoginRequest struct {
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"correct-horse-battery"`
}

type AuthResponse struct {
	Message string           `json:"message"`
	Token   string           `json:"token"`
	User    *models.SafeUser `json:"user"`
}

// @Summary      Register a new account
// @Description  Creates a user, hashes the password and returns a bearer token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        registerRequest  body      RegisterRequest  true  "Registration data"
// @Success      201              {object}  AuthResponse
// @Failure      400              {string}  string "Missing fields or password too short"
// @Failure      409              {string}  string "Email or username already taken"
// @Router       /auth/register [post]
func (s *Server) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" {
		http.Error(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	if len(req.Password) < 8 {
		http.Error(w, "Password must be at least 8 characters", http.StatusBadRequest)
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		log.Printf("ERROR: Failed to hash password: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	var username *string
	if req.Username != "" {
		username = &req.Username
	}

	// The existence check gives the common case a clean conflict answer;
	// under racing registrations it is the users.email unique constraint,
	// surfaced as ErrDuplicateUser by the insert, that guarantees only one
	// wins.
	var user *models.User
	txErr := s.store.ExecTx(r.Context(), func(q *database.Queries) error {
		existing, err := q.GetUserByEmail(r.Context(), req.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return database.ErrDuplicateUser
		}

		user, err = q.CreateUser(r.Context(), database.CreateUserParams{
			Email:        req.Email,
			Username:     username,
			PasswordHash: passwordHash,
		})
		return err
	})

	if txErr != nil {
		if errors.Is(txErr, database.ErrDuplicateUser) {
			http.Error(w, "A user with this email or username already exists", http.StatusConflict)
			return
		}
		log.Printf("ERROR: Failed to register user: %v", txErr)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	token, err := auth.GenerateJWT(user, s.config.JWT.Secret)
	if err != nil {
		log.Printf("ERROR: Failed to generate token for user %s: %v", user.ID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, AuthResponse{
		Message: "User created successfully",
		Token:   token,
		User:    user.SafeObject(),
	})
}

// @Summary      Log in
// @Description  Verifies credentials and returns a bearer token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        loginRequest  body      LoginRequest  true  "Login credentials"
// @Success      200           {object}  AuthResponse
// @Failure      400           {string}  string "Missing fields"
// @Failure      401           {string}  string "Invalid email or password"
// @Router       /auth/login [post]
func (s *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" {
		http.Error(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	user, err := s.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		log.Printf("ERROR: Failed to look up user by email: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if user == nil || !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		http.Error(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	if err := s.store.UpdateLastLogin(r.Context(), user.ID); err != nil {
		// The login still succeeds; only the bookkeeping failed.
		log.Printf("WARN: Failed to update last_login for user %s: %v", user.ID, err)
	} else if fresh, err := s.store.GetUserByID(r.Context(), user.ID); err == nil && fresh != nil {
		user = fresh
	}

	token, err := auth.GenerateJWT(user, s.config.JWT.Secret)
	if err != nil {
		log.Printf("ERROR: Failed to generate token for user %s: %v", user.ID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{
		Message: "Login successful",
		Token:   token,
		User:    user.SafeObject(),
	})
}
