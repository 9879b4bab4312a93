package api

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"securevault-api/internal/database"
	"securevault-api/internal/models"

	"github.com/go-chi/chi/v5"
)

type CreateVaultRequest struct {
	Name               string `json:"name"`
	EncryptedMasterKey string `json:"encryptedMasterKey"`
	Salt               string `json:"salt"`
}

type UpdateVaultRequest struct {
	Name         *string    `json:"name"`
	LastAccessed *time.Time `json:"lastAccessed"`
}

type VaultResponse struct {
	Message string            `json:"message,omitempty"`
	Vault   *models.SafeVault `json:"vault"`
}

type VaultListResponse struct {
	Vaults []*models.SafeVault `json:"vaults"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// ownedVault runs the existence-then-ownership gate for a single vault. On
// failure it writes the response (404 before 403, deliberately distinct) and
// returns nil.
func (s *Server) ownedVault(w http.ResponseWriter, r *http.Request, vaultID string) *models.Vault {
	claims := GetUserFromContext(r.Context())

	vault, err := s.store.GetVaultByID(r.Context(), vaultID)
	if err != nil {
		log.Printf("ERROR: Failed to fetch vault %s: %v", vaultID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return nil
	}
	if vault == nil {
		http.Error(w, "Vault not found", http.StatusNotFound)
		return nil
	}
	if vault.UserID != claims.UserID {
		http.Error(w, "Access denied", http.StatusForbidden)
		return nil
	}

	return vault
}

// @Summary      List vaults
// @Description  Returns every vault owned by the caller, newest first.
// @Tags         vaults
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  VaultListResponse
// @Router       /vaults [get]
func (s *Server) ListVaultsHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())

	vaults, err := s.store.GetVaultsByUserID(r.Context(), claims.UserID)
	if err != nil {
		log.Printf("ERROR: Failed to list vaults for user %s: %v", claims.UserID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	views := make([]*models.SafeVault, 0, len(vaults))
	for i := range vaults {
		views = append(views, vaults[i].SafeObject())
	}

	writeJSON(w, http.StatusOK, VaultListResponse{Vaults: views})
}

// @Summary      Get a vault
// @Tags         vaults
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  VaultResponse
// @Failure      403  {string}  string "Access denied"
// @Failure      404  {string}  string "Vault not found"
// @Router       /vaults/{vaultId} [get]
func (s *Server) GetVaultHandler(w http.ResponseWriter, r *http.Request) {
	vault := s.ownedVault(w, r, chi.URLParam(r, "vaultId"))
	if vault == nil {
		return
	}

	writeJSON(w, http.StatusOK, VaultResponse{Vault: vault.SafeObject()})
}

// @Summary      Create a vault
// @Description  Stores a new vault with its client-encrypted master key and salt.
// @Tags         vaults
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  VaultResponse
// @Failure      400  {string}  string "Missing fields"
// @Router       /vaults [post]
func (s *Server) CreateVaultHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())

	var req CreateVaultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Name == "" || req.EncryptedMasterKey == "" || req.Salt == "" {
		http.Error(w, "Name, encryptedMasterKey, and salt are required", http.StatusBadRequest)
		return
	}

	vault, err := s.store.CreateVault(r.Context(), database.CreateVaultParams{
		UserID:             claims.UserID,
		Name:               req.Name,
		EncryptedMasterKey: req.EncryptedMasterKey,
		Salt:               req.Salt,
	})
	if err != nil {
		log.Printf("ERROR: Failed to create vault for user %s: %v", claims.UserID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	s.publishEvent(claims.UserID, "vault_created", vault.SafeObject())

	writeJSON(w, http.StatusCreated, VaultResponse{
		Message: "Vault created successfully",
		Vault:   vault.SafeObject(),
	})
}

// @Summary      Update a vault
// @Description  Partial update; only supplied fields are touched.
// @Tags         vaults
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  MessageResponse
// @Failure      403  {string}  string "Access denied"
// @Failure      404  {string}  string "Vault not found"
// @Router       /vaults/{vaultId} [put]
func (s *Server) UpdateVaultHandler(w http.ResponseWriter, r *http.Request) {
	vault := s.ownedVault(w, r, chi.URLParam(r, "vaultId"))
	if vault == nil {
		return
	}

	var req UpdateVaultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	_, err := s.store.UpdateVault(r.Context(), vault.ID, database.UpdateVaultParams{
		Name:         req.Name,
		LastAccessed: req.LastAccessed,
	})
	if err != nil {
		log.Printf("ERROR: Failed to update vault %s: %v", vault.ID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	s.publishEvent(vault.UserID, "vault_updated", map[string]string{"id": vault.ID})

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Vault updated successfully"})
}

// @Summary      Delete a vault
// @Description  Deletes the vault and, by cascade, its file metadata.
// @Tags         vaults
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  MessageResponse
// @Failure      403  {string}  string "Access denied"
// @Failure      404  {string}  string "Vault not found"
// @Router       /vaults/{vaultId} [delete]
func (s *Server) DeleteVaultHandler(w http.ResponseWriter, r *http.Request) {
	vault := s.ownedVault(w, r, chi.URLParam(r, "vaultId"))
	if vault == nil {
		return
	}

	if _, err := s.store.DeleteVault(r.Context(), vault.ID); err != nil {
		log.Printf("ERROR: Failed to delete vault %s: %v", vault.ID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	s.publishEvent(vault.UserID, "vault_deleted", map[string]string{"id": vault.ID})

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Vault deleted successfully"})
}
