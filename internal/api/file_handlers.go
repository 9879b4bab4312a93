package api

import (
	"encoding/json"
	"log"
	"net/http"

	"securevault-api/internal/database"
	"securevault-api/internal/models"

	"github.com/go-chi/chi/v5"
)

type CreateFileRequest struct {
	EncryptedName string  `json:"encryptedName"`
	FileType      *string `json:"fileType"`
	SizeBytes     *int64  `json:"size"`
	EncryptedPath *string `json:"encryptedPath"`
	DeviceID      *string `json:"deviceId"`
}

type UpdateFileRequest struct {
	EncryptedName *string `json:"encryptedName"`
	IsBackedUp    *bool   `json:"isBackedUp"`
}

type FileResponse struct {
	Message string               `json:"message,omitempty"`
	File    *models.FileMetadata `json:"file"`
}

type FileListResponse struct {
	Files []models.FileMetadata `json:"files"`
}

// ownedFile resolves a file id inside an already-gated vault. A file that
// exists under a different vault is reported as not found.
func (s *Server) ownedFile(w http.ResponseWriter, r *http.Request, vault *models.Vault, fileID string) *models.FileMetadata {
	file, err := s.store.GetFileByID(r.Context(), fileID)
	if err != nil {
		log.Printf("ERROR: Failed to fetch file %s: %v", fileID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return nil
	}
	if file == nil || file.VaultID != vault.ID {
		http.Error(w, "File not found", http.StatusNotFound)
		return nil
	}
	return file
}

// @Summary      List file metadata
// @Description  Returns the metadata rows of a vault, newest first.
// @Tags         files
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  FileListResponse
// @Failure      403  {string}  string "Access denied"
// @Failure      404  {string}  string "Vault not found"
// @Router       /vaults/{vaultId}/files [get]
func (s *Server) ListFilesHandler(w http.ResponseWriter, r *http.Request) {
	vault := s.ownedVault(w, r, chi.URLParam(r, "vaultId"))
	if vault == nil {
		return
	}

	files, err := s.store.GetFilesByVaultID(r.Context(), vault.ID)
	if err != nil {
		log.Printf("ERROR: Failed to list files for vault %s: %v", vault.ID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, FileListResponse{Files: files})
}

// @Summary      Register file metadata
// @Description  Stores the metadata of a client-encrypted file. The blob itself never reaches the server.
// @Tags         files
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  FileResponse
// @Failure      400  {string}  string "Missing fields"
// @Failure      403  {string}  string "Access denied"
// @Failure      404  {string}  string "Vault not found"
// @Router       /vaults/{vaultId}/files [post]
func (s *Server) CreateFileHandler(w http.ResponseWriter, r *http.Request) {
	vault := s.ownedVault(w, r, chi.URLParam(r, "vaultId"))
	if vault == nil {
		return
	}

	var req CreateFileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.EncryptedName == "" {
		http.Error(w, "encryptedName is required", http.StatusBadRequest)
		return
	}

	file, err := s.store.CreateFileMetadata(r.Context(), database.CreateFileMetadataParams{
		VaultID:       vault.ID,
		EncryptedName: req.EncryptedName,
		FileType:      req.FileType,
		SizeBytes:     req.SizeBytes,
		EncryptedPath: req.EncryptedPath,
		DeviceID:      req.DeviceID,
	})
	if err != nil {
		log.Printf("ERROR: Failed to create file metadata in vault %s: %v", vault.ID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	s.publishEvent(vault.UserID, "file_created", file)

	writeJSON(w, http.StatusCreated, FileResponse{
		Message: "File metadata created successfully",
		File:    file,
	})
}

// @Summary      Update file metadata
// @Description  Partial update; only supplied fields are touched.
// @Tags         files
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  MessageResponse
// @Failure      403  {string}  string "Access denied"
// @Failure      404  {string}  string "Vault or file not found"
// @Router       /vaults/{vaultId}/files/{fileId} [put]
func (s *Server) UpdateFileHandler(w http.ResponseWriter, r *http.Request) {
	vault := s.ownedVault(w, r, chi.URLParam(r, "vaultId"))
	if vault == nil {
		return
	}

	file := s.ownedFile(w, r, vault, chi.URLParam(r, "fileId"))
	if file == nil {
		return
	}

	var req UpdateFileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	_, err := s.store.UpdateFileMetadata(r.Context(), file.ID, database.UpdateFileMetadataParams{
		EncryptedName: req.EncryptedName,
		IsBackedUp:    req.IsBackedUp,
	})
	if err != nil {
		log.Printf("ERROR: Failed to update file %s: %v", file.ID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	s.publishEvent(vault.UserID, "file_updated", map[string]string{"id": file.ID, "vault_id": vault.ID})

	writeJSON(w, http.StatusOK, MessageResponse{Message: "File metadata updated successfully"})
}

// @Summary      Delete file metadata
// @Tags         files
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  MessageResponse
// @Failure      403  {string}  string "Access denied"
// @Failure      404  {string}  string "Vault or file not found"
// @Router       /vaults/{vaultId}/files/{fileId} [delete]
func (s *Server) DeleteFileHandler(w http.ResponseWriter, r *http.Request) {
	vault := s.ownedVault(w, r, chi.URLParam(r, "vaultId"))
	if vault == nil {
		return
	}

	file := s.ownedFile(w, r, vault, chi.URLParam(r, "fileId"))
	if file == nil {
		return
	}

	if _, err := s.store.DeleteFileMetadata(r.Context(), file.ID); err != nil {
		log.Printf("ERROR: Failed to delete file %s: %v", file.ID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	s.publishEvent(vault.UserID, "file_deleted", map[string]string{"id": file.ID, "vault_id": vault.ID})

	writeJSON(w, http.StatusOK, MessageResponse{Message: "File metadata deleted successfully"})
}
