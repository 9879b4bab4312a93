package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"securevault-api/internal/database"
	"securevault-api/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func createVaultForUser(t *testing.T, userID, name string) *models.Vault {
	t.Helper()

	vault, err := testServer.store.CreateVault(context.Background(), database.CreateVaultParams{
		UserID:             userID,
		Name:               name,
		EncryptedMasterKey: "bWFzdGVyLWtleQ==",
		Salt:               "c2FsdA==",
	})
	require.NoError(t, err)
	return vault
}

func TestAPI_CreateVault_Success(t *testing.T) {
	payload := CreateVaultRequest{
		Name:               "Phone vault",
		EncryptedMasterKey: "ZW5jcnlwdGVk",
		Salt:               "c2FsdHk=",
	}
	body, _ := json.Marshal(payload)

	rr := doRequest(t, "POST", "/api/vaults", tokenA, bytes.NewReader(body))

	require.Equal(t, http.StatusCreated, rr.Code)

	var resp VaultResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotNil(t, resp.Vault)
	require.Equal(t, "Phone vault", resp.Vault.Name)
	require.Equal(t, userA.ID, resp.Vault.UserID)
	require.False(t, resp.Vault.IsSynced)
}

func TestAPI_CreateVault_MissingFields(t *testing.T) {
	body, _ := json.Marshal(CreateVaultRequest{Name: "No key material"})
	rr := doRequest(t, "POST", "/api/vaults", tokenA, bytes.NewReader(body))
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAPI_ListVaults_ScopedToCaller(t *testing.T) {
	mine := createVaultForUser(t, userA.ID, "Visible to A")
	theirs := createVaultForUser(t, userB.ID, "Belongs to B")

	rr := doRequest(t, "GET", "/api/vaults", tokenA, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp VaultListResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	var sawMine, sawTheirs bool
	for _, v := range resp.Vaults {
		if v.ID == mine.ID {
			sawMine = true
		}
		if v.ID == theirs.ID {
			sawTheirs = true
		}
	}
	require.True(t, sawMine, "caller's own vault must be listed")
	require.False(t, sawTheirs, "another user's vault must never be listed")
}

func TestAPI_GetVault_Success(t *testing.T) {
	vault := createVaultForUser(t, userA.ID, "Readable")

	rr := doRequest(t, "GET", "/api/vaults/"+vault.ID, tokenA, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp VaultResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, vault.ID, resp.Vault.ID)
	require.Equal(t, "bWFzdGVyLWtleQ==", resp.Vault.EncryptedMasterKey)
}

func TestAPI_GetVault_NotFound(t *testing.T) {
	rr := doRequest(t, "GET", "/api/vaults/"+uuid.NewString(), tokenA, nil)
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAPI_GetVault_Forbidden(t *testing.T) {
	vault := createVaultForUser(t, userB.ID, "B's secret")

	rr := doRequest(t, "GET", "/api/vaults/"+vault.ID, tokenA, nil)
	require.Equal(t, http.StatusForbidden, rr.Code, "existing foreign vault must be forbidden, not hidden")
}

func TestAPI_UpdateVault_PartialName(t *testing.T) {
	vault := createVaultForUser(t, userA.ID, "Old name")

	name := "New name"
	body, _ := json.Marshal(UpdateVaultRequest{Name: &name})

	rr := doRequest(t, "PUT", "/api/vaults/"+vault.ID, tokenA, bytes.NewReader(body))
	require.Equal(t, http.StatusOK, rr.Code)

	updated, err := testServer.store.GetVaultByID(context.Background(), vault.ID)
	require.NoError(t, err)
	require.Equal(t, "New name", updated.Name)
	require.Nil(t, updated.LastAccessed, "omitted field must stay untouched")
	require.True(t, updated.UpdatedAt.After(vault.UpdatedAt))
}

func TestAPI_UpdateVault_OwnershipGate(t *testing.T) {
	vault := createVaultForUser(t, userB.ID, "Not yours")

	name := "Hijacked"
	body, _ := json.Marshal(UpdateVaultRequest{Name: &name})

	rr := doRequest(t, "PUT", "/api/vaults/"+vault.ID, tokenA, bytes.NewReader(body))
	require.Equal(t, http.StatusForbidden, rr.Code)

	rr = doRequest(t, "PUT", fmt.Sprintf("/api/vaults/%s", uuid.NewString()), tokenA, bytes.NewReader(body))
	require.Equal(t, http.StatusNotFound, rr.Code)

	untouched, err := testServer.store.GetVaultByID(context.Background(), vault.ID)
	require.NoError(t, err)
	require.Equal(t, "Not yours", untouched.Name)
}

func TestAPI_DeleteVault_Success(t *testing.T) {
	vault := createVaultForUser(t, userA.ID, "Doomed")

	rr := doRequest(t, "DELETE", "/api/vaults/"+vault.ID, tokenA, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	gone, err := testServer.store.GetVaultByID(context.Background(), vault.ID)
	require.NoError(t, err)
	require.Nil(t, gone)
}

func TestAPI_DeleteVault_OwnershipGate(t *testing.T) {
	vault := createVaultForUser(t, userB.ID, "Protected")

	rr := doRequest(t, "DELETE", "/api/vaults/"+vault.ID, tokenA, nil)
	require.Equal(t, http.StatusForbidden, rr.Code)

	rr = doRequest(t, "DELETE", "/api/vaults/"+uuid.NewString(), tokenA, nil)
	require.Equal(t, http.StatusNotFound, rr.Code)

	still, err := testServer.store.GetVaultByID(context.Background(), vault.ID)
	require.NoError(t, err)
	require.NotNil(t, still)
}
