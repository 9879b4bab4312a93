package database

import (
	"context"
	"testing"
	"time"

	"securevault-api/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func createTestFile(t *testing.T, vaultID, encryptedName string) *models.FileMetadata {
	t.Helper()

	fileType := "image/jpeg"
	size := int64(2048)
	deviceID := "device-test"
	file, err := testStore.CreateFileMetadata(context.Background(), CreateFileMetadataParams{
		VaultID:       vaultID,
		EncryptedName: encryptedName,
		FileType:      &fileType,
		SizeBytes:     &size,
		DeviceID:      &deviceID,
	})
	require.NoError(t, err)
	require.NotNil(t, file)
	return file
}

func TestCreateFileMetadata(t *testing.T) {
	user := createTestUser(t)
	vault := createTestVault(t, user.ID, "Files")

	file := createTestFile(t, vault.ID, "bmFtZS1jaXBoZXJ0ZXh0")

	require.NotEmpty(t, file.ID)
	require.Equal(t, vault.ID, file.VaultID)
	require.Equal(t, "bmFtZS1jaXBoZXJ0ZXh0", file.EncryptedName)
	require.False(t, file.IsBackedUp)
	require.NotNil(t, file.SizeBytes)
	require.EqualValues(t, 2048, *file.SizeBytes)
}

func TestGetFilesByVaultID(t *testing.T) {
	user := createTestUser(t)
	vault := createTestVault(t, user.ID, "Listing")
	otherVault := createTestVault(t, user.ID, "Empty")

	f1 := createTestFile(t, vault.ID, "first")
	time.Sleep(10 * time.Millisecond)
	f2 := createTestFile(t, vault.ID, "second")

	files, err := testStore.GetFilesByVaultID(context.Background(), vault.ID)
	require.NoError(t, err)
	require.Len(t, files, 2)
	require.Equal(t, f2.ID, files[0].ID, "newest file should come first")
	require.Equal(t, f1.ID, files[1].ID)

	empty, err := testStore.GetFilesByVaultID(context.Background(), otherVault.ID)
	require.NoError(t, err)
	require.NotNil(t, empty)
	require.Empty(t, empty)
}

func TestUpdateFileMetadata_Partial(t *testing.T) {
	user := createTestUser(t)
	vault := createTestVault(t, user.ID, "Updates")
	file := createTestFile(t, vault.ID, "before")

	backedUp := true
	changes, err := testStore.UpdateFileMetadata(context.Background(), file.ID, UpdateFileMetadataParams{
		IsBackedUp: &backedUp,
	})
	require.NoError(t, err)
	require.EqualValues(t, 1, changes)

	updated, err := testStore.GetFileByID(context.Background(), file.ID)
	require.NoError(t, err)
	require.True(t, updated.IsBackedUp)
	require.Equal(t, "before", updated.EncryptedName, "untouched field must stay untouched")
	require.True(t, updated.UpdatedAt.After(file.UpdatedAt))

	changes, err = testStore.UpdateFileMetadata(context.Background(), uuid.NewString(), UpdateFileMetadataParams{})
	require.NoError(t, err)
	require.EqualValues(t, 0, changes)
}

func TestDeleteFileMetadata(t *testing.T) {
	user := createTestUser(t)
	vault := createTestVault(t, user.ID, "Deletions")
	file := createTestFile(t, vault.ID, "doomed")

	changes, err := testStore.DeleteFileMetadata(context.Background(), file.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, changes)

	gone, err := testStore.GetFileByID(context.Background(), file.ID)
	require.NoError(t, err)
	require.Nil(t, gone)
}

func TestDeleteVault_CascadesToFiles(t *testing.T) {
	user := createTestUser(t)
	vault := createTestVault(t, user.ID, "Cascade")
	createTestFile(t, vault.ID, "goes-with-the-vault")

	_, err := testStore.DeleteVault(context.Background(), vault.ID)
	require.NoError(t, err)

	files, err := testStore.GetFilesByVaultID(context.Background(), vault.ID)
	require.NoError(t, err)
	require.Empty(t, files)
}
