package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"securevault-api/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const fileColumns = `id, vault_id, encrypted_name, file_type, size_bytes, encrypted_path, created_at, updated_at, device_id, is_backed_up`

func scanFileMetadata(row pgx.Row) (*models.FileMetadata, error) {
	var file models.FileMetadata
	err := row.Scan(
		&file.ID,
		&file.VaultID,
		&file.EncryptedName,
		&file.FileType,
		&file.SizeBytes,
		&file.EncryptedPath,
		&file.CreatedAt,
		&file.UpdatedAt,
		&file.DeviceID,
		&file.IsBackedUp,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &file, nil
}

// GetFilesByVaultID returns the metadata rows of a vault, newest first.
func (q *Queries) GetFilesByVaultID(ctx context.Context, vaultID string) ([]models.FileMetadata, error) {
	query := `SELECT ` + fileColumns + ` FROM files_metadata WHERE vault_id = $1 ORDER BY created_at DESC`
	rows, err := q.db.Query(ctx, query, vaultID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []models.FileMetadata
	for rows.Next() {
		var file models.FileMetadata
		err := rows.Scan(
			&file.ID,
			&file.VaultID,
			&file.EncryptedName,
			&file.FileType,
			&file.SizeBytes,
			&file.EncryptedPath,
			&file.CreatedAt,
			&file.UpdatedAt,
			&file.DeviceID,
			&file.IsBackedUp,
		)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if files == nil {
		return []models.FileMetadata{}, nil
	}

	return files, nil
}

func (q *Queries) GetFileByID(ctx context.Context, id string) (*models.FileMetadata, error) {
	query := `SELECT ` + fileColumns + ` FROM files_metadata WHERE id = $1`
	return scanFileMetadata(q.db.QueryRow(ctx, query, id))
}

type CreateFileMetadataParams struct {
	VaultID       string
	EncryptedName string
	FileType      *string
	SizeBytes     *int64
	EncryptedPath *string
	DeviceID      *string
}

func (q *Queries) CreateFileMetadata(ctx context.Context, arg CreateFileMetadataParams) (*models.FileMetadata, error) {
	id := uuid.NewString()
	now := time.Now()

	query := `
		INSERT INTO files_metadata (id, vault_id, encrypted_name, file_type, size_bytes, encrypted_path, created_at, updated_at, device_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := q.db.Exec(ctx, query,
		id, arg.VaultID, arg.EncryptedName, arg.FileType, arg.SizeBytes, arg.EncryptedPath, now, now, arg.DeviceID,
	)
	if err != nil {
		return nil, err
	}

	return q.GetFileByID(ctx, id)
}

// UpdateFileMetadataParams enumerates the only columns a metadata update may
// touch. Nil fields are left untouched.
type UpdateFileMetadataParams struct {
	EncryptedName *string
	IsBackedUp    *bool
}

func (q *Queries) UpdateFileMetadata(ctx context.Context, id string, arg UpdateFileMetadataParams) (int64, error) {
	sets := []string{}
	args := []interface{}{}

	if arg.EncryptedName != nil {
		args = append(args, *arg.EncryptedName)
		sets = append(sets, fmt.Sprintf("encrypted_name = $%d", len(args)))
	}
	if arg.IsBackedUp != nil {
		args = append(args, *arg.IsBackedUp)
		sets = append(sets, fmt.Sprintf("is_backed_up = $%d", len(args)))
	}

	args = append(args, time.Now())
	sets = append(sets, fmt.Sprintf("updated_at = $%d", len(args)))

	args = append(args, id)
	query := fmt.Sprintf("UPDATE files_metadata SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	res, err := q.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected(), nil
}

func (q *Queries) DeleteFileMetadata(ctx context.Context, id string) (int64, error) {
	query := `DELETE FROM files_metadata WHERE id = $1`
	res, err := q.db.Exec(ctx, query, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected(), nil
}
