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

const vaultColumns = `id, user_id, name, encrypted_master_key, salt, created_at, updated_at, last_accessed, is_synced`

func scanVault(row pgx.Row) (*models.Vault, error) {
	var vault models.Vault
	err := row.Scan(
		&vault.ID,
		&vault.UserID,
		&vault.Name,
		&vault.EncryptedMasterKey,
		&vault.Salt,
		&vault.CreatedAt,
		&vault.UpdatedAt,
		&vault.LastAccessed,
		&vault.IsSynced,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &vault, nil
}

// GetVaultsByUserID returns all vaults owned by the user, newest first.
func (q *Queries) GetVaultsByUserID(ctx context.Context, userID string) ([]models.Vault, error) {
	query := `SELECT ` + vaultColumns + ` FROM vaults WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := q.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vaults []models.Vault
	for rows.Next() {
		var vault models.Vault
		err := rows.Scan(
			&vault.ID,
			&vault.UserID,
			&vault.Name,
			&vault.EncryptedMasterKey,
			&vault.Salt,
			&vault.CreatedAt,
			&vault.UpdatedAt,
			&vault.LastAccessed,
			&vault.IsSynced,
		)
		if err != nil {
			return nil, err
		}
		vaults = append(vaults, vault)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if vaults == nil {
		return []models.Vault{}, nil
	}

	return vaults, nil
}

func (q *Queries) GetVaultByID(ctx context.Context, id string) (*models.Vault, error) {
	query := `SELECT ` + vaultColumns + ` FROM vaults WHERE id = $1`
	return scanVault(q.db.QueryRow(ctx, query, id))
}

type CreateVaultParams struct {
	UserID             string
	Name               string
	EncryptedMasterKey string
	Salt               string
}

// CreateVault inserts a new vault with a generated id and both timestamps set
// to the same instant, then re-reads and returns the stored row. Field
// presence is validated by the route layer, not here.
func (q *Queries) CreateVault(ctx context.Context, arg CreateVaultParams) (*models.Vault, error) {
	id := uuid.NewString()
	now := time.Now()

	query := `
		INSERT INTO vaults (id, user_id, name, encrypted_master_key, salt, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := q.db.Exec(ctx, query, id, arg.UserID, arg.Name, arg.EncryptedMasterKey, arg.Salt, now, now)
	if err != nil {
		return nil, err
	}

	return q.GetVaultByID(ctx, id)
}

// UpdateVaultParams enumerates the only columns a vault update may touch.
// Nil fields are left untouched.
type UpdateVaultParams struct {
	Name         *string
	LastAccessed *time.Time
}

// UpdateVault applies a partial update and always bumps updated_at. It
// returns the number of rows affected; zero is not an error, existence and
// ownership are the caller's concern.
func (q *Queries) UpdateVault(ctx context.Context, id string, arg UpdateVaultParams) (int64, error) {
	sets := []string{}
	args := []interface{}{}

	if arg.Name != nil {
		args = append(args, *arg.Name)
		sets = append(sets, fmt.Sprintf("name = $%d", len(args)))
	}
	if arg.LastAccessed != nil {
		args = append(args, *arg.LastAccessed)
		sets = append(sets, fmt.Sprintf("last_accessed = $%d", len(args)))
	}

	args = append(args, time.Now())
	sets = append(sets, fmt.Sprintf("updated_at = $%d", len(args)))

	args = append(args, id)
	query := fmt.Sprintf("UPDATE vaults SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	res, err := q.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected(), nil
}

// DeleteVault removes a vault by id, cascading to its file metadata. Returns
// the number of rows affected; zero is not an error.
func (q *Queries) DeleteVault(ctx context.Context, id string) (int64, error) {
	query := `DELETE FROM vaults WHERE id = $1`
	res, err := q.db.Exec(ctx, query, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected(), nil
}
