package database

import (
	"context"
	"errors"
	"time"

	"securevault-api/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicateUser signals an email or username uniqueness violation on
// insert. Callers translate it into a conflict response.
var ErrDuplicateUser = errors.New("a user with this email or username already exists")

const userColumns = `id, email, username, password_hash, created_at, updated_at, last_login, is_active`

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.LastLogin,
		&user.IsActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(q.db.QueryRow(ctx, query, email))
}

func (q *Queries) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(q.db.QueryRow(ctx, query, id))
}

type CreateUserParams struct {
	Email        string
	Username     *string
	PasswordHash string
}

// CreateUser inserts a new user with a generated id and both timestamps set
// to the same instant, then re-reads and returns the stored row.
func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (*models.User, error) {
	id := uuid.NewString()
	now := time.Now()

	query := `
		INSERT INTO users (id, email, username, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := q.db.Exec(ctx, query, id, arg.Email, arg.Username, arg.PasswordHash, now, now)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicateUser
		}
		return nil, err
	}

	return q.GetUserByID(ctx, id)
}

// UpdateLastLogin stamps last_login and updated_at to now. A missing id is
// not an error; zero rows are simply affected.
func (q *Queries) UpdateLastLogin(ctx context.Context, id string) error {
	now := time.Now()
	query := `UPDATE users SET last_login = $1, updated_at = $2 WHERE id = $3`
	_, err := q.db.Exec(ctx, query, now, now, id)
	return err
}
