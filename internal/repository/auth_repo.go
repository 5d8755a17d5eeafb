package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"parking_monitor/internal/models"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrDuplicateUser is returned by Create when the username or email is taken.
var ErrDuplicateUser = errors.New("user already exists")

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Authorization interface at compile time.
var _ Authorization = (*UserRepository)(nil)

const (
	insertUserSQL             = `INSERT INTO users (username, email, password_hash, role, created_at) VALUES (?, ?, ?, ?, ?)`
	selectUserByIdentifierSQL = `SELECT id, username, email, password_hash, role, created_at FROM users WHERE username = ? OR email = ?`
)

// Create inserts a new admin user and returns its ID.
func (r *UserRepository) Create(ctx context.Context, u models.AdminUser) (int, error) {
	createdAt := u.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx, insertUserSQL,
		u.Username,
		nullableString(u.Email),
		u.PasswordHash,
		u.Role,
		createdAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateUser
		}
		return 0, fmt.Errorf("insert user %q: %w", u.Username, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for user %q: %w", u.Username, err)
	}
	return int(lastID), nil
}

// GetByIdentifier fetches a user by username or email. Returns (nil, nil) if not found.
func (r *UserRepository) GetByIdentifier(ctx context.Context, identifier string) (*models.AdminUser, error) {
	identifier = strings.TrimSpace(identifier)
	var (
		u     models.AdminUser
		email sql.NullString
	)
	err := r.db.QueryRowContext(ctx, selectUserByIdentifierSQL, identifier, strings.ToLower(identifier)).
		Scan(&u.ID, &u.Username, &email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %q: %w", identifier, err)
	}
	u.Email = email.String
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
