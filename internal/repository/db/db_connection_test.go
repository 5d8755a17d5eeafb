package db_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"parking_monitor/internal/models"
	"parking_monitor/internal/repository"
	"parking_monitor/internal/repository/db"
)

func TestInitDB_SchemaSupportsUserRoundTrip(t *testing.T) {
	conn, err := db.InitDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	defer func() { _ = conn.Close() }()

	repo := repository.NewUserRepository(conn)
	ctx := context.Background()

	id, err := repo.Create(ctx, models.AdminUser{
		Username:     "root",
		Email:        "root@example.com",
		PasswordHash: "hash",
		Role:         models.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	for _, ident := range []string{"root", "ROOT@example.com"} {
		u, err := repo.GetByIdentifier(ctx, ident)
		if err != nil {
			t.Fatalf("GetByIdentifier(%q): %v", ident, err)
		}
		if u == nil || u.ID != id || u.Role != models.RoleAdmin || u.Email != "root@example.com" {
			t.Fatalf("GetByIdentifier(%q) = %+v", ident, u)
		}
	}

	if _, err := repo.Create(ctx, models.AdminUser{Username: "root", PasswordHash: "x", Role: "admin"}); !errors.Is(err, repository.ErrDuplicateUser) {
		t.Fatalf("duplicate username: expected ErrDuplicateUser, got %v", err)
	}
	if _, err := repo.Create(ctx, models.AdminUser{Username: "other", Email: "root@example.com", PasswordHash: "x", Role: "admin"}); !errors.Is(err, repository.ErrDuplicateUser) {
		t.Fatalf("duplicate email: expected ErrDuplicateUser, got %v", err)
	}
}

func TestInitDB_IsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "again.db")
	for i := 0; i < 2; i++ {
		conn, err := db.InitDB(path)
		if err != nil {
			t.Fatalf("InitDB #%d: %v", i+1, err)
		}
		_ = conn.Close()
	}
}
