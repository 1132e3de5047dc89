package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"

	"github.com/alumni-connect/connect-api/internal/config"
	"github.com/alumni-connect/connect-api/internal/models"
	"github.com/alumni-connect/connect-api/internal/service"
	"github.com/alumni-connect/connect-api/internal/store"
)

func newTestService(t *testing.T) *service.UserService {
	t.Helper()
	cfg := &config.Config{JWTSecret: "test-secret"}
	s, err := store.New(sqlite.Open(":memory:"), cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	sqlDB, err := s.DB.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = s.Close() })
	return service.NewUserService(s)
}

func TestCreateUser(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, "grad@example.edu", "longenoughpw", "New Grad", models.RoleStudent, "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.ID == "" || u.Role != models.RoleStudent {
		t.Fatalf("unexpected user: %+v", u)
	}
}

// A duplicate email must come back as a conflict, not as a failed id
// generation after useless retries.
func TestCreateUserDuplicateEmailConflicts(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.CreateUser(ctx, "grad@example.edu", "longenoughpw", "New Grad", models.RoleStudent, ""); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := svc.CreateUser(ctx, "grad@example.edu", "otherpassword", "Impostor", models.RoleStudent, "")
	var conflict *models.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}
