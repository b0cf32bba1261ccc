// File: internal/service/bootstrap.go
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Viswanath-varre/PM-MABP/internal/database"
	"github.com/Viswanath-varre/PM-MABP/internal/model"
	"github.com/Viswanath-varre/PM-MABP/internal/store"
)

// DefaultAdminPhone is the login key of the seeded administrator. This record
// is protected: delete requests against it are rejected.
const DefaultAdminPhone = "admin"

const (
	defaultAdminPassword    = "admin"
	defaultAdminName        = "Administrator"
	defaultAdminDesignation = "Admin"
)

var (
	getUserByPhone = store.GetUserByPhone
	createUserFn   = store.CreateUser
)

// EnsureDefaultAdmin seeds the bootstrap admin if no user with
// DefaultAdminPhone exists. Safe to run on every process start; it never
// creates a second row.
func EnsureDefaultAdmin(ctx context.Context, db database.DB) error {
	_, err := getUserByPhone(ctx, db, DefaultAdminPhone)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("EnsureDefaultAdmin: %w", err)
	}

	hash, err := HashPassword(defaultAdminPassword)
	if err != nil {
		return fmt.Errorf("EnsureDefaultAdmin: %w", err)
	}
	designation := defaultAdminDesignation
	if _, err := createUserFn(ctx, db, &model.User{
		Phone:        DefaultAdminPhone,
		Name:         defaultAdminName,
		Designation:  &designation,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	}); err != nil {
		return fmt.Errorf("EnsureDefaultAdmin: %w", err)
	}
	return nil
}

// IsProtectedUser reports whether the record is the bootstrap admin.
func IsProtectedUser(u *model.User) bool {
	return u != nil && u.Phone == DefaultAdminPhone
}
