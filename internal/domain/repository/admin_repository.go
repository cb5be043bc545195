package repository

import (
	"context"

	"github.com/yourusername/biosmaris-storefront/internal/domain/entity"
)

// LoginResult is the backend answer to a password check.
type LoginResult struct {
	Admin   *entity.AdminProfile
	Message string
}

// AdminRepository talks to the remote admin endpoints.
type AdminRepository interface {
	// Login checks the password. A rejected password is not an error: the
	// result then carries a non-authenticated profile and/or a message.
	Login(ctx context.Context, password string) (*LoginResult, error)

	// Logout ends the server-side session and returns the record it sent back
	Logout(ctx context.Context) (*entity.AdminProfile, error)

	// EditProfile stores new contact details and returns the stored record
	EditProfile(ctx context.Context, email, phone string) (*entity.AdminProfile, error)

	// Profile returns the current admin record
	Profile(ctx context.Context) (*entity.AdminProfile, error)
}
