package repository

import (
	"context"

	"github.com/yourusername/biosmaris-storefront/internal/domain/entity"
)

// ContactRepository talks to the remote contact-message store.
type ContactRepository interface {
	// Submit posts a visitor message
	Submit(ctx context.Context, form entity.ContactForm) error

	// List returns every stored message
	List(ctx context.Context) ([]entity.ContactMessage, error)

	// SetRead updates the read flag of one message
	SetRead(ctx context.Context, id string, read bool) error

	// Delete removes one message
	Delete(ctx context.Context, id string) error
}
