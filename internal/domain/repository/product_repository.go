package repository

import (
	"context"

	"github.com/yourusername/biosmaris-storefront/internal/domain/entity"
)

// ProductRepository talks to the remote product store.
//
// Updates are keyed by the record id and deletions by the QR code. The two
// keys have distinct types on purpose.
type ProductRepository interface {
	// List returns every product
	List(ctx context.Context) ([]entity.Product, error)

	// Get returns one product by id, nil when the backend has none
	Get(ctx context.Context, id string) (*entity.Product, error)

	// Create stores a new product and returns the record the backend assigned
	Create(ctx context.Context, input entity.ProductInput) (*entity.Product, error)

	// UpdateByID applies a partial update to the product with the given id
	UpdateByID(ctx context.Context, id string, update entity.ProductUpdate) error

	// DeleteByQRCode removes the product carrying the given QR code
	DeleteByQRCode(ctx context.Context, code entity.QRCode) error
}
