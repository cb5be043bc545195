package repository

import (
	"context"

	"github.com/yourusername/biosmaris-storefront/internal/domain/entity"
)

// CatalogSheet reads and writes product spreadsheets.
type CatalogSheet interface {
	// ParseProductsFromBytes reads product rows from an uploaded file
	ParseProductsFromBytes(ctx context.Context, data []byte, filename string) ([]entity.ProductInput, error)

	// WriteProducts renders products into a new workbook
	WriteProducts(ctx context.Context, products []entity.Product) ([]byte, error)
}
