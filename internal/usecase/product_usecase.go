package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/yourusername/biosmaris-storefront/internal/domain/entity"
	"github.com/yourusername/biosmaris-storefront/internal/domain/repository"
)

// ProductUseCase is the product store seen by views. It never returns an
// error: failures are logged and degrade to an empty or absent result.
type ProductUseCase interface {
	// List returns all products, or an empty slice on failure
	List(ctx context.Context) []entity.Product

	// Get returns one product by id, or nil
	Get(ctx context.Context, id string) *entity.Product

	// Create submits a new product and returns the stored record, or nil
	Create(ctx context.Context, input entity.ProductInput) *entity.Product

	// UpdateByID sends a partial update keyed by the record id. Re-list to
	// observe the result.
	UpdateByID(ctx context.Context, id string, update entity.ProductUpdate)

	// DeleteByQRCode removes a product. The key is the QR code, not the id.
	DeleteByQRCode(ctx context.Context, code entity.QRCode)
}

type productUseCase struct {
	productRepo repository.ProductRepository
}

// NewProductUseCase wraps a product repository with the soft-fail policy.
func NewProductUseCase(productRepo repository.ProductRepository) ProductUseCase {
	return &productUseCase{
		productRepo: productRepo,
	}
}

func (u *productUseCase) List(ctx context.Context) []entity.Product {
	products, err := u.productRepo.List(ctx)
	if err != nil {
		zap.L().Error("list products", zap.Error(err))
		return []entity.Product{}
	}
	return products
}

func (u *productUseCase) Get(ctx context.Context, id string) *entity.Product {
	product, err := u.productRepo.Get(ctx, id)
	if err != nil {
		zap.L().Error("get product", zap.String("id", id), zap.Error(err))
		return nil
	}
	return product
}

func (u *productUseCase) Create(ctx context.Context, input entity.ProductInput) *entity.Product {
	product, err := u.productRepo.Create(ctx, input)
	if err != nil {
		zap.L().Error("create product", zap.String("name", input.Name), zap.Error(err))
		return nil
	}
	return product
}

func (u *productUseCase) UpdateByID(ctx context.Context, id string, update entity.ProductUpdate) {
	if err := u.productRepo.UpdateByID(ctx, id, update); err != nil {
		zap.L().Error("update product", zap.String("id", id), zap.Error(err))
	}
}

func (u *productUseCase) DeleteByQRCode(ctx context.Context, code entity.QRCode) {
	if err := u.productRepo.DeleteByQRCode(ctx, code); err != nil {
		zap.L().Error("delete product", zap.String("qr_code", code.String()), zap.Error(err))
	}
}
