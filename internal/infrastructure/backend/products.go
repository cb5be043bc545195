package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/pkg/errors"

	"github.com/yourusername/biosmaris-storefront/internal/domain/entity"
	"github.com/yourusername/biosmaris-storefront/internal/domain/repository"
)

type productRepository struct {
	client *Client
}

// NewProductRepository returns the HTTP product store.
func NewProductRepository(client *Client) repository.ProductRepository {
	return &productRepository{client: client}
}

// List GET /api/products/getProducts
func (r *productRepository) List(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	if err := r.client.do(ctx, http.MethodGet, "products/getProducts", nil, &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []entity.Product{}
	}
	return products, nil
}

// Get GET /api/products/{id}
func (r *productRepository) Get(ctx context.Context, id string) (*entity.Product, error) {
	if id == "" {
		return nil, errors.New("product id is empty")
	}
	var product entity.Product
	err := r.client.do(ctx, http.MethodGet, "products/"+url.PathEscape(id), nil, &product)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// Create POST /api/products/addProduct
func (r *productRepository) Create(ctx context.Context, input entity.ProductInput) (*entity.Product, error) {
	var product entity.Product
	if err := r.client.do(ctx, http.MethodPost, "products/addProduct", input, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

type productUpdateBody struct {
	ID string `json:"id"`
	entity.ProductUpdate
}

// UpdateByID PUT /api/products/updateProduct with the id in the body
func (r *productRepository) UpdateByID(ctx context.Context, id string, update entity.ProductUpdate) error {
	if id == "" {
		return errors.New("product id is empty")
	}
	return r.client.do(ctx, http.MethodPut, "products/updateProduct", productUpdateBody{ID: id, ProductUpdate: update}, nil)
}

// DeleteByQRCode DELETE /api/products/deleteProduct with {qrCode}
func (r *productRepository) DeleteByQRCode(ctx context.Context, code entity.QRCode) error {
	if code.IsZero() {
		return errors.New("qr code is empty")
	}
	body := struct {
		QRCode entity.QRCode `json:"qrCode"`
	}{QRCode: code}
	return r.client.do(ctx, http.MethodDelete, "products/deleteProduct", body, nil)
}
