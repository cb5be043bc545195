package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/yourusername/biosmaris-storefront/internal/domain/catalog"
	"github.com/yourusername/biosmaris-storefront/internal/domain/entity"
	"github.com/yourusername/biosmaris-storefront/internal/domain/repository"
)

// CatalogUseCase is the catalog page: the last fetched product list and the
// searches run over it. Save, Delete and Import re-list afterwards.
type CatalogUseCase interface {
	// Refresh re-fetches the list and returns it
	Refresh(ctx context.Context) []entity.Product

	// Products returns the last fetched list
	Products() []entity.Product

	// Search filters the last fetched list
	Search(q catalog.Query) []entity.Product

	// FindByQRCode looks products up by a scanned or typed code
	FindByQRCode(code string) []entity.Product

	// Suggest offers near matches when Search finds nothing
	Suggest(text string, limit int) []entity.Product

	// Categories lists the display categories, "all" first
	Categories() []string

	// Save updates the product being edited, or creates one when editingID
	// is empty, then re-lists
	Save(ctx context.Context, editingID string, input entity.ProductInput) []entity.Product

	// Delete removes a product by QR code, then re-lists
	Delete(ctx context.Context, code entity.QRCode) []entity.Product

	// Import creates every product of an uploaded sheet, then re-lists.
	// It returns how many were created.
	Import(ctx context.Context, data []byte, filename string) (int, error)

	// Export renders the current list as a workbook
	Export(ctx context.Context) ([]byte, error)

	// Text renders the list grouped by category
	Text() string
}

type catalogUseCase struct {
	products ProductUseCase
	sheet    repository.CatalogSheet

	mu    sync.RWMutex
	items []entity.Product
}

// NewCatalogUseCase creates the catalog view over the product store.
func NewCatalogUseCase(products ProductUseCase, sheet repository.CatalogSheet) CatalogUseCase {
	return &catalogUseCase{
		products: products,
		sheet:    sheet,
		items:    []entity.Product{},
	}
}

func (u *catalogUseCase) Refresh(ctx context.Context) []entity.Product {
	items := u.products.List(ctx)

	u.mu.Lock()
	u.items = items
	u.mu.Unlock()

	return u.Products()
}

func (u *catalogUseCase) Products() []entity.Product {
	u.mu.RLock()
	defer u.mu.RUnlock()

	out := make([]entity.Product, len(u.items))
	copy(out, u.items)
	return out
}

func (u *catalogUseCase) Search(q catalog.Query) []entity.Product {
	u.mu.RLock()
	defer u.mu.RUnlock()

	return catalog.Filter(u.items, q)
}

func (u *catalogUseCase) FindByQRCode(code string) []entity.Product {
	u.mu.RLock()
	defer u.mu.RUnlock()

	return catalog.FindByQRCode(u.items, code)
}

func (u *catalogUseCase) Suggest(text string, limit int) []entity.Product {
	u.mu.RLock()
	defer u.mu.RUnlock()

	return catalog.Suggest(u.items, text, limit)
}

func (u *catalogUseCase) Categories() []string {
	u.mu.RLock()
	defer u.mu.RUnlock()

	return catalog.DisplayCategories(u.items)
}

func (u *catalogUseCase) Save(ctx context.Context, editingID string, input entity.ProductInput) []entity.Product {
	input = input.Clean()
	if editingID != "" {
		u.products.UpdateByID(ctx, editingID, input.Update())
	} else {
		u.products.Create(ctx, input)
	}
	return u.Refresh(ctx)
}

func (u *catalogUseCase) Delete(ctx context.Context, code entity.QRCode) []entity.Product {
	u.products.DeleteByQRCode(ctx, code)
	return u.Refresh(ctx)
}

func (u *catalogUseCase) Import(ctx context.Context, data []byte, filename string) (int, error) {
	inputs, err := u.sheet.ParseProductsFromBytes(ctx, data, filename)
	if err != nil {
		return 0, errors.Wrap(err, "parse catalog sheet")
	}

	created := 0
	for _, input := range inputs {
		if err := ctx.Err(); err != nil {
			u.Refresh(context.WithoutCancel(ctx))
			return created, err
		}
		if u.products.Create(ctx, input) != nil {
			created++
		}
	}
	zap.L().Info("catalog import",
		zap.String("file", filename),
		zap.Int("rows", len(inputs)),
		zap.Int("created", created),
	)

	u.Refresh(ctx)
	return created, nil
}

func (u *catalogUseCase) Export(ctx context.Context) ([]byte, error) {
	return u.sheet.WriteProducts(ctx, u.Products())
}

func (u *catalogUseCase) Text() string {
	items := u.Products()
	if len(items) == 0 {
		return ""
	}

	groups := make(map[string][]entity.Product)
	var order []string
	for _, p := range items {
		category := catalog.DisplayCategory(p.Category)
		if _, seen := groups[category]; !seen {
			order = append(order, category)
		}
		groups[category] = append(groups[category], p)
	}

	var sb strings.Builder
	for _, category := range order {
		sb.WriteString(fmt.Sprintf("📂 %s:\n", category))
		for i, p := range groups[category] {
			sb.WriteString(fmt.Sprintf("%d. %s - %.2f €", i+1, p.Name, p.Price))
			if !p.QRCode.IsZero() {
				sb.WriteString(fmt.Sprintf(" (QR %s)", p.QRCode))
			}
			if p.Description != "" {
				sb.WriteString(fmt.Sprintf("\n   %s", p.Description))
			}
			if len(p.Benefits) > 0 {
				sb.WriteString(fmt.Sprintf("\n   Bienfaits: %s", strings.Join(p.Benefits, ", ")))
			}
			if len(p.Ingredients) > 0 {
				sb.WriteString(fmt.Sprintf("\n   Ingrédients: %s", strings.Join(p.Ingredients, ", ")))
			}
			if p.Usage != "" {
				sb.WriteString(fmt.Sprintf("\n   Utilisation: %s", p.Usage))
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
