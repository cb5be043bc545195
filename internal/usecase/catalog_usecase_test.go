package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/biosmaris-storefront/internal/domain/catalog"
	"github.com/yourusername/biosmaris-storefront/internal/domain/entity"
)

func scenarioProducts() []entity.Product {
	return []entity.Product{
		{ID: "1", Name: "Omega 3 Marin", QRCode: "1001", Category: "Omega-3", Price: 19.9},
		{ID: "2", Name: "Vitamine C", QRCode: "1002", Category: "Vitamins", Price: 9.5},
	}
}

func TestCatalogScenarioFilterThenDeleteByQRCode(t *testing.T) {
	ctx := context.Background()
	repo := newFakeProductRepo(scenarioProducts()...)
	u := NewCatalogUseCase(NewProductUseCase(repo), &fakeSheet{})

	require.Len(t, u.Refresh(ctx), 2)

	found := u.Search(catalog.Query{Text: "omega"})
	require.Len(t, found, 1)
	assert.Equal(t, "1", found[0].ID)

	after := u.Delete(ctx, entity.QRCode("1002"))
	require.Len(t, after, 1)
	assert.Equal(t, "1", after[0].ID)
	assert.Equal(t, after, u.Products())
}

func TestCatalogSaveCreatesOrUpdates(t *testing.T) {
	ctx := context.Background()
	repo := newFakeProductRepo(scenarioProducts()...)
	u := NewCatalogUseCase(NewProductUseCase(repo), &fakeSheet{})
	u.Refresh(ctx)

	list := u.Save(ctx, "", entity.ProductInput{
		Name:   "  Spiruline ",
		Price:  15,
		Images: []string{"", "s.jpg", "  "},
	})
	require.Len(t, list, 3)
	assert.Equal(t, "Spiruline", list[2].Name)
	assert.Equal(t, []string{"s.jpg"}, list[2].Images)

	list = u.Save(ctx, "2", entity.ProductInput{Name: "Vitamine C 1000"})
	require.Contains(t, repo.updates, "2")
	assert.Equal(t, "Vitamine C 1000", list[1].Name)
}

func TestCatalogRefreshFailureEmptiesList(t *testing.T) {
	ctx := context.Background()
	repo := newFakeProductRepo(scenarioProducts()...)
	u := NewCatalogUseCase(NewProductUseCase(repo), &fakeSheet{})
	u.Refresh(ctx)

	repo.err = errNetwork
	assert.Empty(t, u.Refresh(ctx))
	assert.Empty(t, u.Search(catalog.Query{Category: catalog.AllCategories}))
}

func TestCatalogCategoriesAndQR(t *testing.T) {
	ctx := context.Background()
	repo := newFakeProductRepo(append(scenarioProducts(), entity.Product{ID: "3", Name: "Sans gamme", QRCode: "12345"})...)
	u := NewCatalogUseCase(NewProductUseCase(repo), &fakeSheet{})
	u.Refresh(ctx)

	assert.Equal(t, []string{"all", "Omega-3", "Vitamins", "uncategorized"}, u.Categories())

	found := u.FindByQRCode("123")
	require.Len(t, found, 1)
	assert.Equal(t, "3", found[0].ID)
}

func TestCatalogImport(t *testing.T) {
	ctx := context.Background()
	repo := newFakeProductRepo()
	sheet := &fakeSheet{inputs: []entity.ProductInput{{Name: "A", Price: 1}, {Name: "B", Price: 2}}}
	u := NewCatalogUseCase(NewProductUseCase(repo), sheet)

	created, err := u.Import(ctx, []byte("data"), "catalogue.xlsx")
	require.NoError(t, err)
	assert.Equal(t, 2, created)
	assert.Len(t, u.Products(), 2)

	sheet.err = errNetwork
	_, err = u.Import(ctx, nil, "x.xlsx")
	assert.Error(t, err)
}

func TestCatalogImportCountsFailedCreates(t *testing.T) {
	ctx := context.Background()
	repo := newFakeProductRepo()
	repo.err = errNetwork
	u := NewCatalogUseCase(NewProductUseCase(repo), &fakeSheet{inputs: []entity.ProductInput{{Name: "A"}}})

	created, err := u.Import(ctx, []byte("data"), "catalogue.xlsx")
	require.NoError(t, err)
	assert.Zero(t, created)
}

func TestCatalogExportAndText(t *testing.T) {
	ctx := context.Background()
	sheet := &fakeSheet{}
	u := NewCatalogUseCase(NewProductUseCase(newFakeProductRepo(scenarioProducts()...)), sheet)

	assert.Empty(t, u.Text())
	u.Refresh(ctx)

	data, err := u.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("xlsx"), data)
	assert.Len(t, sheet.written, 2)

	text := u.Text()
	assert.True(t, strings.HasPrefix(text, "📂 Omega-3:"))
	assert.Contains(t, text, "Omega 3 Marin - 19.90 €")
	assert.Contains(t, text, "(QR 1002)")
}
