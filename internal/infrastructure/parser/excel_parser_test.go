package parser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/biosmaris-storefront/internal/domain/entity"
)

func workbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		axis, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow(sheet, axis, &r))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestParseProductsFromBytes(t *testing.T) {
	data := workbook(t, [][]interface{}{
		{"Nom", "Prix", "Catégorie", "QR Code", "Images", "Ingrédients", "Bienfaits", "Conseils d'utilisation"},
		{"Omega 3", "19,90 €", "Cardio", "1234", "a.jpg; b.jpg;", "Huile de poisson", "Coeur;Cerveau", "2 gélules par jour"},
		{"", "", "", "", "", "", "", ""},
		{"Zinc", "abc", "Immunité", "", "", "", "", ""},
		{"Spiruline", "12", "", "77", "", "", "", ""},
	})

	products, err := NewExcelParser().ParseProductsFromBytes(context.Background(), data, "catalogue.xlsx")
	require.NoError(t, err)
	require.Len(t, products, 2)

	omega := products[0]
	assert.Equal(t, "Omega 3", omega.Name)
	assert.Equal(t, 19.9, omega.Price)
	assert.Equal(t, "Cardio", omega.Category)
	assert.Equal(t, entity.QRCode("1234"), omega.QRCode)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, omega.Images)
	assert.Equal(t, []string{"Huile de poisson"}, omega.Ingredients)
	assert.Equal(t, []string{"Coeur", "Cerveau"}, omega.Benefits)
	assert.Equal(t, "2 gélules par jour", omega.Usage)

	assert.Equal(t, "Spiruline", products[1].Name)
	assert.Equal(t, 12.0, products[1].Price)
}

func TestParseRejectsEmptySheet(t *testing.T) {
	data := workbook(t, [][]interface{}{{"name", "price"}})

	_, err := NewExcelParser().ParseProductsFromBytes(context.Background(), data, "vide.xlsx")
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := NewExcelParser().ParseProductsFromBytes(context.Background(), []byte("not a workbook"), "x.xlsx")
	assert.Error(t, err)
}

func TestWriteThenParse(t *testing.T) {
	ctx := context.Background()
	codec := NewExcelParser()
	products := []entity.Product{
		{
			ID:          "1",
			Name:        "Magnésium Marin",
			Description: "Anti-fatigue",
			Price:       24.5,
			Category:    "Stress",
			QRCode:      "1002",
			Images:      []string{"m1.jpg", "m2.jpg"},
			Benefits:    []string{"Sommeil"},
			Usage:       "1 le soir",
		},
	}

	data, err := codec.WriteProducts(ctx, products)
	require.NoError(t, err)

	parsed, err := codec.ParseProductsFromBytes(ctx, data, "export.xlsx")
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Equal(t, products[0].Input().Clean(), parsed[0])
}

func TestParsePrice(t *testing.T) {
	e := &excelParser{}
	cases := map[string]float64{
		"19.90":     19.9,
		"19,90 €":   19.9,
		"1,200.50":  1200.5,
		"150 MAD":   150,
		"2 500 dh":  2500,
	}
	for in, want := range cases {
		got, err := e.parsePrice(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := e.parsePrice("")
	assert.Error(t, err)
	_, err = e.parsePrice("-3")
	assert.Error(t, err)
}
