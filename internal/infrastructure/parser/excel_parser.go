package parser

import (
	"bytes"
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/yourusername/biosmaris-storefront/internal/domain/entity"
	"github.com/yourusername/biosmaris-storefront/internal/domain/repository"
)

// ListSeparator separates entries of images, ingredients and benefits cells.
const ListSeparator = ";"

// Column order used by WriteProducts. ParseProductsFromBytes accepts any
// order as long as the header names the columns.
var sheetColumns = []string{
	"name", "description", "price", "category", "qrCode",
	"images", "ingredients", "benefits", "usage",
}

type excelParser struct{}

// NewExcelParser returns the xlsx catalog codec.
func NewExcelParser() repository.CatalogSheet {
	return &excelParser{}
}

// ParseProductsFromBytes reads product rows from the first sheet of an
// uploaded workbook.
func (e *excelParser) ParseProductsFromBytes(ctx context.Context, data []byte, filename string) ([]entity.ProductInput, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "open workbook %s", filename)
	}
	defer f.Close()

	return e.parseExcelFile(f, filename)
}

func (e *excelParser) parseExcelFile(f *excelize.File, filename string) ([]entity.ProductInput, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrap(err, "read rows")
	}
	if len(rows) < 2 {
		return nil, errors.New("sheet has no product rows")
	}

	columnMap := e.mapColumns(rows[0])
	if _, ok := columnMap["price"]; !ok {
		if guessed := e.detectPriceColumn(rows, 1); guessed >= 0 {
			columnMap["price"] = guessed
			zap.S().Debugf("guessed price column %d in %s", guessed, filename)
		}
	}
	zap.S().Debugf("column mapping for %s: %v", filename, columnMap)

	var products []entity.ProductInput
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		input := entity.ProductInput{
			Name:        cell(row, columnMap, "name"),
			Description: cell(row, columnMap, "description"),
			Category:    cell(row, columnMap, "category"),
			QRCode:      entity.QRCode(cell(row, columnMap, "qrCode")),
			Images:      splitList(cell(row, columnMap, "images")),
			Ingredients: splitList(cell(row, columnMap, "ingredients")),
			Benefits:    splitList(cell(row, columnMap, "benefits")),
			Usage:       cell(row, columnMap, "usage"),
		}
		if input.Name == "" {
			zap.S().Warnf("row %d of %s has no name, skipping", i+1, filename)
			continue
		}

		price, err := e.parsePrice(cell(row, columnMap, "price"))
		if err != nil {
			zap.S().Warnf("row %d of %s: %v, skipping", i+1, filename, err)
			continue
		}
		input.Price = price

		products = append(products, input.Clean())
	}

	zap.S().Infof("parsed %d products from %s", len(products), filename)
	if len(products) == 0 {
		return nil, errors.Errorf("no valid products found in %s (%d rows read)", filename, len(rows)-1)
	}
	return products, nil
}

// WriteProducts renders products into a new workbook with a header row.
func (e *excelParser) WriteProducts(ctx context.Context, products []entity.Product) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := make([]interface{}, len(sheetColumns))
	for i, name := range sheetColumns {
		header[i] = name
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, errors.Wrap(err, "write header")
	}

	for i, p := range products {
		row := []interface{}{
			p.Name,
			p.Description,
			p.Price,
			p.Category,
			p.QRCode.String(),
			strings.Join(p.Images, ListSeparator),
			strings.Join(p.Ingredients, ListSeparator),
			strings.Join(p.Benefits, ListSeparator),
			p.Usage,
		}
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, axis, &row); err != nil {
			return nil, errors.Wrapf(err, "write row %d", i+2)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "encode workbook")
	}
	return buf.Bytes(), nil
}

// mapColumns maps header cells to product fields. French and English names
// are both accepted.
func (e *excelParser) mapColumns(header []string) map[string]int {
	columnMap := make(map[string]int)

	for i, col := range header {
		colName := strings.ToLower(strings.TrimSpace(col))
		if colName == "" {
			continue
		}

		var field string
		switch {
		case contains(colName, "qr", "code"):
			field = "qrCode"
		case contains(colName, "description", "descriptif"):
			field = "description"
		case contains(colName, "ingr"):
			field = "ingredients"
		case contains(colName, "benefit", "bienfait", "avantage"):
			field = "benefits"
		case contains(colName, "usage", "utilisation", "posologie", "conseil"):
			field = "usage"
		case contains(colName, "image", "photo"):
			field = "images"
		case contains(colName, "categor", "catégor", "gamme"):
			field = "category"
		case contains(colName, "price", "prix", "tarif"):
			field = "price"
		case contains(colName, "name", "nom", "produit", "product"):
			field = "name"
		default:
			continue
		}

		if _, taken := columnMap[field]; !taken {
			columnMap[field] = i
		}
	}

	if _, ok := columnMap["name"]; !ok && len(header) > 0 {
		columnMap["name"] = 0
	}
	return columnMap
}

// detectPriceColumn picks the column whose cells parse as prices most often.
func (e *excelParser) detectPriceColumn(rows [][]string, startRow int) int {
	maxCols := 0
	limitRows := startRow + 15
	if limitRows > len(rows) {
		limitRows = len(rows)
	}
	for i := startRow; i < limitRows; i++ {
		if len(rows[i]) > maxCols {
			maxCols = len(rows[i])
		}
	}

	bestCol, bestCount := -1, 0
	for col := 0; col < maxCols; col++ {
		count := 0
		for i := startRow; i < limitRows; i++ {
			if col >= len(rows[i]) {
				continue
			}
			if _, err := e.parsePrice(rows[i][col]); err == nil {
				count++
			}
		}
		if count > bestCount {
			bestCol, bestCount = col, count
		}
	}

	if bestCount >= 2 {
		return bestCol
	}
	return -1
}

// parsePrice accepts "19.90", "19,90 €", "1 200 MAD" and the like.
func (e *excelParser) parsePrice(priceStr string) (float64, error) {
	s := strings.ToLower(strings.TrimSpace(priceStr))
	if s == "" {
		return 0, errors.New("empty price")
	}

	for _, unit := range []string{"€", "$", "eur", "mad", "dh", "fcfa", "cfa", " ", "\u00a0"} {
		s = strings.ReplaceAll(s, unit, "")
	}
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	} else {
		s = strings.ReplaceAll(s, ",", "")
	}

	price, err := cast.ToFloat64E(s)
	if err != nil || price < 0 {
		return 0, errors.Errorf("invalid price %q", priceStr)
	}
	return price, nil
}

func cell(row []string, columnMap map[string]int, field string) string {
	idx, ok := columnMap[field]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	return strings.Split(value, ListSeparator)
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func contains(str string, keywords ...string) bool {
	for _, keyword := range keywords {
		if strings.Contains(str, keyword) {
			return true
		}
	}
	return false
}
