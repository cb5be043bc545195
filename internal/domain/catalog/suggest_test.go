package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yourusername/biosmaris-storefront/internal/domain/entity"
)

func TestSuggestFindsTypos(t *testing.T) {
	products := []entity.Product{
		{ID: "1", Name: "Omega 3 Marin", Category: "Cardio"},
		{ID: "2", Name: "Zinc Bisglycinate", Category: "Immunité"},
		{ID: "3", Name: "Magnésium Marin", Category: "Stress"},
	}

	got := Suggest(products, "omga marin", 5)
	if assert.NotEmpty(t, got) {
		assert.Equal(t, "1", got[0].ID)
	}
	assert.Empty(t, Filter(products, Query{Text: "omga marin"}))
}

func TestSuggestRespectsLimitAndOrder(t *testing.T) {
	products := []entity.Product{
		{ID: "1", Name: "Collagène Marin"},
		{ID: "2", Name: "Collagène Marin Plus"},
		{ID: "3", Name: "Collagène Marin Forte"},
	}

	got := Suggest(products, "collagene marin", 2)
	assert.Len(t, got, 2)
}

func TestSuggestIgnoresStopWordsOnly(t *testing.T) {
	products := []entity.Product{{ID: "1", Name: "Spiruline"}}

	assert.Empty(t, Suggest(products, "", 3))
	assert.Empty(t, Suggest(products, "pour les", 3))
}

func TestLongestCommonSubstringLength(t *testing.T) {
	assert.Equal(t, 5, longestCommonSubstringLength("omega3", "omegamarin"))
	assert.Equal(t, 0, longestCommonSubstringLength("", "abc"))
	assert.Equal(t, 2, longestCommonSubstringLength("éa", "xéa"))
}
