package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	variants := []Variant{
		{Weight: "3.5g", Price: decimal.NewFromInt(40)},
		{Weight: "7g", Price: decimal.NewFromInt(70)},
	}

	p, err := NewProduct("Gas OG", "Indica", variants)
	require.NoError(t, err)

	assert.Equal(t, "Gas OG", p.Name)
	assert.Equal(t, "indica", p.Category)
	assert.True(t, p.IsActive())

	got, err := p.VariantList()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "3.5g", got[0].Weight)
	assert.True(t, got[0].Price.Equal(decimal.NewFromInt(40)))
}

func TestNewProduct_RequiresName(t *testing.T) {
	_, err := NewProduct("   ", "hybrid", nil)
	assert.Error(t, err)
}

func TestSetVariants_RejectsNegativePrice(t *testing.T) {
	p, err := NewProduct("Gas OG", "indica", nil)
	require.NoError(t, err)

	err = p.SetVariants([]Variant{{Weight: "1g", Price: decimal.NewFromInt(-5)}})
	assert.Error(t, err)
}
