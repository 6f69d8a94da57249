package pos

import (
	"math"
	"testing"

	"github.com/granjalabs/granjapos/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kgProduct(price float64) *domain.Product {
	return &domain.Product{
		ID:       "p-chicken",
		Name:     "Pechuga de Pollo",
		Category: domain.CategoryChicken,
		Unit:     domain.UnitKg,
		Price:    price,
	}
}

func eggProduct() *domain.Product {
	return &domain.Product{
		ID:       "p-eggs",
		Name:     "Huevo Rosado",
		Category: domain.CategoryEggs,
		Unit:     domain.UnitUnit,
		Price:    0.18,
	}
}

func TestConvertPoundForKgProduct(t *testing.T) {
	conv, err := Convert(kgProduct(8.50), 1, SalesUnitPound)
	require.NoError(t, err)

	assert.InDelta(t, 0.453592, conv.BaseQuantity, 1e-9)
	assert.InDelta(t, 8.50/2.20462, conv.EffectiveUnitPrice, 1e-9)
	assert.Equal(t, "1 Lb", conv.DisplayLabel)
}

func TestConvertPoundPriceMatchesBasePrice(t *testing.T) {
	// price per pound times pounds must agree with price per kg times kg
	// within float tolerance, since the two constants are only
	// reciprocal-consistent to their written precision
	p := kgProduct(12.00)
	conv, err := Convert(p, 3.5, SalesUnitPound)
	require.NoError(t, err)

	viaPound := conv.EffectiveUnitPrice * 3.5
	viaBase := p.Price * conv.BaseQuantity
	assert.InDelta(t, viaBase, viaPound, 1e-4)
}

func TestConvertPoundRejectedForNonKg(t *testing.T) {
	_, err := Convert(eggProduct(), 1, SalesUnitPound)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnitNotConvertible)
}

func TestConvertRejectsNonPositiveQuantity(t *testing.T) {
	_, err := Convert(kgProduct(8.50), 0, SalesUnitBase)
	assert.ErrorIs(t, err, ErrNonPositiveQuantity)

	_, err = Convert(kgProduct(8.50), -2, SalesUnitPound)
	assert.ErrorIs(t, err, ErrNonPositiveQuantity)
}

func TestConvertRejectsUnknownUnit(t *testing.T) {
	_, err := Convert(kgProduct(8.50), 1, SalesUnit("oz"))
	assert.ErrorIs(t, err, ErrUnitNotConvertible)
}

func TestEggCountLabels(t *testing.T) {
	tests := []struct {
		quantity float64
		label    string
	}{
		{1, "Unidad"},
		{12, "Docena"},
		{15, "Quincena"},
		{30, "Cubeta"},
		{7, "7 Und"},
		{13, "13 Und"},
		{29, "29 Und"},
		{31, "31 Und"},
	}
	for _, tc := range tests {
		conv, err := Convert(eggProduct(), tc.quantity, SalesUnitBase)
		require.NoError(t, err)
		assert.Equal(t, tc.label, conv.DisplayLabel)
		// labels never change what gets deducted
		assert.Equal(t, tc.quantity, conv.BaseQuantity)
	}
}

func TestBaseLabelForKgProduct(t *testing.T) {
	conv, err := Convert(kgProduct(8.50), 1.5, SalesUnitBase)
	require.NoError(t, err)
	assert.Equal(t, "1.5 Kg", conv.DisplayLabel)
	assert.Equal(t, 1.5, conv.BaseQuantity)
	assert.Equal(t, 8.50, conv.EffectiveUnitPrice)
}

func TestBaseLabelForUnitProductOutsideEggs(t *testing.T) {
	p := &domain.Product{
		ID:       "p-tray",
		Name:     "Bandeja Mixta",
		Category: domain.CategoryOther,
		Unit:     domain.UnitTray,
		Price:    5.00,
	}
	conv, err := Convert(p, 2, SalesUnitBase)
	require.NoError(t, err)
	assert.Equal(t, domain.UnitTray, conv.DisplayLabel)
}

func TestPoundsFromBaseRoundTrip(t *testing.T) {
	for _, lbs := range []float64{0.5, 1, 2.25, 10} {
		conv, err := Convert(kgProduct(8.50), lbs, SalesUnitPound)
		require.NoError(t, err)
		back := PoundsFromBase(conv.BaseQuantity)
		assert.True(t, math.Abs(back-lbs) < 1e-6, "round trip drifted: %v -> %v", lbs, back)
	}
}
