package pos

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/granjalabs/granjapos/internal/domain"
)

// Weight family conversion constants. 1 Lb = 0.453592 Kg. Both directions
// must use these exact literals; they are reciprocal-consistent only to the
// precision written here, so mixing a recomputed inverse would drift stock
// and margin numbers. Rounding happens at display time only.
const (
	KilogramsPerPound = 0.453592
	PoundsPerKilogram = 2.20462
)

// SalesUnit is the unit the operator typed the quantity in.
type SalesUnit string

const (
	// SalesUnitBase means the quantity was entered directly in the
	// product's base unit (Kg, Unidad, ...). No conversion is applied.
	SalesUnitBase SalesUnit = ""
	// SalesUnitPound is only valid for products stocked in kilograms.
	SalesUnitPound SalesUnit = "lb"
)

var (
	ErrNonPositiveQuantity = errors.New("pos: quantity must be positive")
	ErrUnitNotConvertible  = errors.New("pos: sales unit not convertible to product base unit")
)

// Conversion is the result of translating an operator-entered quantity into
// base-unit terms. BaseQuantity is what inventory is deducted by,
// EffectiveUnitPrice is the price of one sales unit, and DisplayLabel is the
// derived human-readable form ("1.5 Lb", "Docena"). The label is never
// authoritative: BaseQuantity always converts back to it.
type Conversion struct {
	BaseQuantity       float64 `json:"base_quantity"`
	DisplayLabel       string  `json:"display_label"`
	EffectiveUnitPrice float64 `json:"effective_unit_price"`
}

// Convert translates an entered quantity/unit pair against a product.
// Pure function, no side effects.
func Convert(p *domain.Product, quantity float64, unit SalesUnit) (Conversion, error) {
	if quantity <= 0 {
		return Conversion{}, ErrNonPositiveQuantity
	}

	switch unit {
	case SalesUnitPound:
		if p.Unit != domain.UnitKg {
			return Conversion{}, fmt.Errorf("%w: %s sold in lb but stocked in %s",
				ErrUnitNotConvertible, p.Name, p.Unit)
		}
		return Conversion{
			BaseQuantity:       quantity * KilogramsPerPound,
			DisplayLabel:       formatQuantity(quantity) + " Lb",
			EffectiveUnitPrice: p.Price / PoundsPerKilogram,
		}, nil
	case SalesUnitBase:
		return Conversion{
			BaseQuantity:       quantity,
			DisplayLabel:       baseLabel(p, quantity),
			EffectiveUnitPrice: p.Price,
		}, nil
	default:
		return Conversion{}, fmt.Errorf("%w: unknown sales unit %q", ErrUnitNotConvertible, unit)
	}
}

// PoundsFromBase converts a base-unit (kilogram) quantity back to pounds
// using the same constant as the forward direction.
func PoundsFromBase(kg float64) float64 {
	return kg / KilogramsPerPound
}

// baseLabel derives the cart display label for a quantity entered in the
// base unit. Egg counts map onto the traditional count names; 12, 15 and 30
// are pure display labels, the base quantity equals the entered count.
func baseLabel(p *domain.Product, quantity float64) string {
	if p.Category == domain.CategoryEggs {
		switch quantity {
		case 1:
			return "Unidad"
		case 12:
			return "Docena"
		case 15:
			return "Quincena"
		case 30:
			return "Cubeta"
		default:
			return formatQuantity(quantity) + " Und"
		}
	}
	if p.Unit == domain.UnitKg {
		return formatQuantity(quantity) + " Kg"
	}
	return p.Unit
}

func formatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}
