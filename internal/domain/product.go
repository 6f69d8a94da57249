package domain

import "time"

// Product categories. Display values are kept in Spanish to match the
// storefront vocabulary of the business.
const (
	CategoryEggs    = "Huevos"
	CategoryChicken = "Pollo"
	CategoryCheese  = "Queso"
	CategoryMeat    = "Carne"
	CategoryOther   = "Otros"
)

// Base stock-keeping units. A product's stock and catalog price are always
// denominated in its base unit; sales-time units (pounds, dozens) are
// converted before anything is written.
const (
	UnitUnit  = "Unidad"
	UnitKg    = "Kg"
	UnitPound = "Lb"
	UnitTray  = "Bandeja"
	UnitLiter = "Litro"
)

// Categories lists all valid product categories.
var Categories = []string{CategoryEggs, CategoryChicken, CategoryCheese, CategoryMeat, CategoryOther}

// Units lists all valid base units.
var Units = []string{UnitUnit, UnitKg, UnitPound, UnitTray, UnitLiter}

// Product is the single source of truth for current stock, price and cost.
// Stock is mutated only by the inventory ledger (sale decrement, purchase
// increment, manual adjustment); it may be fractional and may go negative.
type Product struct {
	ID        string    `gorm:"primaryKey;size:32" json:"id" form:"id"`
	Name      string    `gorm:"index" json:"name" form:"name"`
	Category  string    `gorm:"size:32;index" json:"category" form:"category"`
	Unit      string    `gorm:"size:16" json:"unit" form:"unit"`
	Price     float64   `json:"price" form:"price"` // sale price per one base unit
	Cost      float64   `json:"cost" form:"cost"`   // purchase cost per one base unit, overwritten on restock
	Stock     float64   `json:"stock" form:"stock"` // quantity in base unit
	MinStock  float64   `json:"min_stock" form:"min_stock"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "pos_product"
}

// ValidCategory reports whether s is a known product category.
func ValidCategory(s string) bool {
	for _, c := range Categories {
		if c == s {
			return true
		}
	}
	return false
}

// ValidUnit reports whether s is a known base unit.
func ValidUnit(s string) bool {
	for _, u := range Units {
		if u == s {
			return true
		}
	}
	return false
}
