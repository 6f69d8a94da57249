package adminapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/granjalabs/granjapos/internal/domain"
	"github.com/granjalabs/granjapos/internal/reports"
	"github.com/granjalabs/granjapos/internal/webserver"
	"github.com/granjalabs/granjapos/pkg/common"
	"github.com/labstack/echo/v4"
)

type productPayload struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Unit     string  `json:"unit"`
	Price    float64 `json:"price"`
	Cost     float64 `json:"cost"`
	Stock    float64 `json:"stock"`
	MinStock float64 `json:"min_stock"`
}

// registerProductRoutes registers catalog CRUD and CSV import/export
func registerProductRoutes() {
	webserver.ApiGET("/products", listProducts)
	webserver.ApiGET("/products/low-stock", listLowStockProducts)
	webserver.ApiGET("/products/export.csv", exportProductsCSV)
	webserver.ApiPOST("/products/import", importProductsCSV)
	webserver.ApiGET("/products/:id", getProduct)
	webserver.ApiPOST("/products", saveProduct)
	webserver.ApiPUT("/products/:id", saveProduct)
	webserver.ApiDELETE("/products/:id", deleteProduct)
}

func listProducts(c echo.Context) error {
	base := app.DB.Model(&domain.Product{})
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		base = base.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}
	if category := strings.TrimSpace(c.QueryParam("category")); category != "" {
		base = base.Where("category = ?", category)
	}
	var rows []domain.Product
	if err := base.Order("name ASC").Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}
	return ok(c, rows)
}

func listLowStockProducts(c echo.Context) error {
	rows, err := app.Products.LowStock(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query low stock products", err.Error())
	}
	return ok(c, rows)
}

func getProduct(c echo.Context) error {
	p, err := app.Products.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	return ok(c, p)
}

func validateProductPayload(p *productPayload) (string, bool) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return "Name is required", false
	}
	if !domain.ValidCategory(p.Category) {
		return "Unknown category", false
	}
	if !domain.ValidUnit(p.Unit) {
		return "Unknown base unit", false
	}
	if p.Price < 0 || p.Cost < 0 || p.MinStock < 0 {
		return "Price, cost and minimum stock must not be negative", false
	}
	return "", true
}

// saveProduct is an insert-or-replace by id; a missing id creates a new
// product.
func saveProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	if id := c.Param("id"); id != "" {
		payload.ID = id
	}
	if msg, valid := validateProductPayload(&payload); !valid {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", msg, nil)
	}

	now := time.Now()
	p := domain.Product{
		ID:        payload.ID,
		Name:      payload.Name,
		Category:  payload.Category,
		Unit:      payload.Unit,
		Price:     payload.Price,
		Cost:      payload.Cost,
		Stock:     payload.Stock,
		MinStock:  payload.MinStock,
		UpdatedAt: now,
	}
	if p.ID == "" {
		p.ID = common.UUID()
		p.CreatedAt = now
	}
	if err := app.Products.Save(c.Request().Context(), &p); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to save product", err.Error())
	}
	return ok(c, p)
}

// deleteProduct removes a product without cascading to historical orders.
func deleteProduct(c echo.Context) error {
	id := c.Param("id")
	if err := app.Products.Delete(c.Request().Context(), id); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete product", err.Error())
	}
	return ok(c, map[string]interface{}{"id": id})
}

func exportProductsCSV(c echo.Context) error {
	products, err := app.Products.List(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}
	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="catalogo.csv"`)
	c.Response().WriteHeader(http.StatusOK)
	return reports.WriteCatalogCSV(c.Response(), products)
}

func importProductsCSV(c echo.Context) error {
	products, err := reports.ReadCatalogCSV(c.Request().Body)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse catalog csv", err.Error())
	}
	ctx := c.Request().Context()
	saved := 0
	for i := range products {
		p := &products[i]
		if p.Name == "" || !domain.ValidCategory(p.Category) || !domain.ValidUnit(p.Unit) {
			continue
		}
		if p.ID == "" {
			p.ID = common.UUID()
			p.CreatedAt = time.Now()
		}
		p.UpdatedAt = time.Now()
		if err := app.Products.Save(ctx, p); err != nil {
			return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to save imported product", err.Error())
		}
		saved++
	}
	return ok(c, map[string]interface{}{"imported": saved, "rows": len(products)})
}
