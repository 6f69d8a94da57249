package adminapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/granjalabs/granjapos/internal/domain"
	"github.com/granjalabs/granjapos/internal/ledger"
	"github.com/granjalabs/granjapos/internal/webserver"
	"github.com/labstack/echo/v4"
)

type purchasePayload struct {
	ProductID string  `json:"product_id"`
	Quantity  float64 `json:"quantity"`
	UnitCost  float64 `json:"unit_cost"`
	Supplier  string  `json:"supplier"`
	Notes     string  `json:"notes"`
}

func registerPurchaseRoutes() {
	webserver.ApiGET("/purchases", listPurchases)
	webserver.ApiPOST("/purchases", registerPurchase)
}

func listPurchases(c echo.Context) error {
	page, pageSize := parsePagination(c)
	base := app.DB.WithContext(c.Request().Context()).Model(&domain.Purchase{})
	if pid := strings.TrimSpace(c.QueryParam("product_id")); pid != "" {
		base = base.Where("product_id = ?", pid)
	}
	var total int64
	if err := base.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query purchases", err.Error())
	}
	var rows []domain.Purchase
	err := base.Order("date DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&rows).Error
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query purchases", err.Error())
	}
	return paged(c, rows, total, page, pageSize)
}

// registerPurchase appends a restock entry and applies its stock/cost
// effects through the ledger. The product name is frozen on the record so
// the purchase history survives catalog edits.
func registerPurchase(c echo.Context) error {
	var payload purchasePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse purchase", err.Error())
	}
	if strings.TrimSpace(payload.ProductID) == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Product is required", nil)
	}
	if payload.Quantity <= 0 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Quantity must be positive", nil)
	}
	if payload.UnitCost < 0 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unit cost must not be negative", nil)
	}

	ctx := c.Request().Context()
	productName := ""
	if p, err := app.Products.GetByID(ctx, payload.ProductID); err == nil {
		productName = p.Name
	}

	purchase := &domain.Purchase{
		ProductID:   payload.ProductID,
		ProductName: productName,
		Quantity:    payload.Quantity,
		UnitCost:    payload.UnitCost,
		Supplier:    payload.Supplier,
		Notes:       payload.Notes,
	}
	gaps, err := app.Ledger.RegisterPurchase(ctx, purchase)
	if err != nil {
		if errors.Is(err, ledger.ErrNonPositiveQuantity) {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		}
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to register purchase", err.Error())
	}
	return ok(c, map[string]interface{}{"purchase": purchase, "gaps": gaps})
}
