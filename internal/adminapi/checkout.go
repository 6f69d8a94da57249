package adminapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/granjalabs/granjapos/internal/domain"
	"github.com/granjalabs/granjapos/internal/orders"
	"github.com/granjalabs/granjapos/internal/pos"
	"github.com/granjalabs/granjapos/internal/webserver"
	"github.com/granjalabs/granjapos/pkg/common"
	"github.com/labstack/echo/v4"
)

type checkoutItem struct {
	ProductID string  `json:"product_id"`
	Quantity  float64 `json:"quantity"`
	Unit      string  `json:"unit"` // "" = base unit, "lb" = pounds
}

type checkoutCustomer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type checkoutPayload struct {
	Type          string           `json:"type"`
	PaymentMethod string           `json:"payment_method"`
	Customer      checkoutCustomer `json:"customer"`
	Items         []checkoutItem   `json:"items"`
}

func registerCheckoutRoutes() {
	webserver.ApiPOST("/checkout", checkout)
}

// checkout runs the full cart flow server side: unit conversion per line,
// order creation, stock deduction. Overselling is not blocked here; stock
// goes negative and the low-stock alert picks it up.
func checkout(c echo.Context) error {
	var payload checkoutPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse checkout", err.Error())
	}
	if len(payload.Items) == 0 {
		return fail(c, http.StatusBadRequest, "EMPTY_CART", "Checkout requires at least one item", nil)
	}

	ctx := c.Request().Context()
	cart := pos.NewCart()
	for _, item := range payload.Items {
		product, err := app.Products.GetByID(ctx, item.ProductID)
		if err != nil {
			return fail(c, http.StatusBadRequest, "UNKNOWN_PRODUCT", "Product not found: "+item.ProductID, nil)
		}
		if _, err := cart.AddItem(product, item.Quantity, pos.SalesUnit(item.Unit)); err != nil {
			return fail(c, http.StatusBadRequest, "INVALID_QUANTITY", err.Error(), nil)
		}
	}

	order := &domain.Order{
		Type:          payload.Type,
		PaymentMethod: common.IfEmptyStr(payload.PaymentMethod, domain.PaymentCash),
		CustomerID:    payload.Customer.ID,
		CustomerName:  strings.TrimSpace(payload.Customer.Name),
		Phone:         payload.Customer.Phone,
		Address:       payload.Customer.Address,
		Items:         cart.OrderItems(),
	}

	// a delivery buyer without a record becomes a new customer so the next
	// order can reference them
	if payload.Type == domain.OrderTypeDelivery && order.CustomerID == "" && order.CustomerName != "" {
		customer := &domain.Customer{
			ID:      common.UUID(),
			Name:    order.CustomerName,
			Phone:   order.Phone,
			Address: order.Address,
		}
		if err := app.Customers.Save(ctx, customer); err != nil {
			return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to save customer", err.Error())
		}
		order.CustomerID = customer.ID
	}

	gaps, err := app.Orders.CreateOrder(ctx, order)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrEmptyOrder), errors.Is(err, orders.ErrNonPositiveQuantity):
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		default:
			return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create order", err.Error())
		}
	}
	return ok(c, map[string]interface{}{"order": order, "gaps": gaps})
}
