package adminapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/granjalabs/granjapos/internal/domain"
	"github.com/granjalabs/granjapos/internal/webserver"
	"github.com/granjalabs/granjapos/pkg/common"
	"github.com/labstack/echo/v4"
)

type customerPayload struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	Notes      string `json:"notes"`
	IsFrequent bool   `json:"is_frequent"`
}

func registerCustomerRoutes() {
	webserver.ApiGET("/customers", listCustomers)
	webserver.ApiGET("/customers/:id", getCustomer)
	webserver.ApiPOST("/customers", saveCustomer)
	webserver.ApiPUT("/customers/:id", saveCustomer)
}

func listCustomers(c echo.Context) error {
	rows, err := app.Customers.List(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query customers", err.Error())
	}
	return ok(c, rows)
}

func getCustomer(c echo.Context) error {
	customer, err := app.Customers.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Customer not found", nil)
	}
	return ok(c, customer)
}

// saveCustomer is an insert-or-replace by id. The cumulative purchase total
// is preserved on updates; only the order flow accumulates it.
func saveCustomer(c echo.Context) error {
	var payload customerPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse customer", err.Error())
	}
	if id := c.Param("id"); id != "" {
		payload.ID = id
	}
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Name is required", nil)
	}

	ctx := c.Request().Context()
	now := time.Now()
	customer := domain.Customer{
		ID:         payload.ID,
		Name:       payload.Name,
		Phone:      payload.Phone,
		Address:    payload.Address,
		Notes:      payload.Notes,
		IsFrequent: payload.IsFrequent,
		UpdatedAt:  now,
	}
	if customer.ID == "" {
		customer.ID = common.UUID()
		customer.CreatedAt = now
	} else if existing, err := app.Customers.GetByID(ctx, customer.ID); err == nil {
		customer.TotalPurchases = existing.TotalPurchases
		customer.CreatedAt = existing.CreatedAt
	}
	if err := app.Customers.Save(ctx, &customer); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to save customer", err.Error())
	}
	return ok(c, customer)
}
