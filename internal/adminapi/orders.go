package adminapi

import (
	"errors"
	"net/http"

	"github.com/araddon/dateparse"
	"github.com/granjalabs/granjapos/internal/orders"
	"github.com/granjalabs/granjapos/internal/webserver"
	"github.com/labstack/echo/v4"
)

type orderStatusPayload struct {
	Status     string `json:"status"`
	AssignedTo string `json:"assigned_to"`
}

func registerOrderRoutes() {
	webserver.ApiGET("/orders", listOrders)
	webserver.ApiGET("/orders/:id", getOrder)
	webserver.ApiPUT("/orders/:id/status", updateOrderStatus)
}

func listOrders(c echo.Context) error {
	ctx := c.Request().Context()

	// since=<ts> serves the delivery view's periodic refresh
	if since := c.QueryParam("since"); since != "" {
		t, err := dateparse.ParseAny(since)
		if err != nil {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse since parameter", err.Error())
		}
		rows, err := app.Orders.ListSince(ctx, t)
		if err != nil {
			return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query orders", err.Error())
		}
		return ok(c, rows)
	}

	rows, err := app.Orders.List(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query orders", err.Error())
	}

	if status := c.QueryParam("status"); status != "" {
		filtered := rows[:0]
		for _, o := range rows {
			if o.Status == status {
				filtered = append(filtered, o)
			}
		}
		rows = filtered
	}
	return ok(c, rows)
}

func getOrder(c echo.Context) error {
	o, err := app.Orders.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Order not found", nil)
	}
	return ok(c, o)
}

// updateOrderStatus persists a status transition. A missing order id is a
// no-op per the lifecycle contract; the response reports updated=false.
func updateOrderStatus(c echo.Context) error {
	var payload orderStatusPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse status", err.Error())
	}
	found, err := app.Orders.SetStatus(c.Request().Context(), c.Param("id"), payload.Status, payload.AssignedTo)
	if err != nil {
		if errors.Is(err, orders.ErrUnknownStatus) {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		}
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update status", err.Error())
	}
	return ok(c, map[string]interface{}{"id": c.Param("id"), "updated": found})
}
