// Package adminapi exposes the point-of-sale core over the admin HTTP api.
// Handlers validate before any mutation; referential gaps discovered by the
// core are returned in the response body rather than raised as errors.
package adminapi

import (
	"github.com/granjalabs/granjapos/internal/ledger"
	"github.com/granjalabs/granjapos/internal/orders"
	"github.com/granjalabs/granjapos/internal/store"
	"gorm.io/gorm"
)

// WebContext carries the core services the handlers dispatch into.
type WebContext struct {
	DB        *gorm.DB
	Products  store.ProductRepository
	Customers store.CustomerRepository
	Orders    *orders.Service
	Ledger    *ledger.Ledger
}

var app *WebContext

// InitRouter wires all admin api routes. Must be called after webserver.Init.
func InitRouter(webctx *WebContext) {
	app = webctx
	registerProductRoutes()
	registerCheckoutRoutes()
	registerOrderRoutes()
	registerPurchaseRoutes()
	registerCustomerRoutes()
	registerReportRoutes()
}
