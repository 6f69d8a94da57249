package adminapi

import (
	"net/http"
	"time"

	"github.com/araddon/dateparse"
	"github.com/granjalabs/granjapos/internal/domain"
	"github.com/granjalabs/granjapos/internal/reports"
	"github.com/granjalabs/granjapos/internal/webserver"
	"github.com/labstack/echo/v4"
)

func registerReportRoutes() {
	webserver.ApiGET("/reports/summary", reportSummary)
	webserver.ApiGET("/reports/daily", reportDaily)
	webserver.ApiGET("/reports/export.xlsx", reportExportXLSX)
}

// parseReportRange resolves the filter/start/end query params into a date
// range. Custom ranges accept anything dateparse understands and are
// inclusive of both end days.
func parseReportRange(c echo.Context) (reports.Range, error) {
	filter := reports.DateFilter(c.QueryParam("filter"))
	if filter == "" {
		filter = reports.FilterAll
	}
	if filter != reports.FilterCustom {
		return reports.NewRange(filter, time.Now()), nil
	}
	start, err := dateparse.ParseAny(c.QueryParam("start"))
	if err != nil {
		return reports.Range{}, err
	}
	end, err := dateparse.ParseAny(c.QueryParam("end"))
	if err != nil {
		return reports.Range{}, err
	}
	return reports.NewCustomRange(start, end), nil
}

func loadReportInputs(c echo.Context) ([]domain.Order, map[string]*domain.Product, error) {
	ctx := c.Request().Context()
	orders, err := app.Orders.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	products, err := app.Products.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	return orders, reports.ProductIndex(products), nil
}

func reportSummary(c echo.Context) error {
	rng, err := parseReportRange(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse report range", err.Error())
	}
	orders, index, err := loadReportInputs(c)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load report data", err.Error())
	}
	summary := reports.Summarize(orders, index, rng)
	series := reports.DailySeries(orders, index, rng)
	return ok(c, map[string]interface{}{
		"summary": summary,
		"stats":   reports.SeriesStatistics(series),
	})
}

func reportDaily(c echo.Context) error {
	rng, err := parseReportRange(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse report range", err.Error())
	}
	orders, index, err := loadReportInputs(c)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load report data", err.Error())
	}
	return ok(c, reports.DailySeries(orders, index, rng))
}

func reportExportXLSX(c echo.Context) error {
	rng, err := parseReportRange(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse report range", err.Error())
	}
	orders, index, err := loadReportInputs(c)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load report data", err.Error())
	}
	summary := reports.Summarize(orders, index, rng)
	series := reports.DailySeries(orders, index, rng)

	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="reporte.xlsx"`)
	c.Response().WriteHeader(http.StatusOK)
	return reports.WriteXLSX(c.Response(), summary, series)
}
