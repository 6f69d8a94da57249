package app

import (
	"context"
	"time"

	"github.com/granjalabs/granjapos/internal/domain"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	interval := a.settings.GetString("pos", "LowStockCheckInterval")
	if interval == "" {
		interval = "30m"
	}

	var err error
	_, err = a.sched.AddFunc("@every "+interval, func() {
		a.SchedLowStockScanTask()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = a.sched.AddFunc("@daily", func() {
		a.SchedDeliveryReviewTask()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}

// SchedLowStockScanTask scans the catalog for products at or below their
// minimum stock and optionally mails an alert.
func (a *Application) SchedLowStockScanTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	products, err := a.products.LowStock(context.Background())
	if err != nil {
		zap.L().Error("low stock scan failed", zap.Error(err))
		return
	}
	if len(products) == 0 {
		return
	}

	for _, p := range products {
		zap.L().Warn("product below minimum stock",
			zap.String("product", p.Name),
			zap.Float64("stock", p.Stock),
			zap.Float64("min_stock", p.MinStock))
	}

	if a.settings.GetBool("pos", "LowStockAlertMail") {
		_ = a.mailer.SendLowStockAlert(products)
	}
}

// SchedDeliveryReviewTask logs delivery orders still pending at end of day so
// stale routes do not go unnoticed.
func (a *Application) SchedDeliveryReviewTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	since := time.Now().Add(-time.Hour * 24 * 7)
	pending, err := a.orders.ListSince(context.Background(), since)
	if err != nil {
		zap.L().Error("delivery review failed", zap.Error(err))
		return
	}

	var stale int
	for _, o := range pending {
		if o.Type == domain.OrderTypeDelivery &&
			(o.Status == domain.OrderStatusPending || o.Status == domain.OrderStatusInTransit) {
			stale++
			zap.L().Warn("delivery order still open",
				zap.String("order_id", o.ID),
				zap.String("status", o.Status),
				zap.Time("date", o.Date))
		}
	}
	if stale > 0 {
		zap.L().Info("delivery review complete", zap.Int("open_orders", stale))
	}
}
