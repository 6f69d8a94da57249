package app

import (
	"fmt"
	"time"

	"github.com/granjalabs/granjapos/config"
	"github.com/granjalabs/granjapos/internal/domain"
	"github.com/granjalabs/granjapos/pkg/common"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func getDatabase(cfg config.DBConfig) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Passwd, cfg.Name, time.Local.String())

	logLevel := gormlogger.Error
	if cfg.Debug {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		zap.S().Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		zap.S().Fatalf("failed to get database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxConn)
	sqlDB.SetMaxIdleConns(cfg.IdleConn)
	sqlDB.SetConnMaxLifetime(time.Hour)
	return db
}

// checkSettings initializes missing configuration entries with their defaults.
func (a *Application) checkSettings() {
	defaults := []struct {
		category string
		name     string
		value    string
		remark   string
	}{
		{"pos", "LowStockCheckInterval", "30m", "Interval between low stock scans"},
		{"pos", "LowStockAlertMail", "false", "Send a mail alert when products fall below minimum stock"},
		{"pos", "DeliveryPollSeconds", "30", "Client polling interval for pending delivery orders"},
		{"pos", "CurrencySymbol", "S/", "Currency symbol used on exported reports"},
	}
	for sortid, d := range defaults {
		a.settings.ensureSetting(sortid, d.category, d.name, d.value, d.remark)
	}
}

// checkCatalog seeds the starter product catalog on an empty database.
func (a *Application) checkCatalog() {
	var count int64
	a.gormDB.Model(&domain.Product{}).Count(&count)
	if count > 0 {
		return
	}

	defaultProducts := []domain.Product{
		{Name: "Huevo Rosado Calidad A", Category: domain.CategoryEggs, Unit: domain.UnitUnit, Price: 0.18, Cost: 0.12, Stock: 1500, MinStock: 300},
		{Name: "Pechuga de Pollo", Category: domain.CategoryChicken, Unit: domain.UnitKg, Price: 8.50, Cost: 6.00, Stock: 45.5, MinStock: 10},
		{Name: "Queso Fresco", Category: domain.CategoryCheese, Unit: domain.UnitKg, Price: 12.00, Cost: 9.00, Stock: 15.2, MinStock: 3},
		{Name: "Queso Andino", Category: domain.CategoryCheese, Unit: domain.UnitKg, Price: 15.50, Cost: 11.00, Stock: 8.0, MinStock: 2},
		{Name: "Carne Molida Especial", Category: domain.CategoryMeat, Unit: domain.UnitKg, Price: 11.00, Cost: 8.50, Stock: 20, MinStock: 5},
		{Name: "Milanesa de Pollo", Category: domain.CategoryChicken, Unit: domain.UnitKg, Price: 9.50, Cost: 7.00, Stock: 12, MinStock: 2},
		{Name: "Huevo Pardo", Category: domain.CategoryEggs, Unit: domain.UnitUnit, Price: 0.15, Cost: 0.10, Stock: 800, MinStock: 100},
	}

	for _, p := range defaultProducts {
		p.ID = common.UUID()
		p.CreatedAt = time.Now()
		p.UpdatedAt = time.Now()
		if err := a.gormDB.Create(&p).Error; err != nil {
			zap.L().Error("failed to create default product", zap.String("name", p.Name), zap.Error(err))
		} else {
			zap.L().Info("initialized default product", zap.String("name", p.Name))
		}
	}
}

// checkCustomers seeds a couple of frequent buyers on an empty database.
func (a *Application) checkCustomers() {
	var count int64
	a.gormDB.Model(&domain.Customer{}).Count(&count)
	if count > 0 {
		return
	}

	defaultCustomers := []domain.Customer{
		{Name: "Juan Perez", Phone: "999111222", Address: "Av. Los Alamos 123", IsFrequent: true},
		{Name: "Maria Rodriguez", Phone: "999333444", Address: "Jr. Las Flores 456", IsFrequent: true},
	}

	for _, c := range defaultCustomers {
		c.ID = common.UUID()
		c.CreatedAt = time.Now()
		c.UpdatedAt = time.Now()
		if err := a.gormDB.Create(&c).Error; err != nil {
			zap.L().Error("failed to create default customer", zap.String("name", c.Name), zap.Error(err))
		} else {
			zap.L().Info("initialized default customer", zap.String("name", c.Name))
		}
	}
}
