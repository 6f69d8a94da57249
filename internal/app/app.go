package app

import (
	"os"
	"time"
	_ "time/tzdata"

	evbus "github.com/asaskevich/EventBus"
	"github.com/granjalabs/granjapos/config"
	"github.com/granjalabs/granjapos/internal/domain"
	"github.com/granjalabs/granjapos/internal/ledger"
	"github.com/granjalabs/granjapos/internal/notify"
	"github.com/granjalabs/granjapos/internal/orders"
	"github.com/granjalabs/granjapos/internal/store"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/gorm"
)

type Application struct {
	appConfig *config.AppConfig
	gormDB    *gorm.DB
	sched     *cron.Cron
	bus       evbus.Bus
	settings  *SettingsManager

	products  store.ProductRepository
	orders    store.OrderRepository
	purchases store.PurchaseRepository
	customers store.CustomerRepository

	stockLedger  *ledger.Ledger
	orderService *orders.Service
	mailer       *notify.Mailer
}

// Ensure Application implements all interfaces
var (
	_ DBProvider        = (*Application)(nil)
	_ ConfigProvider    = (*Application)(nil)
	_ SettingsProvider  = (*Application)(nil)
	_ SchedulerProvider = (*Application)(nil)
	_ BusProvider       = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) DB() *gorm.DB {
	return a.gormDB
}

// OverrideDB replaces the application's database handle (used in tests).
func (a *Application) OverrideDB(db *gorm.DB) {
	a.gormDB = db
}

func (a *Application) Init(cfg *config.AppConfig) {
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	// Initialize zap logger
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}

		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	} else {
		logger, err = zapConfig.Build(zap.AddCaller(), zap.AddCallerSkip(1))
		if err != nil {
			panic(err)
		}
	}

	zap.ReplaceGlobals(logger)

	// Initialize database connection
	if cfg.Database.Type == "" {
		cfg.Database.Type = "postgres"
	}
	a.gormDB = getDatabase(cfg.Database)
	zap.S().Infof("Database connection successful, type: %s", cfg.Database.Type)

	if err := a.MigrateDB(false); err != nil {
		zap.S().Errorf("database migration failed: %v", err)
	}

	a.settings = NewSettingsManager(a.gormDB)

	a.products = store.NewGormProductRepository(a.gormDB)
	a.orders = store.NewGormOrderRepository(a.gormDB)
	a.purchases = store.NewGormPurchaseRepository(a.gormDB)
	a.customers = store.NewGormCustomerRepository(a.gormDB)

	a.bus = evbus.New()
	a.stockLedger = ledger.NewLedger(a.products, a.purchases)
	a.orderService = orders.NewService(a.orders, a.customers, a.stockLedger, a.bus)
	a.mailer = notify.NewMailer(a.appConfig.Smtp)

	a.checkSettings()
	a.checkCatalog()
	a.checkCustomers()

	a.subscribeEvents()
	a.initJob()
}

func (a *Application) MigrateDB(track bool) (err error) {
	if track {
		return a.gormDB.Debug().Migrator().AutoMigrate(domain.Tables...)
	}
	return a.gormDB.Migrator().AutoMigrate(domain.Tables...)
}

func (a *Application) DropAll() {
	_ = a.gormDB.Migrator().DropTable(domain.Tables...)
}

func (a *Application) InitDb() {
	_ = a.gormDB.Migrator().DropTable(domain.Tables...)
	if err := a.gormDB.Migrator().AutoMigrate(domain.Tables...); err != nil {
		zap.S().Error(err)
	}
}

// Scheduler returns the cron scheduler
func (a *Application) Scheduler() *cron.Cron {
	return a.sched
}

// Bus returns the in-process event bus
func (a *Application) Bus() evbus.Bus {
	return a.bus
}

// Settings returns the settings manager
func (a *Application) Settings() *SettingsManager {
	return a.settings
}

// OrderService returns the order lifecycle service
func (a *Application) OrderService() *orders.Service {
	return a.orderService
}

// Ledger returns the inventory ledger
func (a *Application) Ledger() *ledger.Ledger {
	return a.stockLedger
}

// ProductRepo returns the product repository
func (a *Application) ProductRepo() store.ProductRepository {
	return a.products
}

// OrderRepo returns the order repository
func (a *Application) OrderRepo() store.OrderRepository {
	return a.orders
}

// PurchaseRepo returns the purchase repository
func (a *Application) PurchaseRepo() store.PurchaseRepository {
	return a.purchases
}

// CustomerRepo returns the customer repository
func (a *Application) CustomerRepo() store.CustomerRepository {
	return a.customers
}

// GetSettingsStringValue retrieves a string configuration value
func (a *Application) GetSettingsStringValue(category, key string) string {
	return a.settings.GetString(category, key)
}

// GetSettingsInt64Value retrieves an int64 configuration value
func (a *Application) GetSettingsInt64Value(category, key string) int64 {
	return a.settings.GetInt64(category, key)
}

// GetSettingsBoolValue retrieves a boolean configuration value
func (a *Application) GetSettingsBoolValue(category, key string) bool {
	return a.settings.GetBool(category, key)
}

// subscribeEvents attaches bus subscribers. Order creation is pushed here
// so the delivery view does not depend solely on its periodic poll.
func (a *Application) subscribeEvents() {
	_ = a.bus.Subscribe(orders.TopicOrderCreated, func(o *domain.Order) {
		if o.Type == domain.OrderTypeDelivery {
			zap.L().Info("new delivery order",
				zap.String("order_id", o.ID),
				zap.String("customer", o.CustomerName),
				zap.Float64("total", o.Total))
		}
	})
}

// Release releases application resources
func (a *Application) Release() {
	if a.sched != nil {
		a.sched.Stop()
	}
	_ = zap.L().Sync()
}
