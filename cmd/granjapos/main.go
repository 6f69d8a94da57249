package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/granjalabs/granjapos/config"
	"github.com/granjalabs/granjapos/internal/adminapi"
	"github.com/granjalabs/granjapos/internal/app"
	"github.com/granjalabs/granjapos/internal/webserver"
	"go.uber.org/zap"
)

var (
	h        = flag.Bool("h", false, "help usage")
	x        = flag.Bool("x", false, "debug mode")
	initdb   = flag.Bool("initdb", false, "drop and recreate all tables, then exit")
	conffile = flag.String("c", "/etc/granjapos.yml", "config file")
)

func main() {
	flag.Parse()
	if *h {
		flag.Usage()
		os.Exit(0)
	}

	cfg := config.LoadConfig(*conffile)
	if *x {
		cfg.System.Debug = true
		cfg.Web.Debug = true
		cfg.Database.Debug = true
	}

	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initdb {
		application.InitDb()
		fmt.Println("database initialized")
		os.Exit(0)
	}

	webserver.Init(cfg)
	adminapi.InitRouter(&adminapi.WebContext{
		DB:        application.DB(),
		Products:  application.ProductRepo(),
		Customers: application.CustomerRepo(),
		Orders:    application.OrderService(),
		Ledger:    application.Ledger(),
	})

	errc := make(chan error, 1)
	go func() {
		errc <- webserver.Listen()
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errc:
		zap.L().Error("server stopped", zap.Error(err))
	case s := <-sigc:
		zap.L().Info("received shutdown signal", zap.String("signal", s.String()))
	}
}
