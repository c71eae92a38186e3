package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"food-ordering-system/internal/app/inventory"
	menuhandlers "food-ordering-system/internal/app/menu/handlers"
	menurepo "food-ordering-system/internal/app/menu/repository"
	menuservice "food-ordering-system/internal/app/menu/service"
	orderhandlers "food-ordering-system/internal/app/orders/handlers"
	orderrepo "food-ordering-system/internal/app/orders/repository"
	orderservice "food-ordering-system/internal/app/orders/service"
	"food-ordering-system/internal/app/payments/gateway"
	payhandlers "food-ordering-system/internal/app/payments/handlers"
	payrepo "food-ordering-system/internal/app/payments/repository"
	payservice "food-ordering-system/internal/app/payments/service"
	"food-ordering-system/internal/common/httpx"
	"food-ordering-system/internal/common/logger"
	"food-ordering-system/internal/config"
	"food-ordering-system/internal/connections/database"
	"food-ordering-system/internal/connections/rabbitmq"
	"food-ordering-system/internal/notify"

	"github.com/joho/godotenv"
)

func main() {
	cfgPath := flag.String("config", "config.yml", "path to YAML config")
	port := flag.Int("port", 0, "http port (overrides config)")
	flag.Parse()

	// .env is optional, real deployments set the environment directly.
	_ = godotenv.Load()

	lg := logger.New("food-ordering-system")
	defer lg.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		lg.Error("config_load_failed", err, map[string]any{"path": *cfgPath})
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	db, err := database.ConnectDB(ctx, cfg.Database)
	if err != nil {
		lg.Error("db_connect_failed", err, nil)
		os.Exit(1)
	}
	defer db.Close()
	if err := database.Migrate(ctx, db); err != nil {
		lg.Error("db_migrate_failed", err, nil)
		os.Exit(1)
	}
	lg.Info("db_connected", map[string]any{
		"host": cfg.Database.Host, "port": cfg.Database.Port, "database": cfg.Database.Database,
	})

	// The broker only carries notifications; the API stays up without it.
	var notifier notify.Notifier = notify.Nop{}
	rmq, err := rabbitmq.Dial(rabbitmq.Config{
		Host: cfg.RabbitMQ.Host, Port: cfg.RabbitMQ.Port,
		User: cfg.RabbitMQ.User, Password: cfg.RabbitMQ.Password,
		VHost: cfg.RabbitMQ.VHost,
	})
	if err != nil {
		lg.Warn("rabbitmq_unavailable", map[string]any{"reason": err.Error()})
	} else {
		defer rmq.Close()
		if err := rmq.DeclareAll(); err != nil {
			lg.Error("rabbitmq_declare_failed", err, nil)
			os.Exit(1)
		}
		notifier = notify.NewRabbitNotifier(rmq)
		lg.Info("rabbitmq_connected", map[string]any{"host": cfg.RabbitMQ.Host, "port": cfg.RabbitMQ.Port})
	}

	var gw gateway.Client
	if cfg.Gateway.Mock || cfg.Gateway.BaseURL == "" {
		gw = gateway.NewMock()
		lg.Info("payment_gateway_mocked", nil)
	} else {
		gw = gateway.NewHTTPClient(cfg.Gateway.BaseURL, cfg.Gateway.APIKey)
	}

	ordersRepo := orderrepo.NewOrdersRepository(db)
	ledger := inventory.NewLedger(lg)
	orderSvc := orderservice.NewOrderService(ordersRepo, ledger, notifier, lg)
	menuSvc := menuservice.NewMenuService(menurepo.NewMenuRepository(db), lg)
	paySvc := payservice.NewPaymentService(orderSvc, payrepo.NewTransactionsRepository(db), gw, lg)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	orderhandlers.Register(mux, orderhandlers.NewOrderHandler(orderSvc))
	menuhandlers.Register(mux, menuhandlers.NewMenuHandler(menuSvc))
	payhandlers.Register(mux, payhandlers.NewPaymentHandler(paySvc))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	lg.Info("service_started", map[string]any{"addr": addr})
	if err := httpx.New(addr, mux).Run(ctx); err != nil {
		lg.Error("server_failed", err, nil)
		os.Exit(1)
	}
	lg.Info("service_stopped", nil)
}
