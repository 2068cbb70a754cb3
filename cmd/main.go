package main

import (
	"net/http"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	adminapp "github.com/yogapit/eshop/application/admin"
	analyticsapp "github.com/yogapit/eshop/application/analytics"
	categoryapp "github.com/yogapit/eshop/application/category"
	customerapp "github.com/yogapit/eshop/application/customer"
	orderapp "github.com/yogapit/eshop/application/order"
	productapp "github.com/yogapit/eshop/application/product"
	warehouseapp "github.com/yogapit/eshop/application/warehouse"
	"github.com/yogapit/eshop/cmd/config"
	redisclient "github.com/yogapit/eshop/cmd/redis"
	_ "github.com/yogapit/eshop/docs"
	analyticsRepo "github.com/yogapit/eshop/repository/analytics"
	categoryRepo "github.com/yogapit/eshop/repository/category"
	customerRepo "github.com/yogapit/eshop/repository/customer"
	orderRepo "github.com/yogapit/eshop/repository/order"
	productRepo "github.com/yogapit/eshop/repository/product"
	redisRepo "github.com/yogapit/eshop/repository/redis"
	txRepo "github.com/yogapit/eshop/repository/tx"
	warehouseRepo "github.com/yogapit/eshop/repository/warehouse"
	"github.com/yogapit/eshop/thirdparty/rabbitmq"
	"github.com/yogapit/eshop/transport"
	"github.com/yogapit/eshop/utils/logger"
	"github.com/yogapit/eshop/utils/ratelimit"
	"go.uber.org/zap"
)

const limiterSweepInterval = 5 * time.Minute

// @title YOGAPIT E-SHOP API
// @version 1.0
// @description Storefront and back office API of the Yogapit e-shop
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables
	cfg := config.Load()

	// Initialize global logger
	if err := logger.Init(cfg.Environment); err != nil {
		panic(err)
	}
	defer logger.Close()

	logger.Info("Starting server", zap.String("env", cfg.Environment))

	// Connect to database
	db, err := sqlx.Connect("mysql", cfg.GetDSN())
	if err != nil {
		logger.Fatal("err connect db", zap.Error(err))
	}

	// Set database connection pool settings
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// Initialize Redis client
	if err := redisclient.New(cfg); err != nil {
		logger.Fatal("err connect redis", zap.Error(err))
	}
	defer func() {
		_ = redisclient.Close()
	}()

	// Order events are optional
	var publisher rabbitmq.EventPublisher
	if cfg.RabbitMQ.Enabled {
		p, err := rabbitmq.NewPublisher(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password)
		if err != nil {
			logger.Fatal("err connect rabbitmq", zap.Error(err))
		}
		defer func() {
			_ = p.Close()
		}()
		publisher = p
	}

	// Initialize repositories
	TxRepo := txRepo.NewTxRepository(db)
	OrderRepo := orderRepo.NewOrderRepository(db)
	WarehouseRepo := warehouseRepo.NewWarehouseRepository(db)
	ProductRepo := productRepo.NewProductRepository(db)
	CustomerRepo := customerRepo.NewCustomerRepository(db)
	CategoryRepo := categoryRepo.NewCategoryRepository(db)
	AnalyticsRepo := analyticsRepo.NewAnalyticsRepository(db)
	RedisRepo := redisRepo.NewRepository(redisclient.Get())

	// Initialize application layers
	rh := &transport.RestHandler{
		OrderApp:       orderapp.NewOrderApp(cfg, TxRepo, OrderRepo, WarehouseRepo, ProductRepo, CustomerRepo, publisher),
		ProductApp:     productapp.NewProductApp(ProductRepo, WarehouseRepo),
		CategoryApp:    categoryapp.NewCategoryApp(CategoryRepo),
		CustomerApp:    customerapp.NewCustomerApp(cfg, CustomerRepo, OrderRepo),
		WarehouseApp:   warehouseapp.NewWarehouseApp(TxRepo, WarehouseRepo),
		AnalyticsApp:   analyticsapp.NewAnalyticsApp(AnalyticsRepo),
		AdminApp:       adminapp.NewAdminApp(cfg, RedisRepo),
		Limiters:       newLimiters(cfg),
		DefaultCountry: cfg.Shop.DefaultCountry,
	}

	httpTransport := transport.NewTransport(rh)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
	err = server.ListenAndServe()
	if err != nil {
		logger.Fatal("failed server", zap.Error(err))
	}
}

func newLimiters(cfg *config.Config) transport.Limiters {
	rl := cfg.RateLimit
	policies := []ratelimit.Policy{
		{Name: "order", Window: rl.Order.Window, MaxRequests: rl.Order.MaxRequests},
		{Name: "customer", Window: rl.Customer.Window, MaxRequests: rl.Customer.MaxRequests},
		{Name: "product", Window: rl.Product.Window, MaxRequests: rl.Product.MaxRequests},
		{Name: "admin", Window: rl.Admin.Window, MaxRequests: rl.Admin.MaxRequests},
	}

	limiters := make([]ratelimit.Limiter, len(policies))
	if rl.Backend == "redis" {
		for i, p := range policies {
			limiters[i] = ratelimit.NewRedis(redisclient.Get(), p)
		}
	} else {
		memory := make([]*ratelimit.Memory, len(policies))
		for i, p := range policies {
			memory[i] = ratelimit.NewMemory(p)
			limiters[i] = memory[i]
		}
		go sweep(memory)
	}
	logger.Info("rate limiting enabled", zap.String("backend", rl.Backend))

	return transport.Limiters{
		Order:    limiters[0],
		Customer: limiters[1],
		Product:  limiters[2],
		Admin:    limiters[3],
	}
}

// sweep drops expired in-memory windows for the lifetime of the process.
func sweep(limiters []*ratelimit.Memory) {
	ticker := time.NewTicker(limiterSweepInterval)
	defer ticker.Stop()
	for range ticker.C {
		removed := 0
		for _, l := range limiters {
			removed += l.Sweep()
		}
		if removed > 0 {
			logger.Debug("rate limit entries swept", zap.Int("removed", removed))
		}
	}
}
