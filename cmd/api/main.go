package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Agromercado-api/internal/application/auth"
	"github.com/jhoicas/Agromercado-api/internal/application/catalog"
	"github.com/jhoicas/Agromercado-api/internal/application/deliveries"
	"github.com/jhoicas/Agromercado-api/internal/application/inventory"
	"github.com/jhoicas/Agromercado-api/internal/application/invoices"
	"github.com/jhoicas/Agromercado-api/internal/application/loyalty"
	"github.com/jhoicas/Agromercado-api/internal/application/orders"
	"github.com/jhoicas/Agromercado-api/internal/application/payments"
	"github.com/jhoicas/Agromercado-api/internal/application/predict"
	"github.com/jhoicas/Agromercado-api/internal/application/refunds"
	"github.com/jhoicas/Agromercado-api/internal/application/reviews"
	"github.com/jhoicas/Agromercado-api/internal/infrastructure/notify"
	infrapdf "github.com/jhoicas/Agromercado-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Agromercado-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Agromercado-api/internal/infrastructure/predictor"
	httpRouter "github.com/jhoicas/Agromercado-api/internal/interfaces/http"
	"github.com/jhoicas/Agromercado-api/pkg/config"
	"github.com/jhoicas/Agromercado-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios sobre el pool (los atados a tx los construye el TxRunner)
	userRepo := postgres.NewUserRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	batchRepo := postgres.NewBatchRepository(pool)
	alertRepo := postgres.NewStockAlertRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	stockRepo := postgres.NewStockLevelRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	loyaltyRepo := postgres.NewLoyaltyRepository(pool)
	deliveryRepo := postgres.NewDeliveryRepository(pool)
	reviewRepo := postgres.NewReviewRepository(pool)
	refundRepo := postgres.NewRefundRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Predictores: clientes HTTP al servidor de modelos, con caché en memoria
	ttl := time.Duration(cfg.Model.CacheTTL) * time.Minute
	registry := predict.NewRegistry()
	for name, unit := range map[string]string{
		predict.PredictorSales:     "unidades",
		predict.PredictorInventory: "score",
		predict.PredictorDelivery:  "horas",
	} {
		registry.Register(name, predictor.NewCachedPredictor(
			predictor.NewHTTPPredictor(cfg.Model, name, unit), name, ttl,
		))
	}

	// Notificaciones: email best-effort después del commit
	emailChannel := notify.NewEmailNotifier(cfg.SMTP, notify.NewUserEmailResolver(userRepo), log)
	dispatcher := notify.NewDispatcher(log, emailChannel)

	// Casos de uso
	authUC := auth.NewAuthUseCase(userRepo, clientRepo, loyaltyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	catalogUC := catalog.NewCatalogUseCase(productRepo, warehouseRepo, batchRepo)
	movementUC := inventory.NewApplyMovementUseCase(txRunner, productRepo, warehouseRepo, batchRepo, alertRepo)
	orderUC := orders.NewOrderUseCase(txRunner, clientRepo)
	paymentUC := payments.NewPaymentUseCase(txRunner)
	loyaltyUC := loyalty.NewLoyaltyUseCase(txRunner)
	deliveryUC := deliveries.NewDeliveryUseCase(txRunner, loyaltyUC, registry)
	reviewUC := reviews.NewReviewUseCase(reviewRepo, productRepo, clientRepo, userRepo)
	refundUC := refunds.NewRefundUseCase(refundRepo, orderRepo, userRepo)
	invoiceUC := invoices.NewInvoiceUseCase(
		orderRepo, clientRepo, userRepo, productRepo,
		infrapdf.NewMarotoReceiptGenerator("Agromercado"),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Agromercado API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		CatalogUC:  catalogUC,
		MovementUC: movementUC,
		OrderUC:    orderUC,
		PaymentUC:  paymentUC,
		LoyaltyUC:  loyaltyUC,
		DeliveryUC: deliveryUC,
		ReviewUC:   reviewUC,
		RefundUC:   refundUC,
		InvoiceUC:  invoiceUC,
		Registry:   registry,

		OrderRepo:    orderRepo,
		ClientRepo:   clientRepo,
		DeliveryRepo: deliveryRepo,
		ReviewRepo:   reviewRepo,
		MovementRepo: movementRepo,
		StockRepo:    stockRepo,

		Dispatcher: dispatcher,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("apagando servidor...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
}
