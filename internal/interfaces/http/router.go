package http

import (
	"github.com/gofiber/fiber/v2"

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
	"github.com/jhoicas/Agromercado-api/internal/domain/entity"
	"github.com/jhoicas/Agromercado-api/internal/domain/repository"
	"github.com/jhoicas/Agromercado-api/internal/infrastructure/notify"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	CatalogUC  *catalog.CatalogUseCase
	MovementUC *inventory.ApplyMovementUseCase
	OrderUC    *orders.OrderUseCase
	PaymentUC  *payments.PaymentUseCase
	LoyaltyUC  *loyalty.LoyaltyUseCase
	DeliveryUC *deliveries.DeliveryUseCase
	ReviewUC   *reviews.ReviewUseCase
	RefundUC   *refunds.RefundUseCase
	InvoiceUC  *invoices.InvoiceUseCase
	Registry   *predict.Registry

	OrderRepo    repository.OrderRepository
	ClientRepo   repository.ClientRepository
	DeliveryRepo repository.DeliveryRepository
	ReviewRepo   repository.ReviewRepository
	MovementRepo repository.StockMovementRepository
	StockRepo    repository.StockLevelRepository

	Dispatcher *notify.Dispatcher
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Dispatcher)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	sellers := RequireRole(entity.RoleAdmin, entity.RoleAgricultor)
	deliverers := RequireRole(entity.RoleAdmin, entity.RoleAgricultor, entity.RoleRepartidor)
	admins := RequireRole(entity.RoleAdmin)

	// Products + reviews (protegido)
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	reviewHandler := NewReviewHandler(deps.ReviewUC, deps.RefundUC, deps.ReviewRepo, deps.ClientRepo, deps.Dispatcher)
	products := protected.Group("/products")
	products.Post("/", sellers, catalogHandler.CreateProduct)
	products.Get("/", catalogHandler.ListProducts)
	products.Get("/:id", catalogHandler.GetProduct)
	products.Put("/:id", sellers, catalogHandler.UpdateProduct)
	products.Post("/:id/reviews", reviewHandler.CreateReview)
	products.Get("/:id/reviews", reviewHandler.ListReviews)

	// Warehouses y lotes (protegido, vendedores)
	warehouses := protected.Group("/warehouses", sellers)
	warehouses.Post("/", catalogHandler.CreateWarehouse)
	warehouses.Get("/", catalogHandler.ListWarehouses)
	protected.Post("/batches", sellers, catalogHandler.CreateBatch)

	// Stock (protegido, vendedores)
	stock := protected.Group("/stock", sellers)
	inventoryHandler := NewInventoryHandler(deps.MovementUC, deps.MovementRepo, deps.StockRepo, deps.Dispatcher)
	stock.Post("/movements", inventoryHandler.ApplyMovement)
	stock.Get("/movements", inventoryHandler.ListMovements)
	stock.Get("/levels", inventoryHandler.GetStockLevel)
	stock.Post("/alerts", inventoryHandler.CreateAlert)

	// Orders, pagos y recibo (protegido)
	ordersGroup := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC, deps.InvoiceUC, deps.OrderRepo, deps.ClientRepo)
	paymentHandler := NewPaymentHandler(deps.PaymentUC)
	ordersGroup.Post("/", orderHandler.Create)
	ordersGroup.Get("/", orderHandler.ListMine)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Post("/:id/lines", orderHandler.AddLine)
	ordersGroup.Delete("/:id/lines/:lineId", orderHandler.RemoveLine)
	ordersGroup.Post("/:id/recompute-total", orderHandler.RecomputeTotal)
	ordersGroup.Get("/:id/receipt", orderHandler.Receipt)
	ordersGroup.Post("/:id/payments", paymentHandler.Record)
	ordersGroup.Get("/:id/payments", paymentHandler.ListByOrder)
	ordersGroup.Post("/:id/refunds", reviewHandler.CreateRefund)

	// Refunds (admin)
	protected.Patch("/refunds/:id", admins, reviewHandler.ProcessRefund)

	// Deliveries (protegido; el avance de estado es de repartidores)
	deliveriesGroup := protected.Group("/deliveries")
	deliveryHandler := NewDeliveryHandler(deps.DeliveryUC, deps.DeliveryRepo, deps.Dispatcher)
	deliveriesGroup.Get("/:id", deliveryHandler.GetByID)
	deliveriesGroup.Patch("/:id/status", deliverers, deliveryHandler.UpdateStatus)
	deliveriesGroup.Post("/:id/estimate", deliveryHandler.PredictEstimate)

	// Loyalty (protegido, clientes)
	loyaltyGroup := protected.Group("/loyalty")
	loyaltyHandler := NewLoyaltyHandler(deps.LoyaltyUC, deps.ClientRepo)
	loyaltyGroup.Get("/", loyaltyHandler.GetAccount)
	loyaltyGroup.Post("/use", loyaltyHandler.UsePoints)

	// Predictores (protegido, vendedores)
	predictHandler := NewPredictHandler(deps.Registry)
	protected.Post("/predict/:name", sellers, predictHandler.Predict)
}
