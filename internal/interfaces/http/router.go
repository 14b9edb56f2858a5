package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sokha/pos-api/internal/application/auth"
	"github.com/sokha/pos-api/internal/application/inventory"
	"github.com/sokha/pos-api/internal/application/reporting"
	"github.com/sokha/pos-api/internal/application/usecase"
	"github.com/sokha/pos-api/internal/infrastructure/payway"
	"github.com/sokha/pos-api/internal/infrastructure/telegram"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProductUC   *usecase.ProductUseCase
	WarehouseUC *usecase.WarehouseUseCase
	SettingsUC  *usecase.SettingsUseCase
	Engine      *inventory.InventoryUseCase
	ReportingUC *reporting.ReportingUseCase
	PayWay      *payway.Client
	Telegram    *telegram.Notifier
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth: login público, gestión de personal solo para admin
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	staff := authGroup.Group("/staff", AuthMiddleware(deps.JWTSecret), RequireAdmin())
	staff.Get("/", authHandler.ListStaff)
	staff.Post("/", authHandler.CreateStaff)
	staff.Put("/:id", authHandler.UpdateStaff)
	staff.Delete("/:id", authHandler.DeactivateStaff)

	// Products: catálogo público sin token, el resto protegido
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/public", productHandler.PublicCatalog)
	protectedProducts := products.Group("/", AuthMiddleware(deps.JWTSecret))
	protectedProducts.Get("/inventory/detailed", productHandler.DetailedInventory)
	protectedProducts.Get("/", productHandler.List)
	protectedProducts.Post("/", productHandler.Create)
	protectedProducts.Put("/:id", productHandler.Update)
	protectedProducts.Delete("/:id", productHandler.Deactivate)
	protectedProducts.Get("/:id", productHandler.GetByID)

	// Warehouses (protegido)
	warehouses := api.Group("/warehouses", AuthMiddleware(deps.JWTSecret))
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Put("/:id", warehouseHandler.Update)

	// Transactions: ventas, ajustes y compras (protegido)
	transactions := api.Group("/transactions", AuthMiddleware(deps.JWTSecret))
	transactionHandler := NewTransactionHandler(deps.Engine, deps.ReportingUC)
	transactions.Post("/sales", transactionHandler.CreateSale)
	transactions.Get("/sales", transactionHandler.SalesHistory)
	transactions.Get("/sales/:id", transactionHandler.SaleDetail)
	transactions.Delete("/sales/:id", transactionHandler.RevertSale)
	transactions.Post("/stock", transactionHandler.AdjustStock)
	transactions.Get("/purchase-history", transactionHandler.PurchaseHistory)
	transactions.Post("/purchase", transactionHandler.RecordPurchase)

	// Transfers (protegido)
	transfers := api.Group("/transfers", AuthMiddleware(deps.JWTSecret))
	transferHandler := NewTransferHandler(deps.Engine, deps.ReportingUC)
	transfers.Get("/", transferHandler.History)
	transfers.Post("/", transferHandler.Create)

	// Dashboard (protegido)
	dashboard := api.Group("/dashboard", AuthMiddleware(deps.JWTSecret))
	dashboardHandler := NewDashboardHandler(deps.ReportingUC)
	dashboard.Get("/summary", dashboardHandler.Summary)
	dashboard.Get("/expiring-soon", dashboardHandler.ExpiringSoon)

	// Reports (protegido)
	reports := api.Group("/reports", AuthMiddleware(deps.JWTSecret))
	reportsHandler := NewReportsHandler(deps.ReportingUC)
	reports.Get("/sales", reportsHandler.SalesReport)

	// Settings (protegido)
	settings := api.Group("/settings", AuthMiddleware(deps.JWTSecret))
	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	settings.Get("/currencies", settingsHandler.GetCurrencies)
	settings.Post("/currencies", settingsHandler.UpdateCurrencies)

	// Payments (protegido)
	payments := api.Group("/payments", AuthMiddleware(deps.JWTSecret))
	paymentHandler := NewPaymentHandler(deps.PayWay)
	payments.Post("/aba-qr", paymentHandler.CreateQR)

	// Orders (público: pedidos del catálogo en línea)
	orders := api.Group("/orders")
	orderHandler := NewOrderHandler(deps.Telegram)
	orders.Post("/", orderHandler.Create)
}
