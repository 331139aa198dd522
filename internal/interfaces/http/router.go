package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/marketplace-api/internal/application/auth"
	"github.com/tu-usuario/marketplace-api/internal/application/catalog"
	"github.com/tu-usuario/marketplace-api/internal/application/checkout"
	"github.com/tu-usuario/marketplace-api/internal/application/payments"
	"github.com/tu-usuario/marketplace-api/internal/domain/authz"
	"github.com/tu-usuario/marketplace-api/pkg/locale"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	SupplierUC *catalog.SupplierUseCase
	ProductUC  *catalog.ProductUseCase
	CartUC     *checkout.CartUseCase
	OrderUC    *checkout.OrderUseCase
	PaymentUC  *payments.PaymentUseCase
	Locale     *locale.Resolver
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	if deps.Locale != nil {
		api.Use(LocaleMiddleware(deps.Locale))
	}

	authHandler := NewAuthHandler(deps.AuthUC)
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	productHandler := NewProductHandler(deps.ProductUC)
	cartHandler := NewCartHandler(deps.CartUC)
	orderHandler := NewOrderHandler(deps.OrderUC)
	paymentHandler := NewPaymentHandler(deps.PaymentUC)

	// Auth (público)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/oauth/google", authHandler.OAuthLogin)
	authGroup.Get("/verify-email", authHandler.VerifyEmail)

	// Catálogo público: solo productos active de proveedores approved
	api.Get("/products", productHandler.ListPublic)
	api.Get("/suppliers", supplierHandler.ListPublic)

	// Webhook del proveedor de pagos: autenticado por firma del proveedor,
	// no por Bearer del usuario.
	api.Post("/payments/webhook/:orderId", paymentHandler.Webhook)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Post("/auth/complete-supplier", authHandler.CompleteSupplier)

	// Suppliers (protegido)
	suppliers := protected.Group("/suppliers")
	suppliers.Get("/me", supplierHandler.GetMine)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Post("/:id/documents", supplierHandler.UploadDocuments)
	suppliers.Patch("/:id/status", supplierHandler.UpdateStatus)

	// Products (protegido). /mine antes de /:id para que Fiber no lo capture
	// como parámetro.
	products := protected.Group("/products")
	products.Get("/mine", productHandler.ListMine)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Patch("/:id/status", productHandler.UpdateStatus)
	products.Delete("/:id", productHandler.Delete)
	products.Post("/:id/images", productHandler.AddImages)
	products.Delete("/:id/images", productHandler.RemoveImage)
	products.Post("/:id/restock", productHandler.Restock)
	products.Get("/:id/ownership", productHandler.Ownership)

	// Cart (protegido; siempre sobre el carrito activo del caller)
	cart := protected.Group("/cart")
	cart.Get("/", cartHandler.Get)
	cart.Post("/items", cartHandler.AddItem)
	cart.Put("/items/:itemId", cartHandler.UpdateItem)
	cart.Delete("/items/:itemId", cartHandler.RemoveItem)
	cart.Post("/discount", cartHandler.ApplyDiscount)

	// Orders (protegido)
	orders := protected.Group("/orders")
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Patch("/:id/status", orderHandler.UpdateStatus)
	orders.Get("/:id/receipt", orderHandler.Receipt)
	orders.Get("/:orderId/payment", paymentHandler.GetByOrder)

	// Payments (protegido)
	protected.Post("/payments/:id/refund", paymentHandler.Refund)

	// Admin
	admin := protected.Group("/admin", RequireRoles(authz.RoleSuperAdmin, authz.RoleAdmin, authz.RoleModerator))
	admin.Get("/suppliers", supplierHandler.ListByStatus)
	admin.Post("/carts/expire", cartHandler.ExpireStale)
}
