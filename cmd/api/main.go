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
	"github.com/tu-usuario/marketplace-api/internal/application/auth"
	"github.com/tu-usuario/marketplace-api/internal/application/catalog"
	"github.com/tu-usuario/marketplace-api/internal/application/checkout"
	"github.com/tu-usuario/marketplace-api/internal/application/payments"
	"github.com/tu-usuario/marketplace-api/internal/application/ports"
	"github.com/tu-usuario/marketplace-api/internal/infrastructure/events"
	"github.com/tu-usuario/marketplace-api/internal/infrastructure/identity"
	"github.com/tu-usuario/marketplace-api/internal/infrastructure/mail"
	infrapdf "github.com/tu-usuario/marketplace-api/internal/infrastructure/pdf"
	"github.com/tu-usuario/marketplace-api/internal/infrastructure/postgres"
	"github.com/tu-usuario/marketplace-api/internal/infrastructure/redisx"
	"github.com/tu-usuario/marketplace-api/internal/infrastructure/storage"
	httpRouter "github.com/tu-usuario/marketplace-api/internal/interfaces/http"
	"github.com/tu-usuario/marketplace-api/pkg/config"
	"github.com/tu-usuario/marketplace-api/pkg/locale"
	"github.com/tu-usuario/marketplace-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	cartRepo := postgres.NewCartRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Colaboradores opcionales: sin configuración quedan desactivados y los
	// casos de uso operan sin ellos.
	var mailer ports.Mailer
	if cfg.SMTP.Host != "" {
		mailer = mail.NewSMTPMailer(cfg.SMTP)
	}

	var idp ports.IdentityProvider
	if cfg.OAuth.GoogleClientID != "" {
		idp = identity.NewGoogleProvider(cfg.OAuth)
	}

	var dedup ports.DedupStore = redisx.NewMemoryDedupStore()
	if cfg.Redis.Addr != "" {
		rdb, err := redisx.New(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		dedup = redisx.NewDedupStore(rdb)
	}

	var publisher ports.EventPublisher = events.NoopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		kp := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, 256, log.Named("events"))
		kp.Start(ctx)
		defer kp.WaitClosed()
		publisher = kp
	}

	fileStorage, err := storage.NewLocalStorage(cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento de archivos")
	}

	receipts := infrapdf.NewMarotoReceiptGenerator(cfg.App.Name)
	localeResolver := locale.NewResolver([]string{"en", "es"}, cfg.App.DefaultLanguage)

	jwtCfg := auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}
	authUC := auth.NewAuthUseCase(userRepo, supplierRepo, mailer, idp, jwtCfg, log.Named("auth"))
	supplierUC := catalog.NewSupplierUseCase(supplierRepo, userRepo, fileStorage, mailer, publisher, log.Named("suppliers"))
	productUC := catalog.NewProductUseCase(productRepo, supplierRepo, fileStorage)
	cartUC := checkout.NewCartUseCase(cartRepo, productRepo)
	orderUC := checkout.NewOrderUseCase(txRunner, cartRepo, orderRepo, paymentRepo, receipts, publisher, log.Named("checkout"))
	paymentUC := payments.NewPaymentUseCase(paymentRepo, orderRepo, dedup, publisher, log.Named("payments"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    64 * 1024 * 1024, // lotes multipart de imágenes/documentos
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Marketplace API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	// Archivos subidos (imágenes de producto, documentos de proveedor)
	app.Static("/uploads", cfg.Storage.BaseDir)

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		SupplierUC: supplierUC,
		ProductUC:  productUC,
		CartUC:     cartUC,
		OrderUC:    orderUC,
		PaymentUC:  paymentUC,
		Locale:     localeResolver,
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

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	cancel() // drena el publicador de eventos antes de salir

	log.Info().Msg("aplicación detenida")
}
