package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Farmacia-api/internal/application/auth"
	"github.com/jhoicas/Farmacia-api/internal/application/billing"
	"github.com/jhoicas/Farmacia-api/internal/application/inventory"
	"github.com/jhoicas/Farmacia-api/internal/application/purchasing"
	"github.com/jhoicas/Farmacia-api/internal/application/report"
	"github.com/jhoicas/Farmacia-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/Farmacia-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Farmacia-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Farmacia-api/internal/interfaces/http"
	"github.com/jhoicas/Farmacia-api/pkg/config"
	"github.com/jhoicas/Farmacia-api/pkg/logger"
	"github.com/jhoicas/Farmacia-api/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.App.AutoMigrate {
		db := postgres.OpenDB(pool)
		if err := postgres.Migrate(ctx, db, "up"); err != nil {
			log.Fatal().Err(err).Msg("migraciones automáticas")
		}
		_ = db.Close()
		log.Info().Msg("migraciones aplicadas")
	}

	// Métricas: registry propio con los colectores de proceso y runtime.
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	docMetrics := metrics.NewDocumentMetrics(reg)

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	medicineRepo := postgres.NewMedicineRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	orderRepo := postgres.NewPurchaseOrderRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	adjuster := inventory.NewAdjuster(docMetrics, log)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.StoreName)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	invoiceUC := billing.NewInvoiceUseCase(
		txRunner, invoiceRepo, productRepo, customerRepo, employeeRepo,
		adjuster, docMetrics, log,
	)
	invoicePDFUC := billing.NewPDFUseCase(invoiceRepo, customerRepo, employeeRepo, productRepo, pdfGenerator)
	purchaseOrderUC := purchasing.NewUseCase(
		txRunner, orderRepo, productRepo, supplierRepo,
		adjuster, docMetrics, log,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSAllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Farmacia API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		ProductUC:       usecase.NewProductUseCase(productRepo, categoryRepo, supplierRepo),
		MedicineUC:      usecase.NewMedicineUseCase(medicineRepo),
		CategoryUC:      usecase.NewCategoryUseCase(categoryRepo),
		SupplierUC:      usecase.NewSupplierUseCase(supplierRepo, reportRepo),
		EmployeeUC:      usecase.NewEmployeeUseCase(employeeRepo),
		CustomerUC:      billing.NewCustomerUseCase(customerRepo),
		InvoiceUC:       invoiceUC,
		InvoicePDF:      invoicePDFUC,
		PurchaseOrderUC: purchaseOrderUC,
		ReportUC:        report.NewUseCase(reportRepo, pdfGenerator),
		JWTSecret:       cfg.JWT.Secret,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
