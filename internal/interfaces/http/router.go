package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Farmacia-api/internal/application/auth"
	"github.com/jhoicas/Farmacia-api/internal/application/billing"
	"github.com/jhoicas/Farmacia-api/internal/application/purchasing"
	"github.com/jhoicas/Farmacia-api/internal/application/report"
	"github.com/jhoicas/Farmacia-api/internal/application/usecase"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	ProductUC       *usecase.ProductUseCase
	MedicineUC      *usecase.MedicineUseCase
	CategoryUC      *usecase.CategoryUseCase
	SupplierUC      *usecase.SupplierUseCase
	EmployeeUC      *usecase.EmployeeUseCase
	CustomerUC      *billing.CustomerUseCase
	InvoiceUC       *billing.InvoiceUseCase
	InvoicePDF      *billing.PDFUseCase
	PurchaseOrderUC *purchasing.UseCase
	ReportUC        *report.UseCase
	JWTSecret       string
}

// Router registra las rutas de la API bajo /api/v1.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/v1")
	adminOnly := RequireRole(entity.RoleAdmin)

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Registro público de clientes
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	api.Post("/customers/register", customerHandler.Register)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Get("/auth/me", authHandler.Me)
	protected.Post("/auth/users", adminOnly, authHandler.CreateUser)

	// Products
	productHandler := NewProductHandler(deps.ProductUC)
	products := protected.Group("/products")
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/category/:id", productHandler.ListByCategory)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Medicines
	medicineHandler := NewMedicineHandler(deps.MedicineUC)
	medicines := protected.Group("/medicines")
	medicines.Post("/", medicineHandler.Create)
	medicines.Get("/", medicineHandler.List)
	medicines.Get("/:id", medicineHandler.GetByID)
	medicines.Put("/:id", medicineHandler.Update)
	medicines.Delete("/:id", adminOnly, medicineHandler.Delete)

	// Categories
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories := protected.Group("/categories")
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", adminOnly, categoryHandler.Delete)

	// Suppliers
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers := protected.Group("/suppliers")
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/top", supplierHandler.Top)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", adminOnly, supplierHandler.Delete)

	// Employees (solo admin)
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC)
	employees := protected.Group("/employees", adminOnly)
	employees.Post("/", employeeHandler.Create)
	employees.Get("/", employeeHandler.List)
	employees.Get("/:id", employeeHandler.GetByID)
	employees.Put("/:id", employeeHandler.Update)
	employees.Delete("/:id", employeeHandler.Delete)

	// Customers
	customers := protected.Group("/customers")
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", adminOnly, customerHandler.Delete)

	// Invoices
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.InvoicePDF)
	invoices := protected.Group("/invoices")
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)
	invoices.Post("/:id/finalize", invoiceHandler.Finalize)
	invoices.Delete("/:id", invoiceHandler.Delete)

	// Purchase orders
	orderHandler := NewPurchaseOrderHandler(deps.PurchaseOrderUC)
	orders := protected.Group("/purchase-orders")
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Put("/:id/status", orderHandler.UpdateStatus)
	orders.Delete("/:id", orderHandler.Delete)

	// Reports
	reportHandler := NewReportHandler(deps.ReportUC)
	reports := protected.Group("/reports")
	reports.Get("/general", reportHandler.General)
	reports.Get("/monthly", reportHandler.Monthly)
}
