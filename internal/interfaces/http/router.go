package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/analytics"
	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/authz"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/application/stockrequest"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/excel"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/pdf"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.UseCase
	Authz          *authz.Service
	ItemUC         *usecase.ItemUseCase
	InventoryUC    *inventory.UseCase
	MovementUC     *usecase.MovementUseCase
	StockRequestUC *stockrequest.UseCase
	DashboardUC    *analytics.DashboardUseCase
	UserUC         *usecase.UserUseCase
	RoleUC         *usecase.RoleUseCase
	CategoryUC     *usecase.CategoryUseCase
	DepartmentUC   *usecase.DepartmentUseCase
	FixedAssetUC   *usecase.FixedAssetUseCase
	NotificationUC *usecase.NotificationUseCase
	ActivityLogUC  *usecase.ActivityLogUseCase
	Resolver       *Resolver
	PDFGenerator   *pdf.MarotoReportGenerator
	ExcelReader    *excel.FixedAssetReader
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/metrics", MetricsHandler())

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Authz, deps.Resolver)
	api.Post("/login", authHandler.Login)
	api.Post("/register", authHandler.Register)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), MetricsMiddleware())

	// Perfil propio
	protected.Get("/me", authHandler.Me)
	protected.Put("/me", authHandler.UpdateProfile)

	// Ítems del almacén (protegido). El catálogo solicitable tiene su propia
	// capacidad; las mutaciones usan las capacidades CRUD genéricas.
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC, deps.InventoryUC, deps.Resolver)
	items.Get("/catalog", RequirePermission(entity.CapRequestProducts, deps.Authz), itemHandler.Catalog)
	items.Get("/", RequirePermission(entity.CapRead, deps.Authz), itemHandler.List)
	items.Get("/:id", RequirePermission(entity.CapRead, deps.Authz), itemHandler.Get)
	items.Post("/", RequirePermission(entity.CapCreate, deps.Authz), itemHandler.Create)
	items.Put("/:id", RequirePermission(entity.CapUpdate, deps.Authz), itemHandler.Update)
	items.Delete("/:id", RequirePermission(entity.CapDelete, deps.Authz), itemHandler.Delete)
	items.Post("/:id/entry", RequirePermission(entity.CapUpdate, deps.Authz), itemHandler.RegisterEntry)
	items.Post("/:id/withdraw", RequirePermission(entity.CapUpdate, deps.Authz), itemHandler.RegisterWithdrawal)

	// Libro de movimientos (protegido, solo lectura)
	movements := protected.Group("/movements", RequirePermission(entity.CapRead, deps.Authz))
	movementHandler := NewMovementHandler(deps.MovementUC, deps.Resolver)
	movements.Get("/", movementHandler.List)
	movements.Get("/:id", movementHandler.Get)

	// Solicitudes de stock (protegido). Crear solo pide la capacidad de
	// solicitar; las mutaciones del workflow piden la capacidad genérica de
	// actualización. Get y List restringen a las propias dentro del use case.
	requests := protected.Group("/stock-requests")
	stockRequestHandler := NewStockRequestHandler(deps.StockRequestUC, deps.PDFGenerator, deps.Resolver)
	requests.Post("/", RequirePermission(entity.CapRequestProducts, deps.Authz), stockRequestHandler.Create)
	requests.Get("/", stockRequestHandler.List)
	requests.Get("/:id", stockRequestHandler.Get)
	requests.Put("/:id", RequirePermission(entity.CapUpdate, deps.Authz), stockRequestHandler.UpdateStatus)
	requests.Post("/:id/start-separation", RequirePermission(entity.CapUpdate, deps.Authz), stockRequestHandler.StartSeparation)
	requests.Post("/:id/fulfill", RequirePermission(entity.CapUpdate, deps.Authz), stockRequestHandler.Fulfill)
	requests.Post("/:id/cancel", RequirePermission(entity.CapUpdate, deps.Authz), stockRequestHandler.Cancel)
	requests.Get("/:id/picking-list", RequirePermission(entity.CapUpdate, deps.Authz), stockRequestHandler.PickingList)

	// Dashboard y reportes (protegido, solo lectura). El PDF además pide
	// permiso de exportación.
	dashboard := protected.Group("/dashboard", RequirePermission(entity.CapRead, deps.Authz))
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.PDFGenerator)
	dashboard.Get("/stats", dashboardHandler.Stats)
	dashboard.Get("/sector-consumption", dashboardHandler.SectorConsumption)
	dashboard.Get("/low-stock-report", dashboardHandler.LowStock)
	dashboard.Get("/low-stock-report/pdf", RequirePermission(entity.CapExportData, deps.Authz), dashboardHandler.LowStockReport)

	// Usuarios (protegido, gestión)
	users := protected.Group("/users", RequirePermission(entity.CapManageUsers, deps.Authz))
	userHandler := NewUserHandler(deps.UserUC, deps.Authz, deps.Resolver)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.Get)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Roles (protegido, gestión)
	roles := protected.Group("/roles", RequirePermission(entity.CapManageRoles, deps.Authz))
	roleHandler := NewRoleHandler(deps.RoleUC)
	roles.Get("/permissions", roleHandler.Permissions)
	roles.Get("/", roleHandler.List)
	roles.Get("/:id", roleHandler.Get)
	roles.Post("/", roleHandler.Create)
	roles.Put("/:id", roleHandler.Update)
	roles.Delete("/:id", roleHandler.Delete)

	// Categorías (protegido)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", RequirePermission(entity.CapRead, deps.Authz), categoryHandler.List)
	categories.Get("/:id", RequirePermission(entity.CapRead, deps.Authz), categoryHandler.Get)
	categories.Post("/", RequirePermission(entity.CapCreate, deps.Authz), categoryHandler.Create)
	categories.Put("/:id", RequirePermission(entity.CapUpdate, deps.Authz), categoryHandler.Update)
	categories.Delete("/:id", RequirePermission(entity.CapDelete, deps.Authz), categoryHandler.Delete)

	// Departamentos (protegido)
	departments := protected.Group("/departments")
	departmentHandler := NewDepartmentHandler(deps.DepartmentUC)
	departments.Get("/", RequirePermission(entity.CapRead, deps.Authz), departmentHandler.List)
	departments.Get("/:id", RequirePermission(entity.CapRead, deps.Authz), departmentHandler.Get)
	departments.Post("/", RequirePermission(entity.CapCreate, deps.Authz), departmentHandler.Create)
	departments.Put("/:id", RequirePermission(entity.CapUpdate, deps.Authz), departmentHandler.Update)
	departments.Delete("/:id", RequirePermission(entity.CapDelete, deps.Authz), departmentHandler.Delete)

	// Patrimonio (protegido)
	assets := protected.Group("/fixed-assets")
	fixedAssetHandler := NewFixedAssetHandler(deps.FixedAssetUC, deps.ExcelReader, deps.Resolver)
	assets.Get("/", RequirePermission(entity.CapRead, deps.Authz), fixedAssetHandler.List)
	assets.Get("/:id", RequirePermission(entity.CapRead, deps.Authz), fixedAssetHandler.Get)
	assets.Post("/import", RequirePermission(entity.CapCreate, deps.Authz), fixedAssetHandler.Import)
	assets.Post("/", RequirePermission(entity.CapCreate, deps.Authz), fixedAssetHandler.Create)
	assets.Put("/:id", RequirePermission(entity.CapUpdate, deps.Authz), fixedAssetHandler.Update)
	assets.Delete("/:id", RequirePermission(entity.CapDelete, deps.Authz), fixedAssetHandler.Delete)

	// Notificaciones del propio usuario (protegido, sin capacidad extra)
	notifications := protected.Group("/notifications")
	notificationHandler := NewNotificationHandler(deps.NotificationUC)
	notifications.Get("/", notificationHandler.List)
	notifications.Post("/read-all", notificationHandler.MarkAllRead)
	notifications.Patch("/:id/read", notificationHandler.MarkRead)
	notifications.Delete("/", notificationHandler.Clear)

	// Log de actividad (protegido)
	logs := protected.Group("/logs", RequirePermission(entity.CapViewLogs, deps.Authz))
	activityLogHandler := NewActivityLogHandler(deps.ActivityLogUC, deps.Resolver)
	logs.Get("/", activityLogHandler.List)
}
