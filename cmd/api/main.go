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
	appanalytics "github.com/jhoicas/Almacen-api/internal/application/analytics"
	"github.com/jhoicas/Almacen-api/internal/application/audit"
	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/authz"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/application/notify"
	"github.com/jhoicas/Almacen-api/internal/application/stockrequest"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	infraexcel "github.com/jhoicas/Almacen-api/internal/infrastructure/excel"
	infrapdf "github.com/jhoicas/Almacen-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Almacen-api/internal/interfaces/http"
	"github.com/jhoicas/Almacen-api/pkg/config"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Service: cfg.App.Name,
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
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

	// Repositorios sobre el pool. Los use cases transaccionales reciben
	// además el TxRunner, que abre repos ligados a la transacción.
	itemRepo := postgres.NewItemRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	departmentRepo := postgres.NewDepartmentRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	roleRepo := postgres.NewRoleRepository(pool)
	stockRequestRepo := postgres.NewStockRequestRepository(pool)
	fixedAssetRepo := postgres.NewFixedAssetRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	activityLogRepo := postgres.NewActivityLogRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	recorder := audit.NewRepositoryRecorder(activityLogRepo, log)
	authzSvc := authz.NewService(userRepo, roleRepo)
	notifier := notify.NewService(notificationRepo, userRepo, log)

	authUC := auth.NewUseCase(userRepo, roleRepo, auth.Config{
		Secret:     cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		ExpMinutes: cfg.JWT.Expiration,
	})
	itemUC := usecase.NewItemUseCase(itemRepo, categoryRepo, movementRepo, recorder)
	inventoryUC := inventory.NewUseCase(txRunner, itemRepo, userRepo, departmentRepo, recorder)
	movementUC := usecase.NewMovementUseCase(movementRepo)
	stockRequestUC := stockrequest.NewUseCase(txRunner, stockRequestRepo, itemRepo, userRepo, authzSvc, notifier, recorder)
	dashboardUC := appanalytics.NewDashboardUseCase(dashboardRepo)
	userUC := usecase.NewUserUseCase(userRepo, roleRepo, departmentRepo, recorder)
	roleUC := usecase.NewRoleUseCase(roleRepo, recorder)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, recorder)
	departmentUC := usecase.NewDepartmentUseCase(departmentRepo, recorder)
	fixedAssetUC := usecase.NewFixedAssetUseCase(fixedAssetRepo, categoryRepo, departmentRepo, recorder)
	notificationUC := usecase.NewNotificationUseCase(notificationRepo)
	activityLogUC := usecase.NewActivityLogUseCase(activityLogRepo)

	resolver := httpRouter.NewResolver(categoryRepo, departmentRepo, userRepo, itemRepo)
	pdfGenerator := infrapdf.NewMarotoReportGenerator()
	excelReader := infraexcel.NewFixedAssetReader()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Almacén API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		Authz:          authzSvc,
		ItemUC:         itemUC,
		InventoryUC:    inventoryUC,
		MovementUC:     movementUC,
		StockRequestUC: stockRequestUC,
		DashboardUC:    dashboardUC,
		UserUC:         userUC,
		RoleUC:         roleUC,
		CategoryUC:     categoryUC,
		DepartmentUC:   departmentUC,
		FixedAssetUC:   fixedAssetUC,
		NotificationUC: notificationUC,
		ActivityLogUC:  activityLogUC,
		Resolver:       resolver,
		PDFGenerator:   pdfGenerator,
		ExcelReader:    excelReader,
		JWTSecret:      cfg.JWT.Secret,
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
