package main

import (
	"context"
	"fmt"
	"log"

	common_api "tablecrm/internal/common/api"
	"tablecrm/internal/config"
	"tablecrm/internal/database"
	"tablecrm/internal/features/auth"
	"tablecrm/internal/features/columns"
	"tablecrm/internal/features/email"
	"tablecrm/internal/features/exporter"
	"tablecrm/internal/features/importer"
	"tablecrm/internal/features/live"
	"tablecrm/internal/features/options"
	"tablecrm/internal/features/record"
	"tablecrm/internal/features/reminder"
	"tablecrm/internal/features/system"
	"tablecrm/internal/logger"
	"tablecrm/internal/middleware"
	"tablecrm/pkg/utils"

	_ "tablecrm/docs" // Import swagger docs

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(middleware.CORSMiddleware(cfg))

	return app
}

// AsRoute is a helper function to reduce boilerplate.
// It tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),
		fx.ResultTags(`group:"routes"`),
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	for _, route := range routes {
		route.Setup(app)
	}
	log.Printf("Registered %d route groups\n", len(routes))
}

// RegisterAllRoutesWithAnnotation wraps RegisterAllRoutes with fx annotations
var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

// ConfigureAuth wires the session secret before any token is issued.
func ConfigureAuth(cfg *config.Config) {
	utils.SetSecret(cfg.JWTSecret)
}

// SeedOptions installs the default option sets on startup; sets the user
// has already customized are left untouched.
func SeedOptions(lc fx.Lifecycle, optionService options.OptionService, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := optionService.Seed(ctx); err != nil {
				logger.Warn("option seeding failed", zap.Error(err))
			}
			return nil
		},
	})
}

// StartReminders runs the daily due-task reminder schedule for the
// lifetime of the process.
func StartReminders(lc fx.Lifecycle, reminderService reminder.ReminderService) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return reminderService.Start()
		},
		OnStop: func(ctx context.Context) error {
			reminderService.Stop()
			return nil
		},
	})
}

// @title        TableCRM API
// @version      1.0
// @description  Schema-driven CRM backend for customers, leads, tasks and finances.
// @BasePath     /
func main() {
	app := fx.New(
		fx.Provide(
			// Load Config
			config.LoadConfig,

			// Initialize Logger
			logger.NewLogger,

			// Initialize Fiber Server
			NewFiberServer,

			// Initialize Databases
			database.NewPostgres,
			database.NewMongo,

			// Initialize Stores & Repositories
			options.NewStore,
			columns.NewStore,
			record.NewStore,
			reminder.NewStore,
			auth.NewUserStore,
			importer.NewJobRepository,
			email.NewEmailRepository,

			// Initialize Services
			live.NewHub,
			options.NewOptionService,
			columns.NewColumnService,
			record.NewRecordService,
			importer.NewImportService,
			exporter.NewExportService,
			auth.NewAuthService,
			email.NewEmailService,
			reminder.NewReminderService,

			// Initialize Controllers
			options.NewOptionController,
			columns.NewColumnController,
			record.NewRecordController,
			importer.NewImportController,
			exporter.NewExportController,
			auth.NewAuthController,
			email.NewEmailController,

			// Initialize API Routes
			AsRoute(auth.NewAuthApi),
			AsRoute(options.NewOptionApi),
			AsRoute(importer.NewImportApi),
			AsRoute(email.NewEmailApi),
			AsRoute(reminder.NewReminderApi),
			AsRoute(columns.NewColumnApi),
			AsRoute(exporter.NewExportApi),
			AsRoute(record.NewRecordApi),
			AsRoute(live.NewLiveApi),
			AsRoute(system.NewHealthApi),
			AsRoute(system.NewSwaggerApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			ConfigureAuth,
			RegisterAllRoutesWithAnnotation,
			StartServer,
			SeedOptions,
			StartReminders,
		),
	)

	app.Run()
}
