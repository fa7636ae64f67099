package main

import (
	"context"
	"os"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"tablecrm/internal/config"
	"tablecrm/internal/database"
	"tablecrm/internal/features/options"
	"tablecrm/internal/logger"
)

// Seed applies the schema and installs the default option sets, then
// shuts the app down.
func Seed(
	lc fx.Lifecycle,
	pg *database.PostgresDB,
	optionService options.OptionService,
	logger *zap.Logger,
	shutdowner fx.Shutdowner,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				defer func() {
					if err := shutdowner.Shutdown(); err != nil {
						logger.Error("Failed to shutdown", zap.Error(err))
					}
				}()

				logger.Info("Applying schema...")
				schema, err := os.ReadFile("migrations/schema.sql")
				if err != nil {
					logger.Error("Failed to read schema", zap.Error(err))
					return
				}
				if _, err := pg.DB.ExecContext(context.Background(), string(schema)); err != nil {
					logger.Error("Failed to apply schema", zap.Error(err))
					return
				}

				logger.Info("Seeding default option sets...")
				if err := optionService.Seed(context.Background()); err != nil {
					logger.Error("Failed to seed options", zap.Error(err))
					return
				}

				logger.Info("Seeding complete")
			}()
			return nil
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			logger.NewLogger,
			database.NewPostgres,
			database.NewMongo,
			options.NewStore,
			options.NewOptionService,
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(Seed),
	)

	app.Run()
}
