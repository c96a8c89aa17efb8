// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"piquant/config"
	"piquant/internal/domain/lifecycle"
	"piquant/internal/errors"
	"piquant/internal/infra/persistence/model"

	"go.uber.org/fx"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New creates the PostgreSQL client and migrates the schema.
func New(params Params) (*gorm.DB, error) {
	if params.Config.Postgres == nil {
		return nil, errors.New("postgres configuration must be provided")
	}

	db, err := gorm.Open(postgres.Open(dsn(params.Config.Postgres)), &gorm.Config{
		// Single-statement writes are already atomic; explicit transactions
		// are requested where multi-step atomicity is needed.
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create PostgreSQL client")
	}

	if err := db.AutoMigrate(&model.UserModel{}, &model.SauceModel{}); err != nil {
		return nil, errors.Wrap(err, "failed to migrate schema")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}

	// Add lifecycle management
	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "failed to ping PostgreSQL")
			}

			params.Logger.Info("Connected to PostgreSQL",
				slog.String("host", params.Config.Postgres.Host),
				slog.String("database", params.Config.Postgres.DBName),
			)

			return nil
		},
		OnStop: func(context.Context) error {
			params.Logger.Info("Closing PostgreSQL connection")

			return errors.Wrap(sqlDB.Close(), "failed to close PostgreSQL connection")
		},
	})

	return db, nil
}

func dsn(cfg *config.PostgresConfig) string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		cfg.Host, cfg.Port, cfg.UserName, cfg.Password, cfg.DBName, cfg.SSLMode, cfg.TimeZone,
	)
}
