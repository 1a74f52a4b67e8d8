// equipment expone el registro de stock de equipos y su libro de movimientos.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	_ "github.com/tharaka19/CCIMS-sub000/docs"
	"github.com/tharaka19/CCIMS-sub000/internal/application/equipment"
	"github.com/tharaka19/CCIMS-sub000/internal/application/ports"
	"github.com/tharaka19/CCIMS-sub000/internal/domain/repository"
	"github.com/tharaka19/CCIMS-sub000/internal/infrastructure/auth"
	"github.com/tharaka19/CCIMS-sub000/internal/infrastructure/idgen"
	"github.com/tharaka19/CCIMS-sub000/internal/infrastructure/postgres"
	"github.com/tharaka19/CCIMS-sub000/internal/infrastructure/remote"
	"github.com/tharaka19/CCIMS-sub000/internal/infrastructure/sqlite"
	httpRouter "github.com/tharaka19/CCIMS-sub000/internal/interfaces/http"
	"github.com/tharaka19/CCIMS-sub000/pkg/config"
	"github.com/tharaka19/CCIMS-sub000/pkg/logger"
)

// store repositorios del servicio según el driver configurado.
type store struct {
	stocks   repository.EquipmentStockRepository
	history  repository.EquipmentStockHistoryRepository
	txRunner equipment.TxRunner
	close    func()
}

func main() {
	cfg, err := config.Load(config.ServiceEquipment)
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Str("auth_mode", cfg.Auth.Mode).
		Msg("iniciando servicio de equipos")

	ctx := context.Background()
	st, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a la base de datos")
	}
	defer st.close()

	ids, err := idgen.NewSnowflake(cfg.App.NodeID)
	if err != nil {
		log.Fatal().Err(err).Msg("generador de ids")
	}

	stockUC := equipment.NewEquipmentStockUseCase(st.stocks, st.txRunner, ids)
	historyUC := equipment.NewEquipmentStockHistoryUseCase(
		st.txRunner, st.history, ids, log.With().Str("component", "equipment_stock_history").Logger(),
	)

	app := httpRouter.NewApp(cfg.App.Name, log.Zerolog())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "CIMS Equipment API",
	}))

	httpRouter.EquipmentRouter(app, httpRouter.EquipmentRouterDeps{
		StockUC:    stockUC,
		HistoryUC:  historyUC,
		UserLookup: userLookup(cfg),
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

func openStore(ctx context.Context, cfg *config.Config) (*store, error) {
	if cfg.DB.Driver == config.DriverSQLite {
		db, err := sqlite.OpenDB(cfg.DB.SQLitePath)
		if err != nil {
			return nil, err
		}
		if cfg.DB.AutoMigrate {
			if err := sqlite.ApplyMigrations(ctx, db, config.ServiceEquipment); err != nil {
				_ = db.Close()
				return nil, err
			}
		}
		return &store{
			stocks:   sqlite.NewEquipmentStockRepository(db),
			history:  sqlite.NewEquipmentStockHistoryRepository(db),
			txRunner: sqlite.NewTxRunner(db),
			close:    func() { _ = db.Close() },
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := postgres.ApplyMigrations(ctx, pool, config.ServiceEquipment); err != nil {
			pool.Close()
			return nil, err
		}
	}
	return &store{
		stocks:   postgres.NewEquipmentStockRepository(pool),
		history:  postgres.NewEquipmentStockHistoryRepository(pool),
		txRunner: postgres.NewTxRunner(pool),
		close:    pool.Close,
	}, nil
}

func userLookup(cfg *config.Config) ports.UserLookup {
	if cfg.Auth.Mode == config.AuthModeJWT {
		return auth.NewJWTUserLookup(cfg.JWT.Secret)
	}
	return remote.NewUserService(cfg.Auth.UserServiceURL, cfg.Upstream.Timeout)
}
