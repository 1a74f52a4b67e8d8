// project registra los movimientos de equipos asignados a proyectos de clientes y los propaga
// al servicio de equipos.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	_ "github.com/tharaka19/CCIMS-sub000/docs"
	"github.com/tharaka19/CCIMS-sub000/internal/application/ports"
	"github.com/tharaka19/CCIMS-sub000/internal/application/project"
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

func main() {
	cfg, err := config.Load(config.ServiceProject)
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
		Str("equipment_service", cfg.Upstream.EquipmentServiceURL).
		Msg("iniciando servicio de proyectos")

	ctx := context.Background()
	repo, closeDB, err := openRepository(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a la base de datos")
	}
	defer closeDB()

	ids, err := idgen.NewSnowflake(cfg.App.NodeID)
	if err != nil {
		log.Fatal().Err(err).Msg("generador de ids")
	}

	// El servicio de equipos es la fuente de la cantidad disponible y recibe la propagación.
	equipmentSvc := remote.NewEquipmentService(cfg.Upstream.EquipmentServiceURL, cfg.Upstream.Timeout)
	movementUC := project.NewClientProjectStockUseCase(
		repo, equipmentSvc, equipmentSvc, ids,
		log.With().Str("component", "client_project_equipment_stock").Logger(),
	)

	app := httpRouter.NewApp(cfg.App.Name, log.Zerolog())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "CIMS Project API",
	}))

	httpRouter.ProjectRouter(app, httpRouter.ProjectRouterDeps{
		MovementUC: movementUC,
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

func openRepository(ctx context.Context, cfg *config.Config) (repository.ClientProjectStockRepository, func(), error) {
	if cfg.DB.Driver == config.DriverSQLite {
		db, err := sqlite.OpenDB(cfg.DB.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		if cfg.DB.AutoMigrate {
			if err := sqlite.ApplyMigrations(ctx, db, config.ServiceProject); err != nil {
				_ = db.Close()
				return nil, nil, err
			}
		}
		return sqlite.NewClientProjectStockRepository(db), func() { _ = db.Close() }, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := postgres.ApplyMigrations(ctx, pool, config.ServiceProject); err != nil {
			pool.Close()
			return nil, nil, err
		}
	}
	return postgres.NewClientProjectStockRepository(pool), pool.Close, nil
}

func userLookup(cfg *config.Config) ports.UserLookup {
	if cfg.Auth.Mode == config.AuthModeJWT {
		return auth.NewJWTUserLookup(cfg.JWT.Secret)
	}
	return remote.NewUserService(cfg.Auth.UserServiceURL, cfg.Upstream.Timeout)
}
