package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/partdb-api/internal/application/inventory"
	"github.com/jhoicas/partdb-api/internal/application/usecase"
	"github.com/jhoicas/partdb-api/internal/infrastructure/events"
	infrapdf "github.com/jhoicas/partdb-api/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/partdb-api/internal/interfaces/http"
	"github.com/jhoicas/partdb-api/internal/interfaces/rpc"
	"github.com/jhoicas/partdb-api/pkg/config"
	"github.com/jhoicas/partdb-api/pkg/i18n"
	"github.com/jhoicas/partdb-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	repos, closeRepos, err := openRepositories(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar persistencia")
	}
	defer closeRepos()

	translator, err := i18n.New(cfg.I18n.DefaultLang)
	if err != nil {
		log.Fatal().Err(err).Msg("cargar traducciones")
	}

	var publisher interface {
		inventory.EventPublisher
		Close() error
	} = events.NopPublisher{}
	if cfg.Kafka.Enabled() {
		publisher = events.NewKafkaPublisher(cfg.Kafka)
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("eventos de stock hacia Kafka")
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Warn().Err(err).Msg("cerrar publicador de eventos")
		}
	}()

	sheets := infrapdf.NewPartSheetGenerator(cfg.App.Name)
	partUC := inventory.NewPartUseCase(
		repos.txRunner, repos.parts,
		repos.partManufacturers, repos.partDistributors, repos.partParameters,
		repos.stock, repos.refs, sheets,
	)
	stockUC := inventory.NewStockUseCase(repos.txRunner, repos.parts, repos.stock, publisher, log)
	lowStockUC := inventory.NewLowStockUseCase(repos.parts)

	var metrics *httpRouter.Metrics
	if cfg.Metrics.Enabled {
		metrics = httpRouter.NewMetrics()
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "PartDB API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName: cfg.App.Name,
		Services: rpc.Deps{
			Parts:            partUC,
			Stock:            stockUC,
			LowStock:         lowStockUC,
			Categories:       usecase.NewCategoryUseCase(repos.refs.Categories),
			Footprints:       usecase.NewFootprintUseCase(repos.refs.Footprints),
			StorageLocations: usecase.NewStorageLocationUseCase(repos.refs.StorageLocations),
			Manufacturers:    usecase.NewManufacturerUseCase(repos.refs.Manufacturers),
			Distributors:     usecase.NewDistributorUseCase(repos.refs.Distributors),
			PartUnits:        usecase.NewPartUnitUseCase(repos.refs.PartUnits),
		},
		Translator:      translator,
		Logger:          log,
		ExposeBacktrace: cfg.REST.ExposeBacktrace,
		Metrics:         metrics,
	})

	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(sigCtx)

	g.Go(func() error {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			return fmt.Errorf("servidor HTTP: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("señal de apagado recibida, cerrando servidor...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			return fmt.Errorf("apagado del servidor: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("servidor finalizado con error")
	}

	log.Info().Msg("aplicación detenida")
}
