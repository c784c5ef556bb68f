package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/partdb-api/internal/interfaces/rpc"
	"github.com/jhoicas/partdb-api/pkg/i18n"
	"github.com/jhoicas/partdb-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName         string
	Services        rpc.Deps
	Translator      *i18n.Translator
	Logger          *logger.Logger
	ExposeBacktrace bool
	Metrics         *Metrics // nil = sin /metrics
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(RequestID())
	app.Use(RequestLogger(deps.Logger))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", deps.Metrics.Handler())
	}

	// Endpoint REST del editor: /rest.php/<Servicio>/<llamada|id>
	registry := rpc.New(rpc.Services(deps.Services), deps.Logger)
	restHandler := NewRESTHandler(registry, deps.Translator, deps.ExposeBacktrace, deps.Metrics)
	app.All("/rest.php/:service/:call?", restHandler.Handle)
	app.All("/rest/:service/:call?", restHandler.Handle)

	api := app.Group("/api")
	parts := api.Group("/parts")
	sheetHandler := NewSheetHandler(deps.Services.Parts, deps.Translator)
	parts.Get("/:id/sheet.pdf", sheetHandler.Download)
}
