package http

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/jhoicas/partdb-api/internal/application/dto"
	"github.com/jhoicas/partdb-api/internal/domain"
	"github.com/jhoicas/partdb-api/internal/interfaces/rpc"
	"github.com/jhoicas/partdb-api/pkg/i18n"
)

// RESTHandler punto de entrada único /rest.php/<Servicio>/<llamada>: arma la llamada,
// la despacha y envuelve el resultado en el sobre {status, success, ...}.
type RESTHandler struct {
	registry        *rpc.Registry
	translator      *i18n.Translator
	exposeBacktrace bool
	metrics         *Metrics
}

// NewRESTHandler construye el handler. metrics puede ser nil.
func NewRESTHandler(registry *rpc.Registry, translator *i18n.Translator, exposeBacktrace bool, metrics *Metrics) *RESTHandler {
	return &RESTHandler{registry: registry, translator: translator, exposeBacktrace: exposeBacktrace, metrics: metrics}
}

// Handle despacha una llamada de servicio.
// @Summary      Llamada de servicio
// @Description  Resuelve la llamada por encabezado "call", parámetro "call", segmento de ruta o verbo HTTP.
// @Tags         REST
// @Accept       json
// @Produce      json
// @Param        service  path  string  true   "Servicio (Part, Category, Footprint, ...)"
// @Param        call     path  string  false  "Llamada o id de registro"
// @Success      200  {object}  dto.OKEnvelope
// @Failure      400  {object}  dto.ErrorEnvelope
// @Router       /rest.php/{service}/{call} [post]
func (h *RESTHandler) Handle(c *fiber.Ctx) error {
	tr := h.translator.For(c.Get(fiber.HeaderAcceptLanguage))

	params, err := collectParams(c)
	if err != nil {
		return h.fail(c, tr, err)
	}

	// Params y Get apuntan al buffer de fasthttp, que se reutiliza entre peticiones.
	segment := utils.CopyString(c.Params("call"))
	req := &rpc.Request{
		Service:    utils.CopyString(c.Params("service")),
		Call:       rpc.ResolveCall(utils.CopyString(c.Get("call")), stringParam(params["call"]), segment, utils.CopyString(c.Method())),
		Params:     params,
		Translator: tr,
	}
	if rpc.IsRecordID(segment) {
		req.ID, _ = strconv.ParseInt(segment, 10, 64)
	}

	start := time.Now()
	result, err := h.registry.Dispatch(c.UserContext(), req)
	status := dto.StatusOK
	defer func() {
		service, call := h.registry.Canonical(req.Service, req.Call)
		h.metrics.ObserveCall(service, call, status, time.Since(start))
	}()
	if err != nil {
		status = envelopeStatus(err)
		return h.fail(c, tr, err)
	}
	return c.JSON(dto.OKEnvelope{Status: dto.StatusOK, Success: true, Response: result})
}

// fail responde 400 con el sobre "error" (excepción de dominio) o "systemerror".
func (h *RESTHandler) fail(c *fiber.Ctx, tr domain.Translator, err error) error {
	if ex, ok := domain.AsException(err); ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorEnvelope{
			Status:    dto.StatusError,
			Exception: ex.Serialize(tr),
		})
	}
	sys := dto.SystemException{Message: err.Error(), Exception: "error", Backtrace: []string{}}
	if se, ok := err.(*rpc.SystemError); ok {
		sys.Exception = se.Exception()
		if h.exposeBacktrace {
			sys.Backtrace = se.Backtrace()
		}
	}
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorEnvelope{
		Status:    dto.StatusSystemError,
		Exception: sys,
	})
}

func envelopeStatus(err error) string {
	if _, ok := domain.AsException(err); ok {
		return dto.StatusError
	}
	return dto.StatusSystemError
}

// collectParams junta query string y cuerpo (JSON o formulario); el cuerpo pisa la query.
func collectParams(c *fiber.Ctx) (map[string]json.RawMessage, error) {
	params := map[string]json.RawMessage{}
	putString := func(k, v []byte) {
		raw, _ := json.Marshal(string(v))
		params[string(k)] = raw
	}
	c.Context().QueryArgs().VisitAll(putString)

	body := c.Body()
	if len(strings.TrimSpace(string(body))) == 0 {
		return params, nil
	}
	ct := strings.ToLower(string(c.Request().Header.ContentType()))
	switch {
	case strings.HasPrefix(ct, fiber.MIMEApplicationForm):
		c.Context().PostArgs().VisitAll(putString)
	case strings.HasPrefix(ct, fiber.MIMEMultipartForm):
		form, err := c.MultipartForm()
		if err != nil {
			return nil, domain.NewInvalidInput("Invalid parameters")
		}
		for k, vs := range form.Value {
			if len(vs) > 0 {
				putString([]byte(k), []byte(vs[len(vs)-1]))
			}
		}
	default:
		var fromBody map[string]json.RawMessage
		if err := json.Unmarshal(body, &fromBody); err != nil {
			return nil, domain.NewInvalidInput("Invalid parameters")
		}
		for k, v := range fromBody {
			params[k] = v
		}
	}
	return params, nil
}

func stringParam(raw json.RawMessage) string {
	var s string
	if len(raw) > 0 && json.Unmarshal(raw, &s) == nil {
		return s
	}
	return ""
}
