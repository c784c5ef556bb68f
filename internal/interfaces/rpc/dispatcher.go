// Package rpc resuelve llamadas "servicio/llamada" del endpoint REST contra una tabla
// estática de handlers.
package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/jhoicas/partdb-api/internal/domain"
	"github.com/jhoicas/partdb-api/pkg/logger"
)

// Request llamada ya resuelta: servicio, nombre de llamada, id de registro de la ruta
// (0 si no hay) y parámetros (query + cuerpo).
type Request struct {
	Service    string
	Call       string
	ID         int64
	Params     map[string]json.RawMessage
	Translator domain.Translator
}

// Decode vuelca los parámetros sobre v (struct con tags json).
func (r *Request) Decode(v any) error {
	raw, err := json.Marshal(r.Params)
	if err != nil {
		return errors.Wrap(err, "rpc: serializar parámetros")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		if ex, ok := domain.AsException(err); ok {
			return ex
		}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return domain.NewValidation(map[string]string{typeErr.Field: "This value is invalid"})
		}
		return domain.NewInvalidInput("Invalid parameters")
	}
	return nil
}

// RecordID id del registro: el de la ruta o, si no hay, el primer parámetro presente
// entre "id" y keys.
func (r *Request) RecordID(keys ...string) int64 {
	if r.ID > 0 {
		return r.ID
	}
	for _, k := range append([]string{"id"}, keys...) {
		raw, ok := r.Params[k]
		if !ok {
			continue
		}
		var s string
		if json.Unmarshal(raw, &s) == nil {
			raw = json.RawMessage(strings.TrimSpace(s))
		}
		if n, err := strconv.ParseInt(string(raw), 10, 64); err == nil && n > 0 {
			return n
		}
	}
	return 0
}

// Handler ejecuta una llamada y devuelve el valor de "response".
type Handler func(ctx context.Context, req *Request) (any, error)

// Service tabla llamada → handler de un servicio.
type Service map[string]Handler

// Registry tabla estática servicio → llamada → handler.
type Registry struct {
	services map[string]Service
	log      *logger.Logger
}

// New construye el registro con la tabla dada.
func New(services map[string]Service, log *logger.Logger) *Registry {
	return &Registry{services: services, log: log.Component("rpc")}
}

// ResolveCall elige el nombre de la llamada: encabezado "call", luego parámetro "call",
// luego el segmento de ruta /<Servicio>/<llamada>. Un segmento numérico es un id de
// registro, no una llamada. Sin nombre, el verbo HTTP decide.
func ResolveCall(header, param, pathSegment, method string) string {
	switch {
	case strings.TrimSpace(header) != "":
		return strings.TrimSpace(header)
	case strings.TrimSpace(param) != "":
		return strings.TrimSpace(param)
	case pathSegment != "" && !IsRecordID(pathSegment):
		return pathSegment
	}
	switch strings.ToUpper(method) {
	case "GET":
		return "get"
	case "POST":
		return "create"
	case "PUT", "PATCH":
		return "update"
	case "DELETE":
		return "destroy"
	}
	return ""
}

// IsRecordID indica si el segmento de ruta es un id numérico.
func IsRecordID(segment string) bool {
	if segment == "" {
		return false
	}
	_, err := strconv.ParseUint(segment, 10, 63)
	return err == nil
}

// UnknownName sustituye nombres de servicio o llamada que no están en el registro.
const UnknownName = "unknown"

// resolve busca servicio y llamada sin distinguir mayúsculas y devuelve los nombres registrados.
func (r *Registry) resolve(service, call string) (svcName, callName string, h Handler, err error) {
	svc, ok := r.services[service]
	svcName = service
	if !ok {
		for name, s := range r.services {
			if strings.EqualFold(name, service) {
				svcName, svc, ok = name, s, true
				break
			}
		}
	}
	if !ok {
		return UnknownName, UnknownName, nil, domain.NewInvalidInput("Unknown service %q", service)
	}
	if h, ok := svc[call]; ok {
		return svcName, call, h, nil
	}
	for name, candidate := range svc {
		if strings.EqualFold(name, call) {
			return svcName, name, candidate, nil
		}
	}
	return svcName, UnknownName, nil, domain.NewInvalidInput("Unknown call %q for service %q", call, service)
}

// Canonical nombres registrados de servicio y llamada; UnknownName para lo que no existe.
// Acota los valores de etiquetas de métricas a la tabla estática.
func (r *Registry) Canonical(service, call string) (string, string) {
	svcName, callName, _, _ := r.resolve(service, call)
	return svcName, callName
}

// Dispatch ejecuta la llamada. Los errores de dominio se devuelven tal cual; cualquier otro
// error (o pánico) se envuelve en *SystemError con su backtrace.
func (r *Registry) Dispatch(ctx context.Context, req *Request) (result any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = &SystemError{
				cause: fmt.Errorf("panic: %v", rec),
				kind:  fmt.Sprintf("%T", rec),
				stack: splitStack(string(debug.Stack())),
			}
			r.log.Error().Str("service", req.Service).Str("call", req.Call).Interface("panic", rec).Msg("pánico recuperado en el despacho")
		}
	}()

	_, _, h, err := r.resolve(req.Service, req.Call)
	if err != nil {
		return nil, err
	}
	result, err = h(ctx, req)
	if err == nil {
		return result, nil
	}
	if _, ok := domain.AsException(err); ok {
		return nil, err
	}
	sys := newSystemError(err)
	r.log.Error().Err(err).Str("service", req.Service).Str("call", req.Call).Msg("error de sistema")
	return nil, sys
}
