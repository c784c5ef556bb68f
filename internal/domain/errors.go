package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrOutOfRange   = errors.New("valor fuera de rango")
)

// Tipos de excepción serializables (nombre expuesto en el campo "exception" del sobre JSON).
const (
	KindOutOfRange   = "OutOfRangeException"
	KindNotFound     = "NotFoundException"
	KindValidation   = "ValidationException"
	KindInUse        = "InUseException"
	KindInvalidInput = "InvalidInputException"
	KindDuplicate    = "DuplicateException"
)

// Translator traduce claves de mensajes al idioma de la petición.
// Lo implementa pkg/i18n; el dominio sólo conoce este contrato.
type Translator interface {
	T(key string, args ...any) string
}

// Exception es un error de dominio serializable: lleva un mensaje y un detalle
// (claves de traducción) y opcionalmente errores por campo.
type Exception struct {
	Kind       string
	Message    string
	Detail     string
	DetailArgs []any
	Fields     map[string]string
	// translateArgs indica que los argumentos string del detalle son claves (ej. nombre de entidad).
	translateArgs bool
	sentinel      error
}

// SerializedException forma pública de una Exception en el sobre de error.
type SerializedException struct {
	Exception string            `json:"exception"`
	Message   string            `json:"message"`
	Detail    string            `json:"detail"`
	Fields    map[string]string `json:"fields,omitempty"`
}

func (e *Exception) Error() string {
	if e.Detail == "" {
		return e.Message
	}
	return e.Message + ": " + e.Detail
}

// Unwrap permite errors.Is(err, domain.ErrOutOfRange) y equivalentes.
func (e *Exception) Unwrap() error { return e.sentinel }

// Serialize traduce mensaje, detalle y campos con el traductor de la petición.
func (e *Exception) Serialize(tr Translator) SerializedException {
	args := e.DetailArgs
	if e.translateArgs {
		args = make([]any, len(e.DetailArgs))
		for i, a := range e.DetailArgs {
			if s, ok := a.(string); ok {
				a = tr.T(s)
			}
			args[i] = a
		}
	}
	out := SerializedException{
		Exception: e.Kind,
		Message:   tr.T(e.Message),
		Detail:    tr.T(e.Detail, args...),
	}
	if len(e.Fields) > 0 {
		out.Fields = make(map[string]string, len(e.Fields))
		for k, v := range e.Fields {
			out.Fields[k] = tr.T(v)
		}
	}
	return out
}

// NewOutOfRange construye la excepción para valores numéricos fuera de rango.
func NewOutOfRange(message, detail string) *Exception {
	return &Exception{Kind: KindOutOfRange, Message: message, Detail: detail, sentinel: ErrOutOfRange}
}

// NewNotFound indica que la entidad con el id dado no existe.
func NewNotFound(entityName string, id int64) *Exception {
	return &Exception{
		Kind:          KindNotFound,
		translateArgs: true,
		Message:       "Record not found",
		Detail:        "%s with id %d does not exist",
		DetailArgs:    []any{entityName, id},
		sentinel:      ErrNotFound,
	}
}

// NewValidation agrupa errores de validación por campo (clave JSON → mensaje).
func NewValidation(fields map[string]string) *Exception {
	return &Exception{
		Kind:     KindValidation,
		Message:  "Validation failed",
		Detail:   "One or more fields are invalid",
		Fields:   fields,
		sentinel: ErrInvalidInput,
	}
}

// NewInvalidInput error genérico de entrada con un detalle libre.
func NewInvalidInput(detail string, args ...any) *Exception {
	return &Exception{
		Kind:       KindInvalidInput,
		Message:    "Invalid request",
		Detail:     detail,
		DetailArgs: args,
		sentinel:   ErrInvalidInput,
	}
}

// NewInUse indica que un registro no puede borrarse porque otros lo referencian.
func NewInUse(entityName string) *Exception {
	return &Exception{
		Kind:          KindInUse,
		translateArgs: true,
		Message:       "Record is in use",
		Detail:        "The %s is still referenced by other records",
		DetailArgs:    []any{entityName},
		sentinel:      ErrConflict,
	}
}

// NewDuplicate indica violación de unicidad.
func NewDuplicate(entityName string) *Exception {
	return &Exception{
		Kind:          KindDuplicate,
		translateArgs: true,
		Message:       "Duplicate record",
		Detail:        "A %s with the same name already exists",
		DetailArgs:    []any{entityName},
		sentinel:      ErrDuplicate,
	}
}

// AsException devuelve la Exception contenida en err, si existe.
func AsException(err error) (*Exception, bool) {
	var ex *Exception
	if errors.As(err, &ex) {
		return ex, true
	}
	return nil, false
}
