package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  FlexInt `json:"limit" validate:"min=0,max=500"`
	Offset FlexInt `json:"offset" validate:"min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 50
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// ListResponse lista paginada genérica (data + totalCount, como la grilla del editor).
type ListResponse[T any] struct {
	Data       []T `json:"data"`
	TotalCount int `json:"totalCount"`
}

// OKEnvelope sobre de respuesta exitosa del endpoint REST.
type OKEnvelope struct {
	Status   string `json:"status"`
	Success  bool   `json:"success"`
	Response any    `json:"response"`
}

// ErrorEnvelope sobre de respuesta fallida ("error" o "systemerror").
type ErrorEnvelope struct {
	Status    string `json:"status"`
	Success   bool   `json:"success"`
	Exception any    `json:"exception"`
}

// SystemException detalle de un error no clasificado.
type SystemException struct {
	Message   string   `json:"message"`
	Exception string   `json:"exception"`
	Backtrace []string `json:"backtrace"`
}

// Estados del sobre REST.
const (
	StatusOK          = "ok"
	StatusError       = "error"
	StatusSystemError = "systemerror"
)

// ErrorResponse cuerpo de error HTTP para rutas fuera del endpoint REST (ej. PDF).
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
