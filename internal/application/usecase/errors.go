package usecase

import (
	"errors"

	"github.com/jhoicas/partdb-api/internal/application/dto"
	"github.com/jhoicas/partdb-api/internal/domain"
)

// writeError traduce los errores de persistencia del catálogo a excepciones serializables.
func writeError(err error, entityName string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrDuplicate):
		return domain.NewDuplicate(entityName)
	case errors.Is(err, domain.ErrConflict):
		return domain.NewInUse(entityName)
	}
	return err
}

// pageOf valida la paginación y aplica los valores por defecto.
func pageOf(in dto.PageRequest) (limit, offset int, err error) {
	if err := dto.Validate(&in); err != nil {
		return 0, 0, err
	}
	in.DefaultPage()
	return int(in.Limit), int(in.Offset), nil
}
