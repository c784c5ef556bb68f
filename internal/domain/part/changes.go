// Package part contiene los servicios de dominio del agregado Part que no pertenecen a una sola entidad.
package part

import "github.com/jhoicas/partdb-api/internal/domain"

// Record es un registro hijo enviado por el cliente. RecordID 0 significa "aún no persistido".
type Record interface {
	RecordID() int64
}

// ChangeSet cambios posteados para una sub-colección (grilla del editor).
type ChangeSet[T Record] struct {
	Inserts  []T `json:"inserts"`
	Updates  []T `json:"updates"`
	Removals []T `json:"removals"`
}

// Empty indica que no hay cambios.
func (c ChangeSet[T]) Empty() bool {
	return len(c.Inserts) == 0 && len(c.Updates) == 0 && len(c.Removals) == 0
}

// Plan acciones disjuntas a aplicar sobre la colección persistida.
type Plan[T Record] struct {
	Inserts  []T
	Updates  []T
	Removals []int64
}

// Reconcile compara los ids persistidos de la colección con los cambios posteados y produce
// tres listas disjuntas:
//   - un id en removals nunca aparece en updates (borrar gana);
//   - un insert con id existente se trata como update, un update sin id como insert;
//   - update o removal de un id que no pertenece a la pieza es un error de entrada;
//   - ids repetidos se colapsan (gana la última versión del registro).
func Reconcile[T Record](current []int64, changes ChangeSet[T]) (Plan[T], error) {
	owned := make(map[int64]struct{}, len(current))
	for _, id := range current {
		owned[id] = struct{}{}
	}

	var plan Plan[T]
	removed := make(map[int64]struct{}, len(changes.Removals))
	for _, r := range changes.Removals {
		id := r.RecordID()
		if id == 0 {
			continue
		}
		if _, ok := owned[id]; !ok {
			return Plan[T]{}, domain.NewInvalidInput("Record %d does not belong to this part", id)
		}
		if _, dup := removed[id]; dup {
			continue
		}
		removed[id] = struct{}{}
		plan.Removals = append(plan.Removals, id)
	}

	updateIdx := make(map[int64]int)
	addUpdate := func(r T) error {
		id := r.RecordID()
		if _, gone := removed[id]; gone {
			return nil
		}
		if _, ok := owned[id]; !ok {
			return domain.NewInvalidInput("Record %d does not belong to this part", id)
		}
		if i, seen := updateIdx[id]; seen {
			plan.Updates[i] = r
			return nil
		}
		updateIdx[id] = len(plan.Updates)
		plan.Updates = append(plan.Updates, r)
		return nil
	}

	for _, r := range changes.Inserts {
		if r.RecordID() == 0 {
			plan.Inserts = append(plan.Inserts, r)
			continue
		}
		if err := addUpdate(r); err != nil {
			return Plan[T]{}, err
		}
	}
	for _, r := range changes.Updates {
		if r.RecordID() == 0 {
			plan.Inserts = append(plan.Inserts, r)
			continue
		}
		if err := addUpdate(r); err != nil {
			return Plan[T]{}, err
		}
	}
	return plan, nil
}
