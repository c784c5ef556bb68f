package part_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/partdb-api/internal/domain"
	"github.com/jhoicas/partdb-api/internal/domain/part"
)

type rec struct {
	ID   int64
	Note string
}

func (r rec) RecordID() int64 { return r.ID }

func TestReconcile_ListasDisjuntas(t *testing.T) {
	plan, err := part.Reconcile([]int64{1, 2, 3}, part.ChangeSet[rec]{
		Inserts:  []rec{{Note: "nuevo"}},
		Updates:  []rec{{ID: 1, Note: "editado"}, {ID: 2, Note: "editado y borrado"}},
		Removals: []rec{{ID: 2}, {ID: 3}},
	})
	require.NoError(t, err)

	assert.Equal(t, []rec{{Note: "nuevo"}}, plan.Inserts)
	assert.Equal(t, []rec{{ID: 1, Note: "editado"}}, plan.Updates)
	assert.Equal(t, []int64{2, 3}, plan.Removals)

	seen := map[int64]string{}
	for _, u := range plan.Updates {
		seen[u.ID] = "update"
	}
	for _, id := range plan.Removals {
		_, dup := seen[id]
		assert.False(t, dup, "id %d en updates y removals", id)
	}
}

func TestReconcile_InsertConIDExistenteEsUpdate(t *testing.T) {
	plan, err := part.Reconcile([]int64{7}, part.ChangeSet[rec]{
		Inserts: []rec{{ID: 7, Note: "ya existía"}},
		Updates: []rec{{Note: "fantasma editado antes de guardar"}},
	})
	require.NoError(t, err)
	assert.Equal(t, []rec{{ID: 7, Note: "ya existía"}}, plan.Updates)
	assert.Equal(t, []rec{{Note: "fantasma editado antes de guardar"}}, plan.Inserts)
	assert.Empty(t, plan.Removals)
}

func TestReconcile_DuplicadosColapsan(t *testing.T) {
	plan, err := part.Reconcile([]int64{1}, part.ChangeSet[rec]{
		Updates:  []rec{{ID: 1, Note: "a"}, {ID: 1, Note: "b"}},
		Removals: []rec{},
	})
	require.NoError(t, err)
	assert.Equal(t, []rec{{ID: 1, Note: "b"}}, plan.Updates)

	plan, err = part.Reconcile([]int64{1}, part.ChangeSet[rec]{Removals: []rec{{ID: 1}, {ID: 1}, {ID: 0}}})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, plan.Removals)
}

func TestReconcile_IDAjenoEsError(t *testing.T) {
	_, err := part.Reconcile([]int64{1}, part.ChangeSet[rec]{Updates: []rec{{ID: 99}}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = part.Reconcile([]int64{1}, part.ChangeSet[rec]{Removals: []rec{{ID: 99}}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestReconcile_SinCambios(t *testing.T) {
	var cs part.ChangeSet[rec]
	assert.True(t, cs.Empty())
	plan, err := part.Reconcile(nil, cs)
	require.NoError(t, err)
	assert.Empty(t, plan.Inserts)
	assert.Empty(t, plan.Updates)
	assert.Empty(t, plan.Removals)
}
