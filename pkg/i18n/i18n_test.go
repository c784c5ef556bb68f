package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/partdb-api/pkg/i18n"
)

func TestTranslator_IdiomaPorAcceptLanguage(t *testing.T) {
	tr, err := i18n.New("en")
	require.NoError(t, err)

	assert.Equal(t, "Pieces", tr.For("").T("Pieces"))
	assert.Equal(t, "Piezas", tr.For("es-CO,es;q=0.9").T("Pieces"))
	assert.Equal(t, "Stück", tr.For("de-DE").T("Pieces"))
	// Idioma no soportado: idioma por defecto.
	assert.Equal(t, "Pieces", tr.For("fr-FR").T("Pieces"))
}

func TestTranslator_FormatoConArgumentos(t *testing.T) {
	tr, err := i18n.New("en")
	require.NoError(t, err)

	assert.Equal(t, "Part with id 7 does not exist", tr.Default().T("%s with id %d does not exist", "Part", 7))
	assert.Equal(t, "Pieza con id 7 no existe",
		tr.For("es").T("%s with id %d does not exist", tr.For("es").T("Part"), 7))
}

func TestTranslator_ClaveSinTraduccion(t *testing.T) {
	tr, err := i18n.New("es")
	require.NoError(t, err)

	assert.Equal(t, "es", tr.Default().Language())
	assert.Equal(t, "texto libre", tr.Default().T("texto libre"))
	assert.Equal(t, "", tr.Default().T(""))
}

func TestTranslator_IdiomaPorDefectoInvalido(t *testing.T) {
	_, err := i18n.New("??")
	assert.Error(t, err)
}
