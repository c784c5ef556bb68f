package pdf_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/partdb-api/internal/domain/entity"
	"github.com/jhoicas/partdb-api/internal/infrastructure/pdf"
	"github.com/jhoicas/partdb-api/pkg/i18n"
)

func strPtr(s string) *string { return &s }

func TestGeneratePartSheet_CompletaYVacia(t *testing.T) {
	translator, err := i18n.New("es")
	require.NoError(t, err)
	gen := pdf.NewPartSheetGenerator("partdb-api")
	avg := decimal.RequireFromString("0.1250")
	price := decimal.RequireFromString("0.10")

	full := entity.PartSnapshot{
		ID:            7,
		Name:          "Resistor 4k7",
		Comment:       "Tolerancia 1%",
		StockLevel:    120,
		MinStockLevel: 50,
		AveragePrice:  &avg,
		CategoryName:  strPtr("Resistencias"),
		FootprintName: strPtr("0603"),
		PartUnitName:  "Piezas",
		Manufacturers: []entity.PartManufacturerSnapshot{
			{ID: 1, ManufacturerName: strPtr("Yageo"), PartNumber: "RC0603FR-074K7L"},
		},
		Distributors: []entity.PartDistributorSnapshot{
			{ID: 1, DistributorName: strPtr("Mouser"), OrderNumber: "603-RC0603", PackagingUnit: 100, Price: &price},
			{ID: 2, DistributorName: strPtr("Digikey"), PackagingUnit: 1},
		},
		Parameters: []entity.PartParameterSnapshot{
			{ID: 1, Name: "Resistance", Value: decimal.NewFromInt(4700), Unit: "Ohm"},
		},
	}

	for name, snapshot := range map[string]entity.PartSnapshot{
		"completa": full,
		"vacía":    {ID: 8, Name: "Sin datos", PartUnitName: "Piezas"},
	} {
		t.Run(name, func(t *testing.T) {
			out, err := gen.GeneratePartSheet(context.Background(), snapshot, translator.Default())
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "debe ser un documento PDF")
		})
	}
}

func TestGeneratePartSheet_ContextoCancelado(t *testing.T) {
	translator, err := i18n.New("en")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = pdf.NewPartSheetGenerator("x").GeneratePartSheet(ctx, entity.PartSnapshot{ID: 1, Name: "X"}, translator.Default())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestQRContent(t *testing.T) {
	assert.Equal(t, "partdb:part:42", pdf.QRContent(42))
}
