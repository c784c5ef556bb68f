package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/partdb-api/internal/domain/entity"
	"github.com/jhoicas/partdb-api/internal/domain/inventory"
)

func priced(qty int64, price string) *entity.StockEntry {
	return &entity.StockEntry{StockLevel: qty, Price: decimal.NewNullDecimal(decimal.RequireFromString(price))}
}

func TestAveragePrice_Ponderado(t *testing.T) {
	// (10 * 1.00 + 30 * 2.00) / 40 = 1.75
	avg := inventory.AveragePrice([]*entity.StockEntry{
		priced(10, "1.00"),
		priced(30, "2.00"),
		{StockLevel: -5},   // salidas no cuentan
		{StockLevel: 100},  // entradas sin precio no cuentan
		priced(-3, "9.99"), // salida con precio tampoco
	})
	require.True(t, avg.Valid)
	assert.True(t, avg.Decimal.Equal(decimal.RequireFromString("1.75")), avg.Decimal.String())
}

func TestAveragePrice_Redondeo(t *testing.T) {
	avg := inventory.AveragePrice([]*entity.StockEntry{priced(3, "1.00"), priced(0, "5"), priced(3, "2.00"), priced(3, "2.00")})
	require.True(t, avg.Valid)
	assert.Equal(t, "1.6667", avg.Decimal.StringFixed(inventory.AveragePrecision))
}

func TestAveragePrice_SinPrecios(t *testing.T) {
	assert.False(t, inventory.AveragePrice(nil).Valid)
	assert.False(t, inventory.AveragePrice([]*entity.StockEntry{{StockLevel: 4}}).Valid)
}

func TestShortfallYReorderCost(t *testing.T) {
	p := entity.NewPart()
	require.NoError(t, p.SetMinStockLevel(10))
	p.CachedStockLevel = 4
	assert.Equal(t, int64(6), inventory.Shortfall(p))
	assert.False(t, inventory.ReorderCost(p).Valid)

	p.SetAveragePrice(decimal.NewNullDecimal(decimal.RequireFromString("0.50")))
	cost := inventory.ReorderCost(p)
	require.True(t, cost.Valid)
	assert.True(t, cost.Decimal.Equal(decimal.NewFromInt(3)))

	p.CachedStockLevel = 25
	assert.Equal(t, int64(0), inventory.Shortfall(p))
}
