package inventory

import (
	"github.com/jhoicas/partdb-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// AveragePrecision decimales del precio promedio cacheado.
const AveragePrecision = 4

// AveragePrice calcula el precio promedio ponderado de las entradas con precio (servicio de dominio).
// Promedio = Σ(Precio * Cantidad) / Σ Cantidad, sólo sobre entradas positivas con precio.
// Devuelve un NullDecimal inválido si no hay ninguna entrada con precio.
func AveragePrice(entries []*entity.StockEntry) decimal.NullDecimal {
	total := decimal.Zero
	qty := decimal.Zero
	for _, e := range entries {
		if e == nil || e.StockLevel <= 0 || !e.Price.Valid {
			continue
		}
		q := decimal.NewFromInt(e.StockLevel)
		total = total.Add(e.Price.Decimal.Mul(q))
		qty = qty.Add(q)
	}
	if qty.IsZero() {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(total.DivRound(qty, AveragePrecision))
}

// Shortfall cantidad que falta para alcanzar el stock mínimo (nunca negativa).
func Shortfall(part *entity.Part) int64 {
	diff := part.MinStockLevel() - part.CachedStockLevel
	if diff < 0 {
		return 0
	}
	return diff
}

// ReorderCost costo estimado de reponer la falta al precio promedio. Inválido si no hay precio.
func ReorderCost(part *entity.Part) decimal.NullDecimal {
	if !part.AveragePrice.Valid {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(part.AveragePrice.Decimal.Mul(decimal.NewFromInt(Shortfall(part))))
}
