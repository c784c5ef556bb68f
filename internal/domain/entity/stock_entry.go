package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockEntry registra un cambio de stock de una pieza.
// StockLevel es con signo: positivo = entrada, negativo = salida. La suma de todas las
// entradas de una pieza es su stock vivo.
type StockEntry struct {
	ID         int64
	PartID     int64
	StockLevel int64
	Price      decimal.NullDecimal // precio unitario de la entrada; inválido si no aplica
	DateTime   time.Time
	Comment    string
}

// IsRemoval indica si la entrada descuenta stock.
func (e *StockEntry) IsRemoval() bool { return e.StockLevel < 0 }
