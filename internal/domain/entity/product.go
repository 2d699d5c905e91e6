package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// Quantity solo se modifica a través del motor de movimientos; nunca baja de cero.
type Product struct {
	ID        string
	Name      string // único, no vacío
	Quantity  int64
	UnitCost  decimal.Decimal // costo unitario, no negativo
	CreatedAt time.Time
	UpdatedAt time.Time
}
