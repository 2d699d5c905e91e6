package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
)

// LedgerRow fila del libro mayor con el nombre del producto y del actor ya
// resueltos por join explícito (nil cuando el movimiento no referencia ninguno).
type LedgerRow struct {
	MovementID  string
	ProductName *string
	Kind        string
	Quantity    *int64
	Amount      *decimal.Decimal
	Description string
	OccurredAt  time.Time
	ActorName   *string
}

// MovementTotals sumas agregadas sobre un conjunto de movimientos.
// Cero en cada campo cuando no hay filas, nunca error por conjunto vacío.
type MovementTotals struct {
	Incoming int64
	Outgoing int64
	Expenses decimal.Decimal
}

// AnalyticsRepository consultas de solo lectura para el dashboard y el libro mayor.
type AnalyticsRepository interface {
	// GetMovementTotals suma cantidades de incoming/outgoing y valores de
	// expense en el rango [from, to]. from/to nil = sin límite.
	GetMovementTotals(ctx context.Context, from, to *time.Time) (MovementTotals, error)
	// GetTopMovedProducts productos con más movimientos asociados (los
	// movimientos sin producto no cuentan). Empates por orden de creación.
	GetTopMovedProducts(ctx context.Context, limit int) ([]dto.TopProductDTO, error)
	// GetLowStockProducts productos con quantity <= threshold, ascendente por cantidad.
	GetLowStockProducts(ctx context.Context, threshold int64) ([]dto.LowStockProductDTO, error)
	// ListLedger movimientos del rango ordenados del más reciente al más antiguo.
	ListLedger(ctx context.Context, from, to *time.Time) ([]LedgerRow, error)
}
