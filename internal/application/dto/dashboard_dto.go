package dto

import "github.com/shopspring/decimal"

// TopProductDTO producto con su número de movimientos asociados.
type TopProductDTO struct {
	ProductID     string `json:"product_id"`
	Name          string `json:"name"`
	MovementCount int64  `json:"movement_count"`
}

// LowStockProductDTO producto por debajo del umbral de alerta.
type LowStockProductDTO struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int64           `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// DashboardSummaryDTO tarjetas del dashboard: totales del mes en curso,
// productos más movidos y alertas de stock bajo.
type DashboardSummaryDTO struct {
	MonthIncoming int64                `json:"month_incoming"`
	MonthOutgoing int64                `json:"month_outgoing"`
	MonthExpenses decimal.Decimal      `json:"month_expenses"`
	TopProducts   []TopProductDTO      `json:"top_products"`
	LowStock      []LowStockProductDTO `json:"low_stock"`
	DateLabel     string               `json:"date_label"`
}
