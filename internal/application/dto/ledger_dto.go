package dto

import "github.com/shopspring/decimal"

// LedgerEntryDTO fila del libro mayor lista para mostrar: nombre de producto
// resuelto (o el marcador "General" cuando no hay producto) y fecha ya
// formateada en la zona horaria configurada.
type LedgerEntryDTO struct {
	ID          string           `json:"id"`
	ProductName string           `json:"product_name"`
	Kind        string           `json:"kind"`
	Quantity    *int64           `json:"quantity,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Description string           `json:"description"`
	Actor       string           `json:"actor,omitempty"`
	OccurredAt  string           `json:"occurred_at"`
}

// LedgerTotalsDTO sumas calculadas sobre las filas filtradas, no sobre el
// estado global.
type LedgerTotalsDTO struct {
	Incoming int64           `json:"incoming"`
	Outgoing int64           `json:"outgoing"`
	Expenses decimal.Decimal `json:"expenses"`
}

// LedgerViewResponse libro mayor filtrado con sus totales.
type LedgerViewResponse struct {
	Entries []LedgerEntryDTO `json:"entries"`
	Totals  LedgerTotalsDTO  `json:"totals"`
	Month   *int             `json:"month,omitempty"`
	Year    *int             `json:"year,omitempty"`
}
