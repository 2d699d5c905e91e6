package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest entrada del endpoint POST /api/movements.
// Kind debe ser incoming, outgoing o expense; adjustment y deletion
// solo los produce el motor internamente.
type RegisterMovementRequest struct {
	Kind        string          `json:"kind"`
	ProductID   string          `json:"product_id"`
	Quantity    int64           `json:"quantity"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// MovementResponse representación pública de un movimiento.
type MovementResponse struct {
	ID          string           `json:"id"`
	ProductID   *string          `json:"product_id,omitempty"`
	Kind        string           `json:"kind"`
	Quantity    *int64           `json:"quantity,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Description string           `json:"description"`
	OccurredAt  time.Time        `json:"occurred_at"`
	ActorID     *string          `json:"actor_id,omitempty"`
}
