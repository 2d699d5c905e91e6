package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del libro mayor.
// incoming/outgoing/expense se crean vía API; adjustment y deletion
// solo los genera el motor como rastro de auditoría.
const (
	MovementKindIncoming   = "incoming"
	MovementKindOutgoing   = "outgoing"
	MovementKindExpense    = "expense"
	MovementKindAdjustment = "adjustment"
	MovementKindDeletion   = "deletion"
)

// Movement es una entrada inmutable del libro mayor: un evento de inventario o de caja.
// Exactamente una de las semánticas {Quantity, Amount} aplica según Kind:
// incoming/outgoing llevan Quantity; expense lleva Amount; adjustment lleva el
// delta firmado (o nil si la cantidad no cambió); deletion no lleva ninguna.
type Movement struct {
	ID          string
	ProductID   *string // nil para expense y deletion
	Kind        string
	Quantity    *int64
	Amount      *decimal.Decimal
	Description string
	OccurredAt  time.Time // con zona horaria del reloj inyectado
	ActorID     *string   // usuario que originó el movimiento, si hay sesión
}
