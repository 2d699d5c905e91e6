// Package ledger implementa el motor contable de inventario: la única
// autoridad que muta la cantidad de un producto, siempre emparejando la
// mutación con su movimiento de auditoría en la misma transacción.
package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/clock"
)

// Engine aplica movimientos sobre productos con bloqueo de fila
// (SELECT FOR UPDATE) y Commit/Rollback vía TxRunner. Valida antes de mutar:
// ningún fallo deja estado parcial.
type Engine struct {
	txRunner TxRunner
	clock    clock.Clock
}

// NewEngine construye el motor.
func NewEngine(txRunner TxRunner, clk clock.Clock) *Engine {
	return &Engine{txRunner: txRunner, clock: clk}
}

// MovementInput entrada del dispatcher RegisterMovement.
// incoming/outgoing usan ProductID y Quantity; expense usa Amount.
type MovementInput struct {
	Kind        string
	ProductID   string
	Quantity    int64
	Amount      decimal.Decimal
	Description string
}

// AdjustInput estado deseado de un producto en una edición manual.
type AdjustInput struct {
	Name     string
	Quantity int64
	UnitCost decimal.Decimal
}

// RegisterMovement despacha según Kind. Cualquier tipo fuera de
// incoming/outgoing/expense se rechaza con ErrInvalidKind sin tocar nada
// (adjustment y deletion solo los genera el propio motor).
func (e *Engine) RegisterMovement(ctx context.Context, in MovementInput, actorID string) (*entity.Movement, error) {
	switch in.Kind {
	case entity.MovementKindIncoming:
		return e.RegisterIncoming(ctx, in.ProductID, in.Quantity, in.Description, actorID)
	case entity.MovementKindOutgoing:
		return e.RegisterOutgoing(ctx, in.ProductID, in.Quantity, in.Description, actorID)
	case entity.MovementKindExpense:
		return e.RegisterExpense(ctx, in.Amount, in.Description, actorID)
	default:
		return nil, domain.ErrInvalidKind
	}
}

// RegisterIncoming suma quantity (> 0) al stock del producto y registra el
// movimiento incoming en la misma transacción.
func (e *Engine) RegisterIncoming(ctx context.Context, productID string, quantity int64, description, actorID string) (*entity.Movement, error) {
	if productID == "" || quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	var created *entity.Movement
	err := e.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movementRepo repository.MovementRepository) error {
		product, err := productRepo.GetByIDForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		now := e.clock.Now()
		if err := productRepo.UpdateQuantity(product.ID, product.Quantity+quantity, now); err != nil {
			return err
		}
		qty := quantity
		mov := &entity.Movement{
			ID:          uuid.New().String(),
			ProductID:   &product.ID,
			Kind:        entity.MovementKindIncoming,
			Quantity:    &qty,
			Description: description,
			OccurredAt:  now,
			ActorID:     actorRef(actorID),
		}
		if err := movementRepo.Create(mov); err != nil {
			return err
		}
		created = mov
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// RegisterOutgoing resta quantity (> 0) del stock. Todo o nada: si la cantidad
// solicitada excede el stock actual falla con ErrInsufficientStock y no se
// persiste nada. El bloqueo de fila serializa salidas concurrentes sobre el
// mismo producto, así que el stock nunca queda negativo.
func (e *Engine) RegisterOutgoing(ctx context.Context, productID string, quantity int64, description, actorID string) (*entity.Movement, error) {
	if productID == "" || quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	var created *entity.Movement
	err := e.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movementRepo repository.MovementRepository) error {
		product, err := productRepo.GetByIDForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if product.Quantity < quantity {
			return domain.ErrInsufficientStock
		}
		now := e.clock.Now()
		if err := productRepo.UpdateQuantity(product.ID, product.Quantity-quantity, now); err != nil {
			return err
		}
		qty := quantity
		mov := &entity.Movement{
			ID:          uuid.New().String(),
			ProductID:   &product.ID,
			Kind:        entity.MovementKindOutgoing,
			Quantity:    &qty,
			Description: description,
			OccurredAt:  now,
			ActorID:     actorRef(actorID),
		}
		if err := movementRepo.Create(mov); err != nil {
			return err
		}
		created = mov
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// RegisterExpense registra un gasto de caja sin producto asociado.
// Amount no puede ser negativo.
func (e *Engine) RegisterExpense(ctx context.Context, amount decimal.Decimal, description, actorID string) (*entity.Movement, error) {
	if amount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	var created *entity.Movement
	err := e.txRunner.Run(ctx, func(_ repository.ProductRepository, movementRepo repository.MovementRepository) error {
		mov := &entity.Movement{
			ID:          uuid.New().String(),
			Kind:        entity.MovementKindExpense,
			Amount:      &amount,
			Description: description,
			OccurredAt:  e.clock.Now(),
			ActorID:     actorRef(actorID),
		}
		if err := movementRepo.Create(mov); err != nil {
			return err
		}
		created = mov
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// AdjustProduct aplica una edición manual: compara el estado deseado contra el
// actual y solo persiste lo que de verdad cambió. Si algo cambió, registra
// exactamente un movimiento adjustment cuyo Quantity es el delta firmado (nil
// si la cantidad quedó igual) y cuya descripción resume cada campo modificado.
// Si nada cambió no se genera ruido de auditoría.
func (e *Engine) AdjustProduct(ctx context.Context, productID string, in AdjustInput, actorID string) (*entity.Product, error) {
	name := strings.TrimSpace(in.Name)
	if productID == "" || name == "" || in.Quantity < 0 || in.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	var updated *entity.Product
	err := e.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movementRepo repository.MovementRepository) error {
		product, err := productRepo.GetByIDForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		var changes []string
		if name != product.Name {
			other, err := productRepo.GetByName(name)
			if err != nil {
				return err
			}
			if other != nil && other.ID != product.ID {
				return domain.ErrDuplicateName
			}
			changes = append(changes, fmt.Sprintf("nombre '%s' -> '%s'", product.Name, name))
		}
		delta := in.Quantity - product.Quantity
		if delta != 0 {
			changes = append(changes, fmt.Sprintf("cantidad %d -> %d", product.Quantity, in.Quantity))
		}
		if !in.UnitCost.Equal(product.UnitCost) {
			changes = append(changes, fmt.Sprintf("costo %s -> %s", product.UnitCost, in.UnitCost))
		}
		if len(changes) == 0 {
			updated = product
			return nil
		}

		now := e.clock.Now()
		product.Name = name
		product.Quantity = in.Quantity
		product.UnitCost = in.UnitCost
		product.UpdatedAt = now
		if err := productRepo.Update(product); err != nil {
			return err
		}

		var deltaRef *int64
		if delta != 0 {
			d := delta
			deltaRef = &d
		}
		mov := &entity.Movement{
			ID:          uuid.New().String(),
			ProductID:   &product.ID,
			Kind:        entity.MovementKindAdjustment,
			Quantity:    deltaRef,
			Description: "ajuste manual: " + strings.Join(changes, "; "),
			OccurredAt:  now,
			ActorID:     actorRef(actorID),
		}
		if err := movementRepo.Create(mov); err != nil {
			return err
		}
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteProduct elimina un producto y sus movimientos dejando un registro
// deletion que sobrevive a la cascada. El orden es parte del contrato:
// primero el registro de auditoría, luego los movimientos del producto,
// luego el producto, todo en una transacción.
func (e *Engine) DeleteProduct(ctx context.Context, productID string, actorID string) error {
	if productID == "" {
		return domain.ErrInvalidInput
	}
	return e.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movementRepo repository.MovementRepository) error {
		product, err := productRepo.GetByIDForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		now := e.clock.Now()
		audit := &entity.Movement{
			ID:          uuid.New().String(),
			Kind:        entity.MovementKindDeletion,
			Description: fmt.Sprintf("producto eliminado: %s (id %s)", product.Name, product.ID),
			OccurredAt:  now,
			ActorID:     actorRef(actorID),
		}
		if err := movementRepo.Create(audit); err != nil {
			return err
		}
		if err := movementRepo.DeleteByProduct(product.ID); err != nil {
			return err
		}
		return productRepo.Delete(product.ID)
	})
}

func actorRef(actorID string) *string {
	if actorID == "" {
		return nil
	}
	return &actorID
}
