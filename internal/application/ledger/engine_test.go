package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[string]*entity.Product)}
	for _, p := range products {
		cp := *p
		r.products[p.ID] = &cp
	}
	return r
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByIDForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) GetByName(name string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.Name == name {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) List() ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.products))
	for _, p := range r.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) UpdateQuantity(id string, quantity int64, updatedAt time.Time) error {
	p, ok := r.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Quantity = quantity
	p.UpdatedAt = updatedAt
	return nil
}

func (r *fakeProductRepo) Delete(id string) error {
	delete(r.products, id)
	return nil
}

type fakeMovementRepo struct {
	movements []*entity.Movement
}

func (r *fakeMovementRepo) Create(m *entity.Movement) error {
	cp := *m
	r.movements = append(r.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) DeleteByProduct(productID string) error {
	kept := r.movements[:0]
	for _, m := range r.movements {
		if m.ProductID == nil || *m.ProductID != productID {
			kept = append(kept, m)
		}
	}
	r.movements = kept
	return nil
}

// fakeTxRunner ejecuta el callback directamente contra los fakes. Los casos de
// error del motor validan antes de escribir, así que no hace falta simular
// rollback para comprobar que un fallo no deja estado parcial.
type fakeTxRunner struct {
	products  *fakeProductRepo
	movements *fakeMovementRepo
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(repository.ProductRepository, repository.MovementRepository) error) error {
	return fn(r.products, r.movements)
}

type frozenClock struct{ now time.Time }

func (c frozenClock) Now() time.Time           { return c.now }
func (c frozenClock) Location() *time.Location { return c.now.Location() }

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const (
	testProductID = "11111111-1111-1111-1111-111111111111"
	testActorID   = "22222222-2222-2222-2222-222222222222"
)

var testNow = time.Date(2025, time.March, 15, 10, 30, 0, 0, time.UTC)

func newTestEngine(products ...*entity.Product) (*ledger.Engine, *fakeProductRepo, *fakeMovementRepo) {
	productRepo := newFakeProductRepo(products...)
	movementRepo := &fakeMovementRepo{}
	runner := &fakeTxRunner{products: productRepo, movements: movementRepo}
	return ledger.NewEngine(runner, frozenClock{now: testNow}), productRepo, movementRepo
}

func testProduct(quantity int64) *entity.Product {
	return &entity.Product{
		ID:        testProductID,
		Name:      "RIBBON",
		Quantity:  quantity,
		UnitCost:  decimal.RequireFromString("15.50"),
		CreatedAt: testNow.Add(-24 * time.Hour),
		UpdatedAt: testNow.Add(-24 * time.Hour),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Entradas y salidas
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterIncoming_SumaStockYRegistraMovimiento(t *testing.T) {
	engine, productRepo, movementRepo := newTestEngine(testProduct(0))

	mov, err := engine.RegisterIncoming(context.Background(), testProductID, 5, "compra proveedor", testActorID)
	require.NoError(t, err)

	p, _ := productRepo.GetByID(testProductID)
	assert.Equal(t, int64(5), p.Quantity, "el stock debe pasar de 0 a 5")
	assert.Equal(t, testNow, p.UpdatedAt)

	require.Len(t, movementRepo.movements, 1)
	assert.Equal(t, entity.MovementKindIncoming, mov.Kind)
	require.NotNil(t, mov.Quantity)
	assert.Equal(t, int64(5), *mov.Quantity)
	require.NotNil(t, mov.ProductID)
	assert.Equal(t, testProductID, *mov.ProductID)
	require.NotNil(t, mov.ActorID)
	assert.Equal(t, testActorID, *mov.ActorID)
	assert.Equal(t, testNow, mov.OccurredAt)
}

func TestRegisterOutgoing_RestaStock(t *testing.T) {
	engine, productRepo, movementRepo := newTestEngine(testProduct(5))

	mov, err := engine.RegisterOutgoing(context.Background(), testProductID, 3, "venta mostrador", testActorID)
	require.NoError(t, err)

	p, _ := productRepo.GetByID(testProductID)
	assert.Equal(t, int64(2), p.Quantity, "el stock debe pasar de 5 a 2")
	require.Len(t, movementRepo.movements, 1)
	assert.Equal(t, entity.MovementKindOutgoing, mov.Kind)
}

func TestRegisterOutgoing_StockInsuficiente_NoPersisteNada(t *testing.T) {
	engine, productRepo, movementRepo := newTestEngine(testProduct(2))

	_, err := engine.RegisterOutgoing(context.Background(), testProductID, 10, "", testActorID)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	p, _ := productRepo.GetByID(testProductID)
	assert.Equal(t, int64(2), p.Quantity, "el stock no debe cambiar tras un fallo")
	assert.Empty(t, movementRepo.movements, "un movimiento rechazado no deja rastro")
}

func TestRegisterIncoming_ProductoInexistente(t *testing.T) {
	engine, _, movementRepo := newTestEngine()

	_, err := engine.RegisterIncoming(context.Background(), testProductID, 5, "", testActorID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, movementRepo.movements)
}

func TestRegisterIncoming_CantidadNoPositiva(t *testing.T) {
	engine, _, _ := newTestEngine(testProduct(0))

	for _, qty := range []int64{0, -3} {
		_, err := engine.RegisterIncoming(context.Background(), testProductID, qty, "", testActorID)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad %d debe rechazarse", qty)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Gastos
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterExpense_SinProductoAsociado(t *testing.T) {
	engine, _, movementRepo := newTestEngine()

	mov, err := engine.RegisterExpense(context.Background(), decimal.RequireFromString("15000.00"), "arriendo local", testActorID)
	require.NoError(t, err)

	require.Len(t, movementRepo.movements, 1)
	assert.Equal(t, entity.MovementKindExpense, mov.Kind)
	assert.Nil(t, mov.ProductID, "un gasto no referencia producto")
	assert.Nil(t, mov.Quantity)
	require.NotNil(t, mov.Amount)
	assert.True(t, mov.Amount.Equal(decimal.RequireFromString("15000.00")))
}

func TestRegisterExpense_MontoNegativo(t *testing.T) {
	engine, _, movementRepo := newTestEngine()

	_, err := engine.RegisterExpense(context.Background(), decimal.RequireFromString("-1"), "", testActorID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, movementRepo.movements)
}

// ──────────────────────────────────────────────────────────────────────────────
// Dispatcher
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterMovement_DespachaPorKind(t *testing.T) {
	engine, productRepo, _ := newTestEngine(testProduct(0))

	mov, err := engine.RegisterMovement(context.Background(), ledger.MovementInput{
		Kind:      entity.MovementKindIncoming,
		ProductID: testProductID,
		Quantity:  7,
	}, testActorID)
	require.NoError(t, err)
	assert.Equal(t, entity.MovementKindIncoming, mov.Kind)

	p, _ := productRepo.GetByID(testProductID)
	assert.Equal(t, int64(7), p.Quantity)
}

func TestRegisterMovement_KindDesconocido(t *testing.T) {
	engine, _, movementRepo := newTestEngine(testProduct(3))

	// adjustment y deletion solo los emite el motor; desde fuera se rechazan
	// igual que cualquier kind inventado.
	for _, kind := range []string{"transfer", entity.MovementKindAdjustment, entity.MovementKindDeletion, ""} {
		_, err := engine.RegisterMovement(context.Background(), ledger.MovementInput{
			Kind:      kind,
			ProductID: testProductID,
			Quantity:  1,
		}, testActorID)
		assert.ErrorIs(t, err, domain.ErrInvalidKind, "kind %q debe rechazarse", kind)
	}
	assert.Empty(t, movementRepo.movements)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ajustes manuales
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjustProduct_SinCambios_NoGeneraMovimiento(t *testing.T) {
	engine, _, movementRepo := newTestEngine(testProduct(5))

	p, err := engine.AdjustProduct(context.Background(), testProductID, ledger.AdjustInput{
		Name:     "RIBBON",
		Quantity: 5,
		UnitCost: decimal.RequireFromString("15.50"),
	}, testActorID)
	require.NoError(t, err)

	assert.Equal(t, int64(5), p.Quantity)
	assert.Empty(t, movementRepo.movements, "sin cambios reales no hay ruido de auditoría")
}

func TestAdjustProduct_CambioDeCantidad_RegistraDelta(t *testing.T) {
	engine, productRepo, movementRepo := newTestEngine(testProduct(3))

	_, err := engine.AdjustProduct(context.Background(), testProductID, ledger.AdjustInput{
		Name:     "RIBBON",
		Quantity: 5,
		UnitCost: decimal.RequireFromString("15.50"),
	}, testActorID)
	require.NoError(t, err)

	p, _ := productRepo.GetByID(testProductID)
	assert.Equal(t, int64(5), p.Quantity)

	require.Len(t, movementRepo.movements, 1)
	mov := movementRepo.movements[0]
	assert.Equal(t, entity.MovementKindAdjustment, mov.Kind)
	require.NotNil(t, mov.Quantity)
	assert.Equal(t, int64(2), *mov.Quantity, "el movimiento lleva el delta firmado, no el valor final")
	assert.Contains(t, mov.Description, "cantidad 3 -> 5")
}

func TestAdjustProduct_NombreYCosto_QuantityNil(t *testing.T) {
	engine, productRepo, movementRepo := newTestEngine(testProduct(3))

	_, err := engine.AdjustProduct(context.Background(), testProductID, ledger.AdjustInput{
		Name:     "RIBBON PREMIUM",
		Quantity: 3,
		UnitCost: decimal.RequireFromString("18.00"),
	}, testActorID)
	require.NoError(t, err)

	p, _ := productRepo.GetByID(testProductID)
	assert.Equal(t, "RIBBON PREMIUM", p.Name)
	assert.True(t, p.UnitCost.Equal(decimal.RequireFromString("18.00")))

	require.Len(t, movementRepo.movements, 1)
	mov := movementRepo.movements[0]
	assert.Nil(t, mov.Quantity, "sin cambio de cantidad el delta va en nil")
	assert.Contains(t, mov.Description, "nombre 'RIBBON' -> 'RIBBON PREMIUM'")
	assert.Contains(t, mov.Description, "costo 15.5 -> 18")
}

func TestAdjustProduct_DeltaNegativo(t *testing.T) {
	engine, _, movementRepo := newTestEngine(testProduct(10))

	_, err := engine.AdjustProduct(context.Background(), testProductID, ledger.AdjustInput{
		Name:     "RIBBON",
		Quantity: 4,
		UnitCost: decimal.RequireFromString("15.50"),
	}, testActorID)
	require.NoError(t, err)

	require.Len(t, movementRepo.movements, 1)
	require.NotNil(t, movementRepo.movements[0].Quantity)
	assert.Equal(t, int64(-6), *movementRepo.movements[0].Quantity)
}

func TestAdjustProduct_NombreDuplicado(t *testing.T) {
	other := &entity.Product{
		ID:       "33333333-3333-3333-3333-333333333333",
		Name:     "GV500",
		UnitCost: decimal.RequireFromString("120.00"),
	}
	engine, productRepo, movementRepo := newTestEngine(testProduct(3), other)

	_, err := engine.AdjustProduct(context.Background(), testProductID, ledger.AdjustInput{
		Name:     "GV500",
		Quantity: 3,
		UnitCost: decimal.RequireFromString("15.50"),
	}, testActorID)
	assert.ErrorIs(t, err, domain.ErrDuplicateName)

	p, _ := productRepo.GetByID(testProductID)
	assert.Equal(t, "RIBBON", p.Name, "el rechazo no debe tocar el producto")
	assert.Empty(t, movementRepo.movements)
}

func TestAdjustProduct_DatosInvalidos(t *testing.T) {
	engine, _, _ := newTestEngine(testProduct(3))

	cases := []ledger.AdjustInput{
		{Name: "  ", Quantity: 3, UnitCost: decimal.RequireFromString("15.50")},
		{Name: "RIBBON", Quantity: -1, UnitCost: decimal.RequireFromString("15.50")},
		{Name: "RIBBON", Quantity: 3, UnitCost: decimal.RequireFromString("-0.01")},
	}
	for i, in := range cases {
		_, err := engine.AdjustProduct(context.Background(), testProductID, in, testActorID)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "caso %d", i)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Eliminación auditada
// ──────────────────────────────────────────────────────────────────────────────

func TestDeleteProduct_DejaRegistroYPurgaMovimientos(t *testing.T) {
	engine, productRepo, movementRepo := newTestEngine(testProduct(0))

	_, err := engine.RegisterIncoming(context.Background(), testProductID, 5, "", testActorID)
	require.NoError(t, err)
	_, err = engine.RegisterOutgoing(context.Background(), testProductID, 2, "", testActorID)
	require.NoError(t, err)
	require.Len(t, movementRepo.movements, 2)

	err = engine.DeleteProduct(context.Background(), testProductID, testActorID)
	require.NoError(t, err)

	p, _ := productRepo.GetByID(testProductID)
	assert.Nil(t, p, "el producto debe desaparecer del catálogo")

	// Solo sobrevive el registro deletion, sin referencia al producto borrado.
	require.Len(t, movementRepo.movements, 1)
	audit := movementRepo.movements[0]
	assert.Equal(t, entity.MovementKindDeletion, audit.Kind)
	assert.Nil(t, audit.ProductID)
	assert.Contains(t, audit.Description, "RIBBON")
	assert.Contains(t, audit.Description, testProductID)
	require.NotNil(t, audit.ActorID)
	assert.Equal(t, testActorID, *audit.ActorID)
}

func TestDeleteProduct_Inexistente(t *testing.T) {
	engine, _, movementRepo := newTestEngine()

	err := engine.DeleteProduct(context.Background(), testProductID, testActorID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, movementRepo.movements)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reconstrucción del stock desde el libro
// ──────────────────────────────────────────────────────────────────────────────

// La cantidad de cada producto debe poder derivarse reproduciendo sus
// movimientos en orden: entradas suman, salidas restan, ajustes aplican delta.
func TestLibro_ReconstruyeCantidadActual(t *testing.T) {
	engine, productRepo, movementRepo := newTestEngine(testProduct(0))

	ctx := context.Background()
	_, err := engine.RegisterIncoming(ctx, testProductID, 10, "", testActorID)
	require.NoError(t, err)
	_, err = engine.RegisterOutgoing(ctx, testProductID, 4, "", testActorID)
	require.NoError(t, err)
	_, err = engine.AdjustProduct(ctx, testProductID, ledger.AdjustInput{
		Name:     "RIBBON",
		Quantity: 8,
		UnitCost: decimal.RequireFromString("15.50"),
	}, testActorID)
	require.NoError(t, err)

	var replayed int64
	for _, m := range movementRepo.movements {
		switch m.Kind {
		case entity.MovementKindIncoming:
			replayed += *m.Quantity
		case entity.MovementKindOutgoing:
			replayed -= *m.Quantity
		case entity.MovementKindAdjustment:
			if m.Quantity != nil {
				replayed += *m.Quantity
			}
		}
	}

	p, _ := productRepo.GetByID(testProductID)
	assert.Equal(t, p.Quantity, replayed, "reproducir el libro debe dar la cantidad vigente")
	assert.Equal(t, int64(8), p.Quantity)
}
