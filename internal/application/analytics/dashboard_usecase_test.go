package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/analytics"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

func TestDashboard_TotalesDelMesEnCurso(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		rows: []repository.LedgerRow{
			// Dentro del mes en curso (marzo 2025).
			{Kind: entity.MovementKindIncoming, Quantity: qtyRef(10), OccurredAt: time.Date(2025, time.March, 2, 8, 0, 0, 0, time.UTC)},
			{Kind: entity.MovementKindOutgoing, Quantity: qtyRef(4), OccurredAt: time.Date(2025, time.March, 12, 8, 0, 0, 0, time.UTC)},
			{Kind: entity.MovementKindExpense, Amount: amtRef("2500.00"), OccurredAt: time.Date(2025, time.March, 14, 8, 0, 0, 0, time.UTC)},
			// Fuera de la ventana: mes anterior y futuro respecto al reloj.
			{Kind: entity.MovementKindIncoming, Quantity: qtyRef(99), OccurredAt: time.Date(2025, time.February, 28, 8, 0, 0, 0, time.UTC)},
			{Kind: entity.MovementKindExpense, Amount: amtRef("9999.00"), OccurredAt: time.Date(2025, time.March, 20, 8, 0, 0, 0, time.UTC)},
		},
		top: []dto.TopProductDTO{
			{ProductID: "p1", Name: "RIBBON", MovementCount: 12},
			{ProductID: "p2", Name: "GV500", MovementCount: 7},
		},
		lowStock: []dto.LowStockProductDTO{
			{ProductID: "p2", Name: "GV500", Quantity: 3, UnitCost: decimal.RequireFromString("120.00")},
		},
	}
	uc := analytics.NewDashboardUseCase(repo, frozenClock{now: testNow}, 10)

	summary, err := uc.GetSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(10), summary.MonthIncoming)
	assert.Equal(t, int64(4), summary.MonthOutgoing)
	assert.True(t, summary.MonthExpenses.Equal(decimal.RequireFromString("2500.00")),
		"los gastos de la tarjeta son solo del mes en curso hasta ahora")
	assert.Equal(t, "Marzo 2025", summary.DateLabel)

	require.Len(t, summary.TopProducts, 2)
	assert.Equal(t, "RIBBON", summary.TopProducts[0].Name)
	require.Len(t, summary.LowStock, 1)
	assert.Equal(t, int64(3), summary.LowStock[0].Quantity)
}

func TestDashboard_MesSinMovimientos(t *testing.T) {
	uc := analytics.NewDashboardUseCase(&fakeAnalyticsRepo{}, frozenClock{now: testNow}, 10)

	summary, err := uc.GetSummary(context.Background())
	require.NoError(t, err)

	assert.Zero(t, summary.MonthIncoming)
	assert.Zero(t, summary.MonthOutgoing)
	assert.True(t, summary.MonthExpenses.IsZero())
	assert.Empty(t, summary.TopProducts)
	assert.Empty(t, summary.LowStock)
	assert.Equal(t, "Marzo 2025", summary.DateLabel)
}

func TestDashboard_TopLimitadoACinco(t *testing.T) {
	top := make([]dto.TopProductDTO, 0, 8)
	for i := 0; i < 8; i++ {
		top = append(top, dto.TopProductDTO{ProductID: string(rune('a' + i)), MovementCount: int64(8 - i)})
	}
	uc := analytics.NewDashboardUseCase(&fakeAnalyticsRepo{top: top}, frozenClock{now: testNow}, 10)

	summary, err := uc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Len(t, summary.TopProducts, 5)
}
