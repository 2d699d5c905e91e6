// Package analytics contiene los casos de uso de solo lectura: el dashboard
// y las vistas del libro mayor. Nunca muta estado.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/clock"
)

const dashboardTopProducts = 5 // número de productos en el widget del dashboard

// DashboardUseCase arma las tarjetas del dashboard: totales del mes en curso,
// productos más movidos y alertas de stock bajo.
//
// Política de gastos: la tarjeta reporta los gastos del mes en curso, en la
// misma ventana que entradas y salidas. El total histórico sigue disponible
// en la vista del libro mayor sin filtro.
type DashboardUseCase struct {
	analyticsRepo  repository.AnalyticsRepository
	clock          clock.Clock
	alertThreshold int64
}

// NewDashboardUseCase construye el caso de uso. threshold es el umbral de
// alerta de stock bajo (configurable, 10 por defecto).
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, clk clock.Clock, threshold int64) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, clock: clk, alertThreshold: threshold}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Tres llamadas en paralelo:
//  1. GetMovementTotals(mes en curso) → MonthIncoming/MonthOutgoing/MonthExpenses
//  2. GetTopMovedProducts(5)          → TopProducts
//  3. GetLowStockProducts(umbral)     → LowStock
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.clock.Now()

	// Mes en curso: día 1 a las 00:00 hasta ahora, en la zona configurada.
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, uc.clock.Location())

	type totalsResult struct {
		totals repository.MovementTotals
		err    error
	}
	type topResult struct {
		products []dto.TopProductDTO
		err      error
	}
	type lowStockResult struct {
		products []dto.LowStockProductDTO
		err      error
	}

	totalsCh := make(chan totalsResult, 1)
	topCh := make(chan topResult, 1)
	lowCh := make(chan lowStockResult, 1)

	go func() {
		t, err := uc.analyticsRepo.GetMovementTotals(ctx, &monthStart, &now)
		totalsCh <- totalsResult{t, err}
	}()
	go func() {
		p, err := uc.analyticsRepo.GetTopMovedProducts(ctx, dashboardTopProducts)
		topCh <- topResult{p, err}
	}()
	go func() {
		p, err := uc.analyticsRepo.GetLowStockProducts(ctx, uc.alertThreshold)
		lowCh <- lowStockResult{p, err}
	}()

	totals := <-totalsCh
	top := <-topCh
	low := <-lowCh

	if totals.err != nil {
		return nil, fmt.Errorf("dashboard: totales del mes: %w", totals.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("dashboard: productos más movidos: %w", top.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", low.err)
	}

	return &dto.DashboardSummaryDTO{
		MonthIncoming: totals.totals.Incoming,
		MonthOutgoing: totals.totals.Outgoing,
		MonthExpenses: totals.totals.Expenses,
		TopProducts:   top.products,
		LowStock:      low.products,
		DateLabel:     monthLabel(now),
	}, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
