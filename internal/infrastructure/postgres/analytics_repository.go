package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard y el libro mayor.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetMovementTotals suma cantidades y gastos del rango. from/to nil = sin límite.
// Usa COALESCE para devolver cero si no hay filas (período sin movimientos).
func (r *AnalyticsRepo) GetMovementTotals(ctx context.Context, from, to *time.Time) (repository.MovementTotals, error) {
	const query = `
	SELECT
	    COALESCE(SUM(quantity) FILTER (WHERE kind = 'incoming'), 0) AS incoming,
	    COALESCE(SUM(quantity) FILTER (WHERE kind = 'outgoing'), 0) AS outgoing,
	    COALESCE(SUM(amount)   FILTER (WHERE kind = 'expense'),  0) AS expenses
	FROM movements
	WHERE ($1::timestamptz IS NULL OR occurred_at >= $1)
	  AND ($2::timestamptz IS NULL OR occurred_at <= $2)`

	var totals repository.MovementTotals
	err := r.pool.QueryRow(ctx, query, from, to).
		Scan(&totals.Incoming, &totals.Outgoing, &totals.Expenses)
	if err != nil {
		return repository.MovementTotals{}, fmt.Errorf("analytics.GetMovementTotals: %w", err)
	}
	return totals, nil
}

// GetTopMovedProducts devuelve los `limit` productos con más movimientos.
// Los movimientos sin producto (gastos, eliminaciones) no cuentan; empates se
// resuelven por orden de creación del producto para una salida estable.
func (r *AnalyticsRepo) GetTopMovedProducts(ctx context.Context, limit int) ([]dto.TopProductDTO, error) {
	const query = `
	SELECT p.id, p.name, COUNT(m.id) AS movement_count
	FROM movements m
	JOIN products p ON p.id = m.product_id
	GROUP BY p.id, p.name, p.created_at
	ORDER BY movement_count DESC, p.created_at ASC
	LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetTopMovedProducts: %w", err)
	}
	defer rows.Close()

	results := []dto.TopProductDTO{}
	for rows.Next() {
		var item dto.TopProductDTO
		if err := rows.Scan(&item.ProductID, &item.Name, &item.MovementCount); err != nil {
			return nil, fmt.Errorf("analytics.GetTopMovedProducts scan: %w", err)
		}
		results = append(results, item)
	}
	return results, rows.Err()
}

// GetLowStockProducts devuelve los productos con quantity <= threshold,
// ascendente por cantidad (los más urgentes primero).
func (r *AnalyticsRepo) GetLowStockProducts(ctx context.Context, threshold int64) ([]dto.LowStockProductDTO, error) {
	const query = `
	SELECT id, name, quantity, unit_cost
	FROM products
	WHERE quantity <= $1
	ORDER BY quantity ASC, name ASC`

	rows, err := r.pool.Query(ctx, query, threshold)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetLowStockProducts: %w", err)
	}
	defer rows.Close()

	results := []dto.LowStockProductDTO{}
	for rows.Next() {
		var item dto.LowStockProductDTO
		if err := rows.Scan(&item.ProductID, &item.Name, &item.Quantity, &item.UnitCost); err != nil {
			return nil, fmt.Errorf("analytics.GetLowStockProducts scan: %w", err)
		}
		results = append(results, item)
	}
	return results, rows.Err()
}

// ListLedger devuelve los movimientos del rango, del más reciente al más
// antiguo, con nombre de producto y de actor resueltos por join explícito
// (NULL cuando la referencia no existe).
func (r *AnalyticsRepo) ListLedger(ctx context.Context, from, to *time.Time) ([]repository.LedgerRow, error) {
	const query = `
	SELECT m.id, p.name, m.kind, m.quantity, m.amount, m.description, m.occurred_at, u.name
	FROM movements m
	LEFT JOIN products p ON p.id = m.product_id
	LEFT JOIN users    u ON u.id = m.actor_id
	WHERE ($1::timestamptz IS NULL OR m.occurred_at >= $1)
	  AND ($2::timestamptz IS NULL OR m.occurred_at <= $2)
	ORDER BY m.occurred_at DESC, m.id DESC`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics.ListLedger: %w", err)
	}
	defer rows.Close()

	var results []repository.LedgerRow
	for rows.Next() {
		var row repository.LedgerRow
		if err := rows.Scan(
			&row.MovementID,
			&row.ProductName,
			&row.Kind,
			&row.Quantity,
			&row.Amount,
			&row.Description,
			&row.OccurredAt,
			&row.ActorName,
		); err != nil {
			return nil, fmt.Errorf("analytics.ListLedger scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
