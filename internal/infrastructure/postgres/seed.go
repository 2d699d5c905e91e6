package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/pkg/clock"
)

// Catálogo inicial: se inserta con stock cero en el primer arranque.
var seedCatalog = []struct {
	name string
	cost string
}{
	{"WIQUE777X", "50.0"},
	{"WIQUE777J", "55.0"},
	{"GV500", "120.0"},
	{"RIBBON", "15.5"},
	{"LACRE LOOVI", "0.5"},
	{"PLASTICO INSUFILM", "25.0"},
	{"ETIQUETAS NF", "0.2"},
	{"ETIQUETAS QR CODE", "0.1"},
}

// SeedProducts inserta el catálogo inicial solo si la tabla products está
// vacía. Conveniencia de arranque, no lógica de negocio.
func SeedProducts(ctx context.Context, pool *pgxpool.Pool, clk clock.Clock) (int, error) {
	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return 0, fmt.Errorf("seed: contar productos: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	repo := NewProductRepository(pool)
	now := clk.Now()
	for _, item := range seedCatalog {
		cost, err := decimal.NewFromString(item.cost)
		if err != nil {
			return 0, fmt.Errorf("seed: costo de %s: %w", item.name, err)
		}
		product := &entity.Product{
			ID:        uuid.New().String(),
			Name:      item.name,
			Quantity:  0,
			UnitCost:  cost,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := repo.Create(product); err != nil {
			return 0, fmt.Errorf("seed: insertar %s: %w", item.name, err)
		}
	}
	return len(seedCatalog), nil
}
