package repository

import (
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// ProductRepository puerto de persistencia para Product.
// Las implementaciones devuelven (nil, nil) cuando el registro no existe.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetByIDForUpdate bloquea la fila del producto (SELECT FOR UPDATE) dentro
	// de la transacción actual. Solo tiene sentido con repos atados a una tx.
	GetByIDForUpdate(id string) (*entity.Product, error)
	GetByName(name string) (*entity.Product, error)
	List() ([]*entity.Product, error)
	Update(product *entity.Product) error
	UpdateQuantity(id string, quantity int64, updatedAt time.Time) error
	Delete(id string) error
}
