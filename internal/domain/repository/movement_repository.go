package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// MovementRepository puerto de persistencia para el libro mayor de movimientos.
// Los movimientos son inmutables: solo Create y el borrado en cascada al
// eliminar un producto. Nunca Update.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	// DeleteByProduct elimina los movimientos ligados a un producto.
	// Se usa únicamente dentro de la cascada de DeleteProduct, después de
	// haber persistido el registro de auditoría de la eliminación.
	DeleteByProduct(productID string) error
}
