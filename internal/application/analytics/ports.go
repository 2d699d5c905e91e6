package analytics

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
)

// LedgerPDFGenerator genera la representación imprimible del libro mayor
// (conciliación física de inventario). Implementado en infraestructura.
type LedgerPDFGenerator interface {
	GenerateLedgerPDF(ctx context.Context, title string, entries []dto.LedgerEntryDTO, totals dto.LedgerTotalsDTO) ([]byte, error)
}
