package analytics

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/clock"
)

// Nombre mostrado para movimientos sin producto (gastos y eliminaciones).
const noProductLabel = "General"

// Formato de fecha mostrado en el libro mayor, en la zona del reloj inyectado.
const ledgerDateFormat = "02/01/2006 15:04"

// LedgerUseCase vistas y exportes del libro mayor.
type LedgerUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	pdfGenerator  LedgerPDFGenerator
	clock         clock.Clock
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(analyticsRepo repository.AnalyticsRepository, pdfGenerator LedgerPDFGenerator, clk clock.Clock) *LedgerUseCase {
	return &LedgerUseCase{analyticsRepo: analyticsRepo, pdfGenerator: pdfGenerator, clock: clk}
}

// View devuelve el libro mayor, opcionalmente filtrado a un mes/año, del más
// reciente al más antiguo. Los totales se calculan sobre las filas filtradas,
// no sobre el estado global.
//
// month sin year asume el año en curso; year sin month cubre el año completo;
// ambos nil devuelve todo el libro.
func (uc *LedgerUseCase) View(ctx context.Context, month, year *int) (*dto.LedgerViewResponse, error) {
	from, to, err := uc.dateRange(month, year)
	if err != nil {
		return nil, err
	}
	rows, err := uc.analyticsRepo.ListLedger(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("libro mayor: %w", err)
	}

	entries := make([]dto.LedgerEntryDTO, 0, len(rows))
	totals := dto.LedgerTotalsDTO{Expenses: decimal.Zero}
	for _, row := range rows {
		entries = append(entries, uc.toEntry(row))
		switch row.Kind {
		case entity.MovementKindIncoming:
			if row.Quantity != nil {
				totals.Incoming += *row.Quantity
			}
		case entity.MovementKindOutgoing:
			if row.Quantity != nil {
				totals.Outgoing += *row.Quantity
			}
		case entity.MovementKindExpense:
			if row.Amount != nil {
				totals.Expenses = totals.Expenses.Add(*row.Amount)
			}
		}
	}
	return &dto.LedgerViewResponse{Entries: entries, Totals: totals, Month: month, Year: year}, nil
}

// ExportCSV escribe el libro mayor filtrado como CSV separado por punto y
// coma, codificado ISO-8859-1 para que Excel abra los acentos sin mangling.
func (uc *LedgerUseCase) ExportCSV(ctx context.Context, w io.Writer, month, year *int) error {
	view, err := uc.View(ctx, month, year)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(transform.NewWriter(w, charmap.ISO8859_1.NewEncoder()))
	cw.Comma = ';'

	if err := cw.Write([]string{"fecha", "producto", "tipo", "cantidad", "valor", "descripción", "usuario"}); err != nil {
		return fmt.Errorf("exportar csv: %w", err)
	}
	for _, e := range view.Entries {
		qty := ""
		if e.Quantity != nil {
			qty = strconv.FormatInt(*e.Quantity, 10)
		}
		amount := ""
		if e.Amount != nil {
			amount = e.Amount.StringFixed(2)
		}
		if err := cw.Write([]string{e.OccurredAt, e.ProductName, e.Kind, qty, amount, e.Description, e.Actor}); err != nil {
			return fmt.Errorf("exportar csv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReportPDF genera el reporte imprimible del libro mayor filtrado.
func (uc *LedgerUseCase) ReportPDF(ctx context.Context, month, year *int) ([]byte, error) {
	view, err := uc.View(ctx, month, year)
	if err != nil {
		return nil, err
	}
	title := "Libro de movimientos"
	switch {
	case month != nil:
		y := uc.clock.Now().Year()
		if year != nil {
			y = *year
		}
		title = fmt.Sprintf("Libro de movimientos: %s", monthLabel(time.Date(y, time.Month(*month), 1, 0, 0, 0, 0, uc.clock.Location())))
	case year != nil:
		title = fmt.Sprintf("Libro de movimientos: %d", *year)
	}
	return uc.pdfGenerator.GenerateLedgerPDF(ctx, title, view.Entries, view.Totals)
}

// dateRange traduce el filtro mes/año a un rango [from, to] en la zona
// configurada. nil/nil significa sin filtro.
func (uc *LedgerUseCase) dateRange(month, year *int) (from, to *time.Time, err error) {
	if month == nil && year == nil {
		return nil, nil, nil
	}
	if month != nil && (*month < 1 || *month > 12) {
		return nil, nil, domain.ErrInvalidInput
	}
	loc := uc.clock.Location()
	y := uc.clock.Now().Year()
	if year != nil {
		y = *year
	}
	if month == nil {
		start := time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
		end := start.AddDate(1, 0, 0).Add(-time.Nanosecond)
		return &start, &end, nil
	}
	start := time.Date(y, time.Month(*month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return &start, &end, nil
}

// toEntry resuelve nombre de producto y actor con fallback explícito y
// formatea la fecha en la zona del reloj.
func (uc *LedgerUseCase) toEntry(row repository.LedgerRow) dto.LedgerEntryDTO {
	productName := noProductLabel
	if row.ProductName != nil {
		productName = *row.ProductName
	}
	actor := ""
	if row.ActorName != nil {
		actor = *row.ActorName
	}
	return dto.LedgerEntryDTO{
		ID:          row.MovementID,
		ProductName: productName,
		Kind:        row.Kind,
		Quantity:    row.Quantity,
		Amount:      row.Amount,
		Description: row.Description,
		Actor:       actor,
		OccurredAt:  row.OccurredAt.In(uc.clock.Location()).Format(ledgerDateFormat),
	}
}
