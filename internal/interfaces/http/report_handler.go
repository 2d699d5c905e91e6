package http

import (
	"bytes"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/analytics"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
)

// ReportHandler exportes del libro mayor (CSV para Excel, PDF imprimible).
type ReportHandler struct {
	ledgerUC *analytics.LedgerUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(ledgerUC *analytics.LedgerUseCase) *ReportHandler {
	return &ReportHandler{ledgerUC: ledgerUC}
}

// LedgerCSV godoc
// @Summary      Exportar libro de movimientos a CSV
// @Description  Separado por punto y coma y codificado ISO-8859-1 para Excel.
// @Tags         reports
// @Security     Bearer
// @Produce      text/csv
// @Param        month  query  int  false  "Mes (1-12)"
// @Param        year   query  int  false  "Año"
// @Success      200  {string}  string
// @Router       /api/reports/ledger.csv [get]
func (h *ReportHandler) LedgerCSV(c *fiber.Ctx) error {
	month, year, ok := parseMonthYear(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "month y year deben ser numéricos"})
	}
	var buf bytes.Buffer
	if err := h.ledgerUC.ExportCSV(c.Context(), &buf, month, year); err != nil {
		return mapEngineError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=ISO-8859-1")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="movimientos.csv"`)
	return c.Send(buf.Bytes())
}

// LedgerPDF godoc
// @Summary      Reporte PDF del libro de movimientos
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        month  query  int  false  "Mes (1-12)"
// @Param        year   query  int  false  "Año"
// @Success      200  {string}  string
// @Router       /api/reports/ledger.pdf [get]
func (h *ReportHandler) LedgerPDF(c *fiber.Ctx) error {
	month, year, ok := parseMonthYear(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "month y year deben ser numéricos"})
	}
	pdfBytes, err := h.ledgerUC.ReportPDF(c.Context(), month, year)
	if err != nil {
		return mapEngineError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="movimientos.pdf"`)
	return c.Send(pdfBytes)
}
