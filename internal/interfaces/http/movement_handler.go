package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/analytics"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/ledger"
)

// MovementHandler maneja el registro de movimientos y la vista del libro mayor.
type MovementHandler struct {
	engine   *ledger.Engine
	ledgerUC *analytics.LedgerUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(engine *ledger.Engine, ledgerUC *analytics.LedgerUseCase) *MovementHandler {
	return &MovementHandler{engine: engine, ledgerUC: ledgerUC}
}

// Register godoc
// @Summary      Registrar movimiento
// @Description  incoming/outgoing requieren product_id y quantity positiva;
// @Description  expense requiere amount no negativo. Otros kinds se rechazan.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "kind, product_id, quantity, amount, description"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.engine.RegisterMovement(c.Context(), ledger.MovementInput{
		Kind:        in.Kind,
		ProductID:   in.ProductID,
		Quantity:    in.Quantity,
		Amount:      in.Amount,
		Description: in.Description,
	}, GetUserID(c))
	if err != nil {
		return mapEngineError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementResponse{
		ID:          mov.ID,
		ProductID:   mov.ProductID,
		Kind:        mov.Kind,
		Quantity:    mov.Quantity,
		Amount:      mov.Amount,
		Description: mov.Description,
		OccurredAt:  mov.OccurredAt,
		ActorID:     mov.ActorID,
	})
}

// Ledger godoc
// @Summary      Libro de movimientos
// @Description  Movimientos del más reciente al más antiguo, con totales
// @Description  calculados sobre las filas filtradas.
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        month  query  int  false  "Mes (1-12)"
// @Param        year   query  int  false  "Año"
// @Success      200    {object}  dto.LedgerViewResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) Ledger(c *fiber.Ctx) error {
	month, year, ok := parseMonthYear(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "month y year deben ser numéricos"})
	}
	out, err := h.ledgerUC.View(c.Context(), month, year)
	if err != nil {
		return mapEngineError(c, err)
	}
	return c.JSON(out)
}

// parseMonthYear lee los filtros opcionales ?month= y ?year=.
func parseMonthYear(c *fiber.Ctx) (month, year *int, ok bool) {
	if raw := c.Query("month"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, nil, false
		}
		month = &n
	}
	if raw := c.Query("year"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, nil, false
		}
		year = &n
	}
	return month, year, true
}
