package handler

import (
	"time"

	billingapp "github.com/camposanto/backend/internal/application/billing"
	"github.com/camposanto/backend/internal/domain/billing"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReceivableHandler handles the receivables ledger endpoints
type ReceivableHandler struct {
	BaseHandler
	ledgerService *billingapp.LedgerService
}

// NewReceivableHandler creates a new ReceivableHandler
func NewReceivableHandler(ledgerService *billingapp.LedgerService) *ReceivableHandler {
	return &ReceivableHandler{ledgerService: ledgerService}
}

// RegisterPaymentRequest represents a request to register a payment
type RegisterPaymentRequest struct {
	Amount      string    `json:"amount" binding:"required,decimalstr"`
	PaymentDate time.Time `json:"payment_date" binding:"required"`
}

// ApplyDiscountRequest represents a request to apply a discount
type ApplyDiscountRequest struct {
	Discount string `json:"discount" binding:"required,decimalstr"`
}

// List godoc
// @Summary      List receivables
// @Tags         receivables
// @Security     BearerAuth
// @Router       /receivables [get]
func (h *ReceivableHandler) List(c *gin.Context) {
	scope, ok := h.operationScope(c)
	if !ok {
		return
	}
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}

	page, err := h.ledgerService.List(c.Request.Context(), scope, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get godoc
// @Summary      Get receivable by ID
// @Tags         receivables
// @Security     BearerAuth
// @Router       /receivables/{id} [get]
func (h *ReceivableHandler) Get(c *gin.Context) {
	scope, ok := h.operationScope(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid receivable ID format")
		return
	}

	receivable, err := h.ledgerService.Get(c.Request.Context(), scope, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, receivable)
}

// ListBySource godoc
// @Summary      List receivables generated by a service event
// @Tags         receivables
// @Security     BearerAuth
// @Router       /receivables/source/{kind}/{id} [get]
func (h *ReceivableHandler) ListBySource(c *gin.Context) {
	scope, ok := h.operationScope(c)
	if !ok {
		return
	}

	kind := billing.SourceKind(c.Param("kind"))
	if !kind.IsValid() {
		h.BadRequest(c, "Invalid source kind")
		return
	}

	sourceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid source ID format")
		return
	}

	receivables, err := h.ledgerService.ListBySource(c.Request.Context(), scope, kind, sourceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, receivables)
}

// RegisterPayment godoc
// @Summary      Register a payment against a receivable
// @Tags         receivables
// @Security     BearerAuth
// @Router       /receivables/{id}/payments [post]
func (h *ReceivableHandler) RegisterPayment(c *gin.Context) {
	scope, ok := h.operationScope(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid receivable ID format")
		return
	}

	var req RegisterPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		h.BadRequest(c, "Invalid amount")
		return
	}

	receivable, err := h.ledgerService.RegisterPayment(c.Request.Context(), scope, billingapp.RegisterPaymentInput{
		ReceivableID: id,
		Amount:       amount,
		PaymentDate:  req.PaymentDate,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, receivable)
}

// ApplyDiscount godoc
// @Summary      Apply a discount to a receivable
// @Tags         receivables
// @Security     BearerAuth
// @Router       /receivables/{id}/discount [put]
func (h *ReceivableHandler) ApplyDiscount(c *gin.Context) {
	scope, ok := h.operationScope(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid receivable ID format")
		return
	}

	var req ApplyDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	discount, err := decimal.NewFromString(req.Discount)
	if err != nil {
		h.BadRequest(c, "Invalid discount")
		return
	}

	receivable, err := h.ledgerService.ApplyDiscount(c.Request.Context(), scope, billingapp.ApplyDiscountInput{
		ReceivableID: id,
		Discount:     discount,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, receivable)
}
