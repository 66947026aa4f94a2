package handler

import (
	"time"

	intermentapp "github.com/camposanto/backend/internal/application/interment"
	"github.com/camposanto/backend/internal/domain/billing"
	"github.com/camposanto/backend/internal/domain/interment"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LifecycleHandler handles the interment lifecycle endpoints: concession
// contracts, burials, exhumations and transfers.
type LifecycleHandler struct {
	BaseHandler
	engine *intermentapp.LifecycleEngine
}

// NewLifecycleHandler creates a new LifecycleHandler
func NewLifecycleHandler(engine *intermentapp.LifecycleEngine) *LifecycleHandler {
	return &LifecycleHandler{engine: engine}
}

// ChargeRequest represents the payment terms of a priced service
type ChargeRequest struct {
	PaymentMode  string `json:"payment_mode" binding:"required,oneof=FREE SINGLE INSTALLMENTS"`
	Value        string `json:"value" binding:"omitempty,decimalstr"`
	Installments int    `json:"installments" binding:"min=0"`
}

func (r ChargeRequest) toInput() (intermentapp.ChargeInput, error) {
	value := decimal.Zero
	if r.Value != "" {
		var err error
		value, err = decimal.NewFromString(r.Value)
		if err != nil {
			return intermentapp.ChargeInput{}, err
		}
	}
	return intermentapp.ChargeInput{
		Mode:         billing.PaymentMode(r.PaymentMode),
		Value:        value,
		Installments: r.Installments,
	}, nil
}

// CreateContractRequest represents a request to create a concession contract
type CreateContractRequest struct {
	PlotID          string        `json:"plot_id" binding:"required,uuid"`
	GranteeName     string        `json:"grantee_name" binding:"required,min=1,max=200"`
	GranteeDocument string        `json:"grantee_document" binding:"max=50"`
	GranteeAddress  string        `json:"grantee_address" binding:"max=500"`
	ContractDate    time.Time     `json:"contract_date" binding:"required"`
	Charge          ChargeRequest `json:"charge" binding:"required"`
}

// CreateBurialRequest represents a request to record a burial
type CreateBurialRequest struct {
	PlotID       string        `json:"plot_id" binding:"required,uuid"`
	DeceasedName string        `json:"deceased_name" binding:"required,min=1,max=200"`
	MotherName   string        `json:"mother_name" binding:"max=200"`
	DeathDate    time.Time     `json:"death_date" binding:"required"`
	BurialDate   time.Time     `json:"burial_date" binding:"required"`
	DeathCause   string        `json:"death_cause" binding:"max=500"`
	Charge       ChargeRequest `json:"charge" binding:"required"`
}

// CreateExhumationRequest represents a request to record an exhumation
type CreateExhumationRequest struct {
	BurialID      string        `json:"burial_id" binding:"required,uuid"`
	Date          time.Time     `json:"date" binding:"required"`
	Reason        string        `json:"reason" binding:"max=500"`
	RequesterName string        `json:"requester_name" binding:"max=200"`
	Charge        ChargeRequest `json:"charge" binding:"required"`
}

// CreateTransferRequest represents a request to record a transfer
type CreateTransferRequest struct {
	BurialID            string        `json:"burial_id" binding:"required,uuid"`
	Date                time.Time     `json:"date" binding:"required"`
	DestinationKind     string        `json:"destination_kind" binding:"required,oneof=PLOT EXTERNAL_CEMETERY OSSUARY"`
	DestinationPlotID   *string       `json:"destination_plot_id" binding:"omitempty,uuid"`
	DestinationCemetery string        `json:"destination_cemetery" binding:"max=200"`
	OssuaryReference    string        `json:"ossuary_reference" binding:"max=200"`
	Charge              ChargeRequest `json:"charge" binding:"required"`
}

// CreateContract godoc
// @Summary      Create a concession contract
// @Tags         contracts
// @Security     BearerAuth
// @Router       /contracts [post]
func (h *LifecycleHandler) CreateContract(c *gin.Context) {
	scope, ok := h.operationScope(c)
	if !ok {
		return
	}

	var req CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	plotID, err := uuid.Parse(req.PlotID)
	if err != nil {
		h.BadRequest(c, "Invalid plot ID format")
		return
	}
	charge, err := req.Charge.toInput()
	if err != nil {
		h.BadRequest(c, "Invalid charge value")
		return
	}

	contract, err := h.engine.CreateContract(c.Request.Context(), scope, intermentapp.CreateContractInput{
		PlotID:          plotID,
		GranteeName:     req.GranteeName,
		GranteeDocument: req.GranteeDocument,
		GranteeAddress:  req.GranteeAddress,
		ContractDate:    req.ContractDate,
		Charge:          charge,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, contract)
}

// GetContract godoc
// @Summary      Get contract by ID
// @Tags         contracts
// @Security     BearerAuth
// @Router       /contracts/{id} [get]
func (h *LifecycleHandler) GetContract(c *gin.Context) {
	scope, ok := h.operationScope(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid contract ID format")
		return
	}

	contract, err := h.engine.GetContract(c.Request.Context(), scope, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, contract)
}

// ListContracts godoc
// @Summary      List concession contracts
// @Tags         contracts
// @Security     BearerAuth
// @Router       /contracts [get]
func (h *LifecycleHandler) ListContracts(c *gin.Context) {
	scope, ok := h.operationScope(c)
	if !ok {
		return
	}
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}

	page, err := h.engine.ListContracts(c.Request.Context(), scope, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// DeleteContract godoc
// @Summary      Delete a concession contract
// @Tags         contracts
// @Security     BearerAuth
// @Router       /contracts/{id} [delete]
func (h *LifecycleHandler) DeleteContract(c *gin.Context) {
	scope, ok := h.operationScope(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid contract ID format")
		return
	}

	if err := h.engine.DeleteContract(c.Request.Context(), scope, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// CreateBurial godoc
// @Summary      Record a burial
// @Tags         burials
// @Security     BearerAuth
// @Router       /burials [post]
func (h *LifecycleHandler) CreateBurial(c *gin.Context) {
	scope, ok := h.operationScope(c)
	if !ok {
		return
	}

	var req CreateBurialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	plotID, err := uuid.Parse(req.PlotID)
	if err != nil {
		h.BadRequest(c, "Invalid plot ID format")
		return
	}
	charge, err := req.Charge.toInput()
	if err != nil {
		h.BadRequest(c, "Invalid charge value")
		return
	}

	burial, err := h.engine.CreateBurial(c.Request.Context(), scope, intermentapp.CreateBurialInput{
		PlotID:       plotID,
		DeceasedName: req.DeceasedName,
		MotherName:   req.MotherName,
		DeathDate:    req.DeathDate,
		BurialDate:   req.BurialDate,
		DeathCause:   req.DeathCause,
		Charge:       charge,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, burial)
}

// GetBurial godoc
// @Summary      Get burial by ID
// @Tags         burials
// @Security     BearerAuth
// @Router       /burials/{id} [get]
func (h *LifecycleHandler) GetBurial(c *gin.Context) {
	scope, ok := h.operationScope(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid burial ID format")
		return
	}

	burial, err := h.engine.GetBurial(c.Request.Context(), scope, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, burial)
}

// ListBurialsForPlot godoc
// @Summary      List burials of a plot
// @Tags         burials
// @Security     BearerAuth
// @Router       /plots/{id}/burials [get]
func (h *LifecycleHandler) ListBurialsForPlot(c *gin.Context) {
	scope, ok := h.operationScope(c)
	if !ok {
		return
	}

	plotID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid plot ID format")
		return
	}

	filter, ok := h.listFilter(c)
	if !ok {
		return
	}

	page, err := h.engine.ListBurialsForPlot(c.Request.Context(), scope, plotID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// DeleteBurial godoc
// @Summary      Delete a burial
// @Tags         burials
// @Security     BearerAuth
// @Router       /burials/{id} [delete]
func (h *LifecycleHandler) DeleteBurial(c *gin.Context) {
	scope, ok := h.operationScope(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid burial ID format")
		return
	}

	if err := h.engine.DeleteBurial(c.Request.Context(), scope, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// CreateExhumation godoc
// @Summary      Record an exhumation
// @Tags         exhumations
// @Security     BearerAuth
// @Router       /exhumations [post]
func (h *LifecycleHandler) CreateExhumation(c *gin.Context) {
	scope, ok := h.operationScope(c)
	if !ok {
		return
	}

	var req CreateExhumationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	burialID, err := uuid.Parse(req.BurialID)
	if err != nil {
		h.BadRequest(c, "Invalid burial ID format")
		return
	}
	charge, err := req.Charge.toInput()
	if err != nil {
		h.BadRequest(c, "Invalid charge value")
		return
	}

	exhumation, err := h.engine.CreateExhumation(c.Request.Context(), scope, intermentapp.CreateExhumationInput{
		BurialID:      burialID,
		Date:          req.Date,
		Reason:        req.Reason,
		RequesterName: req.RequesterName,
		Charge:        charge,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, exhumation)
}

// GetExhumation godoc
// @Summary      Get exhumation by ID
// @Tags         exhumations
// @Security     BearerAuth
// @Router       /exhumations/{id} [get]
func (h *LifecycleHandler) GetExhumation(c *gin.Context) {
	scope, ok := h.operationScope(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid exhumation ID format")
		return
	}

	exhumation, err := h.engine.GetExhumation(c.Request.Context(), scope, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, exhumation)
}

// ListExhumations godoc
// @Summary      List exhumations
// @Tags         exhumations
// @Security     BearerAuth
// @Router       /exhumations [get]
func (h *LifecycleHandler) ListExhumations(c *gin.Context) {
	scope, ok := h.operationScope(c)
	if !ok {
		return
	}
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}

	page, err := h.engine.ListExhumations(c.Request.Context(), scope, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// DeleteExhumation godoc
// @Summary      Delete an exhumation
// @Tags         exhumations
// @Security     BearerAuth
// @Router       /exhumations/{id} [delete]
func (h *LifecycleHandler) DeleteExhumation(c *gin.Context) {
	scope, ok := h.operationScope(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid exhumation ID format")
		return
	}

	if err := h.engine.DeleteExhumation(c.Request.Context(), scope, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// CreateTransfer godoc
// @Summary      Record a transfer
// @Tags         transfers
// @Security     BearerAuth
// @Router       /transfers [post]
func (h *LifecycleHandler) CreateTransfer(c *gin.Context) {
	scope, ok := h.operationScope(c)
	if !ok {
		return
	}

	var req CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	burialID, err := uuid.Parse(req.BurialID)
	if err != nil {
		h.BadRequest(c, "Invalid burial ID format")
		return
	}
	charge, err := req.Charge.toInput()
	if err != nil {
		h.BadRequest(c, "Invalid charge value")
		return
	}

	input := intermentapp.CreateTransferInput{
		BurialID:            burialID,
		Date:                req.Date,
		DestinationKind:     interment.DestinationKind(req.DestinationKind),
		DestinationCemetery: req.DestinationCemetery,
		OssuaryReference:    req.OssuaryReference,
		Charge:              charge,
	}
	if req.DestinationPlotID != nil {
		destPlotID, err := uuid.Parse(*req.DestinationPlotID)
		if err != nil {
			h.BadRequest(c, "Invalid destination plot ID format")
			return
		}
		input.DestinationPlotID = &destPlotID
	}

	transfer, err := h.engine.CreateTransfer(c.Request.Context(), scope, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, transfer)
}

// GetTransfer godoc
// @Summary      Get transfer by ID
// @Tags         transfers
// @Security     BearerAuth
// @Router       /transfers/{id} [get]
func (h *LifecycleHandler) GetTransfer(c *gin.Context) {
	scope, ok := h.operationScope(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid transfer ID format")
		return
	}

	transfer, err := h.engine.GetTransfer(c.Request.Context(), scope, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, transfer)
}

// ListTransfers godoc
// @Summary      List transfers
// @Tags         transfers
// @Security     BearerAuth
// @Router       /transfers [get]
func (h *LifecycleHandler) ListTransfers(c *gin.Context) {
	scope, ok := h.operationScope(c)
	if !ok {
		return
	}
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}

	page, err := h.engine.ListTransfers(c.Request.Context(), scope, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// DeleteTransfer godoc
// @Summary      Delete a transfer
// @Tags         transfers
// @Security     BearerAuth
// @Router       /transfers/{id} [delete]
func (h *LifecycleHandler) DeleteTransfer(c *gin.Context) {
	scope, ok := h.operationScope(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid transfer ID format")
		return
	}

	if err := h.engine.DeleteTransfer(c.Request.Context(), scope, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
