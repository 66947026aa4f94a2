package handler

import (
	"github.com/camposanto/backend/internal/application/ports"
	tenancyapp "github.com/camposanto/backend/internal/application/tenancy"
	"github.com/camposanto/backend/internal/domain/tenancy"
	"github.com/camposanto/backend/internal/infrastructure/auth"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// TenantHandler handles municipality (tenant) API endpoints
type TenantHandler struct {
	BaseHandler
	tenantService *tenancyapp.TenantService
	jwtService    *auth.JWTService
	uow           ports.UnitOfWork
}

// NewTenantHandler creates a new TenantHandler
func NewTenantHandler(tenantService *tenancyapp.TenantService, jwtService *auth.JWTService, uow ports.UnitOfWork) *TenantHandler {
	return &TenantHandler{
		tenantService: tenantService,
		jwtService:    jwtService,
		uow:           uow,
	}
}

// RegisterTenantRequest represents a request to register a municipality
type RegisterTenantRequest struct {
	Name       string `json:"name" binding:"required,min=1,max=200"`
	LegalName  string `json:"legal_name" binding:"max=200"`
	Document   string `json:"document" binding:"max=50"`
	OwnerName  string `json:"owner_name" binding:"required,min=1,max=200"`
	OwnerEmail string `json:"owner_email" binding:"required,email,max=200"`
}

// PenaltyRatesRequest represents a request to configure late-payment rates
type PenaltyRatesRequest struct {
	FinePercent      string `json:"fine_percent" binding:"required,decimalstr"`
	InterestPercent  string `json:"interest_percent" binding:"required,decimalstr"`
	DailyPenaltyRate string `json:"daily_penalty_rate" binding:"required,decimalstr"`
}

// RegisterTenantResponse carries the new tenant plus a bootstrap token for
// its owner account.
type RegisterTenantResponse struct {
	Tenant      *tenancy.Tenant `json:"tenant"`
	AccessToken string          `json:"access_token"`
	ExpiresAt   int64           `json:"expires_at"`
}

// Register godoc
// @Summary      Register a municipality
// @Tags         tenants
// @Router       /tenants [post]
func (h *TenantHandler) Register(c *gin.Context) {
	var req RegisterTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tenant, err := h.tenantService.RegisterTenant(c.Request.Context(), tenancyapp.RegisterTenantInput{
		Name:       req.Name,
		LegalName:  req.LegalName,
		Document:   req.Document,
		OwnerName:  req.OwnerName,
		OwnerEmail: req.OwnerEmail,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	owner, err := h.uow.Stores().Users.FindByID(c.Request.Context(), tenant.OwnerUserID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	token, expiresAt, err := h.jwtService.GenerateAccessToken(auth.GenerateTokenInput{
		TenantID: tenant.ID,
		UserID:   owner.ID,
		Name:     owner.Name,
		Master:   owner.Master,
	})
	if err != nil {
		h.InternalError(c, "Failed to issue access token")
		return
	}

	h.Created(c, RegisterTenantResponse{
		Tenant:      tenant,
		AccessToken: token,
		ExpiresAt:   expiresAt.Unix(),
	})
}

// Get godoc
// @Summary      Get the operating municipality
// @Tags         tenants
// @Security     BearerAuth
// @Router       /tenant [get]
func (h *TenantHandler) Get(c *gin.Context) {
	scope, ok := h.operationScope(c)
	if !ok {
		return
	}

	tenant, err := h.tenantService.Get(c.Request.Context(), scope)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tenant)
}

// ConfigurePenaltyRates godoc
// @Summary      Configure late-payment rates
// @Tags         tenants
// @Security     BearerAuth
// @Router       /tenant/penalty-rates [put]
func (h *TenantHandler) ConfigurePenaltyRates(c *gin.Context) {
	scope, ok := h.operationScope(c)
	if !ok {
		return
	}

	var req PenaltyRatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	fine, err := decimal.NewFromString(req.FinePercent)
	if err != nil {
		h.BadRequest(c, "Invalid fine_percent")
		return
	}
	interest, err := decimal.NewFromString(req.InterestPercent)
	if err != nil {
		h.BadRequest(c, "Invalid interest_percent")
		return
	}
	daily, err := decimal.NewFromString(req.DailyPenaltyRate)
	if err != nil {
		h.BadRequest(c, "Invalid daily_penalty_rate")
		return
	}

	tenant, err := h.tenantService.ConfigurePenaltyRates(c.Request.Context(), scope, tenancyapp.PenaltyRatesInput{
		FinePercent:      fine,
		InterestPercent:  interest,
		DailyPenaltyRate: daily,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tenant)
}
