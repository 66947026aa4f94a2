package handler

import (
	cemeteryapp "github.com/camposanto/backend/internal/application/cemetery"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RegistryHandler handles the physical registry endpoints: cemeteries,
// blocks and plots.
type RegistryHandler struct {
	BaseHandler
	registryService *cemeteryapp.RegistryService
}

// NewRegistryHandler creates a new RegistryHandler
func NewRegistryHandler(registryService *cemeteryapp.RegistryService) *RegistryHandler {
	return &RegistryHandler{registryService: registryService}
}

// CemeteryRequest represents a request to create or update a cemetery
type CemeteryRequest struct {
	Name                      string `json:"name" binding:"required,min=1,max=200"`
	Address                   string `json:"address" binding:"max=500"`
	City                      string `json:"city" binding:"max=100"`
	State                     string `json:"state" binding:"max=100"`
	MinExhumationPeriodMonths int    `json:"min_exhumation_period_months" binding:"min=0"`
}

// CreateBlockRequest represents a request to create a block
type CreateBlockRequest struct {
	CemeteryID  string `json:"cemetery_id" binding:"required,uuid"`
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=500"`
}

// CreatePlotRequest represents a request to create a plot
type CreatePlotRequest struct {
	BlockID    string `json:"block_id" binding:"required,uuid"`
	Identifier string `json:"identifier" binding:"required,min=1,max=50"`
	Capacity   int    `json:"capacity" binding:"min=0"`
}

// UpdatePlotRequest represents a request to update a plot
type UpdatePlotRequest struct {
	Identifier string `json:"identifier" binding:"required,min=1,max=50"`
	Capacity   int    `json:"capacity" binding:"min=0"`
}

// ReservePlotRequest represents a request to reserve a plot
type ReservePlotRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// CreateCemetery godoc
// @Summary      Register a cemetery
// @Tags         cemeteries
// @Security     BearerAuth
// @Router       /cemeteries [post]
func (h *RegistryHandler) CreateCemetery(c *gin.Context) {
	scope, ok := h.operationScope(c)
	if !ok {
		return
	}

	var req CemeteryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	cem, err := h.registryService.CreateCemetery(c.Request.Context(), scope, cemeteryapp.CreateCemeteryInput{
		Name:                      req.Name,
		Address:                   req.Address,
		City:                      req.City,
		State:                     req.State,
		MinExhumationPeriodMonths: req.MinExhumationPeriodMonths,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, cem)
}

// ListCemeteries godoc
// @Summary      List cemeteries
// @Tags         cemeteries
// @Security     BearerAuth
// @Router       /cemeteries [get]
func (h *RegistryHandler) ListCemeteries(c *gin.Context) {
	scope, ok := h.operationScope(c)
	if !ok {
		return
	}
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}

	page, err := h.registryService.ListCemeteries(c.Request.Context(), scope, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetCemetery godoc
// @Summary      Get cemetery by ID
// @Tags         cemeteries
// @Security     BearerAuth
// @Router       /cemeteries/{id} [get]
func (h *RegistryHandler) GetCemetery(c *gin.Context) {
	scope, ok := h.operationScope(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid cemetery ID format")
		return
	}

	cem, err := h.registryService.GetCemetery(c.Request.Context(), scope, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cem)
}

// UpdateCemetery godoc
// @Summary      Update a cemetery
// @Tags         cemeteries
// @Security     BearerAuth
// @Router       /cemeteries/{id} [put]
func (h *RegistryHandler) UpdateCemetery(c *gin.Context) {
	scope, ok := h.operationScope(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid cemetery ID format")
		return
	}

	var req CemeteryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	cem, err := h.registryService.UpdateCemetery(c.Request.Context(), scope, id, cemeteryapp.UpdateCemeteryInput{
		Name:                      req.Name,
		Address:                   req.Address,
		City:                      req.City,
		State:                     req.State,
		MinExhumationPeriodMonths: req.MinExhumationPeriodMonths,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cem)
}

// DeleteCemetery godoc
// @Summary      Delete a cemetery
// @Tags         cemeteries
// @Security     BearerAuth
// @Router       /cemeteries/{id} [delete]
func (h *RegistryHandler) DeleteCemetery(c *gin.Context) {
	scope, ok := h.operationScope(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid cemetery ID format")
		return
	}

	if err := h.registryService.DeleteCemetery(c.Request.Context(), scope, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// CreateBlock godoc
// @Summary      Register a block
// @Tags         blocks
// @Security     BearerAuth
// @Router       /blocks [post]
func (h *RegistryHandler) CreateBlock(c *gin.Context) {
	scope, ok := h.operationScope(c)
	if !ok {
		return
	}

	var req CreateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	cemeteryID, err := uuid.Parse(req.CemeteryID)
	if err != nil {
		h.BadRequest(c, "Invalid cemetery ID format")
		return
	}

	block, err := h.registryService.CreateBlock(c.Request.Context(), scope, cemeteryapp.CreateBlockInput{
		CemeteryID:  cemeteryID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, block)
}

// ListBlocks godoc
// @Summary      List blocks of a cemetery
// @Tags         blocks
// @Security     BearerAuth
// @Router       /cemeteries/{id}/blocks [get]
func (h *RegistryHandler) ListBlocks(c *gin.Context) {
	scope, ok := h.operationScope(c)
	if !ok {
		return
	}

	cemeteryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid cemetery ID format")
		return
	}

	filter, ok := h.listFilter(c)
	if !ok {
		return
	}

	page, err := h.registryService.ListBlocks(c.Request.Context(), scope, cemeteryID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// DeleteBlock godoc
// @Summary      Delete a block
// @Tags         blocks
// @Security     BearerAuth
// @Router       /blocks/{id} [delete]
func (h *RegistryHandler) DeleteBlock(c *gin.Context) {
	scope, ok := h.operationScope(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid block ID format")
		return
	}

	if err := h.registryService.DeleteBlock(c.Request.Context(), scope, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// CreatePlot godoc
// @Summary      Register a plot
// @Tags         plots
// @Security     BearerAuth
// @Router       /plots [post]
func (h *RegistryHandler) CreatePlot(c *gin.Context) {
	scope, ok := h.operationScope(c)
	if !ok {
		return
	}

	var req CreatePlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	blockID, err := uuid.Parse(req.BlockID)
	if err != nil {
		h.BadRequest(c, "Invalid block ID format")
		return
	}

	plot, err := h.registryService.CreatePlot(c.Request.Context(), scope, cemeteryapp.CreatePlotInput{
		BlockID:    blockID,
		Identifier: req.Identifier,
		Capacity:   req.Capacity,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, plot)
}

// ListPlots godoc
// @Summary      List plots of a block
// @Tags         plots
// @Security     BearerAuth
// @Router       /blocks/{id}/plots [get]
func (h *RegistryHandler) ListPlots(c *gin.Context) {
	scope, ok := h.operationScope(c)
	if !ok {
		return
	}

	blockID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid block ID format")
		return
	}

	filter, ok := h.listFilter(c)
	if !ok {
		return
	}

	page, err := h.registryService.ListPlots(c.Request.Context(), scope, blockID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetPlot godoc
// @Summary      Get plot by ID
// @Tags         plots
// @Security     BearerAuth
// @Router       /plots/{id} [get]
func (h *RegistryHandler) GetPlot(c *gin.Context) {
	scope, ok := h.operationScope(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid plot ID format")
		return
	}

	plot, err := h.registryService.GetPlot(c.Request.Context(), scope, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, plot)
}

// UpdatePlot godoc
// @Summary      Update a plot
// @Tags         plots
// @Security     BearerAuth
// @Router       /plots/{id} [put]
func (h *RegistryHandler) UpdatePlot(c *gin.Context) {
	scope, ok := h.operationScope(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid plot ID format")
		return
	}

	var req UpdatePlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	plot, err := h.registryService.UpdatePlot(c.Request.Context(), scope, id, cemeteryapp.UpdatePlotInput{
		Identifier: req.Identifier,
		Capacity:   req.Capacity,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, plot)
}

// ReservePlot godoc
// @Summary      Reserve a plot
// @Tags         plots
// @Security     BearerAuth
// @Router       /plots/{id}/reserve [post]
func (h *RegistryHandler) ReservePlot(c *gin.Context) {
	scope, ok := h.operationScope(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid plot ID format")
		return
	}

	var req ReservePlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	plot, err := h.registryService.ReservePlot(c.Request.Context(), scope, id, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, plot)
}

// ReleasePlotReservation godoc
// @Summary      Release a plot reservation
// @Tags         plots
// @Security     BearerAuth
// @Router       /plots/{id}/reserve [delete]
func (h *RegistryHandler) ReleasePlotReservation(c *gin.Context) {
	scope, ok := h.operationScope(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid plot ID format")
		return
	}

	plot, err := h.registryService.ReleasePlotReservation(c.Request.Context(), scope, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, plot)
}

// DeletePlot godoc
// @Summary      Delete a plot
// @Tags         plots
// @Security     BearerAuth
// @Router       /plots/{id} [delete]
func (h *RegistryHandler) DeletePlot(c *gin.Context) {
	scope, ok := h.operationScope(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid plot ID format")
		return
	}

	if err := h.registryService.DeletePlot(c.Request.Context(), scope, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
