package handler

import (
	"net/http"

	"donmenu/internal/apierror"
	"donmenu/internal/dto"
	"donmenu/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MenuItemsHandler struct{ svc service.MenuService }

func NewMenuItemsHandler(svc service.MenuService) *MenuItemsHandler {
	return &MenuItemsHandler{svc: svc}
}

func (h *MenuItemsHandler) Create(c *gin.Context) {
	var req dto.CreateMenuItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *MenuItemsHandler) List(c *gin.Context) {
	var filter dto.MenuItemFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("erro ao listar itens do cardápio"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MenuItemsHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MenuItemsHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.UpdateMenuItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MenuItemsHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.Deactivate(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// BindPricing godoc
// @Summary Define o modo de precificação do item (manual ou por ficha técnica)
// @Tags menu
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do item"
// @Param body body dto.BindPricingRequest true "Modo de precificação"
// @Success 200 {object} dto.MenuItemResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/menu-items/{id}/pricing [put]
func (h *MenuItemsHandler) BindPricing(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.BindPricingRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.BindPricing(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UnbindRecipe detaches the recipe and forces manual pricing at the
// current price.
func (h *MenuItemsHandler) UnbindRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.UnbindRecipe(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
