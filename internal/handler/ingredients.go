package handler

import (
	"net/http"

	"donmenu/internal/apierror"
	"donmenu/internal/dto"
	"donmenu/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type IngredientsHandler struct{ svc service.IngredientService }

func NewIngredientsHandler(svc service.IngredientService) *IngredientsHandler {
	return &IngredientsHandler{svc: svc}
}

// Create godoc
// @Summary Cadastra um insumo
// @Tags ingredients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateIngredientRequest true "Dados do insumo"
// @Success 201 {object} dto.IngredientResponse
// @Failure 409 {object} apierror.APIError
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/ingredients [post]
func (h *IngredientsHandler) Create(c *gin.Context) {
	var req dto.CreateIngredientRequest
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

func (h *IngredientsHandler) List(c *gin.Context) {
	var filter dto.IngredientFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("erro ao listar insumos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *IngredientsHandler) Get(c *gin.Context) {
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

func (h *IngredientsHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.UpdateIngredientRequest
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

// Delete refuses with 409 while any recipe still references the ingredient.
func (h *IngredientsHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
