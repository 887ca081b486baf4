package handler

import (
	"net/http"

	"donmenu/internal/apierror"
	"donmenu/internal/dto"
	"donmenu/internal/infra"
	"donmenu/internal/repository"
	"donmenu/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type RecipesHandler struct {
	svc  service.RecipeService
	repo repository.RecipeRepository

	restaurantName string
	pdfStoragePath string
}

func NewRecipesHandler(svc service.RecipeService, repo repository.RecipeRepository, restaurantName, pdfStoragePath string) *RecipesHandler {
	return &RecipesHandler{svc: svc, repo: repo, restaurantName: restaurantName, pdfStoragePath: pdfStoragePath}
}

// Create godoc
// @Summary Cadastra uma ficha técnica
// @Tags recipes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateRecipeRequest true "Ficha técnica"
// @Success 201 {object} dto.RecipeResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/recipes [post]
func (h *RecipesHandler) Create(c *gin.Context) {
	var req dto.CreateRecipeRequest
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

func (h *RecipesHandler) List(c *gin.Context) {
	page, limit := paginationParams(c, 20, 100)
	resp, err := h.svc.List(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("erro ao listar fichas técnicas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RecipesHandler) Get(c *gin.Context) {
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

func (h *RecipesHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.UpdateRecipeRequest
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

func (h *RecipesHandler) Delete(c *gin.Context) {
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

// Recost godoc
// @Summary Recalcula o custo da ficha com os preços atuais dos insumos
// @Tags recipes
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da ficha"
// @Success 200 {object} dto.RecipeResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/recipes/{id}/recost [post]
func (h *RecipesHandler) Recost(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.Recost(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PDF renders the ficha técnica as an A5 card and streams the file.
func (h *RecipesHandler) PDF(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	recipe, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("ficha técnica não encontrada"))
		return
	}
	path, err := infra.GenerateRecipeCardPDF(recipe, h.restaurantName, h.pdfStoragePath)
	if err != nil {
		log.Error().Err(err).Str("recipe_id", id.String()).Msg("recipes: pdf generation failed")
		c.JSON(http.StatusInternalServerError, apierror.New("erro ao gerar PDF"))
		return
	}
	c.FileAttachment(path, "ficha_"+recipe.Name+".pdf")
}
