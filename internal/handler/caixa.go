package handler

import (
	"net/http"

	"donmenu/internal/apierror"
	"donmenu/internal/dto"
	"donmenu/internal/middleware"
	"donmenu/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CaixaHandler struct{ svc service.CaixaService }

func NewCaixaHandler(svc service.CaixaService) *CaixaHandler { return &CaixaHandler{svc: svc} }

// Open godoc
// @Summary Abre uma sessão de caixa
// @Tags caixa
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.OpenCaixaRequest true "Valor de abertura"
// @Success 201 {object} dto.CaixaSessionResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/caixa/open [post]
func (h *CaixaHandler) Open(c *gin.Context) {
	var req dto.OpenCaixaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	userID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Open(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CaixaHandler) RecordEntry(c *gin.Context) {
	var req dto.CaixaEntryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RecordEntry(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Close godoc
// @Summary Fecha a sessão aberta e enfileira o relatório de fechamento
// @Tags caixa
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CloseCaixaRequest true "Valor declarado"
// @Success 200 {object} dto.CaixaSessionResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/caixa/close [post]
func (h *CaixaHandler) Close(c *gin.Context) {
	var req dto.CloseCaixaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Close(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CaixaHandler) GetActive(c *gin.Context) {
	resp, err := h.svc.GetActive(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CaixaHandler) Get(c *gin.Context) {
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

func (h *CaixaHandler) History(c *gin.Context) {
	page, limit := paginationParams(c, 20, 100)
	resp, err := h.svc.History(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("erro ao listar sessões"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
