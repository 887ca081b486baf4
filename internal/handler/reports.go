package handler

import (
	"net/http"

	"donmenu/internal/apierror"
	"donmenu/internal/dto"
	"donmenu/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportsHandler struct{ svc service.ReportService }

func NewReportsHandler(svc service.ReportService) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

// CMV godoc
// @Summary Relatório de CMV (custo da mercadoria vendida) no período
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param from query string true "Início (RFC 3339 ou YYYY-MM-DD)"
// @Param to query string true "Fim (exclusivo)"
// @Success 200 {object} dto.CMVReportResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/reports/cmv [get]
func (h *ReportsHandler) CMV(c *gin.Context) {
	var filter dto.ReportWindowFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.CMV(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportsHandler) Summary(c *gin.Context) {
	var filter dto.ReportWindowFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Summary(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
