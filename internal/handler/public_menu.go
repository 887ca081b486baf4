package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"donmenu/internal/apierror"
	"donmenu/internal/dto"
	"donmenu/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const menuCacheKey = "menu:public"

// PublicMenuHandler serves the customer-facing cardápio.
// No authentication required — no side effects whatsoever.
type PublicMenuHandler struct {
	svc      service.MenuService
	rdb      *redis.Client
	name     string
	cacheTTL time.Duration
}

func NewPublicMenuHandler(svc service.MenuService, rdb *redis.Client, restaurantName string, cacheTTLMinutes int) *PublicMenuHandler {
	return &PublicMenuHandler{
		svc:      svc,
		rdb:      rdb,
		name:     restaurantName,
		cacheTTL: time.Duration(cacheTTLMinutes) * time.Minute,
	}
}

// Get godoc
// @Summary Cardápio público (sem autenticação)
// @Tags menu
// @Produce json
// @Success 200 {object} dto.PublicMenuResponse
// @Router /v1/menu [get]
func (h *PublicMenuHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	// 1. Try Redis cache
	if cached, err := h.rdb.Get(ctx, menuCacheKey).Bytes(); err == nil {
		var resp dto.PublicMenuResponse
		if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	// 2. Cache miss — query DB
	resp, err := h.svc.PublicMenu(ctx, h.name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("erro ao montar cardápio"))
		return
	}

	// 3. Populate cache — best effort, ignore errors
	if b, jsonErr := json.Marshal(resp); jsonErr == nil {
		_ = h.rdb.Set(context.Background(), menuCacheKey, b, h.cacheTTL).Err()
	}

	c.JSON(http.StatusOK, resp)
}

// InvalidateMenuCache drops the cached cardápio. Called by menu write
// middleware so edits show up without waiting for the TTL.
func InvalidateMenuCache(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if c.Writer.Status() < 400 {
			_ = rdb.Del(context.Background(), menuCacheKey).Err()
		}
	}
}
