package handlers

import (
	"net/http"

	"trimly/backend"
	"trimly/middleware"
	"trimly/utils"

	"github.com/gin-gonic/gin"
)

// ShopHandler exposes shop and barber profiles for the discovery screens.
type ShopHandler struct {
	Client *backend.Client
}

func NewShopHandler(client *backend.Client) *ShopHandler {
	return &ShopHandler{Client: client}
}

func (h *ShopHandler) GetShop(c *gin.Context) {
	ctx := backend.WithToken(c.Request.Context(), middleware.GetRawToken(c))
	shop, err := h.Client.GetShop(ctx, c.Param("shopID"))
	if err != nil {
		utils.JSONError(c, http.StatusBadGateway, "failed to load shop", "")
		return
	}
	c.JSON(http.StatusOK, shop)
}

func (h *ShopHandler) GetBarber(c *gin.Context) {
	ctx := backend.WithToken(c.Request.Context(), middleware.GetRawToken(c))
	barber, err := h.Client.GetBarber(ctx, c.Param("barberID"))
	if err != nil {
		utils.JSONError(c, http.StatusBadGateway, "failed to load barber", "")
		return
	}
	c.JSON(http.StatusOK, barber)
}
