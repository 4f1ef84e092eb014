package handlers

import (
	"net/http"

	"trimly/utils"

	"github.com/gin-gonic/gin"
)

// Healthz reports the latest dependency health snapshot.
func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, utils.GetHealthStatus())
}
