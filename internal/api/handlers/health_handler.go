package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Version é preenchida no build via ldflags
var Version = "dev"

// HealthHandler atende os endpoints de infraestrutura
type HealthHandler struct{}

// NewHealthHandler cria um novo handler de health
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Health godoc
// @Summary      Health check
// @Tags         infra
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Version godoc
// @Summary      Versão da API
// @Tags         infra
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /version [get]
func (h *HealthHandler) Version(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"version": Version})
}
