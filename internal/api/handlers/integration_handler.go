// Package handlers expõe o engine de integrações pela API HTTP.
package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	middlewares "github.com/vendaflow/app-inventario-search/internal/middleware"
	"github.com/vendaflow/app-inventario-search/internal/models"
	"github.com/vendaflow/app-inventario-search/internal/search"
)

// IntegrationHandler atende as rotas de administração de integrações
type IntegrationHandler struct {
	engine *search.Engine
}

// NewIntegrationHandler cria um novo handler de integrações
func NewIntegrationHandler(engine *search.Engine) *IntegrationHandler {
	return &IntegrationHandler{engine: engine}
}

// Create godoc
// @Summary      Cadastra uma integração
// @Description  Persiste o descriptor declarativo de uma API de inventário externa
// @Tags         integracoes
// @Accept       json
// @Produce      json
// @Param        X-Company-ID  header    string                        true  "Identificador do tenant"
// @Param        integracao    body      models.IntegrationDescriptor  true  "Descriptor da integração"
// @Success      201  {object}  models.IntegrationDescriptor
// @Failure      400  {object}  map[string]string
// @Router       /integracoes [post]
func (h *IntegrationHandler) Create(c *gin.Context) {
	var d models.IntegrationDescriptor
	if err := c.ShouldBindJSON(&d); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "corpo inválido: " + err.Error()})
		return
	}
	d.CompanyID = middlewares.CompanyID(c)

	if err := h.engine.CreateIntegration(c.Request.Context(), &d); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

// List godoc
// @Summary      Lista as integrações do tenant
// @Tags         integracoes
// @Produce      json
// @Param        X-Company-ID  header  string  true   "Identificador do tenant"
// @Param        ativas        query   bool    false  "Apenas integrações ativas"
// @Success      200  {array}  models.IntegrationDescriptor
// @Router       /integracoes [get]
func (h *IntegrationHandler) List(c *gin.Context) {
	onlyActive := c.Query("ativas") == "true"

	list, err := h.engine.ListIntegrations(c.Request.Context(), middlewares.CompanyID(c), onlyActive)
	if err != nil {
		respondError(c, err)
		return
	}
	if list == nil {
		list = []*models.IntegrationDescriptor{}
	}
	c.JSON(http.StatusOK, list)
}

// Get godoc
// @Summary      Busca uma integração pelo id
// @Tags         integracoes
// @Produce      json
// @Param        X-Company-ID  header  string  true  "Identificador do tenant"
// @Param        id            path    string  true  "Id da integração"
// @Success      200  {object}  models.IntegrationDescriptor
// @Failure      404  {object}  map[string]string
// @Router       /integracoes/{id} [get]
func (h *IntegrationHandler) Get(c *gin.Context) {
	d, err := h.engine.GetIntegration(c.Request.Context(), middlewares.CompanyID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// Update godoc
// @Summary      Atualiza uma integração
// @Tags         integracoes
// @Accept       json
// @Produce      json
// @Param        X-Company-ID  header  string                        true  "Identificador do tenant"
// @Param        id            path    string                        true  "Id da integração"
// @Param        integracao    body    models.IntegrationDescriptor  true  "Descriptor atualizado"
// @Success      200  {object}  models.IntegrationDescriptor
// @Failure      404  {object}  map[string]string
// @Router       /integracoes/{id} [put]
func (h *IntegrationHandler) Update(c *gin.Context) {
	var d models.IntegrationDescriptor
	if err := c.ShouldBindJSON(&d); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "corpo inválido: " + err.Error()})
		return
	}
	d.CompanyID = middlewares.CompanyID(c)
	d.ID = c.Param("id")

	if err := h.engine.UpdateIntegration(c.Request.Context(), &d); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// Infer godoc
// @Summary      Infere schema e rolemap da integração
// @Description  Amostra o endpoint do provedor, deriva o formato da resposta e pede o rolemap ao LLM. Com persistir=true o resultado é gravado no descriptor.
// @Tags         integracoes
// @Produce      json
// @Param        X-Company-ID  header  string  true   "Identificador do tenant"
// @Param        id            path    string  true   "Id da integração"
// @Param        persistir     query   bool    false  "Grava o resultado no descriptor"
// @Success      200  {object}  search.BootstrapResult
// @Failure      502  {object}  map[string]string
// @Router       /integracoes/{id}/inferir [post]
func (h *IntegrationHandler) Infer(c *gin.Context) {
	persist := c.Query("persistir") == "true"

	result, err := h.engine.InferSchemaAndRolemap(c.Request.Context(), middlewares.CompanyID(c), c.Param("id"), persist)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// respondError traduz os erros do engine para status HTTP
func respondError(c *gin.Context, err error) {
	var cfgErr *models.ConfigurationError
	var provErr *models.ProviderRequestError

	switch {
	case errors.Is(err, models.ErrIntegrationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrCompanyRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &cfgErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.As(err, &provErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		log.Printf("Erro interno: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro interno"})
	}
}
