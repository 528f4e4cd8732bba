package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	middlewares "github.com/vendaflow/app-inventario-search/internal/middleware"
	"github.com/vendaflow/app-inventario-search/internal/models"
	"github.com/vendaflow/app-inventario-search/internal/search"
)

// SearchHandler atende as rotas de busca e do fluxo conversacional
type SearchHandler struct {
	engine *search.Engine
}

// NewSearchHandler cria um novo handler de busca
func NewSearchHandler(engine *search.Engine) *SearchHandler {
	return &SearchHandler{engine: engine}
}

// resolveRequest é o corpo do fluxo conversacional
type resolveRequest struct {
	Texto    string `json:"texto" binding:"required"`
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
}

// Search godoc
// @Summary      Busca numa integração específica
// @Description  Traduz filtros canônicos para os parâmetros do provedor e normaliza a resposta. Com texto livre, o resultado passa pelo filtro local com ranking.
// @Tags         busca
// @Accept       json
// @Produce      json
// @Param        X-Company-ID  header  string              true  "Identificador do tenant"
// @Param        id            path    string              true  "Id da integração"
// @Param        busca         body    models.SearchInput  true  "Parâmetros da busca"
// @Success      200  {object}  models.RunSearchOutput
// @Failure      404  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /integracoes/{id}/busca [post]
func (h *SearchHandler) Search(c *gin.Context) {
	var input models.SearchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "corpo inválido: " + err.Error()})
		return
	}

	out, err := h.engine.Search(c.Request.Context(), middlewares.CompanyID(c), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// Resolve godoc
// @Summary      Fluxo conversacional: roteia o texto e busca
// @Description  Escolhe a integração mais adequada ao texto entre as ativas do tenant e executa a busca. Nenhuma integração casar retorna matched=false com mensagem de fallback, não erro. Com modo=agente a resposta é texto puro para canais de chat.
// @Tags         busca
// @Accept       json
// @Produce      json
// @Param        X-Company-ID  header  string          true   "Identificador do tenant"
// @Param        modo          query   string          false  "agente para resposta em texto puro"
// @Param        pedido        body    resolveRequest  true   "Texto do usuário e paginação"
// @Success      200  {object}  models.ResolveOutput
// @Failure      502  {object}  map[string]string
// @Router       /resolver [post]
func (h *SearchHandler) Resolve(c *gin.Context) {
	var req resolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "corpo inválido: " + err.Error()})
		return
	}

	out, err := h.engine.ResolveAndSearch(c.Request.Context(), middlewares.CompanyID(c), req.Texto, req.Page, req.PageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	if c.Query("modo") == "agente" {
		c.String(http.StatusOK, search.RenderAgentText(out))
		return
	}
	c.JSON(http.StatusOK, out)
}
