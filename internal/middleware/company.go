package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CompanyHeader é o header que identifica o tenant da requisição
const CompanyHeader = "X-Company-ID"

// companyKey é a chave do companyId no contexto do gin
const companyKey = "companyId"

// RequireCompany exige o header de tenant em todas as rotas da API;
// requisição sem ele é rejeitada antes de chegar aos handlers
func RequireCompany() gin.HandlerFunc {
	return func(c *gin.Context) {
		companyID := c.GetHeader(CompanyHeader)
		if companyID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "header " + CompanyHeader + " é obrigatório",
			})
			return
		}
		c.Set(companyKey, companyID)
		c.Next()
	}
}

// CompanyID lê o tenant resolvido pelo middleware
func CompanyID(c *gin.Context) string {
	return c.GetString(companyKey)
}
