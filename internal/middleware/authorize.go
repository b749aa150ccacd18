package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/sistema-manobrista/valet-api/internal/authz"
	"github.com/sistema-manobrista/valet-api/internal/httperr"
)

// Authorize consulta a tabela de permissões para a operação. Precisa rodar
// depois do AuthMiddleware, que é quem coloca o cargo no contexto.
func Authorize(op string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get(ContextUserRole)
		if !exists {
			httperr.Unauthorized(c, "missing_identity", "Acesso negado. Token não fornecido.")
			c.Abort()
			return
		}

		role, _ := roleVal.(string)
		if !authz.Allowed(op, role) {
			httperr.Forbidden(c, "forbidden", "Acesso proibido. Você não tem permissão para realizar esta ação.")
			c.Abort()
			return
		}

		c.Next()
	}
}
