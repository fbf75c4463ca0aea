package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"heart-monitor/internal/service"
)

const shareClaimsKey = "share_claims"

// ShareTokenMiddleware valida tokens compartidos y guarda claims en el
// contexto. Acepta el token por query (enlace del correo de alerta) o por
// header Authorization.
func ShareTokenMiddleware(shareSvc *service.ShareTokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if shareSvc == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "sharing not configured"})
			c.Abort()
			return
		}

		token := strings.TrimSpace(c.Query("token"))
		if token == "" {
			header := strings.TrimSpace(c.GetHeader("Authorization"))
			if header != "" && strings.HasPrefix(strings.ToLower(header), "bearer ") {
				token = strings.TrimSpace(header[len("Bearer "):])
			}
		}
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			c.Abort()
			return
		}

		claims, err := shareSvc.Parse(token)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrShareTokenExpired):
				c.JSON(http.StatusUnauthorized, gin.H{"error": "token expired"})
			case errors.Is(err, service.ErrShareTokenRevoked):
				c.JSON(http.StatusUnauthorized, gin.H{"error": "token revoked"})
			default:
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			}
			c.Abort()
			return
		}

		c.Set(shareClaimsKey, claims)
		c.Next()
	}
}

// GetShareClaims obtiene claims del token compartido desde el contexto.
func GetShareClaims(c *gin.Context) (service.ShareClaims, bool) {
	val, ok := c.Get(shareClaimsKey)
	if !ok {
		return service.ShareClaims{}, false
	}
	claims, ok := val.(service.ShareClaims)
	return claims, ok
}
