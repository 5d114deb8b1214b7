package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRoles — декларативный гейт по ролям: каждая группа роутов
// объявляет допустимый набор, проверка одна на всех.
// Несовпадение роли — 401, как отдаёт публичный контракт API.
func RequireRoles(allowed ...string) gin.HandlerFunc {
	allowedSet := map[string]struct{}{}
	for _, r := range allowed {
		allowedSet[r] = struct{}{}
	}
	return func(c *gin.Context) {
		v, exists := c.Get("role")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no role in context"})
			return
		}
		role, _ := v.(string)
		if _, ok := allowedSet[role]; !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Contact the Administrator"})
			return
		}
		c.Next()
	}
}
