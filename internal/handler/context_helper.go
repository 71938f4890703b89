package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/spendchat-engine/internal/middleware"
	"github.com/noah-isme/spendchat-engine/internal/models"
)

func claimsFromContext(c *gin.Context) *models.AuthClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.AuthClaims)
	if !ok {
		return nil
	}
	return claims
}
