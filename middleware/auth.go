package middleware

import (
	"Margin/config"
	"Margin/pkg/jwt"
	"Margin/pkg/response"
	"net/http"
	"strings"
	"time"

	pkgctx "Margin/pkg/context"

	"github.com/gin-gonic/gin"
)

// 剩余有效期小于该值时在响应头里下发新 token
const tokenRotateBuffer = 5 * time.Minute

func Auth(conf config.Jwt) gin.HandlerFunc {
	secret := []byte(conf.Secret)
	expire := time.Duration(conf.ExpiresIn) * time.Second

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Abort(c, http.StatusUnauthorized, "缺少 Authorization")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Abort(c, http.StatusUnauthorized, "Authorization 格式错误")
			return
		}

		claims, err := jwt.ParseToken(secret, jwt.TokenTypeAccess, parts[1])
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, err.Error())
			return
		}
		if jwt.ShouldRotateToken(claims, tokenRotateBuffer) {
			if newToken, err := jwt.GenerateToken(secret, claims.UserID, jwt.TokenTypeAccess, expire); err == nil {
				c.Header("X-New-Access-Token", newToken)
			}
		}
		c.Set(pkgctx.CtxUserID, claims.UserID)

		c.Next()
	}
}
