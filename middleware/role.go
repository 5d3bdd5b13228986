package middleware

import (
	"Margin/models"
	"Margin/pkg/response"
	"Margin/service"
	"net/http"

	pkgctx "Margin/pkg/context"

	"github.com/gin-gonic/gin"
)

// RequireRole 必须挂在 Auth 之后
func RequireRole(accounts service.IUserAccountService, authority string) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, err := pkgctx.GetUserID(c)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, err.Error())
			return
		}

		ok, err := accounts.HasRole(c.Request.Context(), &models.User{ID: uid}, authority)
		if err != nil {
			response.Abort(c, http.StatusInternalServerError, err.Error())
			return
		}
		if !ok {
			response.Abort(c, http.StatusForbidden, "权限不足")
			return
		}

		c.Next()
	}
}
