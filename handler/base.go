package handler

import (
	"Margin/models"
	"Margin/pkg/context"
	"Margin/pkg/response"
	"Margin/service"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// currentUser 从 token 中的 user_id 加载当前用户
func currentUser(c *gin.Context, accounts service.IUserAccountService) (*models.User, error) {
	uid, err := context.GetUserID(c)
	if err != nil {
		return nil, response.NewError(http.StatusUnauthorized, err.Error())
	}
	user, err := accounts.GetUser(c.Request.Context(), uid)
	if err != nil {
		return nil, bizError(err)
	}
	return user, nil
}

func pathID(c *gin.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, response.NewError(http.StatusBadRequest, "id 格式错误")
	}
	return id, nil
}
