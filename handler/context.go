package handler

import (
	"Margin/config"
	"Margin/middleware"
	"Margin/pkg/context"
	"Margin/pkg/response"
	"Margin/service"
	"Margin/types"

	"github.com/gin-gonic/gin"
)

// ContextHandler 讨论
type ContextHandler struct {
	Config      *config.Config
	NoteService service.INoteService
}

func (h *ContextHandler) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth(h.Config.Jwt)
	g := r.Group("/v1/contexts", authorize)
	g.POST("", context.Wrap(h.CreateContext))
	g.GET("/:id", context.Wrap(h.GetContext))
}

func (h *ContextHandler) CreateContext(c *gin.Context) error {
	var req types.CreateContextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return badRequest(err)
	}

	item, err := h.NoteService.CreateContext(c.Request.Context(), req.Title, req.Description)
	if err != nil {
		return err
	}

	response.Success(c, types.NewContextItem(item))
	return nil
}

func (h *ContextHandler) GetContext(c *gin.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	item, err := h.NoteService.GetContext(c.Request.Context(), id)
	if err != nil {
		return bizError(err)
	}

	response.Success(c, types.NewContextItem(item))
	return nil
}
