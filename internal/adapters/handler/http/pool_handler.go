package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-weekly-engine/internal/core/services"
)

type PoolHandler struct {
	svc *services.PoolService
}

func NewPoolHandler(svc *services.PoolService) *PoolHandler {
	return &PoolHandler{
		svc: svc,
	}
}

type addPoolTaskRequest struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category"`
}

func (h *PoolHandler) RegisterRoutes(router *gin.RouterGroup) {
	pool := router.Group("/pool")
	{
		pool.GET("", h.ListPending)
		pool.POST("", h.Add)
		pool.POST("/:id/complete", h.Complete)
	}
}

func (h *PoolHandler) ListPending(c *gin.Context) {
	tasks, err := h.svc.ListPending(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

func (h *PoolHandler) Add(c *gin.Context) {
	var req addPoolTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	task, err := h.svc.Add(c.Request.Context(), services.AddPoolTaskInput{
		Name:     req.Name,
		Category: req.Category,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

func (h *PoolHandler) Complete(c *gin.Context) {
	if err := h.svc.Complete(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
