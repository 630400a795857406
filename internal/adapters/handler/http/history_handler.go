package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-weekly-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-weekly-engine/internal/core/services"
)

type HistoryHandler struct {
	svc *services.HistoryService
}

func NewHistoryHandler(svc *services.HistoryService) *HistoryHandler {
	return &HistoryHandler{
		svc: svc,
	}
}

type addHistoryRequest struct {
	Type      domain.ItemType `json:"type" binding:"required"`
	Name      string          `json:"name" binding:"required"`
	ParentID  string          `json:"parentId"`
	TimeSpent int64           `json:"timeSpent" binding:"min=0"`
}

func (h *HistoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	history := router.Group("/history")
	{
		history.GET("", h.List)
		history.POST("", h.Add)
	}
}

// List godoc
// @Summary  Completed work items, newest first
// @Tags     history
// @Produce  json
// @Param    type   query     string  false  "Book, Game, Course or Payment"
// @Param    limit  query     int     false  "Max items (default 50, max 500)"
// @Success  200    {array}   domain.CompletedItem
// @Failure  400    {object}  errorResponse
// @Router   /history [get]
func (h *HistoryHandler) List(c *gin.Context) {
	input := services.ListHistoryInput{
		Type: domain.ItemType(c.Query("type")),
	}

	if l := c.Query("limit"); l != "" {
		limit, err := strconv.Atoi(l)
		if err != nil || limit < 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: "limit must be a positive integer", Code: "validation_error"})
			return
		}
		input.Limit = limit
	}

	items, err := h.svc.List(c.Request.Context(), input)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

// Add godoc
// @Summary  Record a finished item by hand
// @Tags     history
// @Accept   json
// @Produce  json
// @Param    body  body      addHistoryRequest  true  "Item"
// @Success  201   {object}  domain.CompletedItem
// @Failure  400   {object}  errorResponse
// @Router   /history [post]
func (h *HistoryHandler) Add(c *gin.Context) {
	var req addHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	item, err := domain.NewCompletedItem(req.Type, req.Name, req.ParentID, req.TimeSpent, time.Now())
	if err != nil {
		handleError(c, err)
		return
	}

	if err := h.svc.Add(c.Request.Context(), item); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}
