package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-weekly-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-weekly-engine/internal/core/services"
)

type WeeklyHandler struct {
	svc *services.WeeklyTaskService
}

func NewWeeklyHandler(svc *services.WeeklyTaskService) *WeeklyHandler {
	return &WeeklyHandler{
		svc: svc,
	}
}

type updateTimerRequest struct {
	ElapsedSeconds *int              `json:"elapsedSeconds" binding:"required"`
	State          domain.TimerState `json:"state" binding:"required"`
}

type tickTimerRequest struct {
	ElapsedSeconds *int `json:"elapsedSeconds" binding:"required"`
}

type updateNotesRequest struct {
	Notes string `json:"notes"`
}

type addCourseRequest struct {
	Name string `json:"name" binding:"required"`
}

type replaceSequenceRequest struct {
	Tasks []*domain.WeeklyTask `json:"tasks" binding:"required"`
}

func (h *WeeklyHandler) RegisterRoutes(router *gin.RouterGroup) {
	weekly := router.Group("/weekly")
	{
		weekly.GET("/day", h.GetDay)
		weekly.POST("/day/start", h.StartTask)
		weekly.POST("/day/complete", h.CompleteTask)
		weekly.POST("/day/complete-subtask", h.CompleteSubtask)
		weekly.POST("/day/reset", h.ResetDay)
		weekly.POST("/day/reset-current", h.ResetCurrentTask)

		weekly.PUT("/timer", h.UpdateTimer)
		weekly.POST("/timer/tick", h.TickTimer)
		weekly.POST("/timer/start", h.timerAction(h.svc.StartTimer))
		weekly.POST("/timer/pause", h.timerAction(h.svc.PauseTimer))
		weekly.POST("/timer/resume", h.timerAction(h.svc.ResumeTimer))
		weekly.POST("/timer/stop", h.timerAction(h.svc.StopTimer))

		weekly.GET("/tasks", h.ListTasks)
		weekly.PUT("/tasks", h.ReplaceSequence)
		weekly.PUT("/tasks/:id/notes", h.UpdateNotes)
		weekly.PUT("/tasks/:id/subtasks/:subtaskId", h.UpdateSubtask)
		weekly.DELETE("/tasks/:id/subtasks/:subtaskId", h.DeleteSubtask)

		weekly.POST("/subtasks/:parentId/courses", h.AddCourse)
		weekly.POST("/subtasks/:parentId/courses/:courseId/complete", h.CompleteCourse)
		weekly.GET("/courses/unfinished", h.UnfinishedCourses)
		weekly.GET("/summary", h.Summary)
	}
}

// GetDay godoc
// @Summary      Current day state
// @Description  Returns the whole weekly state after applying any pending day rollover.
// @Tags         weekly
// @Produce      json
// @Success      200  {object}  domain.WeeklyData
// @Router       /weekly/day [get]
func (h *WeeklyHandler) GetDay(c *gin.Context) {
	data, err := h.svc.GetCurrentDayState(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, data)
}

// StartTask godoc
// @Summary  Start the current task
// @Tags     weekly
// @Produce  json
// @Success  200  {object}  domain.WeeklyData
// @Failure  409  {object}  errorResponse
// @Router   /weekly/day/start [post]
func (h *WeeklyHandler) StartTask(c *gin.Context) {
	data, err := h.svc.StartTask(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, data)
}

// CompleteTask godoc
// @Summary      Complete the current task
// @Description  Applies the completion rule of the task's behavior and advances the sequence.
// @Tags         weekly
// @Produce      json
// @Success      200  {object}  services.CompletionResult
// @Failure      400  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /weekly/day/complete [post]
func (h *WeeklyHandler) CompleteTask(c *gin.Context) {
	result, err := h.svc.CompleteTask(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CompleteSubtask godoc
// @Summary  Complete the current subtask and rotate
// @Tags     weekly
// @Produce  json
// @Success  200  {object}  services.CompletionResult
// @Failure  409  {object}  errorResponse
// @Router   /weekly/day/complete-subtask [post]
func (h *WeeklyHandler) CompleteSubtask(c *gin.Context) {
	result, err := h.svc.CompleteSubtask(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *WeeklyHandler) ResetDay(c *gin.Context) {
	data, err := h.svc.ResetDay(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, data)
}

func (h *WeeklyHandler) ResetCurrentTask(c *gin.Context) {
	data, err := h.svc.ResetCurrentTask(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, data)
}

// UpdateTimer godoc
// @Summary      Reconcile the timer with a client snapshot
// @Tags         timer
// @Accept       json
// @Produce      json
// @Param        body  body      updateTimerRequest  true  "Elapsed seconds and state"
// @Success      200   {object}  domain.WeeklyData
// @Failure      400   {object}  errorResponse
// @Router       /weekly/timer [put]
func (h *WeeklyHandler) UpdateTimer(c *gin.Context) {
	var req updateTimerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	data, err := h.svc.UpdateTimer(c.Request.Context(), *req.ElapsedSeconds, req.State)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, data)
}

func (h *WeeklyHandler) TickTimer(c *gin.Context) {
	var req tickTimerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	data, err := h.svc.TickTimer(c.Request.Context(), *req.ElapsedSeconds)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, data)
}

type timerFunc func(ctx context.Context) (*domain.WeeklyData, error)

func (h *WeeklyHandler) timerAction(fn timerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := fn(c.Request.Context())
		if err != nil {
			handleError(c, err)
			return
		}

		c.JSON(http.StatusOK, data)
	}
}

func (h *WeeklyHandler) ListTasks(c *gin.Context) {
	data, err := h.svc.GetCurrentDayState(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, data.Sequence)
}

// ReplaceSequence godoc
// @Summary      Import a task sequence
// @Description  Replaces every task and starts today over on the new sequence.
// @Tags         weekly
// @Accept       json
// @Produce      json
// @Param        body  body      replaceSequenceRequest  true  "Ordered tasks"
// @Success      200   {object}  domain.WeeklyData
// @Failure      400   {object}  errorResponse
// @Router       /weekly/tasks [put]
func (h *WeeklyHandler) ReplaceSequence(c *gin.Context) {
	var req replaceSequenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	data, err := h.svc.ReplaceSequence(c.Request.Context(), req.Tasks)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, data)
}

func (h *WeeklyHandler) UpdateNotes(c *gin.Context) {
	var req updateNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	task, err := h.svc.UpdateTaskNotes(c.Request.Context(), c.Param("id"), req.Notes)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

func (h *WeeklyHandler) UpdateSubtask(c *gin.Context) {
	if err := h.svc.UpdateSubtask(c.Request.Context(), c.Param("id"), c.Param("subtaskId")); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *WeeklyHandler) DeleteSubtask(c *gin.Context) {
	if err := h.svc.DeleteSubtask(c.Request.Context(), c.Param("id"), c.Param("subtaskId")); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// AddCourse godoc
// @Summary  Append a course to a pool subtask
// @Tags     courses
// @Accept   json
// @Produce  json
// @Param    parentId  path      string            true  "Pool subtask id"
// @Param    body      body      addCourseRequest  true  "Course name"
// @Success  201       {object}  domain.Subtask
// @Failure  400       {object}  errorResponse
// @Failure  404       {object}  errorResponse
// @Router   /weekly/subtasks/{parentId}/courses [post]
func (h *WeeklyHandler) AddCourse(c *gin.Context) {
	var req addCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	course, err := h.svc.AddCourseToSubtask(c.Request.Context(), c.Param("parentId"), req.Name)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, course)
}

// CompleteCourse godoc
// @Summary  Finish a course and record it in history
// @Tags     courses
// @Produce  json
// @Param    parentId  path      string  true  "Pool subtask id"
// @Param    courseId  path      string  true  "Course id"
// @Success  200       {object}  domain.CompletedItem
// @Failure  404       {object}  errorResponse
// @Router   /weekly/subtasks/{parentId}/courses/{courseId}/complete [post]
func (h *WeeklyHandler) CompleteCourse(c *gin.Context) {
	item, err := h.svc.CompleteCourse(c.Request.Context(), c.Param("parentId"), c.Param("courseId"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *WeeklyHandler) UnfinishedCourses(c *gin.Context) {
	courses, err := h.svc.GetUnfinishedCourses(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, courses)
}

// Summary godoc
// @Summary  Rotation summary of every task
// @Tags     weekly
// @Produce  json
// @Success  200  {object}  domain.RotationSummary
// @Router   /weekly/summary [get]
func (h *WeeklyHandler) Summary(c *gin.Context) {
	summary, err := h.svc.GetRotationSummary(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
