package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-wellness-engine/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-wellness-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-wellness-engine/internal/core/services"
)

type GoalHandler struct {
	svc *services.GoalService
}

func NewGoalHandler(svc *services.GoalService) *GoalHandler {
	return &GoalHandler{svc: svc}
}

type recordGoalsRequest struct {
	Goals []string `json:"goals" binding:"required,min=1"`
}

// goalRecordResponse exposes the decoded goals next to the record metadata.
type goalRecordResponse struct {
	ID            string              `json:"id"`
	Category      string              `json:"category"`
	Goals         []domain.Goal       `json:"goals"`
	DateGenerated time.Time           `json:"date_generated"`
	IsCompleted   bool                `json:"is_completed"`
	Version       int                 `json:"version"`
	Progress      domain.GoalProgress `json:"progress"`
}

type latestGoalsResponse struct {
	Record   *goalRecordResponse `json:"record"`
	Progress domain.GoalProgress `json:"progress"`
}

type completeGoalResponse struct {
	Completed bool                `json:"completed"`
	Record    *goalRecordResponse `json:"record"`
	Progress  domain.GoalProgress `json:"progress"`
}

func toGoalRecordResponse(r *domain.GoalRecord) *goalRecordResponse {
	if r == nil {
		return nil
	}
	return &goalRecordResponse{
		ID:            r.ID,
		Category:      r.Category,
		Goals:         r.DecodedGoals(),
		DateGenerated: r.DateGenerated,
		IsCompleted:   r.IsCompleted,
		Version:       r.Version,
		Progress:      r.Progress(),
	}
}

func (h *GoalHandler) RegisterRoutes(r *gin.RouterGroup) {
	goals := r.Group("/goals/:category")
	{
		goals.GET("", h.Latest)
		goals.GET("/history", h.History)
		goals.POST("", h.Record)
		goals.POST("/records/:id/complete/:index", h.Complete)
	}
}

func writeGoalError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrUnknownCategory), errors.Is(err, domain.ErrGoalRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrGoalIndexOutOfRange),
		errors.Is(err, domain.ErrNoGoalsGenerated),
		errors.Is(err, domain.ErrInvalidGoalRecord):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrGoalRecordConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "goal record was modified concurrently, retry"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// Latest godoc
// @Summary      Latest goal record of a category
// @Description  record is null when no goals were generated yet.
// @Tags         goals
// @Produce      json
// @Security     BearerAuth
// @Param        category  path  string  true  "Survey category"
// @Success      200  {object}  latestGoalsResponse
// @Failure      404  {object}  map[string]string
// @Router       /goals/{category} [get]
func (h *GoalHandler) Latest(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	record, err := h.svc.FetchLatest(c.Request.Context(), userID, c.Param("category"))
	if err != nil {
		writeGoalError(c, err)
		return
	}

	c.JSON(http.StatusOK, latestGoalsResponse{
		Record:   toGoalRecordResponse(record),
		Progress: h.svc.Progress(record),
	})
}

// History godoc
// @Summary      Every goal record of a category, newest first
// @Tags         goals
// @Produce      json
// @Security     BearerAuth
// @Param        category  path  string  true  "Survey category"
// @Success      200  {array}   goalRecordResponse
// @Router       /goals/{category}/history [get]
func (h *GoalHandler) History(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	records, err := h.svc.ListHistory(c.Request.Context(), userID, c.Param("category"))
	if err != nil {
		writeGoalError(c, err)
		return
	}

	out := make([]*goalRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, toGoalRecordResponse(r))
	}
	c.JSON(http.StatusOK, out)
}

// Record godoc
// @Summary      Store a newly generated batch of goals
// @Tags         goals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        category  path  string              true  "Survey category"
// @Param        body      body  recordGoalsRequest  true  "Goal texts"
// @Success      201  {object}  goalRecordResponse
// @Failure      400  {object}  map[string]string
// @Router       /goals/{category} [post]
func (h *GoalHandler) Record(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req recordGoalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.svc.RecordGeneratedGoals(c.Request.Context(), userID, c.Param("category"), req.Goals)
	if err != nil {
		writeGoalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toGoalRecordResponse(record))
}

// Complete godoc
// @Summary      Mark one goal as completed
// @Description  completed is false when the goal was already done; nothing is written then.
// @Tags         goals
// @Produce      json
// @Security     BearerAuth
// @Param        category  path  string  true  "Survey category"
// @Param        id        path  string  true  "Goal record id"
// @Param        index     path  int     true  "Zero-based goal index"
// @Success      200  {object}  completeGoalResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /goals/{category}/records/{id}/complete/{index} [post]
func (h *GoalHandler) Complete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "goal index must be an integer"})
		return
	}

	record, completed, err := h.svc.CompleteGoalByID(c.Request.Context(), userID, c.Param("category"), c.Param("id"), index)
	if err != nil {
		writeGoalError(c, err)
		return
	}

	c.JSON(http.StatusOK, completeGoalResponse{
		Completed: completed,
		Record:    toGoalRecordResponse(record),
		Progress:  record.Progress(),
	})
}
