package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-wellness-engine/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-wellness-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-wellness-engine/internal/core/services"
)

const (
	defaultHistoryLimit = 30
	maxHistoryLimit     = 365
)

type ScoreHandler struct {
	svc *services.ScoreService
}

func NewScoreHandler(svc *services.ScoreService) *ScoreHandler {
	return &ScoreHandler{svc: svc}
}

func (h *ScoreHandler) RegisterRoutes(r *gin.RouterGroup) {
	scores := r.Group("/scores")
	{
		scores.GET("", h.Overview)
		scores.GET("/history", h.History)
		scores.GET("/:category", h.Category)
	}
}

// Overview godoc
// @Summary      Overall health score
// @Description  Scores every survey category and averages the started ones.
// @Tags         scores
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.HealthOverview
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /scores [get]
func (h *ScoreHandler) Overview(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	overview, err := h.svc.Overview(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute health score"})
		return
	}

	c.JSON(http.StatusOK, overview)
}

// Category godoc
// @Summary      Category health score
// @Tags         scores
// @Produce      json
// @Security     BearerAuth
// @Param        category  path  string  true  "Survey category"
// @Success      200  {object}  domain.CategoryStats
// @Failure      404  {object}  map[string]string
// @Router       /scores/{category} [get]
func (h *ScoreHandler) Category(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	stats, err := h.svc.CategoryScore(c.Request.Context(), userID, c.Param("category"))
	if err != nil {
		if errors.Is(err, domain.ErrUnknownCategory) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute category score"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// History godoc
// @Summary      Score snapshots, newest first
// @Tags         scores
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query  int  false  "Max snapshots (1-365)"
// @Success      200  {array}   domain.ScoreSnapshot
// @Failure      400  {object}  map[string]string
// @Router       /scores/history [get]
func (h *ScoreHandler) History(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxHistoryLimit {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 365"})
			return
		}
		limit = n
	}

	snapshots, err := h.svc.History(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve score history"})
		return
	}

	c.JSON(http.StatusOK, snapshots)
}
