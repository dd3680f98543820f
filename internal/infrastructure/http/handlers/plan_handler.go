// Package handlers provides HTTP handlers for the plan API
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mealforge/v1/internal/ports/inbound"
	"github.com/mealforge/v1/pkg/errors"
	"go.uber.org/zap"
)

// PlanHandler provides HTTP endpoints for plan generation and retrieval
type PlanHandler struct {
	service inbound.PlanService
	logger  *zap.Logger
}

// NewPlanHandler creates a new plan handler
func NewPlanHandler(service inbound.PlanService, logger *zap.Logger) *PlanHandler {
	return &PlanHandler{
		service: service,
		logger:  logger.Named("plan-handler"),
	}
}

// RegisterRoutes registers plan routes
func (h *PlanHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/meals/:meal_id", h.GetMeal)

	clients := r.Group("/clients/:id")
	{
		clients.POST("/plans", h.GeneratePlan)
		clients.GET("/plans", h.ListPlans)
		clients.GET("/plans/active", h.GetActivePlan)
		clients.GET("/shopping-list", h.ExportShoppingList)
	}
}

// generatePlanRequest is the request body for plan generation
type generatePlanRequest struct {
	Days                int                 `json:"days"`
	VariationLevel      string              `json:"variation_level"`
	AvoidDuplicates     *bool               `json:"avoid_duplicates"`
	ForcedMeals         []forcedMealRequest `json:"forced_meals"`
	ExcludedIngredients []string            `json:"excluded_ingredients"`
	SelectedIngredients []string            `json:"selected_ingredients"`
}

type forcedMealRequest struct {
	Timing string `json:"timing" binding:"required"`
	MealID string `json:"meal_id" binding:"required"`
}

// GeneratePlan generates a new week plan for a client
func (h *PlanHandler) GeneratePlan(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid client id"})
		return
	}

	var req generatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	// Duplicate avoidance is on unless the caller turns it off.
	avoidDuplicates := true
	if req.AvoidDuplicates != nil {
		avoidDuplicates = *req.AvoidDuplicates
	}

	variation := inbound.VariationLevel(req.VariationLevel)
	if variation == "" {
		variation = inbound.VariationMedium
	}

	forced := make([]inbound.ForcedMeal, len(req.ForcedMeals))
	for i, f := range req.ForcedMeals {
		forced[i] = inbound.ForcedMeal{Timing: f.Timing, MealID: f.MealID}
	}

	result, err := h.service.GenerateWeekPlan(c.Request.Context(), inbound.GeneratePlanCommand{
		ClientID:            clientID,
		Days:                req.Days,
		VariationLevel:      variation,
		AvoidDuplicates:     avoidDuplicates,
		ForcedMeals:         forced,
		ExcludedIngredients: req.ExcludedIngredients,
		SelectedIngredients: req.SelectedIngredients,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// GetActivePlan returns the client's currently active plan
func (h *PlanHandler) GetActivePlan(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid client id"})
		return
	}

	week, err := h.service.GetActivePlan(c.Request.Context(), clientID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, week)
}

// ListPlans returns the client's plan history, newest first
func (h *PlanHandler) ListPlans(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid client id"})
		return
	}

	plans, err := h.service.ListPlans(c.Request.Context(), clientID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"plans": plans, "count": len(plans)})
}

// GetMeal returns a single catalog meal in its snapshot form
func (h *PlanHandler) GetMeal(c *gin.Context) {
	m, err := h.service.GetMeal(c.Request.Context(), c.Param("meal_id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, m.Snapshot())
}

// ExportShoppingList renders the active plan's shopping list in the
// requested format (?format=text|csv|markdown|json, default text)
func (h *PlanHandler) ExportShoppingList(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid client id"})
		return
	}

	format := c.DefaultQuery("format", "text")

	payload, contentType, err := h.service.ExportShoppingList(c.Request.Context(), clientID, format)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.Data(http.StatusOK, contentType, payload)
}

// respondError maps application errors onto HTTP responses
func (h *PlanHandler) respondError(c *gin.Context, err error) {
	if appErr, ok := err.(*errors.AppError); ok {
		h.logger.Warn("Request failed",
			zap.String("code", string(appErr.Code)),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(appErr.StatusCode(), gin.H{
			"error":   appErr.Message,
			"code":    appErr.Code,
			"details": appErr.Details,
		})
		return
	}

	h.logger.Error("Unexpected error", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
