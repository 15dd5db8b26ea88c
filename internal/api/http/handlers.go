// Package http contains the gin handlers for the tool server API.
package http

import (
	"net/http"
	"strings"

	"github.com/GriffinCanCode/FileBridge/internal/domain/service"
	"github.com/GriffinCanCode/FileBridge/internal/infrastructure/logging"
	"github.com/GriffinCanCode/FileBridge/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/FileBridge/internal/shared/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Version is the reported server version.
const Version = "1.0.0"

// Handlers contains all HTTP handlers
type Handlers struct {
	registry *service.Registry
	metrics  *monitoring.Metrics
	log      *logging.Logger
}

// NewHandlers creates a new handler set
func NewHandlers(registry *service.Registry, metrics *monitoring.Metrics, log *logging.Logger) *Handlers {
	if log == nil {
		log = logging.NewNop()
	}
	return &Handlers{
		registry: registry,
		metrics:  metrics,
		log:      log,
	}
}

// Root handles the banner endpoint
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "FileBridge",
		"version": Version,
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"registry": h.registry.Stats(),
	})
}

// ListServices lists all available services
func (h *Handlers) ListServices(c *gin.Context) {
	var category *types.Category
	if categoryStr := c.Query("category"); categoryStr != "" {
		cat := types.Category(categoryStr)
		switch cat {
		case types.CategoryFilesystem, types.CategorySystem, types.CategoryMedia:
			category = &cat
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category: " + categoryStr})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"services": h.registry.List(category),
		"stats":    h.registry.Stats(),
	})
}

// DiscoverServices finds services relevant to an intent
func (h *Handlers) DiscoverServices(c *gin.Context) {
	var req types.DiscoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	limit := req.Limit
	if limit <= 0 || limit > 20 {
		limit = 5
	}

	c.JSON(http.StatusOK, gin.H{
		"intent":   req.Intent,
		"services": h.registry.Discover(req.Intent, limit),
	})
}

// ExecuteService executes a service tool
func (h *Handlers) ExecuteService(c *gin.Context) {
	var req types.ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	serviceID, _, ok := strings.Cut(req.ToolID, ".")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tool_id must be of the form service.tool"})
		return
	}

	requestID := uuid.NewString()
	appCtx := &types.Context{RequestID: &requestID}
	if req.AppID != nil && *req.AppID != "" {
		appCtx.AppID = req.AppID
	}

	timer := monitoring.NewTimer(h.metrics, serviceID, req.ToolID)
	result, err := h.registry.Execute(c.Request.Context(), req.ToolID, req.Params, appCtx)
	if err != nil {
		timer.Stop("error")
		h.log.Warn("tool dispatch failed",
			zap.String("tool", req.ToolID),
			zap.String("request_id", requestID),
			zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "request_id": requestID})
		return
	}

	status := "success"
	if !result.Success {
		status = "failure"
	}
	timer.Stop(status)

	h.log.Debug("tool executed",
		zap.String("tool", req.ToolID),
		zap.String("request_id", requestID),
		zap.String("status", status))

	c.JSON(http.StatusOK, gin.H{
		"request_id": requestID,
		"result":     result,
	})
}
