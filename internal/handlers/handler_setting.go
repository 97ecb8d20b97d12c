package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zenledger/ledger_backend/internal/apperrors"
	"github.com/zenledger/ledger_backend/internal/core/services"
	"github.com/zenledger/ledger_backend/internal/dto"
	"github.com/zenledger/ledger_backend/internal/middleware"
)

// settingHandler handles HTTP requests for the key-value settings store.
type settingHandler struct {
	settingService *services.SettingService
}

func newSettingHandler(ss *services.SettingService) *settingHandler {
	return &settingHandler{settingService: ss}
}

// registerSettingRoutes registers the settings routes.
func registerSettingRoutes(rg *gin.RouterGroup, settingService *services.SettingService) {
	h := newSettingHandler(settingService)

	settings := rg.Group("/settings")
	{
		settings.GET("", h.listSettings)
		settings.PUT("", h.putSetting)
		settings.GET("/:key", h.getSetting)
	}
}

func (h *settingHandler) listSettings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	settings, err := h.settingService.ListSettings(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list settings from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list settings"})
		return
	}

	c.JSON(http.StatusOK, settings)
}

func (h *settingHandler) getSetting(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	key := c.Param("key")

	setting, err := h.settingService.GetSetting(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Setting not found"})
		} else {
			logger.Error("Failed to get setting from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve setting"})
		}
		return
	}

	c.JSON(http.StatusOK, setting)
}

func (h *settingHandler) putSetting(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PutSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PutSetting", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.settingService.PutSetting(c.Request.Context(), req.Key, req.Value); err != nil {
		logger.Error("Failed to put setting in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store setting"})
		return
	}

	c.Status(http.StatusNoContent)
}
