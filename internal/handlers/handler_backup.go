package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zenledger/ledger_backend/internal/apperrors"
	"github.com/zenledger/ledger_backend/internal/core/services"
	"github.com/zenledger/ledger_backend/internal/middleware"
)

// maxImportBytes caps import payloads; attachments are inline base64 so
// backups can get large, but not arbitrarily so.
const maxImportBytes = 64 << 20

// backupHandler handles export and import of the whole ledger.
type backupHandler struct {
	backupService *services.BackupService
}

func newBackupHandler(bs *services.BackupService) *backupHandler {
	return &backupHandler{backupService: bs}
}

// registerBackupRoutes registers the backup routes.
func registerBackupRoutes(rg *gin.RouterGroup, backupService *services.BackupService) {
	h := newBackupHandler(backupService)

	backup := rg.Group("/backup")
	{
		backup.GET("/export", h.exportLedger)
		backup.POST("/import", h.importLedger)
	}
}

func (h *backupHandler) exportLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	data, err := h.backupService.Export(c.Request.Context())
	if err != nil {
		logger.Error("Failed to export ledger in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export ledger"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="ledger-backup.json"`)
	c.JSON(http.StatusOK, data)
}

func (h *backupHandler) importLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportBytes))
	if err != nil {
		logger.Warn("Failed to read import payload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	if err := h.backupService.Import(c.Request.Context(), payload); err != nil {
		if errors.Is(err, apperrors.ErrImportFormat) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to import ledger in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import ledger"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
