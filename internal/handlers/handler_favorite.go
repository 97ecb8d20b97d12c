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

// favoriteHandler handles HTTP requests for favorite templates.
type favoriteHandler struct {
	favoriteService *services.FavoriteService
}

func newFavoriteHandler(fs *services.FavoriteService) *favoriteHandler {
	return &favoriteHandler{favoriteService: fs}
}

// registerFavoriteRoutes registers routes related to favorite templates.
func registerFavoriteRoutes(rg *gin.RouterGroup, favoriteService *services.FavoriteService) {
	h := newFavoriteHandler(favoriteService)

	favorites := rg.Group("/favorites")
	{
		favorites.POST("", h.createFavorite)
		favorites.GET("", h.listFavorites)
		favorites.GET("/:id", h.getFavoriteByID)
		favorites.DELETE("/:id", h.deleteFavorite)
		favorites.POST("/:id/expand", h.expandFavorite)
	}
}

func (h *favoriteHandler) createFavorite(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateFavorite", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	favorite, err := h.favoriteService.CreateFavorite(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDuplicateFavoriteName):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create favorite in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create favorite"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToFavoriteResponse(favorite))
}

func (h *favoriteHandler) listFavorites(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	favorites, err := h.favoriteService.ListFavorites(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list favorites from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list favorites"})
		return
	}

	responses := make([]dto.FavoriteResponse, len(favorites))
	for i := range favorites {
		responses[i] = dto.ToFavoriteResponse(&favorites[i])
	}
	c.JSON(http.StatusOK, responses)
}

func (h *favoriteHandler) getFavoriteByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	favoriteID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	favorite, err := h.favoriteService.GetFavoriteByID(c.Request.Context(), favoriteID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Favorite not found"})
		} else {
			logger.Error("Failed to get favorite from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve favorite"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToFavoriteResponse(favorite))
}

func (h *favoriteHandler) deleteFavorite(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	favoriteID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.favoriteService.DeleteFavorite(c.Request.Context(), favoriteID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Favorite not found"})
		} else {
			logger.Error("Failed to delete favorite in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete favorite"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *favoriteHandler) expandFavorite(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	favoriteID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ExpandFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ExpandFavorite", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	entry, err := h.favoriteService.ExpandFavorite(c.Request.Context(), favoriteID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Favorite not found"})
		case errors.Is(err, apperrors.ErrIncompleteTemplate), errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to expand favorite in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to expand favorite"})
		}
		return
	}

	lines := make([]dto.EntryLineResponse, len(entry.Lines))
	for i, line := range entry.Lines {
		lines[i] = dto.EntryLineResponse{AccountID: line.AccountID, Debit: line.Debit, Credit: line.Credit}
	}
	c.JSON(http.StatusOK, dto.ExpandFavoriteResponse{
		Date:        entry.Date.Format(dto.EntryDateFormat),
		Description: entry.Description,
		Lines:       lines,
	})
}
