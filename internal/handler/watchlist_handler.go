package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studentbay/backend/internal/middleware"
	"github.com/studentbay/backend/internal/service"
	"github.com/studentbay/backend/pkg/response"
)

type WatchlistHandler struct {
	watchlistService service.WatchlistService
}

func NewWatchlistHandler(watchlistService service.WatchlistService) *WatchlistHandler {
	return &WatchlistHandler{watchlistService: watchlistService}
}

// Toggle bookmarks an item, or removes the bookmark if it already
// exists, and reports the resulting state.
func (h *WatchlistHandler) Toggle(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "authentication required")
		return
	}

	result, err := h.watchlistService.Toggle(c.Request.Context(), userID, c.Param("itemId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "", result)
}

func (h *WatchlistHandler) Remove(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.watchlistService.Remove(c.Request.Context(), userID, c.Param("itemId")); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "removed from watchlist", nil)
}

func (h *WatchlistHandler) List(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "authentication required")
		return
	}

	entries, err := h.watchlistService.List(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "", entries)
}
