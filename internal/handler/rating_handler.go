package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studentbay/backend/internal/dto"
	"github.com/studentbay/backend/internal/middleware"
	"github.com/studentbay/backend/internal/service"
	"github.com/studentbay/backend/pkg/response"
)

type RatingHandler struct {
	ratingService service.RatingService
}

func NewRatingHandler(ratingService service.RatingService) *RatingHandler {
	return &RatingHandler{ratingService: ratingService}
}

func (h *RatingHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var in dto.CreateRatingRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	rating, verrs, err := h.ratingService.Create(c.Request.Context(), userID, in)
	if len(verrs) > 0 {
		response.ValidationFailed(c, verrs)
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "rating submitted", gin.H{"data": rating})
}

func (h *RatingHandler) ListForUser(c *gin.Context) {
	ratedUserID := c.Query("userId")
	if ratedUserID == "" {
		response.Fail(c, http.StatusBadRequest, "userId query parameter is required")
		return
	}

	ratings, average, err := h.ratingService.ListForUser(c.Request.Context(), ratedUserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "", gin.H{
		"ratings":       ratings,
		"averageRating": average,
	})
}
