package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/studentbay/backend/internal/dto"
	"github.com/studentbay/backend/internal/middleware"
	"github.com/studentbay/backend/internal/service"
	"github.com/studentbay/backend/pkg/response"
)

type ItemHandler struct {
	itemService service.ItemService
}

func NewItemHandler(itemService service.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

func (h *ItemHandler) Search(c *gin.Context) {
	var filter dto.SearchFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid query parameters")
		return
	}

	items, pagination, err := h.itemService.Search(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       items,
		"pagination": pagination,
	})
}

func (h *ItemHandler) List(c *gin.Context) {
	var filter dto.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid query parameters")
		return
	}

	items, err := h.itemService.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "", items)
}

func (h *ItemHandler) Featured(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	items, err := h.itemService.Featured(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "", items)
}

func (h *ItemHandler) Detail(c *gin.Context) {
	item, err := h.itemService.Detail(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "", item)
}

// Create binds the body as a raw map: clients send listing fields under
// several accepted spellings, and the service normalizes them.
func (h *ItemHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	itemID, verrs, err := h.itemService.Create(c.Request.Context(), userID, payload)
	if len(verrs) > 0 {
		response.ValidationFailed(c, verrs)
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "item listed successfully", gin.H{"itemId": itemID})
}

func (h *ItemHandler) Update(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	verrs, err := h.itemService.Update(c.Request.Context(), userID, c.Param("id"), payload)
	if len(verrs) > 0 {
		response.ValidationFailed(c, verrs)
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "item updated", nil)
}

func (h *ItemHandler) Delete(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.itemService.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "item deleted", nil)
}

func (h *ItemHandler) RecordView(c *gin.Context) {
	if err := h.itemService.RecordView(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "view recorded", nil)
}

func (h *ItemHandler) History(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "authentication required")
		return
	}

	entries, err := h.itemService.History(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "", entries)
}
