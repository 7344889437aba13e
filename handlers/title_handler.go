package handlers

import (
	"net/http"
	"strconv"

	"review-catalogue-api/helper"
	"review-catalogue-api/models"
	"review-catalogue-api/services"

	"github.com/gin-gonic/gin"
)

type TitleHandler struct {
	titleService services.TitleService
	Helper       *helper.HTTPHelper
}

func NewTitleHandler(titleService services.TitleService, h *helper.HTTPHelper) *TitleHandler {
	return &TitleHandler{titleService: titleService, Helper: h}
}

func (h *TitleHandler) CreateTitle(c *gin.Context) {
	var req models.CreateTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	title, err := h.titleService.CreateTitle(req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	c.JSON(http.StatusCreated, title)
}

func (h *TitleHandler) GetTitles(c *gin.Context) {
	var params models.TitleListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	titles, total, err := h.titleService.GetTitles(params)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"results":    titles,
		"pagination": h.Helper.GeneratePaging(c, params.Limit, params.Page, total),
	})
}

func (h *TitleHandler) GetTitle(c *gin.Context) {
	id, ok := h.titleID(c)
	if !ok {
		return
	}

	title, err := h.titleService.GetTitle(id)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	c.JSON(http.StatusOK, title)
}

func (h *TitleHandler) UpdateTitle(c *gin.Context) {
	id, ok := h.titleID(c)
	if !ok {
		return
	}

	var req models.UpdateTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	title, err := h.titleService.UpdateTitle(id, req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	c.JSON(http.StatusOK, title)
}

func (h *TitleHandler) DeleteTitle(c *gin.Context) {
	id, ok := h.titleID(c)
	if !ok {
		return
	}

	if err := h.titleService.DeleteTitle(id); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *TitleHandler) titleID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("title_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid title ID"})
		return 0, false
	}
	return uint(id), true
}
