package handlers

import (
	"net/http"

	"review-catalogue-api/helper"
	"review-catalogue-api/models"
	"review-catalogue-api/services"

	"github.com/gin-gonic/gin"
)

type CatalogueHandler struct {
	catalogueService services.CatalogueService
	Helper           *helper.HTTPHelper
}

func NewCatalogueHandler(catalogueService services.CatalogueService, h *helper.HTTPHelper) *CatalogueHandler {
	return &CatalogueHandler{catalogueService: catalogueService, Helper: h}
}

func (h *CatalogueHandler) CreateCategory(c *gin.Context) {
	var req models.CreateSlugRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	category, err := h.catalogueService.CreateCategory(req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

func (h *CatalogueHandler) GetCategories(c *gin.Context) {
	var params models.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	categories, total, err := h.catalogueService.GetCategories(params)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"results":    categories,
		"pagination": h.Helper.GeneratePaging(c, params.Limit, params.Page, total),
	})
}

func (h *CatalogueHandler) DeleteCategory(c *gin.Context) {
	if err := h.catalogueService.DeleteCategory(c.Param("slug")); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *CatalogueHandler) CreateGenre(c *gin.Context) {
	var req models.CreateSlugRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	genre, err := h.catalogueService.CreateGenre(req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	c.JSON(http.StatusCreated, genre)
}

func (h *CatalogueHandler) GetGenres(c *gin.Context) {
	var params models.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	genres, total, err := h.catalogueService.GetGenres(params)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"results":    genres,
		"pagination": h.Helper.GeneratePaging(c, params.Limit, params.Page, total),
	})
}

func (h *CatalogueHandler) DeleteGenre(c *gin.Context) {
	if err := h.catalogueService.DeleteGenre(c.Param("slug")); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
