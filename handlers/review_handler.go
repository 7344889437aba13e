package handlers

import (
	"net/http"
	"strconv"

	"review-catalogue-api/helper"
	"review-catalogue-api/middleware"
	"review-catalogue-api/models"
	"review-catalogue-api/services"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewService services.ReviewService
	Helper        *helper.HTTPHelper
}

func NewReviewHandler(reviewService services.ReviewService, h *helper.HTTPHelper) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService, Helper: h}
}

func (h *ReviewHandler) CreateReview(c *gin.Context) {
	titleID, ok := h.pathID(c, "title_id")
	if !ok {
		return
	}

	var req models.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	review, err := h.reviewService.CreateReview(titleID, middleware.GetActor(c), req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) GetReviews(c *gin.Context) {
	titleID, ok := h.pathID(c, "title_id")
	if !ok {
		return
	}

	var params models.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	reviews, total, err := h.reviewService.GetReviews(titleID, params)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"results":    reviews,
		"pagination": h.Helper.GeneratePaging(c, params.Limit, params.Page, total),
	})
}

func (h *ReviewHandler) GetReview(c *gin.Context) {
	titleID, ok := h.pathID(c, "title_id")
	if !ok {
		return
	}
	reviewID, ok := h.pathID(c, "review_id")
	if !ok {
		return
	}

	review, err := h.reviewService.GetReview(titleID, reviewID)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	titleID, ok := h.pathID(c, "title_id")
	if !ok {
		return
	}
	reviewID, ok := h.pathID(c, "review_id")
	if !ok {
		return
	}

	var req models.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	review, err := h.reviewService.UpdateReview(titleID, reviewID, middleware.GetActor(c), req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	titleID, ok := h.pathID(c, "title_id")
	if !ok {
		return
	}
	reviewID, ok := h.pathID(c, "review_id")
	if !ok {
		return
	}

	if err := h.reviewService.DeleteReview(titleID, reviewID, middleware.GetActor(c)); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ReviewHandler) CreateComment(c *gin.Context) {
	titleID, ok := h.pathID(c, "title_id")
	if !ok {
		return
	}
	reviewID, ok := h.pathID(c, "review_id")
	if !ok {
		return
	}

	var req models.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	comment, err := h.reviewService.CreateComment(titleID, reviewID, middleware.GetActor(c), req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

func (h *ReviewHandler) GetComments(c *gin.Context) {
	titleID, ok := h.pathID(c, "title_id")
	if !ok {
		return
	}
	reviewID, ok := h.pathID(c, "review_id")
	if !ok {
		return
	}

	var params models.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	comments, total, err := h.reviewService.GetComments(titleID, reviewID, params)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"results":    comments,
		"pagination": h.Helper.GeneratePaging(c, params.Limit, params.Page, total),
	})
}

func (h *ReviewHandler) GetComment(c *gin.Context) {
	titleID, ok := h.pathID(c, "title_id")
	if !ok {
		return
	}
	reviewID, ok := h.pathID(c, "review_id")
	if !ok {
		return
	}
	commentID, ok := h.pathID(c, "comment_id")
	if !ok {
		return
	}

	comment, err := h.reviewService.GetComment(titleID, reviewID, commentID)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

func (h *ReviewHandler) UpdateComment(c *gin.Context) {
	titleID, ok := h.pathID(c, "title_id")
	if !ok {
		return
	}
	reviewID, ok := h.pathID(c, "review_id")
	if !ok {
		return
	}
	commentID, ok := h.pathID(c, "comment_id")
	if !ok {
		return
	}

	var req models.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	comment, err := h.reviewService.UpdateComment(titleID, reviewID, commentID, middleware.GetActor(c), req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

func (h *ReviewHandler) DeleteComment(c *gin.Context) {
	titleID, ok := h.pathID(c, "title_id")
	if !ok {
		return
	}
	reviewID, ok := h.pathID(c, "review_id")
	if !ok {
		return
	}
	commentID, ok := h.pathID(c, "comment_id")
	if !ok {
		return
	}

	if err := h.reviewService.DeleteComment(titleID, reviewID, commentID, middleware.GetActor(c)); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ReviewHandler) pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}
