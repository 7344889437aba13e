package services

import (
	"errors"
	"fmt"
	"net/http"

	"review-catalogue-api/models"
	"review-catalogue-api/permissions"
	"review-catalogue-api/repositories"

	"gorm.io/gorm"
)

type ReviewService interface {
	CreateReview(titleID uint, actor permissions.Actor, req models.CreateReviewRequest) (*models.Review, error)
	GetReviews(titleID uint, params models.ListParams) ([]models.Review, int64, error)
	GetReview(titleID, reviewID uint) (*models.Review, error)
	UpdateReview(titleID, reviewID uint, actor permissions.Actor, req models.UpdateReviewRequest) (*models.Review, error)
	DeleteReview(titleID, reviewID uint, actor permissions.Actor) error

	CreateComment(titleID, reviewID uint, actor permissions.Actor, req models.CreateCommentRequest) (*models.Comment, error)
	GetComments(titleID, reviewID uint, params models.ListParams) ([]models.Comment, int64, error)
	GetComment(titleID, reviewID, commentID uint) (*models.Comment, error)
	UpdateComment(titleID, reviewID, commentID uint, actor permissions.Actor, req models.UpdateCommentRequest) (*models.Comment, error)
	DeleteComment(titleID, reviewID, commentID uint, actor permissions.Actor) error
}

type reviewService struct {
	reviewRepo  repositories.ReviewRepository
	commentRepo repositories.CommentRepository
	titleRepo   repositories.TitleRepository
}

func NewReviewService(reviewRepo repositories.ReviewRepository, commentRepo repositories.CommentRepository, titleRepo repositories.TitleRepository) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		commentRepo: commentRepo,
		titleRepo:   titleRepo,
	}
}

// CreateReview relies on the store's composite unique index for the
// one-review-per-author-per-title invariant: a duplicate insert fails there
// and surfaces as a conflict, with no race window.
func (s *reviewService) CreateReview(titleID uint, actor permissions.Actor, req models.CreateReviewRequest) (*models.Review, error) {
	if err := s.requireTitle(titleID); err != nil {
		return nil, err
	}

	review := &models.Review{
		TitleID:  titleID,
		AuthorID: actor.ID,
		Text:     req.Text,
		Score:    req.Score,
	}

	if err := s.reviewRepo.Create(review); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: you have already reviewed this title", models.ErrConflict)
		}
		return nil, err
	}

	review.AuthorUsername = actor.Username
	return review, nil
}

func (s *reviewService) GetReviews(titleID uint, params models.ListParams) ([]models.Review, int64, error) {
	if err := s.requireTitle(titleID); err != nil {
		return nil, 0, err
	}

	reviews, total, err := s.reviewRepo.GetList(titleID, params)
	if err != nil {
		return nil, 0, err
	}

	for i := range reviews {
		reviews[i].AuthorUsername = reviews[i].Author.Username
	}

	return reviews, total, nil
}

func (s *reviewService) GetReview(titleID, reviewID uint) (*models.Review, error) {
	if err := s.requireTitle(titleID); err != nil {
		return nil, err
	}

	review, err := s.reviewRepo.GetByID(titleID, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: review %d", models.ErrNotFound, reviewID)
		}
		return nil, err
	}

	review.AuthorUsername = review.Author.Username
	return review, nil
}

// UpdateReview may change text and score; author, title and pub_date are
// immutable.
func (s *reviewService) UpdateReview(titleID, reviewID uint, actor permissions.Actor, req models.UpdateReviewRequest) (*models.Review, error) {
	review, err := s.GetReview(titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if !permissions.CanAccessObject(actor, http.MethodPatch, review.AuthorID) {
		return nil, fmt.Errorf("%w: not the author", models.ErrForbidden)
	}

	if req.Text != nil {
		review.Text = *req.Text
	}
	if req.Score != nil {
		review.Score = *req.Score
	}

	if err := s.reviewRepo.Update(review); err != nil {
		return nil, err
	}

	return review, nil
}

func (s *reviewService) DeleteReview(titleID, reviewID uint, actor permissions.Actor) error {
	review, err := s.GetReview(titleID, reviewID)
	if err != nil {
		return err
	}

	if !permissions.CanAccessObject(actor, http.MethodDelete, review.AuthorID) {
		return fmt.Errorf("%w: not the author", models.ErrForbidden)
	}

	return s.reviewRepo.Delete(review.ID)
}

// Comments have no uniqueness constraint; anyone passing the collection
// gate may comment any number of times.
func (s *reviewService) CreateComment(titleID, reviewID uint, actor permissions.Actor, req models.CreateCommentRequest) (*models.Comment, error) {
	if _, err := s.GetReview(titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ReviewID: reviewID,
		AuthorID: actor.ID,
		Text:     req.Text,
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	comment.AuthorUsername = actor.Username
	return comment, nil
}

func (s *reviewService) GetComments(titleID, reviewID uint, params models.ListParams) ([]models.Comment, int64, error) {
	if _, err := s.GetReview(titleID, reviewID); err != nil {
		return nil, 0, err
	}

	comments, total, err := s.commentRepo.GetList(reviewID, params)
	if err != nil {
		return nil, 0, err
	}

	for i := range comments {
		comments[i].AuthorUsername = comments[i].Author.Username
	}

	return comments, total, nil
}

func (s *reviewService) GetComment(titleID, reviewID, commentID uint) (*models.Comment, error) {
	if _, err := s.GetReview(titleID, reviewID); err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.GetByID(reviewID, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: comment %d", models.ErrNotFound, commentID)
		}
		return nil, err
	}

	comment.AuthorUsername = comment.Author.Username
	return comment, nil
}

func (s *reviewService) UpdateComment(titleID, reviewID, commentID uint, actor permissions.Actor, req models.UpdateCommentRequest) (*models.Comment, error) {
	comment, err := s.GetComment(titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if !permissions.CanAccessObject(actor, http.MethodPatch, comment.AuthorID) {
		return nil, fmt.Errorf("%w: not the author", models.ErrForbidden)
	}

	if req.Text != nil {
		comment.Text = *req.Text
	}

	if err := s.commentRepo.Update(comment); err != nil {
		return nil, err
	}

	return comment, nil
}

func (s *reviewService) DeleteComment(titleID, reviewID, commentID uint, actor permissions.Actor) error {
	comment, err := s.GetComment(titleID, reviewID, commentID)
	if err != nil {
		return err
	}

	if !permissions.CanAccessObject(actor, http.MethodDelete, comment.AuthorID) {
		return fmt.Errorf("%w: not the author", models.ErrForbidden)
	}

	return s.commentRepo.Delete(comment.ID)
}

func (s *reviewService) requireTitle(titleID uint) error {
	if _, err := s.titleRepo.GetByID(titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: title %d", models.ErrNotFound, titleID)
		}
		return err
	}
	return nil
}
