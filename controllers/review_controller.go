package controllers

import (
	"spotbook/dto"
	apperrors "spotbook/errors"
	"spotbook/middleware"
	"spotbook/response"
	"spotbook/services"
	"spotbook/validator"

	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	Reviews *services.ReviewService
}

func NewReviewController(reviews *services.ReviewService) ReviewController {
	return ReviewController{Reviews: reviews}
}

func bindReview(c *gin.Context) (dto.ReviewInput, error) {
	var in dto.ReviewInput
	if err := validator.BindJSON(c, &in); err != nil {
		return in, err
	}
	return in, validator.ValidateReviewInput(in)
}

// ListBySpot godoc
// @Summary      Reviews of a spot
// @Tags         reviews
// @Produce      json
// @Param        spotId  path      int  true  "Spot id"
// @Success      200     {object}  dto.ReviewListResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/spots/{spotId}/reviews [get]
func (r ReviewController) ListBySpot(c *gin.Context) {
	spotID, err := pathID(c, "spotId", apperrors.ErrSpotNotFound)
	if err != nil {
		abort(c, err)
		return
	}
	reviews, err := r.Reviews.ListBySpot(c.Request.Context(), spotID)
	if err != nil {
		abort(c, err)
		return
	}
	response.Success(c, dto.ReviewListResponse{Reviews: reviews})
}

// ListCurrent godoc
// @Summary      Reviews written by the current user
// @Tags         reviews
// @Produce      json
// @Success      200  {object}  dto.ReviewListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/reviews/current [get]
func (r ReviewController) ListCurrent(c *gin.Context) {
	reviews, err := r.Reviews.ListByUser(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		abort(c, err)
		return
	}
	response.Success(c, dto.ReviewListResponse{Reviews: reviews})
}

// Create godoc
// @Summary      Review a spot
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        spotId  path      int              true  "Spot id"
// @Param        body    body      dto.ReviewInput  true  "Review"
// @Success      201     {object}  dto.ReviewResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      403     {object}  dto.ErrorResponse  "Already reviewed"
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/spots/{spotId}/reviews [post]
func (r ReviewController) Create(c *gin.Context) {
	spotID, err := pathID(c, "spotId", apperrors.ErrSpotNotFound)
	if err != nil {
		abort(c, err)
		return
	}
	in, err := bindReview(c)
	if err != nil {
		abort(c, err)
		return
	}
	review, err := r.Reviews.CreateReview(c.Request.Context(), middleware.ActorFrom(c), spotID, in.Review, *in.Stars)
	if err != nil {
		abort(c, err)
		return
	}
	response.Created(c, dto.NewReviewResponse(review))
}

// Update godoc
// @Summary      Edit a review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        reviewId  path      int              true  "Review id"
// @Param        body      body      dto.ReviewInput  true  "Review"
// @Success      200       {object}  dto.ReviewResponse
// @Failure      400       {object}  dto.ErrorResponse
// @Failure      403       {object}  dto.ErrorResponse
// @Failure      404       {object}  dto.ErrorResponse
// @Router       /api/reviews/{reviewId} [put]
func (r ReviewController) Update(c *gin.Context) {
	reviewID, err := pathID(c, "reviewId", apperrors.ErrReviewNotFound)
	if err != nil {
		abort(c, err)
		return
	}
	in, err := bindReview(c)
	if err != nil {
		abort(c, err)
		return
	}
	review, err := r.Reviews.UpdateReview(c.Request.Context(), middleware.ActorFrom(c), reviewID, in.Review, *in.Stars)
	if err != nil {
		abort(c, err)
		return
	}
	response.Success(c, dto.NewReviewResponse(review))
}

// Delete godoc
// @Summary      Delete a review
// @Tags         reviews
// @Produce      json
// @Param        reviewId  path      int  true  "Review id"
// @Success      200       {object}  dto.MessageResponse
// @Failure      403       {object}  dto.ErrorResponse
// @Failure      404       {object}  dto.ErrorResponse
// @Router       /api/reviews/{reviewId} [delete]
func (r ReviewController) Delete(c *gin.Context) {
	reviewID, err := pathID(c, "reviewId", apperrors.ErrReviewNotFound)
	if err != nil {
		abort(c, err)
		return
	}
	if err := r.Reviews.DeleteReview(c.Request.Context(), middleware.ActorFrom(c), reviewID); err != nil {
		abort(c, err)
		return
	}
	response.Message(c, "Successfully deleted")
}

// AddImage godoc
// @Summary      Add an image to a review
// @Description  A review holds at most 10 images.
// @Tags         review-images
// @Accept       json
// @Produce      json
// @Param        reviewId  path      int                   true  "Review id"
// @Param        body      body      dto.ReviewImageInput  true  "Image"
// @Success      201       {object}  dto.ReviewImageResponse
// @Failure      403       {object}  dto.ErrorResponse
// @Failure      404       {object}  dto.ErrorResponse
// @Router       /api/reviews/{reviewId}/images [post]
func (r ReviewController) AddImage(c *gin.Context) {
	reviewID, err := pathID(c, "reviewId", apperrors.ErrReviewNotFound)
	if err != nil {
		abort(c, err)
		return
	}
	var in dto.ReviewImageInput
	if err := validator.BindJSON(c, &in); err != nil {
		abort(c, err)
		return
	}
	image, err := r.Reviews.AddImage(c.Request.Context(), middleware.ActorFrom(c), reviewID, in.URL)
	if err != nil {
		abort(c, err)
		return
	}
	response.Created(c, dto.NewReviewImageResponse(image))
}

// DeleteImage godoc
// @Summary      Delete a review image
// @Tags         review-images
// @Produce      json
// @Param        imageId  path      int  true  "Review image id"
// @Success      200      {object}  dto.MessageResponse
// @Failure      403      {object}  dto.ErrorResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /api/review-images/{imageId} [delete]
func (r ReviewController) DeleteImage(c *gin.Context) {
	imageID, err := pathID(c, "imageId", apperrors.ErrReviewImageNotFound)
	if err != nil {
		abort(c, err)
		return
	}
	if err := r.Reviews.DeleteImage(c.Request.Context(), middleware.ActorFrom(c), imageID); err != nil {
		abort(c, err)
		return
	}
	response.Message(c, "Successfully deleted")
}
