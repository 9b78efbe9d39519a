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

type SpotController struct {
	Spots *services.SpotService
}

func NewSpotController(spots *services.SpotService) SpotController {
	return SpotController{Spots: spots}
}

// List godoc
// @Summary      List spots
// @Tags         spots
// @Produce      json
// @Param        page      query     int     false  "Page, from 1"
// @Param        size      query     int     false  "Page size"
// @Param        minLat    query     number  false  "Minimum latitude"
// @Param        maxLat    query     number  false  "Maximum latitude"
// @Param        minLng    query     number  false  "Minimum longitude"
// @Param        maxLng    query     number  false  "Maximum longitude"
// @Param        minPrice  query     number  false  "Minimum price"
// @Param        maxPrice  query     number  false  "Maximum price"
// @Success      200       {object}  dto.SpotListResponse
// @Failure      400       {object}  dto.ErrorResponse
// @Router       /api/spots [get]
func (s SpotController) List(c *gin.Context) {
	var q dto.SpotQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abort(c, apperrors.NewAppError(apperrors.ErrCodeInvalidFormat, "Bad Request", err))
		return
	}
	page, size, filter, err := validator.ValidateSpotQuery(q)
	if err != nil {
		abort(c, err)
		return
	}
	list, err := s.Spots.List(c.Request.Context(), page, size, filter)
	if err != nil {
		abort(c, err)
		return
	}
	response.Success(c, list)
}

// ListCurrent godoc
// @Summary      List the current user's spots
// @Tags         spots
// @Produce      json
// @Success      200  {object}  dto.SpotListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/spots/current [get]
func (s SpotController) ListCurrent(c *gin.Context) {
	list, err := s.Spots.ListCurrent(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		abort(c, err)
		return
	}
	response.Success(c, list)
}

// Detail godoc
// @Summary      Spot details
// @Tags         spots
// @Produce      json
// @Param        spotId  path      int  true  "Spot id"
// @Success      200     {object}  dto.SpotDetail
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/spots/{spotId} [get]
func (s SpotController) Detail(c *gin.Context) {
	spotID, err := pathID(c, "spotId", apperrors.ErrSpotNotFound)
	if err != nil {
		abort(c, err)
		return
	}
	detail, err := s.Spots.Detail(c.Request.Context(), spotID)
	if err != nil {
		abort(c, err)
		return
	}
	response.Success(c, detail)
}

func bindSpot(c *gin.Context) (dto.SpotInput, error) {
	var in dto.SpotInput
	if err := validator.BindJSON(c, &in); err != nil {
		return in, err
	}
	return in, validator.ValidateSpotInput(in)
}

// Create godoc
// @Summary      Create a spot
// @Tags         spots
// @Accept       json
// @Produce      json
// @Param        body  body      dto.SpotInput  true  "Spot"
// @Success      201   {object}  dto.SpotResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/spots [post]
func (s SpotController) Create(c *gin.Context) {
	in, err := bindSpot(c)
	if err != nil {
		abort(c, err)
		return
	}
	spot, err := s.Spots.Create(c.Request.Context(), middleware.ActorFrom(c), in)
	if err != nil {
		abort(c, err)
		return
	}
	response.Created(c, dto.NewSpotResponse(spot))
}

// Update godoc
// @Summary      Edit a spot
// @Tags         spots
// @Accept       json
// @Produce      json
// @Param        spotId  path      int            true  "Spot id"
// @Param        body    body      dto.SpotInput  true  "Spot"
// @Success      200     {object}  dto.SpotResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      403     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/spots/{spotId} [put]
func (s SpotController) Update(c *gin.Context) {
	spotID, err := pathID(c, "spotId", apperrors.ErrSpotNotFound)
	if err != nil {
		abort(c, err)
		return
	}
	in, err := bindSpot(c)
	if err != nil {
		abort(c, err)
		return
	}
	spot, err := s.Spots.Update(c.Request.Context(), middleware.ActorFrom(c), spotID, in)
	if err != nil {
		abort(c, err)
		return
	}
	response.Success(c, dto.NewSpotResponse(spot))
}

// Delete godoc
// @Summary      Delete a spot
// @Tags         spots
// @Produce      json
// @Param        spotId  path      int  true  "Spot id"
// @Success      200     {object}  dto.MessageResponse
// @Failure      403     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/spots/{spotId} [delete]
func (s SpotController) Delete(c *gin.Context) {
	spotID, err := pathID(c, "spotId", apperrors.ErrSpotNotFound)
	if err != nil {
		abort(c, err)
		return
	}
	if err := s.Spots.Delete(c.Request.Context(), middleware.ActorFrom(c), spotID); err != nil {
		abort(c, err)
		return
	}
	response.Message(c, "Successfully deleted")
}

// AddImage godoc
// @Summary      Add an image to a spot
// @Tags         spot-images
// @Accept       json
// @Produce      json
// @Param        spotId  path      int                 true  "Spot id"
// @Param        body    body      dto.SpotImageInput  true  "Image"
// @Success      201     {object}  dto.SpotImageResponse
// @Failure      403     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/spots/{spotId}/images [post]
func (s SpotController) AddImage(c *gin.Context) {
	spotID, err := pathID(c, "spotId", apperrors.ErrSpotNotFound)
	if err != nil {
		abort(c, err)
		return
	}
	var in dto.SpotImageInput
	if err := validator.BindJSON(c, &in); err != nil {
		abort(c, err)
		return
	}
	image, err := s.Spots.AddImage(c.Request.Context(), middleware.ActorFrom(c), spotID, in.URL, *in.Preview)
	if err != nil {
		abort(c, err)
		return
	}
	response.Created(c, dto.NewSpotImageResponse(image))
}

// DeleteImage godoc
// @Summary      Delete a spot image
// @Tags         spot-images
// @Produce      json
// @Param        imageId  path      int  true  "Spot image id"
// @Success      200      {object}  dto.MessageResponse
// @Failure      403      {object}  dto.ErrorResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /api/spot-images/{imageId} [delete]
func (s SpotController) DeleteImage(c *gin.Context) {
	imageID, err := pathID(c, "imageId", apperrors.ErrSpotImageNotFound)
	if err != nil {
		abort(c, err)
		return
	}
	if err := s.Spots.DeleteImage(c.Request.Context(), middleware.ActorFrom(c), imageID); err != nil {
		abort(c, err)
		return
	}
	response.Message(c, "Successfully deleted")
}
