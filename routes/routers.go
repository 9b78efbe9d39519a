package routes

import (
	"net/http"

	_ "spotbook/docs"

	"spotbook/controllers"
	middlewares "spotbook/middleware"
	"spotbook/response"
	"spotbook/services"
	"spotbook/services/logger"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Dependencies are the services the HTTP layer is built on. Uploader is
// optional; the upload route is only registered when it is set.
type Dependencies struct {
	Auth         *services.AuthService
	Spots        *services.SpotService
	Reviews      *services.ReviewService
	Bookings     *services.BookingService
	Uploader     services.ImageUploader
	Logger       logger.Logger
	SecureCookie bool
}

func SetupRoutes(router *gin.Engine, deps Dependencies) {
	if deps.Logger == nil {
		deps.Logger = logger.Nop{}
	}
	router.Use(
		middlewares.SessionMiddleware(),
		middlewares.RequestLogger(deps.Logger),
		middlewares.ErrorHandler(),
	)

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Not found")
	})

	sessionController := controllers.NewSessionController(deps.Auth, deps.SecureCookie)
	userController := controllers.NewUserController(deps.Auth, deps.SecureCookie)
	spotController := controllers.NewSpotController(deps.Spots)
	reviewController := controllers.NewReviewController(deps.Reviews)
	bookingController := controllers.NewBookingController(deps.Bookings)

	api := router.Group("/api")
	api.Use(middlewares.RestoreUser(deps.Auth))
	auth := middlewares.RequireAuth()

	api.GET("/session", sessionController.Restore)
	api.POST("/session", sessionController.Login)
	api.POST("/session/google", sessionController.GoogleLogin)
	api.DELETE("/session", sessionController.Logout)

	api.POST("/users", userController.Signup)

	api.GET("/spots", spotController.List)
	api.GET("/spots/current", auth, spotController.ListCurrent)
	api.GET("/spots/:spotId", spotController.Detail)
	api.POST("/spots", auth, spotController.Create)
	api.PUT("/spots/:spotId", auth, spotController.Update)
	api.DELETE("/spots/:spotId", auth, spotController.Delete)

	api.POST("/spots/:spotId/images", auth, spotController.AddImage)
	api.DELETE("/spot-images/:imageId", auth, spotController.DeleteImage)

	api.GET("/spots/:spotId/reviews", reviewController.ListBySpot)
	api.POST("/spots/:spotId/reviews", auth, reviewController.Create)
	api.GET("/reviews/current", auth, reviewController.ListCurrent)
	api.PUT("/reviews/:reviewId", auth, reviewController.Update)
	api.DELETE("/reviews/:reviewId", auth, reviewController.Delete)

	api.POST("/reviews/:reviewId/images", auth, reviewController.AddImage)
	api.DELETE("/review-images/:imageId", auth, reviewController.DeleteImage)

	api.GET("/spots/:spotId/availability", bookingController.Availability)
	api.GET("/spots/:spotId/bookings", auth, bookingController.ListForSpot)
	api.POST("/spots/:spotId/bookings", auth, bookingController.Create)
	api.GET("/bookings/current", auth, bookingController.ListCurrent)
	api.PUT("/bookings/:bookingId", auth, bookingController.Update)
	api.DELETE("/bookings/:bookingId", auth, bookingController.Delete)

	if deps.Uploader != nil {
		uploadController := controllers.NewUploadController(deps.Uploader, deps.Logger)
		api.POST("/images/upload", auth, uploadController.Upload)
	}
}
