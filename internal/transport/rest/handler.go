package rest

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"zapis/config"
	"zapis/internal/metrics"
	"zapis/internal/service"
)

type Handler struct {
	services *service.Services
	logger   *zap.Logger
	config   *config.Config
}

func NewHandler(services *service.Services, logger *zap.Logger, config *config.Config) *Handler {
	return &Handler{
		services: services,
		logger:   logger,
		config:   config,
	}
}

func (h *Handler) InitRoutes(router *gin.Engine) {
	router.Use(h.loggerMiddleware())

	router.Use(h.errorMiddleware())

	router.Use(h.corsMiddleware())

	router.Use(metrics.Middleware())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.register)
			auth.POST("/login", h.login)
			auth.POST("/refresh", h.refreshTokens)
			auth.POST("/logout", h.logout)
		}

		users := api.Group("/users")
		users.Use(h.authMiddleware())
		{
			users.GET("/me", h.getCurrentUser)
			users.GET("/:id", h.getUserByID)
			users.PUT("/:id", h.updateUser)
			users.PUT("/:id/password", h.updatePassword)

			admin := users.Group("/")
			admin.Use(h.adminMiddleware())
			{
				admin.POST("/", h.createUser)
				admin.GET("/", h.getUsers)
				admin.DELETE("/:id", h.deleteUser)
			}
		}

		businesses := api.Group("/businesses")
		{
			businesses.GET("/:id", h.getBusinessByID)
			businesses.GET("/slug/:slug", h.getBusinessBySlug)
			businesses.GET("/:id/locations", h.getBusinessLocations)
			businesses.GET("/:id/offerings", h.getBusinessOfferings)

			auth := businesses.Group("/", h.authMiddleware())
			{
				auth.GET("/me", h.ownerMiddleware(), h.getMyBusiness)

				owner := auth.Group("/", h.ownerMiddleware())
				{
					owner.POST("/", h.createBusiness)
					owner.PUT("/:id", h.updateBusiness)
					owner.POST("/:id/logo", h.uploadBusinessLogo)
					owner.DELETE("/:id/logo", h.deleteBusinessLogo)

					owner.POST("/:id/locations", h.createLocation)
					owner.POST("/:id/offerings", h.createOffering)
				}

				auth.GET("/", h.adminMiddleware(), h.getBusinesses)
			}
		}

		locations := api.Group("/locations", h.authMiddleware(), h.ownerMiddleware())
		{
			locations.PUT("/:id", h.updateLocation)
			locations.DELETE("/:id", h.deleteLocation)
		}

		offerings := api.Group("/offerings")
		{
			offerings.GET("/:id", h.getOfferingByID)

			owner := offerings.Group("/", h.authMiddleware(), h.ownerMiddleware())
			{
				owner.PUT("/:id", h.updateOffering)
				owner.DELETE("/:id", h.deleteOffering)

				owner.GET("/:id/overrides", h.getOverrides)
				owner.PUT("/:id/overrides", h.setOverride)
				owner.DELETE("/:id/overrides/:day", h.deleteOverride)
			}
		}

		schedule := api.Group("/schedule", h.authMiddleware(), h.ownerMiddleware())
		{
			schedule.PUT("/hours", h.setBusinessHours)
			schedule.GET("/hours", h.getBusinessHours)

			schedule.POST("/off-days", h.createOffDay)
			schedule.GET("/off-days", h.listOffDays)
			schedule.DELETE("/off-days/:id", h.deleteOffDay)

			schedule.POST("/blocks", h.createSlotBlock)
			schedule.GET("/blocks", h.listSlotBlocks)
			schedule.DELETE("/blocks/:id", h.deleteSlotBlock)
		}

		availability := api.Group("/availability")
		{
			availability.GET("/slots", h.getAvailableSlots)
			availability.GET("/off-days", h.getPublicOffDays)
		}

		bookings := api.Group("/bookings")
		{
			bookings.POST("/", h.createBooking)

			auth := bookings.Group("/", h.authMiddleware(), h.ownerMiddleware())
			{
				auth.GET("/", h.getBookings)
				auth.GET("/:id", h.getBookingByID)
				auth.PUT("/:id", h.updateBooking)
				auth.DELETE("/:id", h.cancelBooking)
			}
		}
	}
}
