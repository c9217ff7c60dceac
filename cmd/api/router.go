package api

import (
	"net/http"

	"connect-backend/internal/user/delivery"
	"connect-backend/internal/user/usecase"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, userUc usecase.UserUsecase, authUc usecase.AuthUsecase, followUc usecase.FollowUsecase) {
	userHandler := delivery.NewUserHandler(userUc, authUc, followUc)

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		users := api.Group("/users")
		{
			users.POST("/register", userHandler.Register)
			users.POST("/login", userHandler.Login)
			users.POST("/refresh", userHandler.Refresh)

			protected := users.Group("")
			protected.Use(delivery.AuthMiddleware(authUc))
			{
				protected.PUT("/edit", userHandler.Edit)
				protected.DELETE("/revoke/:id", userHandler.RevokeAccess)
				protected.DELETE("/:id", userHandler.Delete)
				protected.GET("/:id", userHandler.GetUser)
				protected.GET("/:id/followers", userHandler.GetFollowers)
				protected.POST("/follow", userHandler.Follow)
				protected.POST("/unfollow", userHandler.Unfollow)
			}
		}
	}
}
