package routes

import (
	"github.com/gin-gonic/gin"

	"ardhi/internal/authz"
	"ardhi/internal/handlers"
	"ardhi/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	jwtSecret []byte,
	authHandler *handlers.AuthHandler,
	landHandler *handlers.LandHandler,
	favoriteHandler *handlers.FavoriteHandler,
) *gin.Engine {

	api := r.Group("/api/v1")

	// ---- public
	users := api.Group("/users")
	{
		users.POST("/register", authHandler.Register)
		users.POST("/login", authHandler.Login)
		users.POST("/forgot-password", authHandler.ForgotPassword)
		users.POST("/reset-password", authHandler.ResetPassword)
	}

	// LANDS: чтение публичное, запись — по ролям
	lands := api.Group("/lands")
	{
		lands.GET("/", landHandler.List)
		lands.GET("/:id", landHandler.GetByID)
		lands.GET("/:id/brochure", landHandler.Brochure)

		auth := middleware.Auth(jwtSecret)
		lands.POST("/", auth, middleware.RequireRoles(authz.RoleAdmin, authz.RoleSeller), landHandler.Create)
		lands.PUT("/:id", auth, middleware.RequireRoles(authz.RoleAdmin, authz.RoleSeller), landHandler.Update)
		lands.DELETE("/:id", auth, middleware.RequireRoles(authz.RoleAdmin), landHandler.Delete)
	}

	// FAVORITES: любой аутентифицированный пользователь
	favorites := api.Group("/favorites", middleware.Auth(jwtSecret))
	{
		favorites.GET("/", favoriteHandler.ListMine)
		favorites.POST("/:land_id", favoriteHandler.Add)
		favorites.DELETE("/:land_id", favoriteHandler.Remove)
	}

	return r
}
