package routes

import (
	"github.com/gin-gonic/gin"

	"uploadhub_backend/internal/handlers"
	"uploadhub_backend/internal/middleware"
	"uploadhub_backend/internal/services"
)

// RegisterRoutes wires the HTTP API. Login is public; everything else
// sits behind the auth middleware that resolves the acting identity.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers, authService services.AuthService) {
	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
	}

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(authService))
	{
		appHandlers.AuthHandler.RegisterProtectedRoutes(protected)
		appHandlers.PipelineHandler.RegisterRoutes(protected)
		appHandlers.UploadHandler.RegisterRoutes(protected)
		appHandlers.FileHandler.RegisterRoutes(protected)
		appHandlers.ValidationHandler.RegisterRoutes(protected)
		appHandlers.NoteHandler.RegisterRoutes(protected)
	}
}
