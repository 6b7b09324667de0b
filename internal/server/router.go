package server

import (
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"online_queue/internal/auth"
	"online_queue/internal/handlers"
	"online_queue/internal/ws"
)

// Routes — зависимости маршрутов API.
type Routes struct {
	Queues   *handlers.Handler
	Health   *handlers.HealthHandler
	Hub      *ws.Hub
	Verifier auth.Verifier
	Logger   *log.Logger
}

// SetupAPIRoutes
// @title						Онлайн очередь
// @version					1.0
// @description				Очереди с живыми уведомлениями об изменениях
// @BasePath					/
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func (s *Server) SetupAPIRoutes(routes Routes) {
	r := s.engine

	r.GET("/health", routes.Health.Health)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	api.Use(auth.RequireUser(routes.Verifier, routes.Logger))
	{
		api.GET("/authcheck", routes.Queues.AuthCheck)
		api.GET("/profile/queues", routes.Queues.GetUserQueues)

		api.POST("/queues", routes.Queues.CreateQueue)
		api.GET("/queues", routes.Queues.ListQueues)
		api.POST("/queues/:id/join", routes.Queues.JoinQueue)
		api.DELETE("/queues/:id/leave", routes.Queues.LeaveQueue)
		api.POST("/queues/:id/skip", routes.Queues.SkipTurn)
		api.POST("/queues/:id/swap", routes.Queues.SwapPlaces)

		api.GET("/queue/updates", routes.Queues.QueueUpdates)
		api.GET("/queue/updates/ws", ws.Handler(routes.Hub, routes.Logger))
	}
}
