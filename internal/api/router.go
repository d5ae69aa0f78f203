package api

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/salon_go_server/config"
	"github.com/qs3c/salon_go_server/internal/api/handler"
	"github.com/qs3c/salon_go_server/internal/api/middleware"
	"github.com/qs3c/salon_go_server/internal/plan"
	"github.com/qs3c/salon_go_server/internal/service"
)

type Router struct {
	subscriptionHandler *handler.SubscriptionHandler
	appointmentHandler  *handler.AppointmentHandler
	professionalHandler *handler.ProfessionalHandler
	clientHandler       *handler.ClientHandler
	catalogHandler      *handler.CatalogHandler
	financeHandler      *handler.FinanceHandler
	reportHandler       *handler.ReportHandler
	websocketHandler    *handler.WebSocketHandler
	subscriptionService *service.SubscriptionService
	cfg                 *config.Config
}

func NewRouter(
	subscriptionHandler *handler.SubscriptionHandler,
	appointmentHandler *handler.AppointmentHandler,
	professionalHandler *handler.ProfessionalHandler,
	clientHandler *handler.ClientHandler,
	catalogHandler *handler.CatalogHandler,
	financeHandler *handler.FinanceHandler,
	reportHandler *handler.ReportHandler,
	websocketHandler *handler.WebSocketHandler,
	subscriptionService *service.SubscriptionService,
	cfg *config.Config,
) *Router {
	return &Router{
		subscriptionHandler: subscriptionHandler,
		appointmentHandler:  appointmentHandler,
		professionalHandler: professionalHandler,
		clientHandler:       clientHandler,
		catalogHandler:      catalogHandler,
		financeHandler:      financeHandler,
		reportHandler:       reportHandler,
		websocketHandler:    websocketHandler,
		subscriptionService: subscriptionService,
		cfg:                 cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.Logger())
	engine.Use(middleware.CORS(r.cfg.CORS))

	api := engine.Group("/api/v1")
	{
		// WebSocket
		api.GET("/ws", r.websocketHandler.Handle)

		// public
		api.GET("/plans", r.subscriptionHandler.Plans)

		authenticated := api.Group("")
		authenticated.Use(middleware.Auth(r.cfg.JWT.Secret))
		{
			subscription := authenticated.Group("/subscription")
			{
				subscription.GET("", r.subscriptionHandler.GetStatus)
				subscription.POST("/plan", r.subscriptionHandler.ChangePlan)
			}

			appointments := authenticated.Group("/appointments")
			{
				appointments.GET("", r.appointmentHandler.List)
				appointments.POST("", middleware.QuotaCheck(r.subscriptionService), r.appointmentHandler.Create)
				appointments.GET("/calendar", r.appointmentHandler.Calendar)
				appointments.GET("/:id", r.appointmentHandler.Get)
				appointments.PUT("/:id", r.appointmentHandler.Update)
				appointments.DELETE("/:id", r.appointmentHandler.Delete)
				appointments.PATCH("/:id/status", r.appointmentHandler.UpdateStatus)
			}

			professionals := authenticated.Group("/professionals")
			{
				professionals.GET("", r.professionalHandler.List)
				professionals.POST("", r.professionalHandler.Create)
				professionals.GET("/:id", r.professionalHandler.Get)
				professionals.PUT("/:id", r.professionalHandler.Update)
				professionals.DELETE("/:id", r.professionalHandler.Delete)
			}

			clients := authenticated.Group("/clients")
			{
				clients.GET("", r.clientHandler.List)
				clients.POST("", r.clientHandler.Create)
				clients.GET("/:id", r.clientHandler.Get)
				clients.PUT("/:id", r.clientHandler.Update)
				clients.DELETE("/:id", r.clientHandler.Delete)
			}

			services := authenticated.Group("/services")
			{
				services.GET("", r.catalogHandler.List)
				services.POST("", r.catalogHandler.Create)
				services.GET("/:id", r.catalogHandler.Get)
				services.PUT("/:id", r.catalogHandler.Update)
				services.DELETE("/:id", r.catalogHandler.Delete)
			}

			// premium modules
			finance := authenticated.Group("/finance")
			finance.Use(middleware.RequireFeature(r.subscriptionService, plan.FeatureFinancial))
			{
				finance.GET("/transactions", r.financeHandler.ListTransactions)
				finance.POST("/transactions", r.financeHandler.CreateTransaction)
				finance.GET("/summary", r.financeHandler.Summary)
			}

			reports := authenticated.Group("/reports")
			reports.Use(middleware.RequireFeature(r.subscriptionService, plan.FeatureReports))
			{
				reports.GET("/summary", r.reportHandler.Summary)
				reports.POST("/export", r.reportHandler.Export)
			}
		}
	}

	return engine
}
