package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/clubsphere/clubsphere-api/docs"
	v1 "github.com/clubsphere/clubsphere-api/internal/api/handler/v1"
	"github.com/clubsphere/clubsphere-api/internal/api/middleware"
	"github.com/clubsphere/clubsphere-api/internal/config"
	"github.com/clubsphere/clubsphere-api/internal/payment"
	"github.com/clubsphere/clubsphere-api/internal/repository"
	"github.com/clubsphere/clubsphere-api/internal/repository/dao"
	"github.com/clubsphere/clubsphere-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	stripeClient := payment.NewStripeClient(*conf.Payment)

	authHandler := s.initAuthHandler(db)
	userHandler, uSvc := s.initUserHandler(db)
	sponsorHandler := v1.NewSponsorHandler(uSvc)
	eventHandler := s.initEventHandler(db, uSvc)
	sponsorshipHandler, sponsorshipSvc := s.initSponsorshipHandler(db, uSvc, stripeClient)
	webhookHandler := v1.NewWebhookHandler(stripeClient, sponsorshipSvc)

	s.MountHandlers(authHandler, userHandler, sponsorHandler, eventHandler, sponsorshipHandler, webhookHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initUserHandler(db *gorm.DB) (*v1.UserHandler, *service.UserService) {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewUserService(repo)
	handler := v1.NewUserHandler(svc)

	return handler, svc
}

func (s *Server) initEventHandler(db *gorm.DB, uSvc *service.UserService) *v1.EventHandler {
	eventDAO := dao.NewEventDAO(db)
	repo := repository.NewEventRepository(eventDAO)
	svc := service.NewEventService(repo)
	handler := v1.NewEventHandler(svc, uSvc)

	return handler
}

func (s *Server) initSponsorshipHandler(db *gorm.DB, uSvc *service.UserService, checkout service.CheckoutOpener) (*v1.SponsorshipHandler, *service.SponsorshipService) {
	repo := repository.NewSponsorshipRepository(dao.NewSponsorshipDAO(db))
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	svc := service.NewSponsorshipService(repo, eventRepo, userRepo, checkout, service.Policy{
		AllowSandboxAutoComplete: s.Config.Payment.AllowSandboxAutoComplete,
	})
	handler := v1.NewSponsorshipHandler(svc, uSvc)

	return handler, svc
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	sponsorHandler *v1.SponsorHandler,
	eventHandler *v1.EventHandler,
	sponsorshipHandler *v1.SponsorshipHandler,
	webhookHandler *v1.WebhookHandler,
) {
	const basePath = "/api/v1"

	public := s.Router.Group(basePath)
	{
		public.POST("/auth/signup", authHandler.HandleSignup)
		public.POST("/auth/login", authHandler.HandleLogin)
		public.GET("/tiers", sponsorshipHandler.HandleGetTiers)
		public.GET("/events", eventHandler.HandleGetEvents)
		public.GET("/events/:eventID", eventHandler.HandleGetEvent)
		// Authenticated by signature verification, not by JWT.
		public.POST("/webhooks/payment", webhookHandler.HandlePaymentWebhook)
	}

	authed := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		authed.GET("/users/:userID", userHandler.HandleGetUser)
		authed.GET("/sponsor/profile", sponsorHandler.HandleGetSponsorProfile)
		authed.PUT("/sponsor/profile", sponsorHandler.HandleUpsertSponsorProfile)
		authed.POST("/events", eventHandler.HandleCreateEvent)
		authed.POST("/events/:eventID/sponsor", sponsorshipHandler.HandleSponsorEvent)
		authed.GET("/sponsorships/:sponsorshipID", sponsorshipHandler.HandleGetSponsorship)
		authed.PUT("/sponsorships/:sponsorshipID/status", sponsorshipHandler.HandleUpdateSponsorshipStatus)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "ClubSphere API"
	docs.SwaggerInfo.Description = "Club events and sponsorship management API."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
