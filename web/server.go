package web

import (
	"os"

	"github.com/mqforge/mqforge/internal/core/manager"
	"github.com/mqforge/mqforge/pkg/metrics"
	"github.com/mqforge/mqforge/web/docs"
	_ "github.com/mqforge/mqforge/web/docs"
	"github.com/mqforge/mqforge/web/handlers/api"
	"github.com/mqforge/mqforge/web/handlers/api_admin"
	"github.com/mqforge/mqforge/web/middleware"

	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rabbitmq/amqp091-go"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/rs/zerolog/log"
)

type WebServer struct {
	config  *Config
	Service *manager.Service
	Metrics *metrics.PrometheusCollector
}

type Config struct {
	BrokerHost    string
	BrokerPort    string
	Username      string
	Password      string
	JwtKey        string
	WebServerPort string
	EnableSwagger bool
	EnableMetrics bool
	SwaggerPrefix string
	ApiPrefix     string
}

func NewWebServer(config *Config, svc *manager.Service, collector *metrics.PrometheusCollector) (*WebServer, error) {
	return &WebServer{
		config:  config,
		Service: svc,
		Metrics: collector,
	}, nil
}

func (ws *WebServer) SetupApp(logFile *os.File) *fiber.App {

	app := ws.configServer(logFile)

	api_admin.SetJwtKey(ws.config.JwtKey)

	if ws.config.EnableSwagger {
		docs.SwaggerInfo.Host = "localhost:" + ws.config.WebServerPort
		log.Info().Str("path", ws.config.SwaggerPrefix+"/index.html").Msg("Swagger docs enabled")
		app.Get(ws.config.SwaggerPrefix+"/*", swagger.HandlerDefault)
	}
	if ws.config.EnableMetrics && ws.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(ws.Metrics.Registry(), promhttp.HandlerOpts{})))
	}

	ws.AddApi(app)

	ws.AddAdminApi(app)

	return app
}

func (ws *WebServer) AddApi(app *fiber.App) {
	// Public API routes
	app.Post(ws.config.ApiPrefix+"/login", api_admin.Login)

	// Protected API routes
	apiGrp := app.Group(ws.config.ApiPrefix)

	// Template routes

	apiGrp.Get("/templates", middleware.JwtMiddleware(ws.config.JwtKey), func(c *fiber.Ctx) error {
		return api.ListTemplates(c, ws.Service)
	})
	apiGrp.Get("/templates/:name", middleware.JwtMiddleware(ws.config.JwtKey), func(c *fiber.Ctx) error {
		return api.GetTemplate(c, ws.Service)
	})
	apiGrp.Post("/templates/:name/render", middleware.JwtMiddleware(ws.config.JwtKey), func(c *fiber.Ctx) error {
		return api.RenderTemplate(c, ws.Service)
	})

	// VHost routes

	apiGrp.Get("/vhosts", middleware.JwtMiddleware(ws.config.JwtKey), func(c *fiber.Ctx) error {
		return api.ListVhosts(c, ws.Service)
	})

	// System routes

	apiGrp.Get("/systems", middleware.JwtMiddleware(ws.config.JwtKey), func(c *fiber.Ctx) error {
		return api.ListSystems(c, ws.Service)
	})
	apiGrp.Post("/systems", middleware.JwtMiddleware(ws.config.JwtKey), func(c *fiber.Ctx) error {
		return api.CreateSystem(c, ws.Service)
	})
	apiGrp.Get("/systems/:vhost/:system/resources", middleware.JwtMiddleware(ws.config.JwtKey), func(c *fiber.Ctx) error {
		return api.GetSystemResources(c, ws.Service)
	})
	apiGrp.Delete("/systems/:vhost/:system", middleware.JwtMiddleware(ws.config.JwtKey), func(c *fiber.Ctx) error {
		return api.DeleteSystem(c, ws.Service)
	})
	apiGrp.Post("/exchanges/force-delete", middleware.JwtMiddleware(ws.config.JwtKey), func(c *fiber.Ctx) error {
		return api.ForceDeleteExchanges(c, ws.Service)
	})

	// Credential routes

	apiGrp.Get("/systems/:vhost/:system/credentials", middleware.JwtMiddleware(ws.config.JwtKey), func(c *fiber.Ctx) error {
		return api.ListSystemCredentials(c, ws.Service)
	})
	apiGrp.Post("/credentials", middleware.JwtMiddleware(ws.config.JwtKey), func(c *fiber.Ctx) error {
		return api.AttachCredential(c, ws.Service)
	})

	// Publish route

	apiGrp.Post("/publish", middleware.JwtMiddleware(ws.config.JwtKey), func(c *fiber.Ctx) error {
		return api.PublishTestMessage(c, func(vhost string) (*amqp091.Connection, error) {
			return GetBrokerClient(ws.config, vhost)
		})
	})
}

func (ws *WebServer) AddAdminApi(app *fiber.App) {
	// Admin API routes
	apiAdminGrp := app.Group(ws.config.ApiPrefix + "/admin")
	apiAdminGrp.Use(middleware.JwtMiddleware(ws.config.JwtKey))
	apiAdminGrp.Get("/users", api_admin.GetUsers)
	apiAdminGrp.Post("/users", api_admin.AddUser)
	apiAdminGrp.Get("/operations", api_admin.GetOperations)
}

func (ws *WebServer) configServer(logFile *os.File) *fiber.App {

	config := fiber.Config{
		Prefork:               false,
		AppName:               "mqforge-management-api",
		DisableStartupMessage: true,
	}
	app := fiber.New(config)

	// Enable CORS
	app.Use(middleware.CORSMiddleware())

	app.Use(logger.New(logger.Config{
		Output: logFile,
	}))
	return app
}
