package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mqforge/mqforge/config"
	"github.com/mqforge/mqforge/internal/core/gateway"
	"github.com/mqforge/mqforge/internal/core/manager"
	"github.com/mqforge/mqforge/internal/core/template"
	"github.com/mqforge/mqforge/internal/persistdb"
	"github.com/mqforge/mqforge/pkg/metrics"
	"github.com/mqforge/mqforge/web"
)

func newServeCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MQForge management API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig(version)
			return runServer(cfg)
		},
	}
}

func runServer(cfg *config.Config) error {
	// Ensure the data directory exists
	if _, err := os.Stat(cfg.DataDir); os.IsNotExist(err) {
		log.Info().Msg("Data directory not found. Creating a new one...")
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			log.Fatal().Err(err).Msg("Failed to create data directory")
		}
	}

	// Verify if the database file exists
	log.Info().Msg("Searching for database...")
	dbPath := filepath.Join(cfg.DataDir, "mqforge.db")
	persistdb.SetDbPath(dbPath)
	_, statErr := os.Stat(dbPath)
	firstRun := os.IsNotExist(statErr)

	if err := persistdb.OpenDB(); err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer persistdb.CloseDB()
	if err := persistdb.InitDB(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	if firstRun {
		log.Info().Msg("Database file not found. Creating a new one...")
		user := persistdb.UserCreateDTO{Username: cfg.AdminUser, Password: cfg.AdminPassword}
		if err := persistdb.AddUser(user); err != nil {
			log.Error().Err(err).Msg("Failed to add admin user")
		}
	}

	registry, err := template.LoadDir(cfg.TemplateDir)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load templates")
	}
	log.Info().Int("templates", len(registry.List())).Str("dir", cfg.TemplateDir).Msg("Templates loaded")

	var collector *metrics.PrometheusCollector
	var svcCollector metrics.Collector
	if cfg.EnableMetrics {
		collector = metrics.NewPrometheusCollector()
		svcCollector = collector
	}

	client := gateway.NewClient(cfg.ManagementURL, svcCollector)
	client.SetCredentials(cfg.Username, cfg.Password)

	svc := manager.NewService(client, registry, svcCollector, persistdb.NewAuditLog())

	webConfig := &web.Config{
		BrokerHost:    cfg.AmqpHost,
		BrokerPort:    cfg.AmqpPort,
		Username:      cfg.Username,
		Password:      cfg.Password,
		JwtKey:        cfg.JwtSecret,
		WebServerPort: cfg.WebPort,
		EnableSwagger: cfg.EnableSwagger,
		EnableMetrics: cfg.EnableMetrics,
		SwaggerPrefix: "/swagger",
		ApiPrefix:     "/api",
	}
	webServer, err := web.NewWebServer(webConfig, svc, collector)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create web server")
	}

	// open "server.log" for appending
	logfile, err := os.OpenFile("server.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open log file")
	}
	defer logfile.Close()

	app := webServer.SetupApp(logfile)

	// Start the web server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.WebPort)
		log.Info().Str("addr", addr).Msg("Starting web server")
		if err := app.Listen(addr); err != nil {
			log.Fatal().Err(err).Msg("Web server error")
		}
	}()

	// Handle OS signals for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Info().Msg("Shutting down MQForge...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Failed to shutdown web server")
	}
	log.Info().Msg("Server gracefully stopped")
	return nil
}
