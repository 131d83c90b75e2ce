package commands

import (
	"github.com/spf13/cobra"

	"github.com/mqforge/mqforge/config"
	"github.com/mqforge/mqforge/internal/core/gateway"
	"github.com/mqforge/mqforge/internal/core/manager"
	"github.com/mqforge/mqforge/internal/core/template"
	"github.com/mqforge/mqforge/pkg/logger"
	"github.com/mqforge/mqforge/pkg/metrics"
)

var jsonOutput bool

// Execute runs the root command
func Execute(version string) error {
	rootCmd := newRootCommand(version)
	return rootCmd.Execute()
}

func newRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mqforge",
		Short: "MQForge - declarative lifecycle management for broker resources",
		Long: `MQForge provisions, discovers, and tears down logical systems of
queues, exchanges, and bindings on a message broker, driven by
parameterized YAML templates and ownership metadata tags.`,
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg := config.LoadConfig(version)
			logger.Init(cfg.LogLevel)
		},
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")

	rootCmd.AddCommand(newServeCommand(version))
	rootCmd.AddCommand(newProvisionCommand(version))
	rootCmd.AddCommand(newSystemsCommand(version))
	rootCmd.AddCommand(newTemplatesCommand(version))

	return rootCmd
}

// newService builds the lifecycle manager the CLI commands run against. CLI
// runs use the noop metrics collector and no audit store.
func newService(cfg *config.Config) (*manager.Service, error) {
	registry, err := template.LoadDir(cfg.TemplateDir)
	if err != nil {
		return nil, err
	}

	client := gateway.NewClient(cfg.ManagementURL, metrics.NewNoop())
	client.SetCredentials(cfg.Username, cfg.Password)

	return manager.NewService(client, registry, nil, nil), nil
}
