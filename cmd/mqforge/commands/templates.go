package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mqforge/mqforge/config"
	"github.com/mqforge/mqforge/internal/core/template"
)

func newTemplatesCommand(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Inspect loaded templates",
	}

	cmd.AddCommand(newTemplatesListCommand(version))
	cmd.AddCommand(newTemplatesRenderCommand(version))

	return cmd
}

func newTemplatesListCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List templates found in the template directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig(version)
			registry, err := template.LoadDir(cfg.TemplateDir)
			if err != nil {
				return err
			}

			templates := registry.List()
			if jsonOutput {
				names := make([]map[string]string, 0, len(templates))
				for _, tpl := range templates {
					names = append(names, map[string]string{
						"name":        tpl.Metadata.Name,
						"version":     tpl.Metadata.Version,
						"description": tpl.Metadata.Description,
					})
				}
				return json.NewEncoder(os.Stdout).Encode(names)
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tVERSION\tPARAMETERS\tQUEUES\tEXCHANGES\tDESCRIPTION")
			for _, tpl := range templates {
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%s\n",
					tpl.Metadata.Name, tpl.Metadata.Version,
					len(tpl.Parameters), len(tpl.Queues), len(tpl.Exchanges),
					tpl.Metadata.Description)
			}
			return w.Flush()
		},
	}
}

func newTemplatesRenderCommand(version string) *cobra.Command {
	var params []string

	cmd := &cobra.Command{
		Use:   "render <template>",
		Short: "Validate parameters and print the rendered resource set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig(version)
			registry, err := template.LoadDir(cfg.TemplateDir)
			if err != nil {
				return err
			}

			tpl := registry.Get(args[0])
			if tpl == nil {
				return fmt.Errorf("template '%s' not found", args[0])
			}

			values, err := parseParams(params)
			if err != nil {
				return err
			}

			rendered, validationErrs := template.ValidateAndRender(tpl, values)
			if len(validationErrs) > 0 {
				for _, ve := range validationErrs {
					fmt.Fprintf(os.Stderr, "invalid parameter %s: %s\n", ve.Field, ve.Message)
				}
				return fmt.Errorf("parameter validation failed")
			}

			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(rendered)
		},
	}

	cmd.Flags().StringArrayVar(&params, "param", nil, "parameter value as key=value (repeatable)")
	return cmd
}
