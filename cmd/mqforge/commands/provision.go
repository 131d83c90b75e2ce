package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mqforge/mqforge/config"
)

func newProvisionCommand(version string) *cobra.Command {
	var (
		vhost  string
		params []string
	)

	cmd := &cobra.Command{
		Use:   "provision <template>",
		Short: "Provision a system from a template",
		Example: `  # Provision a retry topology on the default vhost
  mqforge provision retry-system --param queuePrefix=orders

  # Override the vhost and a numeric parameter
  mqforge provision retry-system --vhost staging --param queuePrefix=orders --param retryDelay=60000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig(version)
			if vhost == "" {
				vhost = cfg.DefaultVHost
			}

			values, err := parseParams(params)
			if err != nil {
				return err
			}

			svc, err := newService(cfg)
			if err != nil {
				return err
			}

			resp, validationErrs, err := svc.ProvisionFromTemplate(cmd.Context(), vhost, args[0], values)
			if len(validationErrs) > 0 {
				for _, ve := range validationErrs {
					fmt.Fprintf(os.Stderr, "invalid parameter %s: %s\n", ve.Field, ve.Message)
				}
				return fmt.Errorf("parameter validation failed")
			}
			if err != nil {
				return err
			}

			if jsonOutput {
				return json.NewEncoder(os.Stdout).Encode(resp)
			}
			fmt.Printf("Provisioned %s: %d queues, %d exchanges, %d bindings\n",
				resp.SystemID, resp.Queues, resp.Exchanges, resp.Bindings)
			return nil
		},
	}

	cmd.Flags().StringVar(&vhost, "vhost", "", "target vhost (defaults to MQFORGE_VHOST)")
	cmd.Flags().StringArrayVar(&params, "param", nil, "parameter value as key=value (repeatable)")

	return cmd
}

// parseParams converts key=value pairs, keeping native types where the value
// parses as a number or boolean so lone-placeholder fields render correctly.
func parseParams(pairs []string) (map[string]any, error) {
	values := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, raw, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid --param %q, expected key=value", pair)
		}
		values[key] = coerceValue(raw)
	}
	return values, nil
}

func coerceValue(raw string) any {
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	return raw
}
