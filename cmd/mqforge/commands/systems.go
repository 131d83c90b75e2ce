package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mqforge/mqforge/config"
)

func newSystemsCommand(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "systems",
		Short: "Inspect and tear down managed systems",
	}

	cmd.AddCommand(newSystemsListCommand(version))
	cmd.AddCommand(newSystemsResourcesCommand(version))
	cmd.AddCommand(newSystemsDeleteCommand(version))
	cmd.AddCommand(newForceDeleteCommand(version))

	return cmd
}

func newSystemsListCommand(version string) *cobra.Command {
	var vhost string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List managed systems discovered from resource metadata",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig(version)
			if vhost == "" {
				vhost = cfg.DefaultVHost
			}

			svc, err := newService(cfg)
			if err != nil {
				return err
			}

			systems, err := svc.ListManagedSystems(cmd.Context(), vhost)
			if err != nil {
				return err
			}

			if jsonOutput {
				return json.NewEncoder(os.Stdout).Encode(systems)
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SYSTEM ID\tTEMPLATE\tVERSION\tQUEUES\tEXCHANGES\tCREATED")
			for _, s := range systems {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
					s.SystemID, s.Template, s.Version, s.QueueCount, s.ExchangeCount, s.CreatedAt)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&vhost, "vhost", "", "vhost to inspect (defaults to MQFORGE_VHOST)")
	return cmd
}

func newSystemsResourcesCommand(version string) *cobra.Command {
	var vhost string

	cmd := &cobra.Command{
		Use:   "resources <system-id>",
		Short: "List the queues and exchanges owned by a system",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig(version)
			if vhost == "" {
				vhost = cfg.DefaultVHost
			}

			svc, err := newService(cfg)
			if err != nil {
				return err
			}

			resources, err := svc.GetSystemResources(cmd.Context(), vhost, args[0])
			if err != nil {
				return err
			}

			if jsonOutput {
				return json.NewEncoder(os.Stdout).Encode(resources)
			}
			for _, q := range resources.Queues {
				fmt.Printf("queue\t%s\n", q.Name)
			}
			for _, ex := range resources.Exchanges {
				fmt.Printf("exchange\t%s (%s)\n", ex.Name, ex.Type)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&vhost, "vhost", "", "vhost to inspect (defaults to MQFORGE_VHOST)")
	return cmd
}

func newSystemsDeleteCommand(version string) *cobra.Command {
	var vhost string

	cmd := &cobra.Command{
		Use:   "delete <system-id>",
		Short: "Tear down a managed system",
		Long: `Delete the system's queues, then iteratively delete exchanges the
system owns once they have no outgoing bindings left. Exchanges still
referenced by other systems are reported instead of deleted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig(version)
			if vhost == "" {
				vhost = cfg.DefaultVHost
			}

			svc, err := newService(cfg)
			if err != nil {
				return err
			}

			report, err := svc.DeleteSystem(cmd.Context(), vhost, args[0])
			if err != nil {
				return err
			}

			if jsonOutput {
				return json.NewEncoder(os.Stdout).Encode(report)
			}
			fmt.Printf("Deleted %d queues, %d exchanges\n", len(report.DeletedQueues), len(report.DeletedExchanges))
			for _, rem := range report.RemainingExchanges {
				fmt.Printf("remaining: %s (%s, %d bindings)\n", rem.Name, rem.Reason, rem.BindingCount)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&vhost, "vhost", "", "vhost to operate on (defaults to MQFORGE_VHOST)")
	return cmd
}

func newForceDeleteCommand(version string) *cobra.Command {
	var vhost string

	cmd := &cobra.Command{
		Use:   "force-delete <exchange> [exchange...]",
		Short: "Force delete exchanges regardless of bindings or ownership",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig(version)
			if vhost == "" {
				vhost = cfg.DefaultVHost
			}

			svc, err := newService(cfg)
			if err != nil {
				return err
			}

			deleted := svc.ForceDeleteExchanges(cmd.Context(), vhost, args)
			if jsonOutput {
				return json.NewEncoder(os.Stdout).Encode(deleted)
			}
			for _, name := range deleted {
				fmt.Printf("deleted %s\n", name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&vhost, "vhost", "", "vhost to operate on (defaults to MQFORGE_VHOST)")
	return cmd
}
