package commands

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/xcoobee/xcoobee-go-sdk/internal/config"
)

// NewConfigCommand creates the config command group
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "View and modify the XcooBee CLI configuration file",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the current CLI configuration with the API secret masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load(viper.GetString("config"))
			if err != nil {
				return err
			}

			values := make(map[string]string, len(config.Keys))
			for _, key := range config.Keys {
				values[key], _ = settings.Get(key)
			}

			return render(cmd.OutOrStdout(), viper.GetString("output"), values, func(table *tablewriter.Table) {
				table.Header("Key", "Value")

				for _, key := range config.Keys {
					_ = table.Append(key, orNotAvailable(values[key]))
				}
			})
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long: `Set a configuration value and save it to the configuration file.

Valid keys: api_url_root, api_key, api_secret, campaign_id, output, page_size,
nats_url, nats_subject`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := viper.GetString("config")

			settings, err := config.LoadFile(path)
			if err != nil {
				return err
			}

			err = settings.Set(args[0], args[1])
			if err != nil {
				return err
			}

			err = config.Save(path, settings)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s\n", args[0])

			return nil
		},
	}
}
