package commands

import (
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/xcoobee/xcoobee-go-sdk/internal/constants"
)

// NewCampaignsCommand creates the campaigns command group
func NewCampaignsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "campaigns",
		Aliases: []string{"campaign"},
		Short:   "Manage consent campaigns",
		Long:    "List and inspect the consent campaigns of the current user",
	}

	cmd.AddCommand(newCampaignsListCommand())
	cmd.AddCommand(newCampaignsGetCommand())

	return cmd
}

func newCampaignsListCommand() *cobra.Command {
	var (
		all      bool
		first    int
		maxPages int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List campaigns",
		Long:  "List the campaigns of the current user",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings()
			if err != nil {
				return err
			}

			client, done, err := createClient(cmd, settings, first)
			if err != nil {
				return err
			}
			defer done()

			paging, err := unwrap(client.Consents().ListCampaigns(cmd.Context(), nil))
			if err != nil {
				return err
			}

			campaigns := paging.Data()
			if all {
				campaigns, err = paging.Collect(cmd.Context(), maxPages)
				if err != nil {
					return err
				}
			}

			return render(cmd.OutOrStdout(), settings.Output, campaigns, func(table *tablewriter.Table) {
				table.Header("Cursor", "Name", "Status")

				for _, campaign := range campaigns {
					_ = table.Append(campaign.CampaignCursor, campaign.CampaignName, campaign.Status)
				}
			})
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "fetch all pages")
	cmd.Flags().IntVar(&first, "first", 0, "page size (0 uses the configured page size)")
	cmd.Flags().IntVar(&maxPages, "max-pages", constants.DefaultMaxPages, "maximum pages fetched with --all")

	return cmd
}

func newCampaignsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get [CAMPAIGN_ID]",
		Short: "Get campaign details",
		Long:  "Display a campaign. Without an argument the configured campaign_id is used.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings()
			if err != nil {
				return err
			}

			client, done, err := createClient(cmd, settings, 0)
			if err != nil {
				return err
			}
			defer done()

			campaignID := ""
			if len(args) > 0 {
				campaignID = args[0]
			}

			info, err := unwrap(client.Consents().GetCampaignInfo(cmd.Context(), campaignID, nil))
			if err != nil {
				return err
			}

			return render(cmd.OutOrStdout(), settings.Output, info, func(table *tablewriter.Table) {
				table.Header("Property", "Value")
				_ = table.Append("Name", info.CampaignName)
				_ = table.Append("Title", localized(info.CampaignTitle))
				_ = table.Append("Description", localized(info.CampaignDescription))
				_ = table.Append("Status", info.Status)
				_ = table.Append("Created", orNotAvailable(info.DateCreated))
				_ = table.Append("Expires", orNotAvailable(info.DateExpires))
				_ = table.Append("Endpoint", orNotAvailable(info.Endpoint))

				for _, target := range info.Targets {
					_ = table.Append("Target", target.Name+" "+target.Recipient)
				}
			})
		},
	}
}
