package commands

import (
	"context"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/xcoobee/xcoobee-go-sdk/internal/constants"
	"github.com/xcoobee/xcoobee-go-sdk/pkg/xcoobee"
)

// NewConsentsCommand creates the consents command group
func NewConsentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "consents",
		Aliases: []string{"consent"},
		Short:   "Manage consents",
		Long:    "List, inspect, request and confirm consents",
	}

	cmd.AddCommand(newConsentsListCommand())
	cmd.AddCommand(newConsentsGetCommand())
	cmd.AddCommand(newConsentsCookiesCommand())
	cmd.AddCommand(newConsentsRequestCommand())
	cmd.AddCommand(newConsentsConfirmChangeCommand())
	cmd.AddCommand(newConsentsConfirmDeleteCommand())
	cmd.AddCommand(newConsentsRespondCommand())

	return cmd
}

func newConsentsListCommand() *cobra.Command {
	var (
		status   string
		all      bool
		first    int
		maxPages int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List consents",
		Long:  "List the consents of the current user, optionally filtered by status",
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

			paging, err := unwrap(client.Consents().ListConsents(cmd.Context(), status, nil))
			if err != nil {
				return err
			}

			consents := paging.Data()
			if all {
				consents, err = paging.Collect(cmd.Context(), maxPages)
				if err != nil {
					return err
				}
			}

			return renderConsents(cmd, settings.Output, consents)
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by consent status")
	cmd.Flags().BoolVar(&all, "all", false, "fetch all pages")
	cmd.Flags().IntVar(&first, "first", 0, "page size (0 uses the configured page size)")
	cmd.Flags().IntVar(&maxPages, "max-pages", constants.DefaultMaxPages, "maximum pages fetched with --all")

	return cmd
}

func newConsentsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get CONSENT_ID",
		Short: "Get consent details",
		Long:  "Display the data of a single consent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(args[0]) == "" {
				return ErrConsentIDRequired
			}

			settings, err := loadSettings()
			if err != nil {
				return err
			}

			client, done, err := createClient(cmd, settings, 0)
			if err != nil {
				return err
			}
			defer done()

			consent, err := unwrap(client.Consents().GetConsentData(cmd.Context(), args[0], nil))
			if err != nil {
				return err
			}

			return render(cmd.OutOrStdout(), settings.Output, consent, func(table *tablewriter.Table) {
				table.Header("Property", "Value")
				_ = table.Append("Cursor", consent.ConsentCursor)
				_ = table.Append("Name", orNotAvailable(consent.ConsentName))
				_ = table.Append("Status", consent.ConsentStatus)
				_ = table.Append("Type", orNotAvailable(consent.ConsentType))
				_ = table.Append("User", orNotAvailable(consent.UserXcooBeeID))
				_ = table.Append("Created", orNotAvailable(consent.DateCreated))
				_ = table.Append("Expires", orNotAvailable(consent.DateExpires))
				_ = table.Append("Data Types", orNotAvailable(strings.Join(consent.RequestDataTypes, ", ")))
			})
		},
	}
}

func newConsentsCookiesCommand() *cobra.Command {
	var campaignID string

	cmd := &cobra.Command{
		Use:   "cookies XCOOBEE_ID",
		Short: "Show cookie consent",
		Long:  "Show which cookie types an XcooBee user has approved for a campaign",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(args[0]) == "" {
				return ErrXcooBeeIDRequired
			}

			settings, err := loadSettings()
			if err != nil {
				return err
			}

			client, done, err := createClient(cmd, settings, 0)
			if err != nil {
				return err
			}
			defer done()

			cookies, err := unwrap(client.Consents().GetCookieConsent(cmd.Context(), args[0], campaignID, nil))
			if err != nil {
				return err
			}

			return render(cmd.OutOrStdout(), settings.Output, cookies, func(table *tablewriter.Table) {
				table.Header("Type", "Approved")

				for _, cookie := range cookies {
					_ = table.Append(cookie.Type, formatBool(cookie.Approved))
				}
			})
		},
	}

	cmd.Flags().StringVar(&campaignID, "campaign", "", "campaign ID (defaults to the configured campaign_id)")

	return cmd
}

func newConsentsRequestCommand() *cobra.Command {
	var (
		refID      string
		campaignID string
	)

	cmd := &cobra.Command{
		Use:   "request XCOOBEE_ID",
		Short: "Request consent",
		Long:  "Ask an XcooBee user for consent under a campaign",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(args[0]) == "" {
				return ErrXcooBeeIDRequired
			}

			if refID == "" {
				return constants.ErrRefIDRequired
			}

			settings, err := loadSettings()
			if err != nil {
				return err
			}

			client, done, err := createClient(cmd, settings, 0)
			if err != nil {
				return err
			}
			defer done()

			result, err := unwrap(client.Consents().RequestConsent(cmd.Context(), args[0], refID, campaignID, nil))
			if err != nil {
				return err
			}

			return render(cmd.OutOrStdout(), settings.Output, result, func(table *tablewriter.Table) {
				table.Header("Property", "Value")
				_ = table.Append("Reference", result.RefID)
			})
		},
	}

	cmd.Flags().StringVar(&refID, "ref", "", "reference ID returned with the consent (required)")
	cmd.Flags().StringVar(&campaignID, "campaign", "", "campaign ID (defaults to the configured campaign_id)")

	return cmd
}

func newConsentsRespondCommand() *cobra.Command {
	var (
		message string
		refID   string
	)

	cmd := &cobra.Command{
		Use:   "respond CONSENT_ID",
		Short: "Respond to a data request",
		Long:  "Send a message to the owner of a consent in answer to their data request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(args[0]) == "" {
				return ErrConsentIDRequired
			}

			if message == "" {
				return ErrMessageRequired
			}

			settings, err := loadSettings()
			if err != nil {
				return err
			}

			client, done, err := createClient(cmd, settings, 0)
			if err != nil {
				return err
			}
			defer done()

			result, err := unwrap(client.Consents().SetUserDataResponse(cmd.Context(), message, args[0], refID, nil))
			if err != nil {
				return err
			}

			return render(cmd.OutOrStdout(), settings.Output, result, func(table *tablewriter.Table) {
				table.Header("Progress")

				for _, step := range result.Progress {
					_ = table.Append(step)
				}
			})
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "message sent to the consent owner (required)")
	cmd.Flags().StringVar(&refID, "ref", "", "reference of the data request being answered")

	return cmd
}

func newConsentsConfirmChangeCommand() *cobra.Command {
	return newConfirmCommand("confirm-change", "Confirm a consent change",
		"Confirm that a change requested by the consent owner was applied",
		func(c xcoobee.ConsentsClient) confirmFunc { return c.ConfirmConsentChange })
}

func newConsentsConfirmDeleteCommand() *cobra.Command {
	return newConfirmCommand("confirm-delete", "Confirm a data deletion",
		"Confirm that the data behind a consent was deleted",
		func(c xcoobee.ConsentsClient) confirmFunc { return c.ConfirmDataDelete })
}

type confirmFunc func(ctx context.Context, consentID string, cfg *xcoobee.Config) (*xcoobee.Response[*xcoobee.ConfirmationResult], error)

func newConfirmCommand(use, short, long string, pick func(xcoobee.ConsentsClient) confirmFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use + " CONSENT_ID",
		Short: short,
		Long:  long,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(args[0]) == "" {
				return ErrConsentIDRequired
			}

			settings, err := loadSettings()
			if err != nil {
				return err
			}

			client, done, err := createClient(cmd, settings, 0)
			if err != nil {
				return err
			}
			defer done()

			result, err := unwrap(pick(client.Consents())(cmd.Context(), args[0], nil))
			if err != nil {
				return err
			}

			return render(cmd.OutOrStdout(), settings.Output, result, func(table *tablewriter.Table) {
				table.Header("Consent", "Confirmed")
				_ = table.Append(args[0], formatBool(result.Confirmed))
			})
		},
	}
}

func renderConsents(cmd *cobra.Command, format string, consents []xcoobee.Consent) error {
	return render(cmd.OutOrStdout(), format, consents, func(table *tablewriter.Table) {
		table.Header("Cursor", "Name", "Status", "User", "Created")

		for _, consent := range consents {
			_ = table.Append(
				consent.ConsentCursor,
				orNotAvailable(consent.ConsentName),
				consent.ConsentStatus,
				orNotAvailable(consent.UserXcooBeeID),
				orNotAvailable(consent.DateCreated),
			)
		}
	})
}
