package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xcoobee/xcoobee-go-sdk/internal/constants"
	"github.com/xcoobee/xcoobee-go-sdk/internal/relay"
	"github.com/xcoobee/xcoobee-go-sdk/pkg/log/zaplog"
)

// NewRelayCommand creates the relay command group
func NewRelayCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "relay",
		Short: "Relay records to NATS",
		Long:  "Publish XcooBee records to a NATS subject for downstream processing",
	}

	cmd.AddCommand(newRelayConsentsCommand())

	return cmd
}

func newRelayConsentsCommand() *cobra.Command {
	var (
		natsURL  string
		subject  string
		status   string
		first    int
		maxPages int
	)

	cmd := &cobra.Command{
		Use:   "consents",
		Short: "Publish consents to NATS",
		Long: `Walk every page of the consent listing and publish each consent as a JSON
message. Messages carry a Nats-Msg-Id header so JetStream can drop duplicates
when the relay runs again.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings()
			if err != nil {
				return err
			}

			if natsURL == "" {
				natsURL = settings.NATSURL
			}

			if subject == "" {
				subject = settings.NATSSubject
			}

			if natsURL == "" {
				return constants.ErrNATSURLRequired
			}

			if subject == "" {
				return constants.ErrSubjectRequired
			}

			logger, err := newLogger()
			if err != nil {
				return err
			}

			client, done, err := createClient(cmd, settings, first)
			if err != nil {
				return err
			}
			defer done()

			conn, err := relay.Connect(natsURL)
			if err != nil {
				return err
			}
			defer conn.Close()

			r, err := relay.New(conn, subject,
				relay.WithLogger(zaplog.New(logger)),
				relay.WithMaxPages(maxPages),
			)
			if err != nil {
				return err
			}

			paging, err := unwrap(client.Consents().ListConsents(cmd.Context(), status, nil))
			if err != nil {
				return err
			}

			published, err := r.Run(cmd.Context(), paging)
			if err != nil {
				return fmt.Errorf("relay stopped after %d consents: %w", published, err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Published %d consents to %s\n", published, subject)

			return nil
		},
	}

	cmd.Flags().StringVar(&natsURL, "nats-url", "", "NATS server URL (defaults to the configured nats_url)")
	cmd.Flags().StringVar(&subject, "subject", "", "NATS subject (defaults to the configured nats_subject)")
	cmd.Flags().StringVar(&status, "status", "", "filter by consent status")
	cmd.Flags().IntVar(&first, "first", 0, "page size (0 uses the configured page size)")
	cmd.Flags().IntVar(&maxPages, "max-pages", constants.DefaultMaxPages, "maximum pages to relay")

	return cmd
}
