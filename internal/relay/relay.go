// Package relay forwards consent records to a NATS subject.
package relay

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/xcoobee/xcoobee-go-sdk/internal/constants"
	"github.com/xcoobee/xcoobee-go-sdk/pkg/xcoobee"
)

// Header names set on every published message.
const (
	HeaderMsgID     = nats.MsgIdHdr
	HeaderConsentID = "Xcoobee-Consent-Id"
	HeaderStatus    = "Xcoobee-Consent-Status"
)

// Publisher sends one message. *nats.Conn satisfies it.
type Publisher interface {
	PublishMsg(msg *nats.Msg) error
}

// Flusher is implemented by publishers that buffer, such as *nats.Conn.
type Flusher interface {
	FlushWithContext(ctx context.Context) error
}

// Relay walks consent pages and publishes every record.
type Relay struct {
	publisher Publisher
	subject   string
	maxPages  int
	logger    xcoobee.Logger
}

// Option configures a Relay.
type Option func(*Relay)

// WithLogger sets the logger.
func WithLogger(logger xcoobee.Logger) Option {
	return func(r *Relay) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMaxPages bounds how many pages one Run may fetch.
func WithMaxPages(maxPages int) Option {
	return func(r *Relay) {
		if maxPages > 0 {
			r.maxPages = maxPages
		}
	}
}

// New creates a relay publishing to subject.
func New(publisher Publisher, subject string, opts ...Option) (*Relay, error) {
	if subject == "" {
		return nil, constants.ErrSubjectRequired
	}

	relay := &Relay{
		publisher: publisher,
		subject:   subject,
		maxPages:  constants.DefaultMaxPages,
		logger:    xcoobee.NopLogger{},
	}

	for _, opt := range opts {
		opt(relay)
	}

	return relay, nil
}

// Run publishes the consents of first and of every following page, and
// returns how many were published. A page that fails to load stops the run
// with the *xcoobee.ErrorResponse describing it.
func (r *Relay) Run(ctx context.Context, first *xcoobee.PagingResponse[xcoobee.Consent]) (int, error) {
	published := 0
	page := first

	for pages := 0; page != nil && pages < r.maxPages; pages++ {
		for _, consent := range page.Data() {
			err := ctx.Err()
			if err != nil {
				return published, err
			}

			err = r.publish(consent)
			if err != nil {
				return published, err
			}

			published++
		}

		r.logger.Debug("relayed consent page", map[string]interface{}{
			"subject":   r.subject,
			"page":      pages + 1,
			"published": published,
		})

		next, err := page.GetNextPage(ctx)
		if err != nil {
			return published, err
		}

		page = next
	}

	if flusher, ok := r.publisher.(Flusher); ok {
		err := flusher.FlushWithContext(ctx)
		if err != nil {
			return published, fmt.Errorf("failed to flush publisher: %w", err)
		}
	}

	r.logger.Info("consent relay finished", map[string]interface{}{
		"subject":   r.subject,
		"published": published,
	})

	return published, nil
}

func (r *Relay) publish(consent xcoobee.Consent) error {
	data, err := json.Marshal(consent)
	if err != nil {
		return fmt.Errorf("failed to encode consent %s: %w", consent.ConsentCursor, err)
	}

	msg := nats.NewMsg(r.subject)
	msg.Data = data
	msg.Header.Set(HeaderMsgID, consent.ConsentCursor+":"+consent.ConsentStatus)
	msg.Header.Set(HeaderConsentID, consent.ConsentCursor)
	msg.Header.Set(HeaderStatus, consent.ConsentStatus)

	err = r.publisher.PublishMsg(msg)
	if err != nil {
		return fmt.Errorf("failed to publish consent %s: %w", consent.ConsentCursor, err)
	}

	return nil
}

// Connect opens a NATS connection named for this relay.
func Connect(url string, opts ...nats.Option) (*nats.Conn, error) {
	if url == "" {
		return nil, constants.ErrNATSURLRequired
	}

	conn, err := nats.Connect(url, append([]nats.Option{nats.Name(constants.DefaultUserAgent + "-relay")}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return conn, nil
}
