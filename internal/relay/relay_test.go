package relay_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xcoobee/xcoobee-go-sdk/internal/constants"
	"github.com/xcoobee/xcoobee-go-sdk/internal/relay"
	"github.com/xcoobee/xcoobee-go-sdk/pkg/xcoobee"
)

var (
	errPublish = errors.New("nats: connection closed")
	errFetch   = errors.New("bad cursor")
)

// MockPublisher records published messages.
type MockPublisher struct {
	mu      sync.Mutex
	msgs    []*nats.Msg
	failAt  int
	flushed bool
}

func (p *MockPublisher) PublishMsg(msg *nats.Msg) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.failAt > 0 && len(p.msgs)+1 == p.failAt {
		return errPublish
	}

	p.msgs = append(p.msgs, msg)

	return nil
}

func (p *MockPublisher) FlushWithContext(ctx context.Context) error {
	p.flushed = true

	return nil
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

// consentPages serves "" -> E1 -> end, optionally failing the second page.
func consentPages(t *testing.T, failSecond bool) *xcoobee.PagingResponse[xcoobee.Consent] {
	t.Helper()

	fetcher := func(ctx context.Context, cfg xcoobee.EffectiveConfig, params xcoobee.PageParams) (*xcoobee.Page[xcoobee.Consent], error) {
		switch params.After {
		case "":
			return &xcoobee.Page[xcoobee.Consent]{
				Data: []xcoobee.Consent{
					{ConsentCursor: "k1", ConsentStatus: "active"},
					{ConsentCursor: "k2", ConsentStatus: "pending"},
				},
				PageInfo: xcoobee.PageInfo{EndCursor: strPtr("E1"), HasNextPage: boolPtr(true)},
			}, nil
		case "E1":
			if failSecond {
				return nil, errFetch
			}

			return &xcoobee.Page[xcoobee.Consent]{
				Data:     []xcoobee.Consent{{ConsentCursor: "k3", ConsentStatus: "active"}},
				PageInfo: xcoobee.PageInfo{HasNextPage: boolPtr(false)},
			}, nil
		}

		t.Errorf("unexpected cursor %q", params.After)

		return nil, errFetch
	}

	resp := xcoobee.StartPaging(context.Background(), fetcher, xcoobee.EffectiveConfig{}, xcoobee.PageParams{})
	require.True(t, resp.IsSuccess())

	return resp.Result
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := relay.New(&MockPublisher{}, "")
	require.ErrorIs(t, err, constants.ErrSubjectRequired)
}

func TestRelay_Run(t *testing.T) {
	t.Parallel()

	publisher := &MockPublisher{}
	r, err := relay.New(publisher, "xcoobee.consents")
	require.NoError(t, err)

	count, err := r.Run(context.Background(), consentPages(t, false))
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.True(t, publisher.flushed)

	require.Len(t, publisher.msgs, 3)

	first := publisher.msgs[0]
	assert.Equal(t, "xcoobee.consents", first.Subject)
	assert.Equal(t, "k1", first.Header.Get(relay.HeaderConsentID))
	assert.Equal(t, "active", first.Header.Get(relay.HeaderStatus))
	assert.Equal(t, "k1:active", first.Header.Get(relay.HeaderMsgID))

	var decoded xcoobee.Consent

	require.NoError(t, json.Unmarshal(first.Data, &decoded))
	assert.Equal(t, "k1", decoded.ConsentCursor)
	assert.Equal(t, "k3", publisher.msgs[2].Header.Get(relay.HeaderConsentID))
}

func TestRelay_RunStopsOnPageFailure(t *testing.T) {
	t.Parallel()

	publisher := &MockPublisher{}
	r, err := relay.New(publisher, "xcoobee.consents")
	require.NoError(t, err)

	count, err := r.Run(context.Background(), consentPages(t, true))
	assert.Equal(t, 2, count)

	var errResp *xcoobee.ErrorResponse
	require.ErrorAs(t, err, &errResp)
	assert.Equal(t, 400, errResp.Code)
	assert.Equal(t, "bad cursor", errResp.Err.Message)
	assert.False(t, publisher.flushed)
}

func TestRelay_RunStopsOnPublishFailure(t *testing.T) {
	t.Parallel()

	publisher := &MockPublisher{failAt: 2}
	r, err := relay.New(publisher, "xcoobee.consents")
	require.NoError(t, err)

	count, err := r.Run(context.Background(), consentPages(t, false))
	require.ErrorIs(t, err, errPublish)
	assert.Equal(t, 1, count)
}

func TestRelay_MaxPages(t *testing.T) {
	t.Parallel()

	publisher := &MockPublisher{}
	r, err := relay.New(publisher, "xcoobee.consents", relay.WithMaxPages(1))
	require.NoError(t, err)

	count, err := r.Run(context.Background(), consentPages(t, false))
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestRelay_RunHonoursCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r, err := relay.New(&MockPublisher{}, "xcoobee.consents")
	require.NoError(t, err)

	count, err := r.Run(ctx, consentPages(t, false))
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, count)
}

func TestConnect_RequiresURL(t *testing.T) {
	t.Parallel()

	_, err := relay.Connect("")
	require.ErrorIs(t, err, constants.ErrNATSURLRequired)
}
