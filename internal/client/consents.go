package client

import (
	"context"

	"github.com/xcoobee/xcoobee-go-sdk/pkg/xcoobee"
)

const statusFilter = "status"

// ProgressMessageSent is reported once SetUserDataResponse has sent its message.
const ProgressMessageSent = "successfully sent message"

// ConsentsClient implements xcoobee.ConsentsClient.
type ConsentsClient struct {
	client *Client
}

// NewConsentsClient creates a new consents client.
func NewConsentsClient(client *Client) *ConsentsClient {
	return &ConsentsClient{client: client}
}

// begin resolves the effective config of one call. It also returns the
// default layer for campaign id resolution.
func (c *ConsentsClient) begin(override *xcoobee.Config) (xcoobee.EffectiveConfig, *xcoobee.Config, error) {
	def, err := c.client.defaultConfig()
	if err != nil {
		return xcoobee.EffectiveConfig{}, nil, err
	}

	return xcoobee.ResolveConfig(override, def), def, nil
}

func (c *ConsentsClient) token(ctx context.Context, cfg xcoobee.EffectiveConfig) (string, error) {
	return c.client.tokens.Get(ctx, cfg.APIURLRoot, cfg.APIKey, cfg.APISecret)
}

func (c *ConsentsClient) userCursor(ctx context.Context, cfg xcoobee.EffectiveConfig) (string, error) {
	user, err := c.client.users.Get(ctx, cfg.APIURLRoot, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return "", err
	}

	return user.Cursor, nil
}

// GetCampaignInfo implements xcoobee.ConsentsClient.GetCampaignInfo.
func (c *ConsentsClient) GetCampaignInfo(
	ctx context.Context,
	campaignID string,
	override *xcoobee.Config,
) (*xcoobee.Response[*xcoobee.CampaignInfo], error) {
	cfg, def, err := c.begin(override)
	if err != nil {
		return nil, err
	}

	resolvedID, err := xcoobee.ResolveCampaignID(campaignID, override, def)
	if err != nil {
		return nil, err
	}

	return xcoobee.Envelope(func() (*xcoobee.CampaignInfo, error) {
		token, err := c.token(ctx, cfg)
		if err != nil {
			return nil, err
		}

		return c.client.api.GetCampaignInfo(ctx, cfg.APIURLRoot, token, resolvedID)
	}), nil
}

// ListCampaigns implements xcoobee.ConsentsClient.ListCampaigns.
func (c *ConsentsClient) ListCampaigns(
	ctx context.Context,
	override *xcoobee.Config,
) (*xcoobee.Response[*xcoobee.PagingResponse[xcoobee.Campaign]], error) {
	cfg, _, err := c.begin(override)
	if err != nil {
		return nil, err
	}

	fetcher := func(ctx context.Context, cfg xcoobee.EffectiveConfig, params xcoobee.PageParams) (*xcoobee.Page[xcoobee.Campaign], error) {
		token, err := c.token(ctx, cfg)
		if err != nil {
			return nil, err
		}

		cursor, err := c.userCursor(ctx, cfg)
		if err != nil {
			return nil, err
		}

		return c.client.api.ListCampaigns(ctx, cfg.APIURLRoot, token, cursor, params.After, params.First)
	}

	return xcoobee.StartPaging(ctx, fetcher, cfg, xcoobee.PageParams{First: c.client.pageSize}), nil
}

// ListConsents implements xcoobee.ConsentsClient.ListConsents. An empty
// status lists consents of every status.
func (c *ConsentsClient) ListConsents(
	ctx context.Context,
	status string,
	override *xcoobee.Config,
) (*xcoobee.Response[*xcoobee.PagingResponse[xcoobee.Consent]], error) {
	cfg, _, err := c.begin(override)
	if err != nil {
		return nil, err
	}

	fetcher := func(ctx context.Context, cfg xcoobee.EffectiveConfig, params xcoobee.PageParams) (*xcoobee.Page[xcoobee.Consent], error) {
		token, err := c.token(ctx, cfg)
		if err != nil {
			return nil, err
		}

		cursor, err := c.userCursor(ctx, cfg)
		if err != nil {
			return nil, err
		}

		return c.client.api.ListConsents(ctx, cfg.APIURLRoot, token, cursor, params.Filter(statusFilter), params.After, params.First)
	}

	params := xcoobee.PageParams{
		First:   c.client.pageSize,
		Filters: map[string]string{statusFilter: status},
	}

	return xcoobee.StartPaging(ctx, fetcher, cfg, params), nil
}

// GetConsentData implements xcoobee.ConsentsClient.GetConsentData.
func (c *ConsentsClient) GetConsentData(
	ctx context.Context,
	consentID string,
	override *xcoobee.Config,
) (*xcoobee.Response[*xcoobee.Consent], error) {
	cfg, _, err := c.begin(override)
	if err != nil {
		return nil, err
	}

	return xcoobee.Envelope(func() (*xcoobee.Consent, error) {
		token, err := c.token(ctx, cfg)
		if err != nil {
			return nil, err
		}

		return c.client.api.GetConsentData(ctx, cfg.APIURLRoot, token, consentID)
	}), nil
}

// GetCookieConsent implements xcoobee.ConsentsClient.GetCookieConsent.
func (c *ConsentsClient) GetCookieConsent(
	ctx context.Context,
	xcoobeeID, campaignID string,
	override *xcoobee.Config,
) (*xcoobee.Response[[]xcoobee.CookieConsent], error) {
	cfg, def, err := c.begin(override)
	if err != nil {
		return nil, err
	}

	resolvedID, err := xcoobee.ResolveCampaignID(campaignID, override, def)
	if err != nil {
		return nil, err
	}

	return xcoobee.Envelope(func() ([]xcoobee.CookieConsent, error) {
		token, err := c.token(ctx, cfg)
		if err != nil {
			return nil, err
		}

		cursor, err := c.userCursor(ctx, cfg)
		if err != nil {
			return nil, err
		}

		return c.client.api.GetCookieConsent(ctx, cfg.APIURLRoot, token, xcoobeeID, cursor, resolvedID)
	}), nil
}

// RequestConsent implements xcoobee.ConsentsClient.RequestConsent.
func (c *ConsentsClient) RequestConsent(
	ctx context.Context,
	xcoobeeID, refID, campaignID string,
	override *xcoobee.Config,
) (*xcoobee.Response[*xcoobee.RequestConsentResult], error) {
	cfg, def, err := c.begin(override)
	if err != nil {
		return nil, err
	}

	resolvedID, err := xcoobee.ResolveCampaignID(campaignID, override, def)
	if err != nil {
		return nil, err
	}

	return xcoobee.Envelope(func() (*xcoobee.RequestConsentResult, error) {
		token, err := c.token(ctx, cfg)
		if err != nil {
			return nil, err
		}

		return c.client.api.RequestConsent(ctx, cfg.APIURLRoot, token, xcoobeeID, resolvedID, refID)
	}), nil
}

// ConfirmConsentChange implements xcoobee.ConsentsClient.ConfirmConsentChange.
func (c *ConsentsClient) ConfirmConsentChange(
	ctx context.Context,
	consentID string,
	override *xcoobee.Config,
) (*xcoobee.Response[*xcoobee.ConfirmationResult], error) {
	cfg, _, err := c.begin(override)
	if err != nil {
		return nil, err
	}

	return xcoobee.Envelope(func() (*xcoobee.ConfirmationResult, error) {
		token, err := c.token(ctx, cfg)
		if err != nil {
			return nil, err
		}

		return c.client.api.ConfirmConsentChange(ctx, cfg.APIURLRoot, token, consentID)
	}), nil
}

// ConfirmDataDelete implements xcoobee.ConsentsClient.ConfirmDataDelete.
func (c *ConsentsClient) ConfirmDataDelete(
	ctx context.Context,
	consentID string,
	override *xcoobee.Config,
) (*xcoobee.Response[*xcoobee.ConfirmationResult], error) {
	cfg, _, err := c.begin(override)
	if err != nil {
		return nil, err
	}

	return xcoobee.Envelope(func() (*xcoobee.ConfirmationResult, error) {
		token, err := c.token(ctx, cfg)
		if err != nil {
			return nil, err
		}

		return c.client.api.ConfirmDataDelete(ctx, cfg.APIURLRoot, token, consentID)
	}), nil
}

// SetUserDataResponse implements xcoobee.ConsentsClient.SetUserDataResponse.
// It sends message to the owner of the consent. refID names the data request
// being answered; it only matters for file deliveries, which this client does
// not perform, so the result never carries a RefID.
func (c *ConsentsClient) SetUserDataResponse(
	ctx context.Context,
	message, consentID, refID string,
	override *xcoobee.Config,
) (*xcoobee.Response[*xcoobee.UserDataResponseResult], error) {
	cfg, _, err := c.begin(override)
	if err != nil {
		return nil, err
	}

	return xcoobee.Envelope(func() (*xcoobee.UserDataResponseResult, error) {
		token, err := c.token(ctx, cfg)
		if err != nil {
			return nil, err
		}

		cursor, err := c.userCursor(ctx, cfg)
		if err != nil {
			return nil, err
		}

		err = c.client.api.SendUserMessage(ctx, cfg.APIURLRoot, token, message, cursor, consentID)
		if err != nil {
			return nil, err
		}

		return &xcoobee.UserDataResponseResult{Progress: []string{ProgressMessageSent}}, nil
	}), nil
}
