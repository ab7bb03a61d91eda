package xcoobee

import "context"

// ConsentsClient provides access to campaign and consent operations.
//
// Every method accepts an optional per-call *Config overriding the client's
// default config. Failures of the remote platform come back inside the
// returned *Response; the error result is reserved for usage errors such as a
// missing campaign id, which are reported before any network activity.
type ConsentsClient interface {
	GetCampaignInfo(ctx context.Context, campaignID string, cfg *Config) (*Response[*CampaignInfo], error)
	ListCampaigns(ctx context.Context, cfg *Config) (*Response[*PagingResponse[Campaign]], error)
	ListConsents(ctx context.Context, status string, cfg *Config) (*Response[*PagingResponse[Consent]], error)
	GetConsentData(ctx context.Context, consentID string, cfg *Config) (*Response[*Consent], error)
	GetCookieConsent(ctx context.Context, xcoobeeID, campaignID string, cfg *Config) (*Response[[]CookieConsent], error)
	RequestConsent(ctx context.Context, xcoobeeID, refID, campaignID string, cfg *Config) (*Response[*RequestConsentResult], error)
	ConfirmConsentChange(ctx context.Context, consentID string, cfg *Config) (*Response[*ConfirmationResult], error)
	ConfirmDataDelete(ctx context.Context, consentID string, cfg *Config) (*Response[*ConfirmationResult], error)
	SetUserDataResponse(ctx context.Context, message, consentID, refID string, cfg *Config) (*Response[*UserDataResponseResult], error)
}

// Client is the SDK entry point.
type Client interface {
	Consents() ConsentsClient
	// SetConfig replaces the default config used when a call passes none.
	SetConfig(cfg *Config)
	// Config returns the current default config.
	Config() *Config
}
