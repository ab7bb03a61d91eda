package xcoobee

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debug(string, map[string]interface{}) {}
func (NopLogger) Info(string, map[string]interface{})  {}
func (NopLogger) Warn(string, map[string]interface{})  {}
func (NopLogger) Error(string, map[string]interface{}) {}

// User is the account record behind an API key.
type User struct {
	Cursor       string `json:"cursor"                   yaml:"cursor"`
	XcooBeeID    string `json:"xcoobee_id"               yaml:"xcoobee_id"`
	PGPPublicKey string `json:"pgp_public_key,omitempty" yaml:"pgp_public_key,omitempty"`
}

// LocalizedText is a piece of text in one locale.
type LocalizedText struct {
	Locale string `json:"locale,omitempty" yaml:"locale,omitempty"`
	Text   string `json:"text"             yaml:"text"`
}

// CampaignTarget is a recipient configured on a campaign.
type CampaignTarget struct {
	Name      string `json:"name,omitempty"      yaml:"name,omitempty"`
	Recipient string `json:"recipient,omitempty" yaml:"recipient,omitempty"`
}

// Campaign is the summary returned by campaign listings.
type Campaign struct {
	CampaignCursor string `json:"campaign_cursor" yaml:"campaign_cursor"`
	CampaignName   string `json:"campaign_name"   yaml:"campaign_name"`
	Status         string `json:"status"          yaml:"status"`
}

// CampaignInfo is the detailed campaign record.
type CampaignInfo struct {
	CampaignName        string           `json:"campaign_name"                  yaml:"campaign_name"`
	CampaignTitle       []LocalizedText  `json:"campaign_title,omitempty"       yaml:"campaign_title,omitempty"`
	CampaignDescription []LocalizedText  `json:"campaign_description,omitempty" yaml:"campaign_description,omitempty"`
	DateCreated         string           `json:"date_c,omitempty"               yaml:"date_c,omitempty"`
	DateExpires         string           `json:"date_e,omitempty"               yaml:"date_e,omitempty"`
	Endpoint            string           `json:"endpoint,omitempty"             yaml:"endpoint,omitempty"`
	Status              string           `json:"status"                         yaml:"status"`
	Targets             []CampaignTarget `json:"targets,omitempty"              yaml:"targets,omitempty"`
}

// Consent is a consent record.
type Consent struct {
	ConsentCursor    string   `json:"consent_cursor"               yaml:"consent_cursor"`
	ConsentStatus    string   `json:"consent_status"               yaml:"consent_status"`
	ConsentType      string   `json:"consent_type,omitempty"       yaml:"consent_type,omitempty"`
	ConsentName      string   `json:"consent_name,omitempty"       yaml:"consent_name,omitempty"`
	DateCreated      string   `json:"date_c,omitempty"             yaml:"date_c,omitempty"`
	DateExpires      string   `json:"date_e,omitempty"             yaml:"date_e,omitempty"`
	UserXcooBeeID    string   `json:"user_xcoobee_id,omitempty"    yaml:"user_xcoobee_id,omitempty"`
	RequestDataTypes []string `json:"request_data_types,omitempty" yaml:"request_data_types,omitempty"`
}

// CookieConsent is the consent state of one cookie data type.
type CookieConsent struct {
	Type     string `json:"type"     yaml:"type"`
	Approved bool   `json:"approved" yaml:"approved"`
}

// RequestConsentResult carries the reference of a consent request.
type RequestConsentResult struct {
	RefID string `json:"ref_id" yaml:"ref_id"`
}

// ConfirmationResult reports whether a requested change was carried out.
type ConfirmationResult struct {
	Confirmed bool `json:"confirmed" yaml:"confirmed"`
}

// UserDataResponseResult reports the steps completed while answering a data
// request. RefID is only set when files are delivered to the requester.
type UserDataResponseResult struct {
	Progress []string `json:"progress"         yaml:"progress"`
	RefID    string   `json:"ref_id,omitempty" yaml:"ref_id,omitempty"`
}
