package api

import (
	"context"
	"slices"

	"github.com/xcoobee/xcoobee-go-sdk/pkg/xcoobee"
)

// Cookie data types reported by GetCookieConsent, in output order.
const (
	CookieApplication = "application_cookie"
	CookieUsage       = "usage_cookie"
	CookieAdvertising = "advertising_cookie"
	CookieStatistics  = "statistics_cookie"
)

// ConsentStatusActive marks a consent the user has granted.
const ConsentStatusActive = "active"

// NoteTypeConsent files a message under the conversation of a consent.
const NoteTypeConsent = "consent"

const consentFields = `
      consent_cursor
      consent_status
      consent_type
      consent_name
      date_c
      date_e
      user_xcoobee_id
      request_data_types`

const listConsentsQuery = `
query listConsents($userCursor: String!, $statuses: [ConsentStatus], $after: String, $first: Int) {
  consents(campaign_owner_cursor: $userCursor, statuses: $statuses, after: $after, first: $first) {
    data {` + consentFields + `
    }
    page_info {
      end_cursor
      has_next_page
    }
  }
}`

const getConsentDataQuery = `
query getConsentData($consentId: String!) {
  consent(consent_cursor: $consentId) {` + consentFields + `
  }
}`

const getCookieConsentQuery = `
query getCookieConsent($userCursor: String!, $campaignId: String!, $xcoobeeId: String!) {
  consents(campaign_owner_cursor: $userCursor, campaign_cursor: $campaignId, xcoobee_id: $xcoobeeId) {
    data {
      consent_status
      request_data_types
    }
  }
}`

const requestConsentMutation = `
mutation requestConsent($config: ConsentRequestConfig!) {
  request_consent(config: $config) {
    ref_id
  }
}`

const confirmConsentChangeMutation = `
mutation confirmConsentChange($consentId: String!) {
  confirm_consent_change(consent_cursor: $consentId) {
    confirmed
  }
}`

const confirmDataDeleteMutation = `
mutation confirmDataDelete($consentId: String!) {
  confirm_data_delete(consent_cursor: $consentId) {
    confirmed
  }
}`

const sendUserMessageMutation = `
mutation sendUserMessage($config: SendMessageConfig!) {
  send_message(config: $config) {
    note_text
  }
}`

var cookieTypes = []string{CookieApplication, CookieUsage, CookieAdvertising, CookieStatistics}

// ListConsents fetches one page of consents, optionally filtered by status.
func (a *API) ListConsents(
	ctx context.Context,
	urlRoot, token, userCursor, status, after string,
	first int,
) (*xcoobee.Page[xcoobee.Consent], error) {
	variables := pageVariables(after, first)
	variables["userCursor"] = userCursor

	if status != "" {
		variables["statuses"] = []string{status}
	}

	var out struct {
		Consents *xcoobee.Page[xcoobee.Consent] `json:"consents"`
	}

	err := a.query(ctx, urlRoot, token, listConsentsQuery, variables, &out)
	if err != nil {
		return nil, err
	}

	return toPage(out.Consents), nil
}

// GetConsentData fetches one consent.
func (a *API) GetConsentData(ctx context.Context, urlRoot, token, consentID string) (*xcoobee.Consent, error) {
	var out struct {
		Consent *xcoobee.Consent `json:"consent"`
	}

	err := a.query(ctx, urlRoot, token, getConsentDataQuery, map[string]interface{}{
		"consentId": consentID,
	}, &out)
	if err != nil {
		return nil, err
	}

	if out.Consent == nil {
		return nil, ErrConsentNotFound
	}

	return out.Consent, nil
}

// GetCookieConsent reports, for each cookie data type, whether an active
// consent of xcoobeeID on the campaign covers it.
func (a *API) GetCookieConsent(
	ctx context.Context,
	urlRoot, token, xcoobeeID, userCursor, campaignID string,
) ([]xcoobee.CookieConsent, error) {
	err := xcoobee.AssertCampaignID(campaignID)
	if err != nil {
		return nil, err
	}

	var out struct {
		Consents *xcoobee.Page[xcoobee.Consent] `json:"consents"`
	}

	err = a.query(ctx, urlRoot, token, getCookieConsentQuery, map[string]interface{}{
		"userCursor": userCursor,
		"campaignId": campaignID,
		"xcoobeeId":  xcoobeeID,
	}, &out)
	if err != nil {
		return nil, err
	}

	granted := map[string]bool{}

	for _, consent := range toPage(out.Consents).Data {
		if consent.ConsentStatus != ConsentStatusActive {
			continue
		}

		for _, dataType := range consent.RequestDataTypes {
			if slices.Contains(cookieTypes, dataType) {
				granted[dataType] = true
			}
		}
	}

	result := make([]xcoobee.CookieConsent, 0, len(cookieTypes))
	for _, cookieType := range cookieTypes {
		result = append(result, xcoobee.CookieConsent{Type: cookieType, Approved: granted[cookieType]})
	}

	return result, nil
}

// RequestConsent asks xcoobeeID to grant consent on the campaign.
func (a *API) RequestConsent(
	ctx context.Context,
	urlRoot, token, xcoobeeID, campaignID, refID string,
) (*xcoobee.RequestConsentResult, error) {
	err := xcoobee.AssertCampaignID(campaignID)
	if err != nil {
		return nil, err
	}

	config := map[string]interface{}{
		"xcoobee_id":      xcoobeeID,
		"campaign_cursor": campaignID,
	}
	if refID != "" {
		config["reference"] = refID
	}

	var out struct {
		RequestConsent *xcoobee.RequestConsentResult `json:"request_consent"`
	}

	err = a.query(ctx, urlRoot, token, requestConsentMutation, map[string]interface{}{"config": config}, &out)
	if err != nil {
		return nil, err
	}

	if out.RequestConsent == nil {
		return &xcoobee.RequestConsentResult{}, nil
	}

	return out.RequestConsent, nil
}

// ConfirmConsentChange reports whether requested data changes were applied.
func (a *API) ConfirmConsentChange(ctx context.Context, urlRoot, token, consentID string) (*xcoobee.ConfirmationResult, error) {
	var out struct {
		Result *xcoobee.ConfirmationResult `json:"confirm_consent_change"`
	}

	return a.confirm(ctx, urlRoot, token, confirmConsentChangeMutation, consentID, &out.Result, &out)
}

// ConfirmDataDelete reports whether consent data was purged.
func (a *API) ConfirmDataDelete(ctx context.Context, urlRoot, token, consentID string) (*xcoobee.ConfirmationResult, error) {
	var out struct {
		Result *xcoobee.ConfirmationResult `json:"confirm_data_delete"`
	}

	return a.confirm(ctx, urlRoot, token, confirmDataDeleteMutation, consentID, &out.Result, &out)
}

func (a *API) confirm(
	ctx context.Context,
	urlRoot, token, document, consentID string,
	result **xcoobee.ConfirmationResult,
	out interface{},
) (*xcoobee.ConfirmationResult, error) {
	err := a.query(ctx, urlRoot, token, document, map[string]interface{}{"consentId": consentID}, out)
	if err != nil {
		return nil, err
	}

	if *result == nil {
		return &xcoobee.ConfirmationResult{}, nil
	}

	return *result, nil
}

// SendUserMessage posts message to the conversation of a consent, on behalf
// of the user identified by userCursor.
func (a *API) SendUserMessage(ctx context.Context, urlRoot, token, message, userCursor, consentID string) error {
	config := map[string]interface{}{
		"message":        message,
		"user_cursor":    userCursor,
		"consent_cursor": consentID,
		"note_type":      NoteTypeConsent,
	}

	var out struct {
		SendMessage *struct {
			NoteText string `json:"note_text"`
		} `json:"send_message"`
	}

	return a.query(ctx, urlRoot, token, sendUserMessageMutation, map[string]interface{}{"config": config}, &out)
}
