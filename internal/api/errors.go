package api

import "errors"

// Static errors for err113 compliance.
var (
	ErrUserNotFound     = errors.New("user not found for access token")
	ErrCampaignNotFound = errors.New("campaign not found")
	ErrConsentNotFound  = errors.New("consent not found")
)
