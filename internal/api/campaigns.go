package api

import (
	"context"

	"github.com/xcoobee/xcoobee-go-sdk/pkg/xcoobee"
)

const getCampaignInfoQuery = `
query getCampaignInfo($campaignId: String!) {
  campaign(campaign_cursor: $campaignId) {
    campaign_description {
      locale
      text
    }
    campaign_name
    campaign_title {
      locale
      text
    }
    date_c
    date_e
    endpoint
    status
    targets {
      name
      recipient
    }
  }
}`

const listCampaignsQuery = `
query getCampaigns($userCursor: String!, $after: String, $first: Int) {
  campaigns(user_cursor: $userCursor, after: $after, first: $first) {
    data {
      campaign_cursor
      campaign_name
      status
    }
    page_info {
      end_cursor
      has_next_page
    }
  }
}`

// GetCampaignInfo fetches one campaign.
func (a *API) GetCampaignInfo(ctx context.Context, urlRoot, token, campaignID string) (*xcoobee.CampaignInfo, error) {
	err := xcoobee.AssertCampaignID(campaignID)
	if err != nil {
		return nil, err
	}

	var out struct {
		Campaign *xcoobee.CampaignInfo `json:"campaign"`
	}

	err = a.query(ctx, urlRoot, token, getCampaignInfoQuery, map[string]interface{}{
		"campaignId": campaignID,
	}, &out)
	if err != nil {
		return nil, err
	}

	if out.Campaign == nil {
		return nil, ErrCampaignNotFound
	}

	return out.Campaign, nil
}

// ListCampaigns fetches one page of the user's campaigns.
func (a *API) ListCampaigns(
	ctx context.Context,
	urlRoot, token, userCursor, after string,
	first int,
) (*xcoobee.Page[xcoobee.Campaign], error) {
	variables := pageVariables(after, first)
	variables["userCursor"] = userCursor

	var out struct {
		Campaigns *xcoobee.Page[xcoobee.Campaign] `json:"campaigns"`
	}

	err := a.query(ctx, urlRoot, token, listCampaignsQuery, variables, &out)
	if err != nil {
		return nil, err
	}

	return toPage(out.Campaigns), nil
}
