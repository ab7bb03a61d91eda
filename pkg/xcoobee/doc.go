// Package xcoobee defines the public types of the XcooBee Go SDK: layered
// configuration, the Success/Error response envelope, normalized errors and
// the cursor-based pagination handle returned by list operations.
//
// Use package xcoobeeclient to construct a Client.
//
// # Two error tiers
//
// Usage errors (a required campaign id that no config layer supplies, or a
// client without a default config) are returned as the Go error result of an
// operation, before any request is made. Everything that goes wrong on the
// wire is captured in the returned *Response instead:
//
//	resp, err := cli.Consents().RequestConsent(ctx, "~someone", "ref-1", "", nil)
//	if err != nil {
//	  // programmer error, e.g. xcoobee.ErrCampaignIDRequired
//	}
//	if !resp.IsSuccess() {
//	  log.Printf("request failed: %d %s", resp.Code, resp.Error.Message)
//	}
//
// # Paging
//
// List operations return a *PagingResponse holding one page. GetNextPage
// returns a new handle for the following page and leaves the receiver intact,
// so a handle can be re-navigated any number of times:
//
//	page := resp.Result
//	for page != nil {
//	  for _, c := range page.Data() { ... }
//	  page, err = page.GetNextPage(ctx)
//	  if err != nil { ... }
//	}
package xcoobee
