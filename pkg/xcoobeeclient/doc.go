// Package xcoobeeclient builds an xcoobee.Client.
//
// The returned client resolves every call's configuration from an optional
// per-call *xcoobee.Config layered over the default set here, exchanges the
// API key and secret for an access token once per (URL root, key, secret),
// and shares that token between concurrent callers until it expires.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/xcoobee/xcoobee-go-sdk/pkg/xcoobee"
//	  "github.com/xcoobee/xcoobee-go-sdk/pkg/xcoobeeclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  cli := xcoobeeclient.New(&xcoobee.Config{
//	    APIURLRoot: "https://testapi.xcoobee.net/Test",
//	    APIKey:     "key",
//	    APISecret:  "secret",
//	    CampaignID: "campaign-cursor",
//	  })
//
//	  resp, err := cli.Consents().GetCampaignInfo(ctx, "", nil)
//	  if err != nil {
//	    log.Fatal(err) // usage error, e.g. no campaign id anywhere
//	  }
//	  if !resp.IsSuccess() {
//	    log.Fatalf("platform error %d: %s", resp.Code, resp.Error.Message)
//	  }
//	  log.Println(resp.Result.CampaignName)
//	}
//
// Options
//
// Transport retries are off unless WithRetryConfig is given. WithLogger
// accepts any xcoobee.Logger; adapters for zap and logrus live in
// pkg/log/zaplog and pkg/log/logruslog.
package xcoobeeclient
