// Package api holds the GraphQL documents and request plumbing for each
// platform operation. Functions here take an already-resolved URL root and
// access token; caching and config resolution happen in the callers.
package api

import (
	"context"
	"fmt"

	"github.com/xcoobee/xcoobee-go-sdk/internal/constants"
	xchttp "github.com/xcoobee/xcoobee-go-sdk/internal/http"
	"github.com/xcoobee/xcoobee-go-sdk/pkg/xcoobee"
)

// API issues platform requests over an HTTP client.
type API struct {
	http *xchttp.Client
}

// New creates an API bound to httpClient.
func New(httpClient *xchttp.Client) *API {
	return &API{http: httpClient}
}

func (a *API) query(
	ctx context.Context,
	urlRoot, token, document string,
	variables map[string]interface{},
	out interface{},
) error {
	err := a.http.GraphQL(ctx, urlRoot, token, document, variables, out)
	if err != nil {
		return fmt.Errorf("graphql request failed: %w", err)
	}

	return nil
}

func pageVariables(after string, first int) map[string]interface{} {
	variables := map[string]interface{}{}
	if after != "" {
		variables["after"] = after
	}

	if first > constants.DefaultPageSize {
		variables["first"] = first
	}

	return variables
}

// toPage converts a GraphQL connection into a page, treating a missing
// connection as an empty terminal page.
func toPage[T any](conn *xcoobee.Page[T]) *xcoobee.Page[T] {
	if conn == nil {
		return &xcoobee.Page[T]{Data: []T{}}
	}

	if conn.Data == nil {
		conn.Data = []T{}
	}

	return conn
}
