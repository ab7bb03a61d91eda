package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/xcoobee/xcoobee-go-sdk/internal/constants"
	"github.com/xcoobee/xcoobee-go-sdk/pkg/xcoobee"
)

// GraphQLRequest is the body posted to the GraphQL endpoint.
type GraphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage    `json:"data"`
	Errors []xcoobee.APIError `json:"errors,omitempty"`
}

// GraphQL posts query to {urlRoot}/graphql and decodes the data member into
// out. Error descriptors in a 2xx body come back as *xcoobee.ResponseError
// carrying the transport status.
func (c *Client) GraphQL(
	ctx context.Context,
	urlRoot, token, query string,
	variables map[string]interface{},
	out interface{},
) error {
	resp, err := c.Do(ctx, &Request{
		Method:  http.MethodPost,
		URLRoot: urlRoot,
		Path:    constants.GraphQLPath,
		Body:    GraphQLRequest{Query: query, Variables: variables},
		Token:   token,
	})
	if err != nil {
		return err
	}

	var result graphQLResponse

	err = json.Unmarshal(resp.Body, &result)
	if err != nil {
		return fmt.Errorf("failed to parse GraphQL response: %w", err)
	}

	if len(result.Errors) > 0 {
		return &xcoobee.ResponseError{StatusCode: resp.StatusCode, Errors: result.Errors}
	}

	if out == nil || len(result.Data) == 0 || string(result.Data) == "null" {
		return nil
	}

	err = json.Unmarshal(result.Data, out)
	if err != nil {
		return fmt.Errorf("failed to parse GraphQL data: %w", err)
	}

	return nil
}
