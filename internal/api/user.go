package api

import (
	"context"

	"github.com/xcoobee/xcoobee-go-sdk/pkg/xcoobee"
)

const getUserQuery = `
query getUser {
  user {
    cursor
    xcoobee_id
    pgp_public_key
  }
}`

// GetUser fetches the user record that owns token.
func (a *API) GetUser(ctx context.Context, urlRoot, token string) (*xcoobee.User, error) {
	var out struct {
		User *xcoobee.User `json:"user"`
	}

	err := a.query(ctx, urlRoot, token, getUserQuery, nil, &out)
	if err != nil {
		return nil, err
	}

	if out.User == nil {
		return nil, ErrUserNotFound
	}

	return out.User, nil
}
