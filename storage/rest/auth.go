package restapi

import (
	"context"
	"net/url"

	"github.com/trezcool/shule/core/user"
)

type authAPI struct {
	client *Client
}

var _ user.API = (*authAPI)(nil) // interface compliance check

func NewAuthAPI(client *Client) user.API {
	return &authAPI{client: client}
}

// Login posts the credentials as query parameters (the backend's convention)
// and keeps the session cookie on the shared client. Any returned token is
// installed as the bearer credential.
func (api *authAPI) Login(ctx context.Context, username, password string) (user.User, string, error) {
	q := make(url.Values)
	q.Set("username", username)
	q.Set("password", password)

	var resp struct {
		user.User
		Token string `json:"token"`
	}
	if err := api.client.post(ctx, "/users/login", q, nil, &resp); err != nil {
		return user.User{}, "", err
	}
	if resp.Token != "" {
		api.client.SetToken(resp.Token)
	}
	return resp.User, resp.Token, nil
}

func (api *authAPI) Logout(ctx context.Context) error {
	err := api.client.post(ctx, "/users/logout", nil, nil, nil)
	api.client.SetToken("")
	return err
}
