package vendra

import (
	"context"
	"net/url"

	"github.com/clientelehq/clientele/pkg/apiclient"
)

// JSON is a decoded response object, returned as-is to the caller.
type JSON = map[string]any

// UsersClient manages the account's own profile.
type UsersClient struct {
	api *apiclient.Client
}

// Me returns the authenticated account's profile.
func (c *UsersClient) Me(ctx context.Context) (JSON, error) {
	var out JSON
	if err := c.api.GetJSON(ctx, "/get_me", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateMe updates profile fields.
func (c *UsersClient) UpdateMe(ctx context.Context, data JSON) (JSON, error) {
	var out JSON
	if err := c.api.PostJSON(ctx, "/set_me", data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PromoteToProducer flags the account as a producer.
func (c *UsersClient) PromoteToProducer(ctx context.Context) (JSON, error) {
	var out JSON
	if err := c.api.PostJSON(ctx, "/set_me_as_producer", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ChangePassword changes the account password.
func (c *UsersClient) ChangePassword(ctx context.Context, data JSON) (JSON, error) {
	var out JSON
	if err := c.api.PostJSON(ctx, "/change_password", data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Purchases lists the account's own purchases.
func (c *UsersClient) Purchases(ctx context.Context, params url.Values) (JSON, error) {
	var out JSON
	err := c.api.GetJSON(ctx, "/my_buys_list", &out, apiclient.WithQueryValues(params))
	if err != nil {
		return nil, err
	}
	return out, nil
}
