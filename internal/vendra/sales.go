package vendra

import (
	"context"
	"fmt"
	"net/url"

	"github.com/clientelehq/clientele/pkg/apiclient"
)

// SalesClient manages the account's sales. The API splits these endpoints
// between /sales and /sale prefixes, so paths are spelled in full.
type SalesClient struct {
	api *apiclient.Client
}

// List returns sales matching params.
func (c *SalesClient) List(ctx context.Context, params url.Values) (JSON, error) {
	var out JSON
	err := c.api.GetJSON(ctx, "/sales/get_sale_list", &out, apiclient.WithQueryValues(params))
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Get retrieves one sale by ID.
func (c *SalesClient) Get(ctx context.Context, saleID int64) (JSON, error) {
	var out JSON
	if err := c.api.GetJSON(ctx, fmt.Sprintf("/sale/get_sale/%d", saleID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// LastDaysAmount reports the sale amounts over recent days.
func (c *SalesClient) LastDaysAmount(ctx context.Context, params url.Values) (JSON, error) {
	var out JSON
	err := c.api.GetJSON(ctx, "/sale/last_days_amount", &out, apiclient.WithQueryValues(params))
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SetTrackingCode attaches a shipment tracking code to a sale.
func (c *SalesClient) SetTrackingCode(ctx context.Context, saleID int64, data JSON) (JSON, error) {
	var out JSON
	err := c.api.PostJSON(ctx, fmt.Sprintf("/sale/tracking_code/%d", saleID), data, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Total aggregates sale totals matching params.
func (c *SalesClient) Total(ctx context.Context, params url.Values) (JSON, error) {
	var out JSON
	err := c.api.GetJSON(ctx, "/sale/get_total", &out, apiclient.WithQueryValues(params))
	if err != nil {
		return nil, err
	}
	return out, nil
}
