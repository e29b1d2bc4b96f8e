package apiclient

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClientPrefixComposition(t *testing.T) {
	t.Parallel()

	doer := &captureDoer{}
	root := NewClient(NewSession("http://example.com", WithDoer(doer)))

	sales := root.Sub("/sales")
	reports := sales.Sub("/reports/")

	_, err := root.Get(context.Background(), "/ping")
	require.NoError(t, err)
	require.Equal(t, "http://example.com/ping", doer.lastCall(t).URL)

	_, err = sales.Get(context.Background(), "/list")
	require.NoError(t, err)
	require.Equal(t, "http://example.com/sales/list", doer.lastCall(t).URL)

	_, err = reports.Get(context.Background(), "/daily")
	require.NoError(t, err)
	require.Equal(t, "http://example.com/sales/reports/daily", doer.lastCall(t).URL)
}

func TestClientJSONHelpers(t *testing.T) {
	t.Parallel()

	doer := &captureDoer{script: []stub{
		{status: 200, body: `{"name":"widget"}`},
		{status: 200, body: `{"created":true}`},
	}}
	c := NewClient(NewSession("http://example.com", WithDoer(doer)))

	var got struct {
		Name string `json:"name"`
	}
	require.NoError(t, c.GetJSON(context.Background(), "/item", &got))
	require.Equal(t, "widget", got.Name)

	var created struct {
		Created bool `json:"created"`
	}
	err := c.PostJSON(context.Background(), "/items",
		map[string]string{"name": "other"}, &created)
	require.NoError(t, err)
	require.True(t, created.Created)

	call := doer.lastCall(t)
	require.Equal(t, http.MethodPost, call.Method)
	require.JSONEq(t, `{"name":"other"}`, call.Body)
}

func TestClientErrorsPassThrough(t *testing.T) {
	t.Parallel()

	doer := &captureDoer{script: []stub{{status: 500, body: `boom`}}}
	c := NewClient(NewSession("http://example.com", WithDoer(doer)))

	var out map[string]any
	err := c.GetJSON(context.Background(), "/item", &out)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Nil(t, out["anything"])
}
