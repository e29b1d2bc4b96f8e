package vendra

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/clientelehq/clientele/pkg/apiclient"
)

// saoPaulo is the zone the API issues expiry timestamps in, without saying
// so on the wire. Brazil retired DST in 2019, so a fixed offset is exact.
var saoPaulo = time.FixedZone("America/Sao_Paulo", -3*60*60)

// expiryLayout is the zone-less timestamp format of token_valid_until.
const expiryLayout = "2006-01-02T15:04:05"

type tokenEnvelope struct {
	Data struct {
		Token           string `json:"token"`
		TokenValidUntil string `json:"token_valid_until"`
	} `json:"data"`
}

// newRenewFunc builds the renewal call: exchange the account credentials
// for a fresh token at the auth endpoint. It runs on its own bare session
// so renewing never recurses through the authorized one; any non-2xx from
// the endpoint is a fatal renewal failure.
func newRenewFunc(baseURL string, creds Credentials, logger *slog.Logger) apiclient.RenewFunc {
	bare := apiclient.NewSession(baseURL,
		apiclient.WithTimeout(apiclient.Timeout(15*time.Second)),
		apiclient.WithLogger(logger),
	)

	return func(ctx context.Context, now time.Time) (string, time.Duration, error) {
		resp, err := bare.Post(ctx, authPath,
			apiclient.WithQuery("email", creds.Email),
			apiclient.WithQuery("publickey", creds.PublicKey),
			apiclient.WithQuery("apikey", creds.APIKey),
		)
		if err != nil {
			return "", 0, fmt.Errorf("vendra: generate token: %w", err)
		}

		var envelope tokenEnvelope
		if err := resp.Decode(&envelope); err != nil {
			return "", 0, fmt.Errorf("vendra: generate token: %w", err)
		}
		if envelope.Data.Token == "" {
			return "", 0, fmt.Errorf("vendra: generate token: empty token in response")
		}

		ttl, err := expiryTTL(envelope.Data.TokenValidUntil, now)
		if err != nil {
			return "", 0, fmt.Errorf("vendra: generate token: %w", err)
		}
		return envelope.Data.Token, ttl, nil
	}
}

// expiryTTL converts the zone-less expiry timestamp into a lifetime
// relative to now. The timestamp is read in the Sao Paulo zone and compared
// in UTC; getting this wrong renews tokens hours too early or too late.
func expiryTTL(validUntil string, now time.Time) (time.Duration, error) {
	if validUntil == "" {
		return 0, nil
	}

	expiry, err := time.ParseInLocation(expiryLayout, validUntil, saoPaulo)
	if err != nil {
		return 0, fmt.Errorf("parse token_valid_until %q: %w", validUntil, err)
	}
	return expiry.UTC().Sub(now.UTC()), nil
}
