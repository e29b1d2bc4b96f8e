// Package apiclient is a foundation for building authenticated HTTP API
// clients. It factors out the parts that are the same for every API:
// credential-based token acquisition, transparent renewal with a single
// retry on token rejection, per-call versus per-session timeout resolution,
// and a uniform error taxonomy over transport, HTTP and application
// failures. A concrete client is then a thin set of endpoint mappings.
//
// # Building a client
//
// A Session owns the transport-facing configuration and dispatch loop:
//
//	store := tokenstore.NewMemory()
//	auth := apiclient.NewTokenAuth(store, renew)
//	session := apiclient.NewSession("https://api.example.com",
//		apiclient.WithTimeout(apiclient.Timeout(10*time.Second)),
//		apiclient.WithAuth(auth),
//		apiclient.WithClassifier(myClassifier),
//	)
//
// where renew exchanges long-lived credentials for a fresh token against
// the API's authentication endpoint, on its own bare transport:
//
//	func renew(ctx context.Context, now time.Time) (string, time.Duration, error) {
//		...
//		return token, ttl, nil
//	}
//
// Clients and sub-clients map logical operations onto the session:
//
//	root := apiclient.NewClient(session)
//	sales := root.Sub("/sales")
//	var out SaleList
//	err := sales.GetJSON(ctx, "/list", &out)
//
// # Error taxonomy
//
// Every call returns either a decoded success value or exactly one of the
// typed errors: *TransportError (the exchange never completed),
// *AuthError (the API rejected the token; handled internally by one
// renew-and-retry cycle and only surfaced when the retry fails too),
// *APIError (an application-level rejection carrying the API's own code and
// details) or *HTTPError (any other non-2xx status). Use errors.As to
// branch on them.
//
// # Concurrency
//
// A Session and everything hanging off it is safe for concurrent use.
// Token renewal is a singleflight operation: when several calls observe an
// invalid token at once, one renewal reaches the authentication endpoint
// and all callers share its result.
package apiclient
