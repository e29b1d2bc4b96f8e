// Command vendra is a small demonstration client for the Vendra sales
// platform: it authenticates with account credentials and prints the
// account profile. Credentials come from flags, the environment, or a .env
// file, in that order of precedence.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/clientelehq/clientele/internal/vendra"
	"github.com/clientelehq/clientele/pkg/apiclient"
	"github.com/clientelehq/clientele/pkg/slogx"
	"github.com/clientelehq/clientele/pkg/tokenstore"

	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

// run carries the real work so its defers, notably closing the token
// cache, fire on every error path.
func run() error {
	// Missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	var (
		email      = flag.String("email", os.Getenv("VENDRA_EMAIL"), "account email")
		publicKey  = flag.String("publickey", os.Getenv("VENDRA_PUBLICKEY"), "account public key")
		apiKey     = flag.String("apikey", os.Getenv("VENDRA_APIKEY"), "account API key")
		baseURL    = flag.String("base-url", envOrDefault("VENDRA_BASE_URL", vendra.DefaultBaseURL), "API base URL")
		timeout    = flag.Duration("timeout", 30*time.Second, "request timeout")
		tokenCache = flag.String("token-cache", os.Getenv("VENDRA_TOKEN_CACHE"), "optional SQLite file reusing tokens across runs")
		logLevel   = flag.String("log-level", envOrDefault("LOG_LEVEL", "info"), "log level (debug, info, warn, error)")
		logFormat  = flag.String("log-format", envOrDefault("LOG_FORMAT", "text"), "log format (json, text)")
	)
	flag.Parse()

	if *email == "" || *publicKey == "" || *apiKey == "" {
		flag.Usage()
		os.Exit(2)
	}

	logger := slogx.New(slogx.Config{
		Name:   "vendra",
		Level:  *logLevel,
		Format: *logFormat,
	})

	opts := []vendra.Option{
		vendra.WithBaseURL(*baseURL),
		vendra.WithTimeout(apiclient.Timeout(*timeout)),
		vendra.WithLogger(logger),
	}

	if *tokenCache != "" {
		store, err := tokenstore.NewSQLite(*tokenCache)
		if err != nil {
			return fmt.Errorf("open token cache: %w", err)
		}
		defer store.Close()
		opts = append(opts, vendra.WithStore(store))
	}

	client := vendra.New(vendra.Credentials{
		Email:     *email,
		PublicKey: *publicKey,
		APIKey:    *apiKey,
	}, opts...)

	me, err := client.Users.Me(context.Background())
	if err != nil {
		return fmt.Errorf("get profile: %w", err)
	}

	out, err := json.MarshalIndent(me, "", "  ")
	if err != nil {
		return fmt.Errorf("render profile: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
