package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Provider identifiers.
const (
	ProviderGitHub = "github"
	ProviderGoogle = "google"
)

// ProviderAdapter hides the protocol details of one identity provider.
type ProviderAdapter interface {
	// ProviderID returns the stable identifier used in routes and records.
	ProviderID() string

	// AuthURL builds the provider authorization URL carrying state.
	AuthURL(state string) string

	// Exchange trades an authorization code for the user's identity and the
	// upstream access token. Every failure wraps ErrIdentityExchange.
	Exchange(ctx context.Context, code string) (Identity, string, error)
}

// getJSON performs an authenticated GET and decodes the JSON response.
func getJSON(ctx context.Context, client *http.Client, url, accessToken string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("GET %s returned status %d", url, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}
