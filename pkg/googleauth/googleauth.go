package googleauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const userInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

// UserInfo is the verified identity returned by Google's userinfo
// endpoint after a successful code exchange.
type UserInfo struct {
	Subject string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Client drives the Google OAuth code flow. One Google client serves all
// three roles; the role only selects the callback path so the server
// knows which principal kind to log in.
type Client struct {
	clientID     string
	clientSecret string
	baseURL      string
}

func New(clientID, clientSecret, baseURL string) *Client {
	return &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		baseURL:      baseURL,
	}
}

// IsConfigured returns true if Google OAuth is configured.
func (c *Client) IsConfigured() bool {
	return c.clientID != "" && c.clientSecret != ""
}

func (c *Client) config(role string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.clientID,
		ClientSecret: c.clientSecret,
		RedirectURL:  fmt.Sprintf("%s/auth/google/%s/callback", c.baseURL, role),
		Scopes: []string{
			"openid",
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

// AuthCodeURL returns the consent-screen URL for the given role and
// anti-CSRF state value.
func (c *Client) AuthCodeURL(role, state string) string {
	return c.config(role).AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange trades the authorization code for a token and fetches the
// user's verified profile.
func (c *Client) Exchange(ctx context.Context, role, code string) (*UserInfo, error) {
	cfg := c.config(role)

	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("googleauth: code exchange: %w", err)
	}

	resp, err := cfg.Client(ctx, token).Get(userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("googleauth: fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("googleauth: userinfo status %d", resp.StatusCode)
	}

	var info UserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("googleauth: decode userinfo: %w", err)
	}
	if info.Subject == "" || info.Email == "" {
		return nil, fmt.Errorf("googleauth: incomplete userinfo response")
	}
	return &info, nil
}
