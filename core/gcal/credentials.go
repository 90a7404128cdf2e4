package gcal

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"sync"
	"time"

	"slack-meet-bot/core/errors"
	"slack-meet-bot/core/logger"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
)

// CredentialProvider turns the OAuth client file and the cached user token into
// an auto-refreshing token source. Refreshed tokens are written back to disk.
type CredentialProvider struct {
	config *oauth2.Config
	source oauth2.TokenSource
}

// storedToken accepts both the golang.org/x/oauth2 layout (access_token) and
// the google-auth layout (token) so an existing token.json can be reused.
type storedToken struct {
	AccessToken  string `json:"access_token,omitempty"`
	Token        string `json:"token,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	Expiry       string `json:"expiry,omitempty"`
}

func NewCredentialProvider(ctx context.Context, credentialsFile, tokenFile string) (*CredentialProvider, error) {
	raw, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCredentialsFile, "failed to read Google credentials file", err)
	}

	oauthConfig, err := google.ConfigFromJSON(raw, calendar.CalendarScope)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCredentialsFile, "failed to parse Google credentials file", err)
	}

	tok, err := LoadToken(tokenFile)
	if err != nil {
		return nil, err
	}
	if !tok.Valid() && tok.RefreshToken == "" {
		return nil, errors.NewAppError(errors.ErrCredentialsFile,
			"Google token is expired and has no refresh token; re-authorize and replace "+tokenFile, nil)
	}

	return &CredentialProvider{
		config: oauthConfig,
		source: &persistingTokenSource{
			base: oauthConfig.TokenSource(ctx, tok),
			path: tokenFile,
			last: tok.AccessToken,
		},
	}, nil
}

func (p *CredentialProvider) TokenSource() oauth2.TokenSource {
	return p.source
}

// Client returns an HTTP client that authorizes every request.
func (p *CredentialProvider) Client(ctx context.Context) *http.Client {
	return oauth2.NewClient(ctx, p.source)
}

func LoadToken(path string) (*oauth2.Token, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCredentialsFile, "failed to read Google token file", err)
	}

	var st storedToken
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, errors.NewAppError(errors.ErrCredentialsFile, "failed to parse Google token file", err)
	}

	tok := &oauth2.Token{
		AccessToken:  st.AccessToken,
		TokenType:    st.TokenType,
		RefreshToken: st.RefreshToken,
	}
	if tok.AccessToken == "" {
		tok.AccessToken = st.Token
	}
	if tok.TokenType == "" {
		tok.TokenType = "Bearer"
	}
	if st.Expiry != "" {
		expiry, err := time.Parse(time.RFC3339Nano, st.Expiry)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrCredentialsFile, "invalid expiry in Google token file", err)
		}
		tok.Expiry = expiry
	}
	return tok, nil
}

func SaveToken(path string, tok *oauth2.Token) error {
	st := storedToken{
		AccessToken:  tok.AccessToken,
		TokenType:    tok.TokenType,
		RefreshToken: tok.RefreshToken,
	}
	if !tok.Expiry.IsZero() {
		st.Expiry = tok.Expiry.UTC().Format(time.RFC3339Nano)
	}

	raw, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o600)
}

type persistingTokenSource struct {
	base oauth2.TokenSource
	path string

	mu   sync.Mutex
	last string
}

func (s *persistingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.base.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if tok.AccessToken == s.last {
		return tok, nil
	}
	s.last = tok.AccessToken

	if err := SaveToken(s.path, tok); err != nil {
		logger.Warn("CredentialProvider:SaveToken:Error", "error", err, "path", s.path)
	} else {
		logger.Info("CredentialProvider:TokenRefreshed", "expiry", tok.Expiry)
	}
	return tok, nil
}
