package login

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

// TokenExchanger turns a verification code into a token pair and refreshes
// expired access tokens. It is the boundary to the OAuth2 wire protocol,
// which this package deliberately does not implement itself.
type TokenExchanger interface {
	// AuthCodeURL builds the browser authorization URL for the given CSRF
	// state and redirect URL.
	AuthCodeURL(state, redirectURL string) string

	// Exchange trades a verification code for a token pair.
	Exchange(ctx context.Context, code, redirectURL string) (*oauth2.Token, error)

	// Refresh obtains a fresh access token from a refresh token.
	Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error)
}

// codeExchanger is the default TokenExchanger, backed by oauth2.Config.
type codeExchanger struct {
	conf oauth2.Config
}

// NewExchanger builds the default x/oauth2-backed TokenExchanger.
func NewExchanger(clientID, clientSecret string, scopes []string, endpoint oauth2.Endpoint) TokenExchanger {
	return &codeExchanger{conf: oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Scopes:       scopes,
		Endpoint:     endpoint,
	}}
}

func (e *codeExchanger) AuthCodeURL(state, redirectURL string) string {
	conf := e.conf
	conf.RedirectURL = redirectURL
	return conf.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

func (e *codeExchanger) Exchange(ctx context.Context, code, redirectURL string) (*oauth2.Token, error) {
	conf := e.conf
	conf.RedirectURL = redirectURL
	token, err := conf.Exchange(ctx, code)
	if err != nil {
		return nil, &IOError{Err: errors.Wrap(err, "[codeExchanger.Exchange] conf.Exchange")}
	}
	return token, nil
}

func (e *codeExchanger) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	source := e.conf.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	token, err := source.Token()
	if err != nil {
		return nil, &IOError{Err: errors.Wrap(err, "[codeExchanger.Refresh] source.Token")}
	}
	return token, nil
}
