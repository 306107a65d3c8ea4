package login

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

// Reference timeouts for the identity query, carried over from the original
// desktop integrations.
const (
	identityConnectTimeout = 5000 * time.Millisecond
	identityReadTimeout    = 3000 * time.Millisecond
)

// Profile is the identity information resolved for a freshly exchanged
// token. Email is always set; Name and AvatarURL may be empty.
type Profile struct {
	Email     string
	Name      string
	AvatarURL string
}

// IdentityService resolves the identity behind an access token. Failures
// come in two kinds callers must distinguish: ErrEmailNotReturned when the
// endpoint answered but supplied no usable email, and *IOError for
// transport or non-2xx failures (transient by convention).
type IdentityService interface {
	UserInfo(ctx context.Context, token *oauth2.Token) (*Profile, error)
}

// EmailEndpoint queries a legacy identity endpoint that answers with a
// URL-encoded body of the form "email=...&...". Connect and read timeouts
// are fixed and bounded.
type EmailEndpoint struct {
	url    string
	client *http.Client
}

func NewEmailEndpoint(endpointURL string) *EmailEndpoint {
	return &EmailEndpoint{
		url: endpointURL,
		client: &http.Client{
			Transport: &http.Transport{
				DialContext:           (&net.Dialer{Timeout: identityConnectTimeout}).DialContext,
				ResponseHeaderTimeout: identityReadTimeout,
			},
		},
	}
}

func (e *EmailEndpoint) UserInfo(ctx context.Context, token *oauth2.Token) (*Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "[EmailEndpoint.UserInfo] NewRequest")
	}
	token.SetAuthHeader(req)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, &IOError{Err: errors.Wrap(err, "[EmailEndpoint.UserInfo] client.Do")}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &IOError{Err: errors.Errorf("[EmailEndpoint.UserInfo] unexpected status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &IOError{Err: errors.Wrap(err, "[EmailEndpoint.UserInfo] read body")}
	}

	params := parseURLParameters(string(body))
	email := params.Get("email")
	if email == "" {
		return nil, ErrEmailNotReturned
	}
	return &Profile{
		Email:     email,
		Name:      params.Get("name"),
		AvatarURL: params.Get("picture"),
	}, nil
}

// parseURLParameters parses a "param1=val1&param2=val2" body. If the body
// contains a '?', only the part after it is considered. Malformed pairs are
// dropped rather than treated as an error.
func parseURLParameters(body string) url.Values {
	if i := strings.IndexByte(body, '?'); i >= 0 {
		body = body[i+1:]
	}
	values, _ := url.ParseQuery(body)
	return values
}
