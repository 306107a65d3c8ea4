package login

import (
	"context"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

// OIDCUserInfo resolves identity through an OpenID Connect provider's
// userinfo endpoint, discovered from the issuer URL.
type OIDCUserInfo struct {
	provider *oidc.Provider
}

// NewOIDCUserInfo runs OIDC discovery against the issuer and returns an
// IdentityService backed by the discovered userinfo endpoint.
func NewOIDCUserInfo(ctx context.Context, issuer string) (*OIDCUserInfo, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, errors.Wrap(err, "[NewOIDCUserInfo] oidc.NewProvider")
	}
	return &OIDCUserInfo{provider: provider}, nil
}

func (o *OIDCUserInfo) UserInfo(ctx context.Context, token *oauth2.Token) (*Profile, error) {
	info, err := o.provider.UserInfo(ctx, oauth2.StaticTokenSource(token))
	if err != nil {
		return nil, &IOError{Err: errors.Wrap(err, "[OIDCUserInfo.UserInfo] provider.UserInfo")}
	}
	if info.Email == "" {
		return nil, ErrEmailNotReturned
	}

	var claims struct {
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	// Name and avatar are best-effort; a claims decode failure is not fatal.
	_ = info.Claims(&claims)

	return &Profile{
		Email:     info.Email,
		Name:      claims.Name,
		AvatarURL: claims.Picture,
	}, nil
}
