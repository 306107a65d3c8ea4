package login

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	goauth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

// GoogleUserInfo resolves the structured userinfo payload through the
// Google OAuth2 API client, yielding email, display name, and avatar.
type GoogleUserInfo struct {
	opts []option.ClientOption
}

// NewGoogleUserInfo builds a Google-API-backed IdentityService. Extra client
// options (e.g. option.WithEndpoint for tests) are passed through.
func NewGoogleUserInfo(opts ...option.ClientOption) *GoogleUserInfo {
	return &GoogleUserInfo{opts: opts}
}

func (g *GoogleUserInfo) UserInfo(ctx context.Context, token *oauth2.Token) (*Profile, error) {
	opts := append(
		[]option.ClientOption{option.WithTokenSource(oauth2.StaticTokenSource(token))},
		g.opts...)
	service, err := goauth2.NewService(ctx, opts...)
	if err != nil {
		return nil, &IOError{Err: errors.Wrap(err, "[GoogleUserInfo.UserInfo] NewService")}
	}

	info, err := service.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return nil, &IOError{Err: errors.Wrap(err, "[GoogleUserInfo.UserInfo] Userinfo.Get")}
	}
	if info == nil || info.Email == "" {
		return nil, ErrEmailNotReturned
	}
	return &Profile{
		Email:     info.Email,
		Name:      info.Name,
		AvatarURL: info.Picture,
	}, nil
}
