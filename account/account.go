package account

import (
	"time"

	"golang.org/x/oauth2"
)

// Account represents a single logged-in account. Identity is the email
// address: two Accounts refer to the same account iff their emails match,
// regardless of token or profile fields.
//
// Accounts are plain values. Handing one out never exposes roster-internal
// state; mutating a copy has no effect on the roster.
type Account struct {
	Email             string
	AccessToken       string // empty when absent
	RefreshToken      string // empty when absent
	AccessTokenExpiry int64  // seconds since epoch, 0 when unknown
	Name              string // empty when absent
	AvatarURL         string // empty when absent
}

// Credential builds a fresh oauth2.Token from the account's stored tokens.
// Every call returns a new value, so callers cannot corrupt roster state
// through it.
func (a Account) Credential() *oauth2.Token {
	token := &oauth2.Token{
		AccessToken:  a.AccessToken,
		RefreshToken: a.RefreshToken,
	}
	if a.AccessTokenExpiry > 0 {
		token.Expiry = time.Unix(a.AccessTokenExpiry, 0)
	}
	return token
}

// Expired reports whether the access token has expired at nowUnix. A token
// of unknown age (expiry 0) counts as expired.
func (a Account) Expired(nowUnix int64) bool {
	return a.AccessTokenExpiry == 0 || nowUnix >= a.AccessTokenExpiry
}
