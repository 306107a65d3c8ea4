package oauthdata

import (
	"strings"

	"github.com/pkg/errors"
)

// ScopeDelimiter joins the scope set into a single stored string. OAuth
// scope identifiers can never contain a space, so the delimiter can never
// collide with scope content. Save enforces this at write time.
const ScopeDelimiter = " "

// OAuthRecord is the durable, serializable form of one account's
// authorization state. Empty-string fields mean "absent"; implementations
// normalize empty and absent to the same state on both read and write.
type OAuthRecord struct {
	Email             string
	AccessToken       string
	RefreshToken      string
	AccessTokenExpiry int64 // seconds since epoch, 0 when unknown
	Scopes            []string
	Name              string
	AvatarURL         string
}

// Validate checks the write-time invariants: a non-empty email and no scope
// string containing the delimiter. A violation is a caller bug, not a
// runtime condition, so Save implementations must fail hard on it.
func (r OAuthRecord) Validate() error {
	if r.Email == "" {
		return ErrEmptyEmail
	}
	for _, scope := range r.Scopes {
		if strings.Contains(scope, ScopeDelimiter) {
			return errors.Wrapf(ErrScopeDelimiter, "scope %q", scope)
		}
	}
	return nil
}

// JoinScopes serializes a scope set into a single delimiter-joined string.
func JoinScopes(scopes []string) string {
	return strings.Join(scopes, ScopeDelimiter)
}

// SplitScopes parses a delimiter-joined scope string, dropping empty
// entries. The result is never nil.
func SplitScopes(joined string) []string {
	scopes := []string{}
	for _, scope := range strings.Split(joined, ScopeDelimiter) {
		if scope != "" {
			scopes = append(scopes, scope)
		}
	}
	return scopes
}

// ScopeSetsEqual reports whether two scope lists contain exactly the same
// set of scopes, ignoring order and duplicates.
func ScopeSetsEqual(a, b []string) bool {
	setA := make(map[string]struct{}, len(a))
	for _, scope := range a {
		setA[scope] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, scope := range b {
		setB[scope] = struct{}{}
	}
	if len(setA) != len(setB) {
		return false
	}
	for scope := range setA {
		if _, ok := setB[scope]; !ok {
			return false
		}
	}
	return true
}
