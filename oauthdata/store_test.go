package oauthdata_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-login-manager/oauthdata"
	"github.com/jrsteele09/go-login-manager/oauthdata/storefakes"
)

func TestFakeStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := storefakes.NewFakeStore()

	record := oauthdata.OAuthRecord{
		Email:             "a@x.com",
		AccessToken:       "access",
		RefreshToken:      "refresh",
		AccessTokenExpiry: 1234567890,
		Scopes:            []string{"openid", "email"},
		Name:              "Ada",
		AvatarURL:         "https://example.com/ada.png",
	}
	require.NoError(t, store.Save(ctx, record))

	records, err := store.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, record, records[0])
}

func TestFakeStoreRejectsDelimiterInScope(t *testing.T) {
	store := storefakes.NewFakeStore()

	err := store.Save(context.Background(), oauthdata.OAuthRecord{
		Email:  "a@x.com",
		Scopes: []string{"two words"},
	})

	require.ErrorIs(t, err, oauthdata.ErrScopeDelimiter)
	require.Zero(t, store.Len(), "validation failure must not write")
}

func TestFakeStoreRemoveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := storefakes.NewFakeStore()
	require.NoError(t, store.Save(ctx, oauthdata.OAuthRecord{Email: "a@x.com"}))

	require.NoError(t, store.Remove(ctx, "a@x.com"))
	require.NoError(t, store.Remove(ctx, "a@x.com"), "removing an already-removed record is not an error")
	require.NoError(t, store.Remove(ctx, "never-existed@x.com"))
}

func TestFakeStoreClearAll(t *testing.T) {
	ctx := context.Background()
	store := storefakes.NewFakeStore()
	require.NoError(t, store.Save(ctx, oauthdata.OAuthRecord{Email: "a@x.com"}))
	require.NoError(t, store.Save(ctx, oauthdata.OAuthRecord{Email: "b@x.com"}))

	require.NoError(t, store.ClearAll(ctx))

	records, err := store.LoadAll(ctx)
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestFakeStoreInjectedFailures(t *testing.T) {
	ctx := context.Background()
	cause := errors.New("backend down")
	store := storefakes.NewFakeStore()
	store.SaveErr = cause

	err := store.Save(ctx, oauthdata.OAuthRecord{Email: "a@x.com"})
	require.True(t, oauthdata.IsStorageFailure(err))
	require.ErrorIs(t, err, cause)
}
