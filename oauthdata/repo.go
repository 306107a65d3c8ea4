package oauthdata

import "context"

// Store persists OAuthRecords keyed by email, under a namespace owned
// exclusively by the store (never shared with unrelated data). Implemented
// by the embedding platform; the login manager only consumes this contract.
type Store interface {
	// Save persists one record atomically. It fails with ErrScopeDelimiter
	// (before touching the backend) when a scope contains the delimiter, and
	// with a *StorageError when the backend write fails.
	Save(ctx context.Context, record OAuthRecord) error

	// LoadAll returns every persisted record; never nil. A record with a
	// missing or corrupt field is reconstructed with that field defaulted
	// rather than aborting the whole load.
	LoadAll(ctx context.Context) ([]OAuthRecord, error)

	// Remove deletes one account's record. Absent records and
	// already-removed races are not errors.
	Remove(ctx context.Context, email string) error

	// ClearAll deletes every record under the store's namespace.
	ClearAll(ctx context.Context) error
}
