package storefakes

import (
	"context"
	"sync"

	"github.com/jrsteele09/go-login-manager/oauthdata"
)

var _ oauthdata.Store = (*FakeStore)(nil)

// FakeStore is an in-memory oauthdata.Store for tests and embedding. The
// optional error fields inject backend failures per operation.
type FakeStore struct {
	SaveErr   error
	LoadErr   error
	RemoveErr map[string]error // keyed by email
	ClearErr  error

	records map[string]oauthdata.OAuthRecord
	lock    sync.RWMutex
}

func NewFakeStore() *FakeStore {
	return &FakeStore{records: make(map[string]oauthdata.OAuthRecord)}
}

func (s *FakeStore) Save(_ context.Context, record oauthdata.OAuthRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}
	if s.SaveErr != nil {
		return &oauthdata.StorageError{Op: "save", Email: record.Email, Cause: s.SaveErr}
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	record.Scopes = append([]string{}, record.Scopes...)
	s.records[record.Email] = record
	return nil
}

func (s *FakeStore) LoadAll(context.Context) ([]oauthdata.OAuthRecord, error) {
	if s.LoadErr != nil {
		return nil, &oauthdata.StorageError{Op: "load", Cause: s.LoadErr}
	}

	s.lock.RLock()
	defer s.lock.RUnlock()
	records := make([]oauthdata.OAuthRecord, 0, len(s.records))
	for _, record := range s.records {
		record.Scopes = append([]string{}, record.Scopes...)
		records = append(records, record)
	}
	return records, nil
}

func (s *FakeStore) Remove(_ context.Context, email string) error {
	if err := s.RemoveErr[email]; err != nil {
		return &oauthdata.StorageError{Op: "remove", Email: email, Cause: err}
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	delete(s.records, email)
	return nil
}

func (s *FakeStore) ClearAll(context.Context) error {
	if s.ClearErr != nil {
		return &oauthdata.StorageError{Op: "clear", Cause: s.ClearErr}
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	s.records = make(map[string]oauthdata.OAuthRecord)
	return nil
}

// Len reports the number of stored records.
func (s *FakeStore) Len() int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return len(s.records)
}
