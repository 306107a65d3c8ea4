// Package gormstore persists OAuth records in a relational table, one row
// per account email. The default driver is pure-Go sqlite, which suits the
// per-user desktop machines this library targets.
package gormstore

import (
	"context"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/jrsteele09/go-login-manager/oauthdata"
)

var _ oauthdata.Store = (*Store)(nil)

// row mirrors the logical persisted record layout. The table is owned
// exclusively by this store; nothing else may write to it.
type row struct {
	Email             string `gorm:"column:email;primaryKey"`
	AccessToken       string `gorm:"column:access_token"`
	RefreshToken      string `gorm:"column:refresh_token"`
	AccessTokenExpiry int64  `gorm:"column:access_token_expiry_time"`
	Scopes            string `gorm:"column:oauth_scopes"`
	Name              string `gorm:"column:account_name"`
	AvatarURL         string `gorm:"column:avatar_url"`
}

func (row) TableName() string { return "oauth_accounts" }

// Store implements oauthdata.Store on top of a gorm DB handle.
type Store struct {
	db *gorm.DB
}

// Open opens (or creates) a sqlite-backed store at the given path and
// migrates its schema.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Discard})
	if err != nil {
		return nil, errors.Wrap(err, "[gormstore.Open] gorm.Open")
	}
	return New(db)
}

// New builds a store on an existing gorm DB handle and migrates its schema.
func New(db *gorm.DB) (*Store, error) {
	if db == nil {
		return nil, errors.New("[gormstore.New] db is required")
	}
	if err := db.AutoMigrate(&row{}); err != nil {
		return nil, errors.Wrap(err, "[gormstore.New] AutoMigrate")
	}
	return &Store{db: db}, nil
}

func (s *Store) Save(ctx context.Context, record oauthdata.OAuthRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	r := row{
		Email:             record.Email,
		AccessToken:       record.AccessToken,
		RefreshToken:      record.RefreshToken,
		AccessTokenExpiry: record.AccessTokenExpiry,
		Scopes:            oauthdata.JoinScopes(record.Scopes),
		Name:              record.Name,
		AvatarURL:         record.AvatarURL,
	}
	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&r)
	if result.Error != nil {
		return &oauthdata.StorageError{Op: "save", Email: record.Email, Cause: result.Error}
	}
	return nil
}

func (s *Store) LoadAll(ctx context.Context) ([]oauthdata.OAuthRecord, error) {
	var rows []row
	if result := s.db.WithContext(ctx).Find(&rows); result.Error != nil {
		return nil, &oauthdata.StorageError{Op: "load", Cause: result.Error}
	}

	records := make([]oauthdata.OAuthRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, oauthdata.OAuthRecord{
			Email:             r.Email,
			AccessToken:       r.AccessToken,
			RefreshToken:      r.RefreshToken,
			AccessTokenExpiry: r.AccessTokenExpiry,
			Scopes:            oauthdata.SplitScopes(r.Scopes),
			Name:              r.Name,
			AvatarURL:         r.AvatarURL,
		})
	}
	return records, nil
}

func (s *Store) Remove(ctx context.Context, email string) error {
	result := s.db.WithContext(ctx).Where("email = ?", email).Delete(&row{})
	if result.Error != nil {
		return &oauthdata.StorageError{Op: "remove", Email: email, Cause: result.Error}
	}
	// Zero rows affected means the record was already gone; not an error.
	return nil
}

func (s *Store) ClearAll(ctx context.Context) error {
	result := s.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&row{})
	if result.Error != nil {
		return &oauthdata.StorageError{Op: "clear", Cause: result.Error}
	}
	return nil
}
