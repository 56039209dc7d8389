package repository

import (
	"context"
	"errors"
	"time"
	"travel-journal-bff/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LocalStore is a per-client key-value store: the server-side version of a
// browser's localStorage. Writes are last-write-wins, no locking.
type LocalStore interface {
	Get(ctx context.Context, clientID, key string) (value string, ok bool, err error)
	Set(ctx context.Context, clientID, key, value string) error
	Delete(ctx context.Context, clientID string, keys ...string) error
}

type localStoreImpl struct {
	db *gorm.DB
}

func NewLocalStore(db *gorm.DB) LocalStore {
	return &localStoreImpl{
		db: db,
	}
}

func (r *localStoreImpl) Get(ctx context.Context, clientID, key string) (string, bool, error) {
	var entry model.LocalEntry
	err := r.db.WithContext(ctx).
		Where("client_id = ? AND entry_key = ?", clientID, key).
		First(&entry).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	return entry.Value, true, nil
}

func (r *localStoreImpl) Set(ctx context.Context, clientID, key, value string) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "client_id"}, {Name: "entry_key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      value,
			"updated_at": time.Now(),
		}),
	}).Create(&model.LocalEntry{
		ClientID: clientID,
		EntryKey: key,
		Value:    value,
	}).Error
}

func (r *localStoreImpl) Delete(ctx context.Context, clientID string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("client_id = ? AND entry_key IN ?", clientID, keys).
		Delete(&model.LocalEntry{}).Error
}
