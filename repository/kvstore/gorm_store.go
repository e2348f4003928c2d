package kvstore

import (
	"context"
	"corpus-annotator-backend/repository/metadata"
	"corpus-annotator-backend/utils"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore 把键值对保存在 metadata.StagingEntry 表中，单键覆盖写，后写者胜。
type GormStore struct {
	getDatabase func() *gorm.DB
}

func NewGormStore(getDatabase func() *gorm.DB) *GormStore {
	return &GormStore{getDatabase: getDatabase}
}

func (s *GormStore) Get(ctx context.Context, key string) (string, bool, error) {
	var entry metadata.StagingEntry
	err := s.getDatabase().WithContext(ctx).Take(&entry, "`key` = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, utils.WrapErrorf(err, "select staging entry [%s] fail", key)
	}

	return entry.Value, true, nil
}

func (s *GormStore) Set(ctx context.Context, key, value string) error {
	entry := metadata.StagingEntry{Key: key, Value: value}
	err := s.getDatabase().WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error

	return utils.WrapErrorf(err, "upsert staging entry [%s] fail", key)
}

func (s *GormStore) Delete(ctx context.Context, key string) error {
	err := s.getDatabase().WithContext(ctx).Delete(&metadata.StagingEntry{}, "`key` = ?", key).Error
	return utils.WrapErrorf(err, "delete staging entry [%s] fail", key)
}
