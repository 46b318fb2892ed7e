package storage

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/vivero/internal/models"
)

type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&models.Entry{}); err != nil {
		return nil, err
	}
	return &GormStore{DB: db}, nil
}

func (r *GormStore) Get(ctx context.Context, key string) (string, bool, error) {
	var e models.Entry
	if err := r.DB.WithContext(ctx).Where("name = ?", key).First(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return e.Value, true, nil
}

func (r *GormStore) Set(ctx context.Context, key, value string) error {
	e := models.Entry{Name: key, Value: value, UpdatedAt: time.Now().UTC()}
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
}

func (r *GormStore) Remove(ctx context.Context, key string) error {
	return r.DB.WithContext(ctx).Where("name = ?", key).Delete(&models.Entry{}).Error
}
