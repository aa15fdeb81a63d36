package blob

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BlobModel blobs 表
type BlobModel struct {
	Key       string    `gorm:"column:blob_key;primaryKey;size:191"`
	Value     []byte    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (BlobModel) TableName() string { return "blobs" }

type Gorm struct{ db *gorm.DB }

// NewGorm autoMigrate 为 true 时建表
func NewGorm(db *gorm.DB, autoMigrate bool) (*Gorm, error) {
	if autoMigrate {
		if err := db.AutoMigrate(&BlobModel{}); err != nil {
			return nil, err
		}
	}
	return &Gorm{db: db}, nil
}

func (g *Gorm) Get(ctx context.Context, key string) ([]byte, error) {
	var m BlobModel
	err := g.db.WithContext(ctx).First(&m, "blob_key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return m.Value, nil
}

func (g *Gorm) Put(ctx context.Context, key string, val []byte) error {
	m := BlobModel{Key: key, Value: val, UpdatedAt: time.Now()}
	// upsert：整体覆盖
	return g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "blob_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&m).Error
}

func (g *Gorm) Delete(ctx context.Context, key string) error {
	return g.db.WithContext(ctx).Where("blob_key = ?", key).Delete(&BlobModel{}).Error
}
