package item

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"Nutripedia-Backend/domain"
	"Nutripedia-Backend/entities"
)

// ItemRecord is the postgres row shape behind the alternate store backend:
// the full flat record lives in a JSON column, with the lookup key and id
// pulled out as indexed columns. The primary-key constraint on id provides
// the insert-if-absent semantics the dynamo backend gets from its
// conditional expression.
type ItemRecord struct {
	ID            string         `gorm:"type:uuid;primary_key" json:"id"`
	NameLowercase string         `gorm:"index;not null" json:"name_lowercase"`
	ItemType      string         `gorm:"not null" json:"item_type"`
	Record        datatypes.JSON `gorm:"not null" json:"record"`
	CreatedAt     time.Time      `json:"created_at"`
}

func (ItemRecord) TableName() string {
	return "items"
}

type postgresItemRepository struct {
	db *gorm.DB
}

func NewPostgresItemRepository(db *gorm.DB) ItemRepository {
	return &postgresItemRepository{db: db}
}

func (r *postgresItemRepository) FindByName(ctx context.Context, nameLowercase string) (*entities.Item, error) {
	var record ItemRecord
	err := r.db.WithContext(ctx).
		Where("name_lowercase = ?", nameLowercase).
		Order("created_at asc").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrItemNotFound
		}
		return nil, err
	}

	var it entities.Item
	if err := json.Unmarshal(record.Record, &it); err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *postgresItemRepository) Insert(ctx context.Context, item *entities.Item) error {
	raw, err := json.Marshal(item)
	if err != nil {
		return err
	}

	record := ItemRecord{
		ID:            item.ID,
		NameLowercase: item.NameLowercase,
		ItemType:      string(item.ItemType),
		Record:        datatypes.JSON(raw),
	}

	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrItemAlreadyExists
		}
		return err
	}
	return nil
}
