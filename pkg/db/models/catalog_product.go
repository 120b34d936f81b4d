package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CatalogProduct is a persisted catalog entry. Position keeps the source order.
type CatalogProduct struct {
	ID          int             `gorm:"column:id;primaryKey;autoIncrement:false"`
	Position    int             `gorm:"column:position;not null"`
	Title       string          `gorm:"column:title;not null"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	Description string          `gorm:"column:description;not null;default:''"`
	Category    string          `gorm:"column:category;not null"`
	Image       string          `gorm:"column:image;not null;default:''"`
	RatingRate  float64         `gorm:"column:rating_rate;not null;default:0"`
	RatingCount int             `gorm:"column:rating_count;not null;default:0"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (CatalogProduct) TableName() string {
	return "catalog_products"
}
