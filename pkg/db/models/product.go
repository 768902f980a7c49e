package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents one catalog entry. Prices here are the live catalog
// values; carts snapshot the price at add time and never read it back.
type Product struct {
	ID            string           `gorm:"column:id;primaryKey"`
	Name          string           `gorm:"column:name;not null"`
	Description   *string          `gorm:"column:description"`
	ImageURL      string           `gorm:"column:image_url;not null"`
	Price         decimal.Decimal  `gorm:"column:price;type:numeric;not null"`
	OriginalPrice *decimal.Decimal `gorm:"column:original_price;type:numeric"`
	Category      string           `gorm:"column:category;not null;index"`
	Sizes         []string         `gorm:"column:sizes;serializer:json"`
	Colors        []string         `gorm:"column:colors;serializer:json"`
	IsFeatured    bool             `gorm:"column:is_featured;not null;default:false"`
	CreatedAt     time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
