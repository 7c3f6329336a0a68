package domain

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category, Brand and ProductModel are the classification reference tables.
// Listings point at them through nullable foreign keys.

type Category struct {
	CategoryID uuid.UUID `gorm:"column:category_id;type:uuid;primaryKey" json:"category_id"`
	Name       string    `gorm:"column:name;uniqueIndex;not null" json:"name"`
}

func (Category) TableName() string {
	return "categories"
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.CategoryID == uuid.Nil {
		c.CategoryID = uuid.New()
	}
	return nil
}

type Brand struct {
	BrandID uuid.UUID `gorm:"column:brand_id;type:uuid;primaryKey" json:"brand_id"`
	Name    string    `gorm:"column:name;uniqueIndex;not null" json:"name"`
}

func (Brand) TableName() string {
	return "brands"
}

func (b *Brand) BeforeCreate(tx *gorm.DB) error {
	if b.BrandID == uuid.Nil {
		b.BrandID = uuid.New()
	}
	return nil
}

// ProductModel avoids the name collision with GORM's gorm.Model.
type ProductModel struct {
	ModelID uuid.UUID `gorm:"column:model_id;type:uuid;primaryKey" json:"model_id"`
	Name    string    `gorm:"column:name;uniqueIndex;not null" json:"name"`
}

func (ProductModel) TableName() string {
	return "product_models"
}

func (m *ProductModel) BeforeCreate(tx *gorm.DB) error {
	if m.ModelID == uuid.Nil {
		m.ModelID = uuid.New()
	}
	return nil
}
