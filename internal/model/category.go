package model

import (
	"time"

	"gorm.io/gorm"
)

// Category groups products. It exclusively owns them: deleting a category
// cascades to its products.
type Category struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name            string `gorm:"size:200;not null" json:"name"`
	Slug            string `gorm:"size:200;uniqueIndex;not null" json:"slug"`
	Description     string `gorm:"type:text" json:"description"`
	MetaDescription string `gorm:"size:160" json:"meta_description"`
	// Icon holds a CSS icon class token for the frontend.
	Icon string `gorm:"size:50" json:"icon"`
}

func (Category) TableName() string { return "categories" }

// BeforeSave derives the slug from the name when the operator leaves it blank.
func (c *Category) BeforeSave(tx *gorm.DB) error {
	if c.Slug == "" {
		c.Slug = Slugify(c.Name)
	}
	return nil
}
