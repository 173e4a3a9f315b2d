package model

import "time"

// Product represents a catalog item
type Product struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(255);uniqueIndex"`
	Price       int       `json:"price"`
	Description string    `json:"description" gorm:"type:text"`
	Quantity    int       `json:"quantity"`
	UserID      *uint     `json:"user_id,omitempty" gorm:"index"`
	ImageURL    string    `json:"image_url" gorm:"type:varchar(512)"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductCategory links a category name to a product
type ProductCategory struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(100);uniqueIndex;not null"`
	ProductID *uint     `json:"product_id,omitempty" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
