package model

import "time"

// Review is a user's rating of a product
type Review struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	ProductID uint      `json:"product_id" gorm:"index;not null"`
	Rating    int       `json:"rating" gorm:"not null"`
	Body      string    `json:"review" gorm:"column:review;type:text;not null"`
	Date      time.Time `json:"date" gorm:"not null"`
	Status    string    `json:"status" gorm:"type:varchar(50);not null;default:'pending'"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
