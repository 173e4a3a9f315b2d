package model

import "time"

// Address is a shipping address belonging to a user
type Address struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	Address   string    `json:"address" gorm:"type:text;not null"`
	City      string    `json:"city" gorm:"type:varchar(100);not null"`
	State     string    `json:"state" gorm:"type:varchar(100);not null"`
	ZipCode   string    `json:"zip_code" gorm:"type:varchar(20);not null"`
	Country   string    `json:"country" gorm:"type:varchar(100);not null"`
	Phone     string    `json:"phone" gorm:"type:varchar(30);not null"`
	Date      time.Time `json:"date" gorm:"not null"`
	Status    string    `json:"status" gorm:"type:varchar(50);not null;default:'pending'"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
